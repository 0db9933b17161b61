// Package service provides stateless authentication primitives: the signed
// token codec and the request credential extractor.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/restboard/restboard/internal/auth/domain"
	apperrors "github.com/restboard/restboard/internal/errors"
)

// TokenClaims are the identity claims carried by a signed access token.
type TokenClaims struct {
	AccountID int64
	Username  string
	Nickname  string
}

// TokenCodec mints and verifies signed access tokens. Tokens are stateless:
// validity is fully determined by signature and expiry at verification time,
// nothing is stored server-side and nothing can be revoked before expiry.
type TokenCodec interface {
	// Issue serializes the claims plus an absolute expiry (now + ttl) into an
	// integrity-protected opaque string.
	Issue(claims TokenClaims, ttl time.Duration) (string, error)

	// Verify checks signature and expiry. Any failure (bad signature,
	// malformed, expired) returns authDomain.ErrInvalidToken.
	Verify(token string) (*TokenClaims, error)
}

// jwtClaims is the wire shape of the token payload.
type jwtClaims struct {
	jwt.RegisteredClaims
	AccountID int64  `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"name"`
}

// hmacTokenCodec implements TokenCodec with HMAC-SHA256 signatures.
type hmacTokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a TokenCodec signing with the given shared secret.
func NewTokenCodec(secret string) TokenCodec {
	return &hmacTokenCodec{secret: []byte(secret)}
}

// Issue mints a new signed token for the given claims.
func (c *hmacTokenCodec) Issue(claims TokenClaims, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccountID: claims.AccountID,
		Username:  claims.Username,
		Nickname:  claims.Nickname,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// Verify parses and validates a signed token, returning its claims.
func (c *hmacTokenCodec) Verify(tokenString string) (*TokenClaims, error) {
	parsed := &jwtClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		parsed,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		// Callers must treat expired, tampered and malformed tokens the same
		// way, so all verification failures collapse into one error.
		return nil, authDomain.ErrInvalidToken
	}

	return &TokenClaims{
		AccountID: parsed.AccountID,
		Username:  parsed.Username,
		Nickname:  parsed.Nickname,
	}, nil
}
