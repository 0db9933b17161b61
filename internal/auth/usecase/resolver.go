// Package usecase implements the per-request principal resolution logic.
package usecase

import (
	"context"

	"golang.org/x/sync/singleflight"

	accountDomain "github.com/restboard/restboard/internal/account/domain"
	authDomain "github.com/restboard/restboard/internal/auth/domain"
	authService "github.com/restboard/restboard/internal/auth/service"
	apperrors "github.com/restboard/restboard/internal/errors"
)

// AccountReader is the slice of the account store the resolver needs.
type AccountReader interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*accountDomain.Account, error)
}

// Resolver turns an extracted credential pair into a request principal.
type Resolver interface {
	// Resolve applies credential precedence: a valid access token wins and is
	// decoded without touching the account store (tokenValid=true); otherwise
	// the API key is looked up (tokenValid=false). When neither resolves, it
	// fails with authDomain.ErrInvalidCredential.
	Resolve(ctx context.Context, apiKey, accessToken string) (principal *authDomain.Principal, tokenValid bool, err error)
}

// principalResolver implements Resolver on top of the token codec and the
// account store.
type principalResolver struct {
	codec    authService.TokenCodec
	accounts AccountReader

	// lookups collapses concurrent store hits for the same API key. A client
	// whose token just expired tends to fire several requests at once.
	lookups singleflight.Group
}

// NewResolver creates a Resolver.
func NewResolver(codec authService.TokenCodec, accounts AccountReader) Resolver {
	return &principalResolver{
		codec:    codec,
		accounts: accounts,
	}
}

// Resolve resolves the credential pair into a principal.
//
// Decoding a still-valid token keeps the hot path free of store lookups; the
// API key lookup is the cold path used to re-anchor a client whose token has
// expired, and the caller is expected to mint a replacement token when
// tokenValid is false.
func (r *principalResolver) Resolve(
	ctx context.Context,
	apiKey, accessToken string,
) (*authDomain.Principal, bool, error) {
	if accessToken != "" {
		if claims, err := r.codec.Verify(accessToken); err == nil {
			return &authDomain.Principal{
				ID:       claims.AccountID,
				Username: claims.Username,
				Nickname: claims.Nickname,
			}, true, nil
		}
		// Invalid or expired tokens fall through to the API key; the key is
		// the re-anchoring credential.
	}

	result, err, _ := r.lookups.Do(apiKey, func() (any, error) {
		return r.accounts.GetByAPIKey(ctx, apiKey)
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, false, authDomain.ErrInvalidCredential
		}
		return nil, false, apperrors.Wrap(err, "failed to resolve principal by api key")
	}

	account := result.(*accountDomain.Account)
	return account.Principal(), false, nil
}
