package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/restboard/restboard/internal/auth/domain"
)

func TestTokenCodec_IssueAndVerify(t *testing.T) {
	codec := NewTokenCodec("test-secret-key")

	claims := TokenClaims{
		AccountID: 42,
		Username:  "GOOGLE__108177632",
		Nickname:  "Jane",
	}

	t.Run("Success_RoundTrip", func(t *testing.T) {
		token, err := codec.Issue(claims, time.Minute)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		decoded, err := codec.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, claims.AccountID, decoded.AccountID)
		assert.Equal(t, claims.Username, decoded.Username)
		assert.Equal(t, claims.Nickname, decoded.Nickname)
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		token, err := codec.Issue(claims, -time.Minute)
		require.NoError(t, err)

		decoded, err := codec.Verify(token)
		assert.Nil(t, decoded)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_WrongSecret", func(t *testing.T) {
		otherCodec := NewTokenCodec("another-secret-key")
		token, err := otherCodec.Issue(claims, time.Minute)
		require.NoError(t, err)

		decoded, err := codec.Verify(token)
		assert.Nil(t, decoded)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_MalformedToken", func(t *testing.T) {
		decoded, err := codec.Verify("not-a-token")
		assert.Nil(t, decoded)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_EmptyToken", func(t *testing.T) {
		decoded, err := codec.Verify("")
		assert.Nil(t, decoded)
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})
}

func TestTokenCodec_InvalidTokenIsUnauthorized(t *testing.T) {
	codec := NewTokenCodec("test-secret-key")

	_, err := codec.Verify("tampered")
	require.Error(t, err)

	// Verification failures must map to the unauthorized family so the HTTP
	// layer renders them as 401 without special-casing.
	assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
}
