package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/restboard/restboard/internal/errors"
)

func TestPrincipal_IsAdmin(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{SystemUsername, true},
		{AdminUsername, true},
		{"user1", false},
		{"ADMIN", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			principal := &Principal{Username: tt.username}
			assert.Equal(t, tt.want, principal.IsAdmin())
		})
	}
}

func TestAuthErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"MalformedAuthHeader", ErrMalformedAuthHeader},
		{"InvalidCredential", ErrInvalidCredential},
		{"InvalidToken", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, apperrors.ErrUnauthorized)
		})
	}
}
