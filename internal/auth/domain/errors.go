package domain

import (
	"github.com/restboard/restboard/internal/errors"
)

// Domain-specific errors for request authentication.
var (
	// ErrMalformedAuthHeader indicates an Authorization header that is present
	// but not in the form "Bearer <apiKey> <accessToken>".
	ErrMalformedAuthHeader = errors.Wrap(errors.ErrUnauthorized, "malformed authorization header")

	// ErrInvalidCredential indicates that neither a valid access token nor a
	// matching API key was presented.
	ErrInvalidCredential = errors.Wrap(errors.ErrUnauthorized, "invalid credential")

	// ErrInvalidToken indicates an access token that failed verification.
	// Expired, tampered and malformed tokens are deliberately collapsed into
	// this single error so callers cannot distinguish them.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid access token")
)
