// Package domain defines the core account domain entities and types.
package domain

import (
	"time"

	authDomain "github.com/restboard/restboard/internal/auth/domain"
	"github.com/restboard/restboard/internal/errors"
)

// DefaultAvatarURL is used when an account has no avatar of its own.
const DefaultAvatarURL = "https://placehold.co/600x600?text=U_U"

// Account represents a registered account.
//
// Username and APIKey are globally unique. APIKey is the root credential: an
// opaque value that never expires and serves as the fallback when no valid
// access token is presented. Password is empty for federated accounts.
type Account struct {
	ID        int64
	Username  string
	Password  string // argon2id hash, empty for federated accounts
	Nickname  string
	APIKey    string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the account carries the admin role.
func (a *Account) IsAdmin() bool {
	return a.Username == authDomain.SystemUsername || a.Username == authDomain.AdminUsername
}

// AvatarURLOrDefault returns the avatar URL, or a placeholder when unset.
func (a *Account) AvatarURLOrDefault() string {
	if a.AvatarURL == "" {
		return DefaultAvatarURL
	}
	return a.AvatarURL
}

// Principal builds the request principal for this account.
func (a *Account) Principal() *authDomain.Principal {
	return &authDomain.Principal{
		ID:       a.ID,
		Username: a.Username,
		Nickname: a.Nickname,
	}
}

// Domain-specific errors for account operations.
var (
	// ErrAccountNotFound indicates the requested account does not exist.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrAccountAlreadyExists indicates an account with the same username already exists.
	ErrAccountAlreadyExists = errors.Wrap(errors.ErrConflict, "account already exists")

	// ErrPasswordMismatch indicates the presented password doesn't match the stored hash.
	ErrPasswordMismatch = errors.Wrap(errors.ErrUnauthorized, "password mismatch")

	// ErrUsernameRequired indicates the username field is required.
	ErrUsernameRequired = errors.Wrap(errors.ErrInvalidInput, "username is required")

	// ErrNicknameRequired indicates the nickname field is required.
	ErrNicknameRequired = errors.Wrap(errors.ErrInvalidInput, "nickname is required")
)
