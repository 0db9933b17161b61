package dto

import (
	"time"

	"github.com/restboard/restboard/internal/account/domain"
)

// AccountResponse represents an account in API responses (excludes credentials).
type AccountResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatarUrl"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// MapAccountToResponse converts a domain account to an API response.
func MapAccountToResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Nickname:  account.Nickname,
		AvatarURL: account.AvatarURLOrDefault(),
		IsAdmin:   account.IsAdmin(),
		CreatedAt: account.CreatedAt,
	}
}

// LoginResponse carries the credential pair handed out after a password login.
// The same values are also attached as cookies for browser clients.
type LoginResponse struct {
	Account     AccountResponse `json:"account"`
	APIKey      string          `json:"apiKey"`
	AccessToken string          `json:"accessToken"`
}
