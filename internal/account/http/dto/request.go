// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/restboard/restboard/internal/validation"
)

// JoinRequest is the payload for creating a native account.
type JoinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// Validate checks the join request fields.
func (r JoinRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required"), appValidation.NotBlank),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
		validation.Field(&r.Nickname, validation.Required.Error("nickname is required"), appValidation.NotBlank),
	)
}

// LoginRequest is the payload for a password login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the login request fields.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}
