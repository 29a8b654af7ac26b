package dto

import (
	"github.com/stitchesx/stitchesx/internal/validator"
)

// SignUpRequest registers a new user account.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *SignUpRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// AuthResponse returns the session material for a signed-in user.
type AuthResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}
