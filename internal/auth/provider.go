package auth

import "context"

// Claims are the verified fields extracted from a user access token.
type Claims struct {
	UserID string
	Email  string
}

// AuthRequest carries user credentials for signup/login.
type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse is the provider's answer to a successful signup/login.
type AuthResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// Provider abstracts the hosted auth service.
type Provider interface {
	SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)

	// DeleteAccount removes the auth account itself. Called last during
	// user-data deletion.
	DeleteAccount(ctx context.Context, userID string) error
}
