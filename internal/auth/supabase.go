package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	supa "github.com/nedpals/supabase-go"
	"github.com/stitchesx/stitchesx/internal/config"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/httpclient"
	"github.com/stitchesx/stitchesx/internal/logger"
)

type supabaseAuth struct {
	cfg    config.SupabaseConfig
	client *supa.Client
	http   httpclient.Client
	logger *logger.Logger
}

// NewSupabaseAuth creates the Supabase-backed auth provider.
func NewSupabaseAuth(cfg *config.Configuration, http httpclient.Client, logger *logger.Logger) Provider {
	client := supa.CreateClient(cfg.Supabase.BaseURL, cfg.Supabase.ServiceKey)

	return &supabaseAuth{
		cfg:    cfg.Supabase,
		client: client,
		http:   http,
		logger: logger,
	}
}

func (s *supabaseAuth) SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	_, err := s.client.Auth.SignUp(ctx, supa.UserCredentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Sign up failed").
			Mark(ierr.ErrInvalidOperation)
	}

	return s.Login(ctx, req)
}

func (s *supabaseAuth) Login(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	user, err := s.client.Auth.SignIn(ctx, supa.UserCredentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid email or password").
			Mark(ierr.ErrAuthentication)
	}

	return &AuthResponse{
		UserID:      user.User.ID,
		AccessToken: user.AccessToken,
	}, nil
}

func (s *supabaseAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid token").
			Mark(ierr.ErrAuthentication)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token").
			Mark(ierr.ErrAuthentication)
	}

	userID, userOk := claims["sub"].(string)
	if !userOk || userID == "" {
		return nil, ierr.NewError("token missing user id").
			WithHint("Invalid token").
			Mark(ierr.ErrAuthentication)
	}

	email, _ := claims["email"].(string)

	return &Claims{
		UserID: userID,
		Email:  email,
	}, nil
}

// DeleteAccount calls the GoTrue admin API directly; the client library
// does not cover admin user deletion.
func (s *supabaseAuth) DeleteAccount(ctx context.Context, userID string) error {
	endpoint := fmt.Sprintf("%s/auth/v1/admin/users/%s",
		strings.TrimRight(s.cfg.BaseURL, "/"), userID)

	resp, err := s.http.Send(ctx, &httpclient.Request{
		Method: http.MethodDelete,
		URL:    endpoint,
		Headers: map[string]string{
			"apikey":        s.cfg.ServiceKey,
			"Authorization": "Bearer " + s.cfg.ServiceKey,
		},
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete auth account").
			Mark(ierr.ErrSystem)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return ierr.NewError("auth account deletion failed").
			WithHintf("Auth service responded with status %d", resp.StatusCode).
			Mark(ierr.ErrSystem)
	}

	s.logger.Infow("deleted auth account", "user_id", userID)
	return nil
}
