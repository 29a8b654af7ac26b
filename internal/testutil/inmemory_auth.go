package testutil

import (
	"context"
	"sync"

	"github.com/stitchesx/stitchesx/internal/auth"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
)

// FakeAuthProvider implements auth.Provider for tests.
type FakeAuthProvider struct {
	mu      sync.Mutex
	deleted []string

	// FailDeletes makes DeleteAccount fail when set.
	FailDeletes bool
}

func NewFakeAuthProvider() *FakeAuthProvider {
	return &FakeAuthProvider{}
}

func (p *FakeAuthProvider) SignUp(ctx context.Context, req auth.AuthRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{UserID: TestUserID, AccessToken: "test-token"}, nil
}

func (p *FakeAuthProvider) Login(ctx context.Context, req auth.AuthRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{UserID: TestUserID, AccessToken: "test-token"}, nil
}

func (p *FakeAuthProvider) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, ierr.NewError("empty token").
			WithHint("Invalid token").
			Mark(ierr.ErrAuthentication)
	}
	return &auth.Claims{UserID: TestUserID, Email: TestUserEmail}, nil
}

func (p *FakeAuthProvider) DeleteAccount(ctx context.Context, userID string) error {
	if p.FailDeletes {
		return ierr.NewError("delete failed").
			WithHint("Auth account deletion failed").
			Mark(ierr.ErrSystem)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, userID)
	return nil
}

// Deleted returns the user ids whose auth accounts were removed.
func (p *FakeAuthProvider) Deleted() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.deleted))
	copy(out, p.deleted)
	return out
}
