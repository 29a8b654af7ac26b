package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/profile"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/types"
)

// InMemoryProfileStore implements profile.Repository for tests.
type InMemoryProfileStore struct {
	mu   sync.RWMutex
	rows map[string]*profile.Profile
}

func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{
		rows: make(map[string]*profile.Profile),
	}
}

func (s *InMemoryProfileStore) Get(ctx context.Context) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[types.GetUserID(ctx)]
	if !ok {
		return nil, ierr.NewError("profile not found").
			WithHint("No profile saved yet").
			Mark(ierr.ErrNotFound)
	}
	out := *row
	return &out, nil
}

func (s *InMemoryProfileStore) Upsert(ctx context.Context, row *profile.Profile) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *row
	stored.UserID = types.GetUserID(ctx)
	stored.UpdatedAt = time.Now().UTC()
	s.rows[stored.UserID] = &stored
	out := stored
	return &out, nil
}

func (s *InMemoryProfileStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, types.GetUserID(ctx))
	return nil
}
