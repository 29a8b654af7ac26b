package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/analytics"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/types"
)

// InMemoryAnalyticsStore implements analytics.Repository for tests.
type InMemoryAnalyticsStore struct {
	mu   sync.RWMutex
	rows map[string]*analytics.Analytics
}

func NewInMemoryAnalyticsStore() *InMemoryAnalyticsStore {
	return &InMemoryAnalyticsStore{
		rows: make(map[string]*analytics.Analytics),
	}
}

func (s *InMemoryAnalyticsStore) Get(ctx context.Context) (*analytics.Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[types.GetUserID(ctx)]
	if !ok {
		return nil, ierr.NewError("analytics not found").
			WithHint("No usage recorded yet").
			Mark(ierr.ErrNotFound)
	}
	out := *row
	return &out, nil
}

func (s *InMemoryAnalyticsStore) Upsert(ctx context.Context, row *analytics.Analytics) (*analytics.Analytics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *row
	stored.UserID = types.GetUserID(ctx)
	stored.UpdatedAt = time.Now().UTC()
	s.rows[stored.UserID] = &stored
	out := stored
	return &out, nil
}

func (s *InMemoryAnalyticsStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, types.GetUserID(ctx))
	return nil
}
