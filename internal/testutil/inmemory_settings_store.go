package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/settings"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/types"
)

// InMemorySettingsStore implements settings.Repository for tests.
type InMemorySettingsStore struct {
	mu   sync.RWMutex
	rows map[string]*settings.Settings
}

func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		rows: make(map[string]*settings.Settings),
	}
}

func (s *InMemorySettingsStore) Get(ctx context.Context) (*settings.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[types.GetUserID(ctx)]
	if !ok {
		return nil, ierr.NewError("settings not found").
			WithHint("No settings saved yet").
			Mark(ierr.ErrNotFound)
	}
	out := *row
	return &out, nil
}

func (s *InMemorySettingsStore) Upsert(ctx context.Context, row *settings.Settings) (*settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *row
	stored.UserID = types.GetUserID(ctx)
	stored.UpdatedAt = time.Now().UTC()
	s.rows[stored.UserID] = &stored
	out := stored
	return &out, nil
}

func (s *InMemorySettingsStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, types.GetUserID(ctx))
	return nil
}
