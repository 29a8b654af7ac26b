package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/template"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/types"
)

// InMemoryTemplateStore implements template.Repository for tests.
type InMemoryTemplateStore struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

func NewInMemoryTemplateStore() *InMemoryTemplateStore {
	return &InMemoryTemplateStore{
		templates: make(map[string]*template.Template),
	}
}

func (s *InMemoryTemplateStore) Create(ctx context.Context, tmpl *template.Template) (*template.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *tmpl
	if stored.ID == "" {
		stored.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TEMPLATE)
	}
	stored.UserID = types.GetUserID(ctx)
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.templates[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (s *InMemoryTemplateStore) Get(ctx context.Context, id string) (*template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tmpl, ok := s.templates[id]
	if !ok || tmpl.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("template not found").
			WithHint("Template not found").
			Mark(ierr.ErrNotFound)
	}
	out := *tmpl
	return &out, nil
}

func (s *InMemoryTemplateStore) List(ctx context.Context) ([]*template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID := types.GetUserID(ctx)
	out := make([]*template.Template, 0)
	for _, tmpl := range s.templates {
		if tmpl.UserID == userID {
			cp := *tmpl
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryTemplateStore) Update(ctx context.Context, tmpl *template.Template) (*template.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.templates[tmpl.ID]
	if !ok || existing.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("template not found").
			WithHint("Template not found").
			Mark(ierr.ErrNotFound)
	}

	stored := *tmpl
	stored.UserID = existing.UserID
	stored.IsDefault = existing.IsDefault
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	s.templates[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (s *InMemoryTemplateStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.templates[id]
	if !ok || existing.UserID != types.GetUserID(ctx) {
		return ierr.NewError("template not found").
			WithHint("Template not found").
			Mark(ierr.ErrNotFound)
	}
	delete(s.templates, id)
	return nil
}

func (s *InMemoryTemplateStore) GetDefault(ctx context.Context) (*template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID := types.GetUserID(ctx)
	for _, tmpl := range s.templates {
		if tmpl.UserID == userID && tmpl.IsDefault {
			out := *tmpl
			return &out, nil
		}
	}
	return nil, ierr.NewError("no default template").
		WithHint("No default template set").
		Mark(ierr.ErrNotFound)
}

// SetDefault mirrors the atomic server-side function: clear-all then set,
// under one lock.
func (s *InMemoryTemplateStore) SetDefault(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := types.GetUserID(ctx)
	target, ok := s.templates[id]
	if !ok || target.UserID != userID {
		return ierr.NewError("template not found").
			WithHint("Template not found").
			Mark(ierr.ErrNotFound)
	}

	for _, tmpl := range s.templates {
		if tmpl.UserID == userID {
			tmpl.IsDefault = false
		}
	}
	target.IsDefault = true
	target.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *InMemoryTemplateStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := types.GetUserID(ctx)
	for id, tmpl := range s.templates {
		if tmpl.UserID == userID {
			delete(s.templates, id)
		}
	}
	return nil
}
