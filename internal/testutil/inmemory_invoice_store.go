package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/invoice"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository for tests.
type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	invoices map[string]*invoice.Invoice
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[string]*invoice.Invoice),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *inv
	if stored.ID == "" {
		stored.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE)
	}
	stored.UserID = types.GetUserID(ctx)
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	s.invoices[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[id]
	if !ok || inv.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	out := *inv
	return &out, nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID := types.GetUserID(ctx)
	out := make([]*invoice.Invoice, 0)
	for _, inv := range s.invoices {
		if inv.UserID == userID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.invoices[inv.ID]
	if !ok || existing.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}

	stored := *inv
	stored.UserID = existing.UserID
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	s.invoices[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.invoices[id]
	if !ok || existing.UserID != types.GetUserID(ctx) {
		return ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	delete(s.invoices, id)
	return nil
}

func (s *InMemoryInvoiceStore) GetMostRecent(ctx context.Context) (*invoice.Invoice, error) {
	invoices, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, ierr.NewError("no invoices").
			WithHint("No invoices yet").
			Mark(ierr.ErrNotFound)
	}
	return invoices[0], nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context) (int, error) {
	invoices, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(invoices), nil
}

func (s *InMemoryInvoiceStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := types.GetUserID(ctx)
	for id, inv := range s.invoices {
		if inv.UserID == userID {
			delete(s.invoices, id)
		}
	}
	return nil
}
