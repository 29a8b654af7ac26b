package repository

import (
	"context"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/invoice"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/supabase"
	"github.com/stitchesx/stitchesx/internal/types"
)

const invoicesTable = "invoices"

type invoiceRepository struct {
	db     *supabase.Client
	logger *logger.Logger
}

// NewInvoiceRepository creates the PostgREST-backed invoice repository.
func NewInvoiceRepository(db *supabase.Client, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inv.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE)
	inv.UserID = userID
	inv.CreatedAt = now
	inv.UpdatedAt = now

	var created invoice.Invoice
	if err := r.db.From(invoicesTable).Single().Insert(ctx, inv, &created); err != nil {
		return nil, mapBackendError(err, "Failed to create invoice")
	}
	return &created, nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var row invoice.Invoice
	err = r.db.From(invoicesTable).
		Select("*").
		Eq("id", id).
		Eq("user_id", userID).
		Single().
		Get(ctx, &row)
	if err != nil {
		return nil, mapBackendError(err, "Invoice not found")
	}
	return &row, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var rows []*invoice.Invoice
	err = r.db.From(invoicesTable).
		Select("*").
		Eq("user_id", userID).
		Order("created_at", false).
		Get(ctx, &rows)
	if err != nil {
		return nil, mapBackendError(err, "Failed to list invoices")
	}
	return rows, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	inv.UpdatedAt = time.Now().UTC()

	var updated invoice.Invoice
	err = r.db.From(invoicesTable).
		Eq("id", inv.ID).
		Eq("user_id", userID).
		Single().
		Update(ctx, inv, &updated)
	if err != nil {
		return nil, mapBackendError(err, "Failed to update invoice")
	}
	return &updated, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	err = r.db.From(invoicesTable).
		Eq("id", id).
		Eq("user_id", userID).
		Delete(ctx)
	return mapBackendError(err, "Failed to delete invoice")
}

func (r *invoiceRepository) GetMostRecent(ctx context.Context) (*invoice.Invoice, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var row invoice.Invoice
	err = r.db.From(invoicesTable).
		Select("*").
		Eq("user_id", userID).
		Order("created_at", false).
		Limit(1).
		Single().
		Get(ctx, &row)
	if err != nil {
		return nil, mapBackendError(err, "No invoices yet")
	}
	return &row, nil
}

func (r *invoiceRepository) Count(ctx context.Context) (int, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return 0, err
	}

	var rows []struct {
		ID string `json:"id"`
	}
	err = r.db.From(invoicesTable).
		Select("id").
		Eq("user_id", userID).
		Get(ctx, &rows)
	if err != nil {
		return 0, mapBackendError(err, "Failed to count invoices")
	}
	return len(rows), nil
}

func (r *invoiceRepository) DeleteAll(ctx context.Context) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	err = r.db.From(invoicesTable).
		Eq("user_id", userID).
		Delete(ctx)
	return mapBackendError(err, "Failed to delete invoices")
}
