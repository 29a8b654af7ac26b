package invoice

import "context"

// Repository is the invoice data-access contract. All operations are
// scoped to the authenticated user carried in the context.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) (*Invoice, error)
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context) ([]*Invoice, error)
	Update(ctx context.Context, inv *Invoice) (*Invoice, error)
	Delete(ctx context.Context, id string) error

	// GetMostRecent returns the user's latest invoice by creation time.
	GetMostRecent(ctx context.Context) (*Invoice, error)
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every invoice owned by the user. Used by account
	// deletion.
	DeleteAll(ctx context.Context) error
}
