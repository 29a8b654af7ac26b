package analytics

import "context"

// Repository is the analytics data-access contract, user-scoped.
type Repository interface {
	Get(ctx context.Context) (*Analytics, error)
	Upsert(ctx context.Context, row *Analytics) (*Analytics, error)
	Delete(ctx context.Context) error
}
