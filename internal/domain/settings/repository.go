package settings

import "context"

// Repository is the user-settings data-access contract, user-scoped.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, row *Settings) (*Settings, error)
	Delete(ctx context.Context) error
}
