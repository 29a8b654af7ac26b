package profile

import "context"

// Repository is the user-profile data-access contract, user-scoped.
type Repository interface {
	Get(ctx context.Context) (*Profile, error)
	Upsert(ctx context.Context, row *Profile) (*Profile, error)
	Delete(ctx context.Context) error
}
