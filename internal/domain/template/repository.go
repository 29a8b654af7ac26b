package template

import "context"

// Repository is the saved-template data-access contract, user-scoped.
// Invariant: at most one is_default=true row per user.
type Repository interface {
	Create(ctx context.Context, tmpl *Template) (*Template, error)
	Get(ctx context.Context, id string) (*Template, error)
	List(ctx context.Context) ([]*Template, error)
	Update(ctx context.Context, tmpl *Template) (*Template, error)
	Delete(ctx context.Context, id string) error

	// GetDefault returns the user's default template, or a not-found
	// error when none is set.
	GetDefault(ctx context.Context) (*Template, error)

	// SetDefault atomically clears any existing default and marks the
	// given template as the user's default.
	SetDefault(ctx context.Context, id string) error

	DeleteAll(ctx context.Context) error
}
