package repository

import (
	"context"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/template"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/supabase"
	"github.com/stitchesx/stitchesx/internal/types"
)

const templatesTable = "invoice_templates"

type templateRepository struct {
	db     *supabase.Client
	logger *logger.Logger
}

// NewTemplateRepository creates the PostgREST-backed template repository.
func NewTemplateRepository(db *supabase.Client, logger *logger.Logger) template.Repository {
	return &templateRepository{db: db, logger: logger}
}

func (r *templateRepository) Create(ctx context.Context, tmpl *template.Template) (*template.Template, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tmpl.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TEMPLATE)
	tmpl.UserID = userID
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now

	var created template.Template
	if err := r.db.From(templatesTable).Single().Insert(ctx, tmpl, &created); err != nil {
		return nil, mapBackendError(err, "Failed to save template")
	}
	return &created, nil
}

func (r *templateRepository) Get(ctx context.Context, id string) (*template.Template, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var row template.Template
	err = r.db.From(templatesTable).
		Select("*").
		Eq("id", id).
		Eq("user_id", userID).
		Single().
		Get(ctx, &row)
	if err != nil {
		return nil, mapBackendError(err, "Template not found")
	}
	return &row, nil
}

func (r *templateRepository) List(ctx context.Context) ([]*template.Template, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var rows []*template.Template
	err = r.db.From(templatesTable).
		Select("*").
		Eq("user_id", userID).
		Order("created_at", false).
		Get(ctx, &rows)
	if err != nil {
		return nil, mapBackendError(err, "Failed to list templates")
	}
	return rows, nil
}

func (r *templateRepository) Update(ctx context.Context, tmpl *template.Template) (*template.Template, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	tmpl.UpdatedAt = time.Now().UTC()

	var updated template.Template
	err = r.db.From(templatesTable).
		Eq("id", tmpl.ID).
		Eq("user_id", userID).
		Single().
		Update(ctx, tmpl, &updated)
	if err != nil {
		return nil, mapBackendError(err, "Failed to update template")
	}
	return &updated, nil
}

func (r *templateRepository) Delete(ctx context.Context, id string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	err = r.db.From(templatesTable).
		Eq("id", id).
		Eq("user_id", userID).
		Delete(ctx)
	return mapBackendError(err, "Failed to delete template")
}

func (r *templateRepository) GetDefault(ctx context.Context) (*template.Template, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var row template.Template
	err = r.db.From(templatesTable).
		Select("*").
		Eq("user_id", userID).
		Eq("is_default", true).
		Single().
		Get(ctx, &row)
	if err != nil {
		return nil, mapBackendError(err, "No default template set")
	}
	return &row, nil
}

// SetDefault delegates to a Postgres function so clearing the previous
// default and setting the new one happen in one transaction. The
// two-step unset-then-set variant could strand a user with no default.
func (r *templateRepository) SetDefault(ctx context.Context, id string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	err = r.db.RPC(ctx, "set_default_template", map[string]any{
		"p_user_id":     userID,
		"p_template_id": id,
	})
	return mapBackendError(err, "Failed to set default template")
}

func (r *templateRepository) DeleteAll(ctx context.Context) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	err = r.db.From(templatesTable).
		Eq("user_id", userID).
		Delete(ctx)
	return mapBackendError(err, "Failed to delete templates")
}
