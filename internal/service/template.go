package service

import (
	"context"

	"github.com/stitchesx/stitchesx/internal/domain/template"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/types"
)

// TemplateService manages saved template configurations.
type TemplateService interface {
	SaveTemplate(ctx context.Context, tmpl *template.Template) (*template.Template, error)
	GetTemplate(ctx context.Context, id string) (*template.Template, error)
	ListTemplates(ctx context.Context) ([]*template.Template, error)
	UpdateTemplate(ctx context.Context, tmpl *template.Template) (*template.Template, error)
	DeleteTemplate(ctx context.Context, id string) error

	// SetDefaultTemplate marks one saved template as the user's default,
	// clearing any previous default in the same operation.
	SetDefaultTemplate(ctx context.Context, id string) error

	// GetDefaultTemplate returns the user's default template, or nil
	// when none is set.
	GetDefaultTemplate(ctx context.Context) (*template.Template, error)
}

type templateService struct {
	ServiceParams
}

// NewTemplateService creates the template service.
func NewTemplateService(params ServiceParams) TemplateService {
	return &templateService{ServiceParams: params}
}

func (s *templateService) SaveTemplate(ctx context.Context, tmpl *template.Template) (*template.Template, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("save a template")
	}
	if tmpl.Name == "" {
		return nil, ierr.NewError("template name is required").
			WithHint("Give the template a name").
			Mark(ierr.ErrValidation)
	}

	created, err := s.TemplateRepo.Create(ctx, tmpl)
	if err != nil {
		return nil, err
	}
	s.Logger.Infow("template saved", "template_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *templateService) GetTemplate(ctx context.Context, id string) (*template.Template, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("view a template")
	}
	return s.TemplateRepo.Get(ctx, id)
}

func (s *templateService) ListTemplates(ctx context.Context) ([]*template.Template, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("list templates")
	}
	return s.TemplateRepo.List(ctx)
}

func (s *templateService) UpdateTemplate(ctx context.Context, tmpl *template.Template) (*template.Template, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("update a template")
	}
	return s.TemplateRepo.Update(ctx, tmpl)
}

func (s *templateService) DeleteTemplate(ctx context.Context, id string) error {
	if !types.IsAuthenticated(ctx) {
		return authRequired("delete a template")
	}
	return s.TemplateRepo.Delete(ctx, id)
}

func (s *templateService) SetDefaultTemplate(ctx context.Context, id string) error {
	if !types.IsAuthenticated(ctx) {
		return authRequired("set a default template")
	}

	// Confirm the template exists and belongs to the user before
	// touching the default flag.
	if _, err := s.TemplateRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.TemplateRepo.SetDefault(ctx, id)
}

func (s *templateService) GetDefaultTemplate(ctx context.Context) (*template.Template, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("view the default template")
	}

	tmpl, err := s.TemplateRepo.GetDefault(ctx)
	if err != nil {
		// No default set is a normal state, not a failure
		if ierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return tmpl, nil
}
