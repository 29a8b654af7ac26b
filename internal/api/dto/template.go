package dto

import (
	"github.com/stitchesx/stitchesx/internal/domain/template"
	"github.com/stitchesx/stitchesx/internal/validator"
)

// SaveTemplateRequest persists a named template configuration.
type SaveTemplateRequest struct {
	Name         string         `json:"name" validate:"required"`
	Description  string         `json:"description"`
	TemplateData map[string]any `json:"template_data"`
	IsPublic     bool           `json:"is_public"`
}

func (r *SaveTemplateRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *SaveTemplateRequest) ToTemplate() *template.Template {
	return &template.Template{
		Name:         r.Name,
		Description:  r.Description,
		TemplateData: r.TemplateData,
		IsPublic:     r.IsPublic,
	}
}

// ListTemplatesResponse wraps the saved-template collection.
type ListTemplatesResponse struct {
	Items []*template.Template `json:"items"`
	Total int                  `json:"total"`
}
