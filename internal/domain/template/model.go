package template

import "time"

// Template is a saved named configuration. TemplateData is opaque to the
// service; the editor interprets it.
type Template struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	TemplateData map[string]any `json:"template_data"`
	IsDefault    bool           `json:"is_default"`
	IsPublic     bool           `json:"is_public"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
