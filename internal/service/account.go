package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/analytics"
	"github.com/stitchesx/stitchesx/internal/domain/invoice"
	"github.com/stitchesx/stitchesx/internal/domain/profile"
	"github.com/stitchesx/stitchesx/internal/domain/settings"
	"github.com/stitchesx/stitchesx/internal/domain/template"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/types"
)

// DataExport is the full bundle of a user's stored data.
type DataExport struct {
	ExportedAt time.Time              `json:"exported_at"`
	UserID     string                 `json:"user_id"`
	Invoices   []*invoice.Invoice     `json:"invoices"`
	Templates  []*template.Template   `json:"templates"`
	Analytics  *analytics.Analytics   `json:"analytics,omitempty"`
	Settings   *settings.Settings     `json:"settings,omitempty"`
	Profile    *profile.Profile       `json:"profile,omitempty"`
}

// DeletionResult reports the outcome of account deletion per table.
// Deletion is not transactional; a partially deleted account is reported
// as such and the caller may retry.
type DeletionResult struct {
	Results  map[string]bool `json:"results"`
	Complete bool            `json:"complete"`
}

// AccountService handles user-data export and account deletion.
type AccountService interface {
	// ExportUserData gathers everything stored for the user, plus the
	// download filename.
	ExportUserData(ctx context.Context) (*DataExport, string, error)

	// DeleteAccount removes the user's rows table by table, then the
	// auth account itself. Partial failures are reported per table.
	DeleteAccount(ctx context.Context) (*DeletionResult, error)
}

type accountService struct {
	ServiceParams
}

// NewAccountService creates the account service.
func NewAccountService(params ServiceParams) AccountService {
	return &accountService{ServiceParams: params}
}

// ExportFileName returns the download name for a data export.
func ExportFileName(at time.Time) string {
	return fmt.Sprintf("stitches-x-data-export-%s.json", at.Format("2006-01-02"))
}

func (s *accountService) ExportUserData(ctx context.Context) (*DataExport, string, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, "", authRequired("export your data")
	}

	export := &DataExport{
		ExportedAt: time.Now().UTC(),
		UserID:     types.GetUserID(ctx),
		Invoices:   []*invoice.Invoice{},
		Templates:  []*template.Template{},
	}

	invoices, err := s.InvoiceRepo.List(ctx)
	if err != nil {
		return nil, "", err
	}
	export.Invoices = invoices

	templates, err := s.TemplateRepo.List(ctx)
	if err != nil {
		return nil, "", err
	}
	export.Templates = templates

	// Single-row tables may legitimately be empty
	if row, err := s.AnalyticsRepo.Get(ctx); err == nil {
		export.Analytics = row
	} else if !ierr.IsNotFound(err) {
		return nil, "", err
	}
	if row, err := s.SettingsRepo.Get(ctx); err == nil {
		export.Settings = row
	} else if !ierr.IsNotFound(err) {
		return nil, "", err
	}
	if row, err := s.ProfileRepo.Get(ctx); err == nil {
		export.Profile = row
	} else if !ierr.IsNotFound(err) {
		return nil, "", err
	}

	return export, ExportFileName(export.ExportedAt), nil
}

func (s *accountService) DeleteAccount(ctx context.Context) (*DeletionResult, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("delete your account")
	}
	userID := types.GetUserID(ctx)

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"invoices", s.InvoiceRepo.DeleteAll},
		{"invoice_templates", s.TemplateRepo.DeleteAll},
		{"user_analytics", s.AnalyticsRepo.Delete},
		{"user_settings", s.SettingsRepo.Delete},
		{"user_profiles", s.ProfileRepo.Delete},
	}

	result := &DeletionResult{
		Results:  make(map[string]bool, len(steps)+1),
		Complete: true,
	}

	for _, step := range steps {
		err := step.fn(ctx)
		// A missing row is already the desired end state
		if err != nil && !ierr.IsNotFound(err) {
			s.Logger.Errorw("account deletion step failed",
				"error", err,
				"table", step.name,
				"user_id", userID,
			)
			result.Results[step.name] = false
			result.Complete = false
			continue
		}
		result.Results[step.name] = true
	}

	// Remove the auth account only after the data tables, so a retry
	// can still authenticate.
	if result.Complete {
		if err := s.AuthProvider.DeleteAccount(ctx, userID); err != nil {
			s.Logger.Errorw("failed to delete auth account",
				"error", err,
				"user_id", userID,
			)
			result.Results["auth_account"] = false
			result.Complete = false
		} else {
			result.Results["auth_account"] = true
		}
	} else {
		result.Results["auth_account"] = false
	}

	s.Logger.Infow("account deletion finished",
		"user_id", userID,
		"complete", result.Complete,
	)
	return result, nil
}
