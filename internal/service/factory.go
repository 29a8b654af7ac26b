package service

import (
	"github.com/stitchesx/stitchesx/internal/auth"
	"github.com/stitchesx/stitchesx/internal/cache"
	"github.com/stitchesx/stitchesx/internal/config"
	"github.com/stitchesx/stitchesx/internal/domain/analytics"
	"github.com/stitchesx/stitchesx/internal/domain/invoice"
	"github.com/stitchesx/stitchesx/internal/domain/profile"
	"github.com/stitchesx/stitchesx/internal/domain/settings"
	"github.com/stitchesx/stitchesx/internal/domain/template"
	"github.com/stitchesx/stitchesx/internal/email"
	"github.com/stitchesx/stitchesx/internal/integration/stripe"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/pdf"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	Cache        cache.Cache
	PDFGenerator pdf.Generator
	EmailSender  email.Sender
	StripeClient *stripe.Client
	AuthProvider auth.Provider

	// Repositories
	InvoiceRepo   invoice.Repository
	TemplateRepo  template.Repository
	AnalyticsRepo analytics.Repository
	SettingsRepo  settings.Repository
	ProfileRepo   profile.Repository
}
