package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchesx/stitchesx/internal/api"
	v1 "github.com/stitchesx/stitchesx/internal/api/v1"
	"github.com/stitchesx/stitchesx/internal/auth"
	"github.com/stitchesx/stitchesx/internal/cache"
	"github.com/stitchesx/stitchesx/internal/config"
	"github.com/stitchesx/stitchesx/internal/domain/analytics"
	"github.com/stitchesx/stitchesx/internal/domain/invoice"
	"github.com/stitchesx/stitchesx/internal/domain/profile"
	"github.com/stitchesx/stitchesx/internal/domain/settings"
	"github.com/stitchesx/stitchesx/internal/domain/template"
	"github.com/stitchesx/stitchesx/internal/editor"
	"github.com/stitchesx/stitchesx/internal/email"
	"github.com/stitchesx/stitchesx/internal/httpclient"
	stripeintegration "github.com/stitchesx/stitchesx/internal/integration/stripe"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/pdf"
	"github.com/stitchesx/stitchesx/internal/repository"
	"github.com/stitchesx/stitchesx/internal/sentry"
	"github.com/stitchesx/stitchesx/internal/service"
	"github.com/stitchesx/stitchesx/internal/supabase"
	"github.com/stitchesx/stitchesx/internal/types"
	"github.com/stitchesx/stitchesx/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			cache.NewInMemoryCache,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Backend clients
			supabase.NewClient,
			auth.NewSupabaseAuth,
			stripeintegration.NewClient,
			email.NewClient,
			email.NewEmail,

			// PDF
			pdf.NewGenerator,

			// Editor sessions
			editor.NewStore,

			// Repositories
			repository.NewInvoiceRepository,
			repository.NewTemplateRepository,
			repository.NewAnalyticsRepository,
			repository.NewSettingsRepository,
			repository.NewProfileRepository,

			// Services
			provideServiceParams,
			service.NewInvoiceService,
			service.NewTemplateService,
			service.NewAnalyticsService,
			service.NewBillingService,
			service.NewPaymentService,
			service.NewAccountService,
			service.NewContactService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

// serviceDeps collects everything ServiceParams needs via fx injection.
type serviceDeps struct {
	fx.In

	Config       *config.Configuration
	Logger       *logger.Logger
	Cache        cache.Cache
	PDFGenerator pdf.Generator
	EmailSender  email.Sender
	StripeClient *stripeintegration.Client
	AuthProvider auth.Provider

	InvoiceRepo   invoice.Repository
	TemplateRepo  template.Repository
	AnalyticsRepo analytics.Repository
	SettingsRepo  settings.Repository
	ProfileRepo   profile.Repository
}

func provideServiceParams(deps serviceDeps) service.ServiceParams {
	return service.ServiceParams{
		Logger:        deps.Logger,
		Config:        deps.Config,
		Cache:         deps.Cache,
		PDFGenerator:  deps.PDFGenerator,
		EmailSender:   deps.EmailSender,
		StripeClient:  deps.StripeClient,
		AuthProvider:  deps.AuthProvider,
		InvoiceRepo:   deps.InvoiceRepo,
		TemplateRepo:  deps.TemplateRepo,
		AnalyticsRepo: deps.AnalyticsRepo,
		SettingsRepo:  deps.SettingsRepo,
		ProfileRepo:   deps.ProfileRepo,
	}
}

func provideHandlers(
	log *logger.Logger,
	authProvider auth.Provider,
	editorStore *editor.Store,
	pdfGenerator pdf.Generator,
	invoiceService service.InvoiceService,
	templateService service.TemplateService,
	analyticsService service.AnalyticsService,
	billingService service.BillingService,
	paymentService service.PaymentService,
	accountService service.AccountService,
	contactService service.ContactService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(log),
		Auth:     v1.NewAuthHandler(authProvider, log),
		Invoice:  v1.NewInvoiceHandler(invoiceService, log),
		Template: v1.NewTemplateHandler(templateService, log),
		Editor:   v1.NewEditorHandler(editorStore, pdfGenerator, billingService, log),
		Billing:  v1.NewBillingHandler(billingService, paymentService, analyticsService, log),
		Webhook:  v1.NewWebhookHandler(paymentService, log),
		Contact:  v1.NewContactHandler(contactService, log),
		Account:  v1.NewAccountHandler(accountService, log),
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	provider auth.Provider,
	log *logger.Logger,
) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeAPI {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, provider, log)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
