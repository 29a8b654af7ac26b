package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/stitchesx/stitchesx/internal/api/v1"
	"github.com/stitchesx/stitchesx/internal/auth"
	"github.com/stitchesx/stitchesx/internal/config"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Auth     *v1.AuthHandler
	Invoice  *v1.InvoiceHandler
	Template *v1.TemplateHandler
	Editor   *v1.EditorHandler
	Billing  *v1.BillingHandler
	Webhook  *v1.WebhookHandler
	Contact  *v1.ContactHandler
	Account  *v1.AccountHandler
}

func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	provider auth.Provider,
	logger *logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers, provider, logger)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, provider auth.Provider, logger *logger.Logger) {
	// Public routes
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", handlers.Auth.SignUp)
		authGroup.POST("/login", handlers.Auth.Login)
	}

	router.POST("/webhooks/stripe", handlers.Webhook.HandleStripeWebhook)
	router.POST("/contact", handlers.Contact.SubmitContactForm)
	router.POST("/feedback", handlers.Contact.SubmitFeedback)

	// The usage gate serves guests too; auth is resolved when present
	billing := router.Group("/billing", middleware.OptionalAuthMiddleware(provider, logger))
	{
		billing.GET("/status", handlers.Billing.GetPaymentStatus)
		billing.POST("/invoices/increment", handlers.Billing.IncrementInvoiceCount)
	}

	// Authenticated routes
	private := router.Group("", middleware.AuthenticateMiddleware(provider, logger))

	invoices := private.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/next-number", handlers.Invoice.GetNextInvoiceNumber)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
		invoices.GET("/:id/pdf", handlers.Invoice.DownloadInvoicePDF)
		invoices.POST("/:id/send", handlers.Invoice.SendInvoice)
	}

	templates := private.Group("/templates")
	{
		templates.POST("", handlers.Template.SaveTemplate)
		templates.GET("", handlers.Template.ListTemplates)
		templates.GET("/default", handlers.Template.GetDefaultTemplate)
		templates.GET("/:id", handlers.Template.GetTemplate)
		templates.PUT("/:id", handlers.Template.UpdateTemplate)
		templates.DELETE("/:id", handlers.Template.DeleteTemplate)
		templates.POST("/:id/default", handlers.Template.SetDefaultTemplate)
	}

	editor := private.Group("/editor")
	{
		editor.GET("/state", handlers.Editor.GetState)
		editor.PATCH("/state", handlers.Editor.UpdateState)
		editor.GET("/template", handlers.Editor.GetActiveTemplate)
		editor.PUT("/template/:templateId", handlers.Editor.SetActiveTemplate)
		editor.POST("/elements/:element/toggle", handlers.Editor.ToggleElement)
		editor.POST("/fields", handlers.Editor.AddCustomField)
		editor.PATCH("/fields/:fieldId", handlers.Editor.UpdateCustomField)
		editor.DELETE("/fields/:fieldId", handlers.Editor.RemoveCustomField)
		editor.POST("/items", handlers.Editor.AddInvoiceItem)
		editor.PATCH("/items/:itemId", handlers.Editor.UpdateInvoiceItem)
		editor.DELETE("/items/:itemId", handlers.Editor.RemoveInvoiceItem)
		editor.POST("/totals/calculate", handlers.Editor.CalculateTotals)
		editor.GET("/pdf", handlers.Editor.DownloadPDF)
	}

	billingPrivate := private.Group("/billing")
	{
		billingPrivate.POST("/checkout", handlers.Billing.CreateCheckoutSession)
		billingPrivate.POST("/reset", handlers.Billing.ResetPaymentStatus)
		billingPrivate.GET("/analytics", handlers.Billing.GetUserAnalytics)
	}

	account := private.Group("/account")
	{
		account.GET("/export", handlers.Account.ExportData)
		account.DELETE("", handlers.Account.DeleteAccount)
	}
}
