package stripe

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stitchesx/stitchesx/internal/config"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/types"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Client wraps the Stripe SDK with the service configuration.
type Client struct {
	cfg    *config.Configuration
	logger *logger.Logger
}

// NewClient creates a new Stripe client
func NewClient(cfg *config.Configuration, logger *logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// IsConfigured reports whether a secret key is present. Checkout and
// webhook processing are unavailable without one.
func (c *Client) IsConfigured() bool {
	return c.cfg.Stripe.SecretKey != ""
}

func (c *Client) stripeClient() *stripe.Client {
	return stripe.NewClient(c.cfg.Stripe.SecretKey, nil)
}

// CheckoutSessionRequest describes a hosted checkout to create.
type CheckoutSessionRequest struct {
	Mode          types.CheckoutMode
	ProductName   string
	Amount        decimal.Decimal
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutSessionResponse carries the redirect target for the client.
type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreateCheckoutSession creates a hosted Stripe checkout session.
func (c *Client) CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSessionResponse, error) {
	if !c.IsConfigured() {
		return nil, ierr.NewError("stripe is not configured").
			WithHint("Payments are not available").
			Mark(ierr.ErrSystem)
	}

	currency := req.Currency
	if currency == "" {
		currency = types.DefaultCurrency
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = c.cfg.Stripe.SuccessURL
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = c.cfg.Stripe.CancelURL
	}

	// Stripe wants the amount in the currency's minor unit
	amountMinor := req.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	lineItems := []*stripe.CheckoutSessionCreateLineItemParams{
		{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name: stripe.String(req.ProductName),
				},
				UnitAmount: stripe.Int64(amountMinor),
			},
			Quantity: stripe.Int64(1),
		},
	}

	params := &stripe.CheckoutSessionCreateParams{
		LineItems:  lineItems,
		Mode:       stripe.String(string(req.Mode)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Metadata:   req.Metadata,
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	session, err := c.stripeClient().V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		c.logger.Errorw("failed to create Stripe checkout session",
			"error", err,
			"mode", req.Mode,
		)
		return nil, ierr.NewError("failed to create checkout session").
			WithHint("Unable to create Stripe checkout session").
			WithReportableDetails(map[string]interface{}{
				"mode":  string(req.Mode),
				"error": err.Error(),
			}).
			Mark(ierr.ErrSystem)
	}

	c.logger.Infow("created stripe checkout session",
		"session_id", session.ID,
		"mode", req.Mode,
	)

	return &CheckoutSessionResponse{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// ParseWebhookEvent parses a Stripe webhook event with signature verification
func (c *Client) ParseWebhookEvent(payload []byte, signature string) (*stripe.Event, error) {
	// Verify the webhook signature, ignoring API version mismatch
	options := webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.cfg.Stripe.WebhookSecret, options)
	if err != nil {
		c.logger.Errorw("Stripe webhook verification failed", "error", err)
		return nil, ierr.NewError("failed to verify webhook signature").
			WithHint("Invalid webhook signature or payload").
			Mark(ierr.ErrValidation)
	}
	return &event, nil
}
