package service

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/integration/stripe"
	"github.com/stitchesx/stitchesx/internal/types"
	stripeapi "github.com/stripe/stripe-go/v82"
)

// CheckoutRequest asks for a hosted checkout session.
type CheckoutRequest struct {
	Mode   types.CheckoutMode `json:"mode" validate:"required"`
	Amount decimal.Decimal    `json:"amount"`
}

// PaymentService creates checkout sessions and processes Stripe webhook
// events into billing state.
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*stripe.CheckoutSessionResponse, error)

	// ParseWebhookEvent verifies the payload signature and decodes it.
	ParseWebhookEvent(payload []byte, signature string) (*stripeapi.Event, error)

	// ProcessWebhookEvent dispatches one verified event. Unhandled event
	// types are logged and acknowledged. Duplicate event ids are not
	// deduplicated.
	ProcessWebhookEvent(ctx context.Context, event *stripeapi.Event) error
}

type paymentService struct {
	ServiceParams
	billing BillingService
}

// NewPaymentService creates the payment service.
func NewPaymentService(params ServiceParams, billing BillingService) PaymentService {
	return &paymentService{ServiceParams: params, billing: billing}
}

func (s *paymentService) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*stripe.CheckoutSessionResponse, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("start a checkout")
	}

	switch req.Mode {
	case types.CheckoutModePayment, types.CheckoutModeSubscription:
	default:
		return nil, ierr.NewError("invalid checkout mode").
			WithHint("Checkout mode must be payment or subscription").
			Mark(ierr.ErrValidation)
	}

	productName := "Stitches X invoice credit"
	if req.Mode == types.CheckoutModeSubscription {
		productName = "Stitches X Pro subscription"
	}

	return s.StripeClient.CreateCheckoutSession(ctx, &stripe.CheckoutSessionRequest{
		Mode:          req.Mode,
		ProductName:   productName,
		Amount:        req.Amount,
		Currency:      types.DefaultCurrency,
		CustomerEmail: types.GetUserEmail(ctx),
		Metadata: map[string]string{
			"user_id": types.GetUserID(ctx),
		},
	})
}

func (s *paymentService) ParseWebhookEvent(payload []byte, signature string) (*stripeapi.Event, error) {
	return s.StripeClient.ParseWebhookEvent(payload, signature)
}

func (s *paymentService) ProcessWebhookEvent(ctx context.Context, event *stripeapi.Event) error {
	s.Logger.Infow("processing Stripe webhook event",
		"event_id", event.ID,
		"event_type", event.Type,
	)

	switch string(event.Type) {
	case string(types.WebhookEventCheckoutSessionCompleted):
		return s.handleCheckoutSessionCompleted(ctx, event)
	case string(types.WebhookEventSubscriptionCreated):
		return s.handleSubscriptionChanged(ctx, event, true)
	case string(types.WebhookEventSubscriptionDeleted):
		return s.handleSubscriptionChanged(ctx, event, false)
	case string(types.WebhookEventInvoicePaymentSucceeded):
		return s.handleInvoicePayment(ctx, event, true)
	case string(types.WebhookEventInvoicePaymentFailed):
		return s.handleInvoicePayment(ctx, event, false)
	default:
		s.Logger.Infow("unhandled Stripe webhook event type", "type", event.Type)
		return nil // Not an error, just unhandled
	}
}

func (s *paymentService) handleCheckoutSessionCompleted(ctx context.Context, event *stripeapi.Event) error {
	var session stripeapi.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return parseFailure(err, "checkout session")
	}

	userID := session.Metadata["user_id"]
	if userID == "" {
		s.Logger.Warnw("checkout session completed without user metadata",
			"event_id", event.ID,
			"session_id", session.ID,
		)
		return nil
	}

	if session.Mode == stripeapi.CheckoutSessionModeSubscription {
		return s.billing.MarkSubscriptionActive(ctx, userID, true)
	}
	return s.billing.MarkInvoicePaid(ctx, userID)
}

func (s *paymentService) handleSubscriptionChanged(ctx context.Context, event *stripeapi.Event, active bool) error {
	var sub stripeapi.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return parseFailure(err, "subscription")
	}

	userID := sub.Metadata["user_id"]
	if userID == "" {
		s.Logger.Warnw("subscription event without user metadata",
			"event_id", event.ID,
			"subscription_id", sub.ID,
		)
		return nil
	}
	return s.billing.MarkSubscriptionActive(ctx, userID, active)
}

func (s *paymentService) handleInvoicePayment(ctx context.Context, event *stripeapi.Event, succeeded bool) error {
	var stripeInvoice stripeapi.Invoice
	if err := json.Unmarshal(event.Data.Raw, &stripeInvoice); err != nil {
		return parseFailure(err, "invoice")
	}

	userID := stripeInvoice.Metadata["user_id"]
	if userID == "" {
		s.Logger.Warnw("invoice payment event without user metadata",
			"event_id", event.ID,
			"stripe_invoice_id", stripeInvoice.ID,
		)
		return nil
	}

	if !succeeded {
		s.Logger.Warnw("invoice payment failed",
			"event_id", event.ID,
			"user_id", userID,
		)
		return nil
	}
	return s.billing.MarkInvoicePaid(ctx, userID)
}

func parseFailure(err error, what string) error {
	return ierr.WithError(err).
		WithHintf("Invalid %s data in webhook", what).
		Mark(ierr.ErrValidation)
}
