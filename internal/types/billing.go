package types

// Free-tier limits. Guests get a single free invoice, registered users two.
const (
	GuestFreeInvoiceLimit      = 1
	RegisteredFreeInvoiceLimit = 2
)

// StripeWebhookEventType enumerates the inbound Stripe events we act on
type StripeWebhookEventType string

const (
	WebhookEventCheckoutSessionCompleted StripeWebhookEventType = "checkout.session.completed"
	WebhookEventSubscriptionCreated      StripeWebhookEventType = "customer.subscription.created"
	WebhookEventSubscriptionDeleted      StripeWebhookEventType = "customer.subscription.deleted"
	WebhookEventInvoicePaymentSucceeded  StripeWebhookEventType = "invoice.payment_succeeded"
	WebhookEventInvoicePaymentFailed     StripeWebhookEventType = "invoice.payment_failed"
)

// CheckoutMode distinguishes a one-off invoice payment from a subscription
type CheckoutMode string

const (
	CheckoutModePayment      CheckoutMode = "payment"
	CheckoutModeSubscription CheckoutMode = "subscription"
)
