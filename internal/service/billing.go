package service

import (
	"context"
	"time"

	"github.com/stitchesx/stitchesx/internal/cache"
	"github.com/stitchesx/stitchesx/internal/types"
)

// PaymentStatus is the usage-gate answer for the current caller.
type PaymentStatus struct {
	Guest              bool `json:"guest"`
	InvoicesCreated    int  `json:"invoices_created"`
	FreeLimit          int  `json:"free_limit"`
	Remaining          int  `json:"remaining"`
	SubscriptionActive bool `json:"subscription_active"`
	PaidCurrentInvoice bool `json:"paid_current_invoice"`
	HasAccess          bool `json:"has_access"`
}

// guestUsageTTL bounds how long an anonymous counter is remembered.
const guestUsageTTL = 30 * 24 * time.Hour

// BillingService is the usage gate. Registered users are judged against
// their analytics row; guests against an advisory in-process counter
// keyed by the anonymous client id.
type BillingService interface {
	CheckPaymentStatus(ctx context.Context) (*PaymentStatus, error)

	// IncrementInvoiceCount records one more created invoice for the
	// caller, guest or registered.
	IncrementInvoiceCount(ctx context.Context) (*PaymentStatus, error)

	// MarkInvoicePaid flags that the user paid for their current
	// invoice. Driven by Stripe webhooks, so the user id is explicit.
	MarkInvoicePaid(ctx context.Context, userID string) error

	// MarkSubscriptionActive records subscription state for a user.
	MarkSubscriptionActive(ctx context.Context, userID string, active bool) error

	// ResetPaymentStatus clears the caller's one-off payment flag, used
	// after the paid invoice has been issued.
	ResetPaymentStatus(ctx context.Context) error
}

type billingService struct {
	ServiceParams
	analytics AnalyticsService
}

// NewBillingService creates the billing usage gate.
func NewBillingService(params ServiceParams, analytics AnalyticsService) BillingService {
	return &billingService{ServiceParams: params, analytics: analytics}
}

func (s *billingService) CheckPaymentStatus(ctx context.Context) (*PaymentStatus, error) {
	if !types.IsAuthenticated(ctx) {
		return s.guestStatus(ctx), nil
	}

	row, err := s.analytics.GetUserAnalytics(ctx)
	if err != nil {
		return nil, err
	}

	limit := s.Config.Billing.RegisteredFreeLimit
	remaining := limit - row.InvoicesCreated
	if remaining < 0 {
		remaining = 0
	}

	return &PaymentStatus{
		Guest:              false,
		InvoicesCreated:    row.InvoicesCreated,
		FreeLimit:          limit,
		Remaining:          remaining,
		SubscriptionActive: row.SubscriptionActive,
		PaidCurrentInvoice: row.PaidCurrentInvoice,
		HasAccess:          row.SubscriptionActive || row.PaidCurrentInvoice || remaining > 0,
	}, nil
}

func (s *billingService) IncrementInvoiceCount(ctx context.Context) (*PaymentStatus, error) {
	if !types.IsAuthenticated(ctx) {
		count := s.guestCount(ctx) + 1
		if key := s.guestKey(ctx); key != "" {
			s.Cache.Set(ctx, key, count, guestUsageTTL)
		}
		return s.guestStatus(ctx), nil
	}

	if _, err := s.analytics.IncrementInvoicesCreated(ctx); err != nil {
		return nil, err
	}
	return s.CheckPaymentStatus(ctx)
}

func (s *billingService) MarkInvoicePaid(ctx context.Context, userID string) error {
	ctx = types.SetUserID(ctx, userID)
	_, err := s.mutateAnalytics(ctx, func(paid *bool, subscribed *bool) {
		*paid = true
	})
	if err == nil {
		s.Logger.Infow("marked current invoice paid", "user_id", userID)
	}
	return err
}

func (s *billingService) MarkSubscriptionActive(ctx context.Context, userID string, active bool) error {
	ctx = types.SetUserID(ctx, userID)
	_, err := s.mutateAnalytics(ctx, func(paid *bool, subscribed *bool) {
		*subscribed = active
	})
	if err == nil {
		s.Logger.Infow("updated subscription state", "user_id", userID, "active", active)
	}
	return err
}

func (s *billingService) ResetPaymentStatus(ctx context.Context) error {
	if !types.IsAuthenticated(ctx) {
		return authRequired("reset payment status")
	}
	_, err := s.mutateAnalytics(ctx, func(paid *bool, subscribed *bool) {
		*paid = false
	})
	return err
}

func (s *billingService) mutateAnalytics(ctx context.Context, fn func(paid *bool, subscribed *bool)) (*PaymentStatus, error) {
	row, err := s.analytics.GetUserAnalytics(ctx)
	if err != nil {
		return nil, err
	}

	fn(&row.PaidCurrentInvoice, &row.SubscriptionActive)
	now := time.Now().UTC()
	row.LastActiveAt = now
	row.UpdatedAt = now

	if _, err := s.AnalyticsRepo.Upsert(ctx, row); err != nil {
		return nil, err
	}
	return s.CheckPaymentStatus(ctx)
}

// guestKey builds the cache key for the caller's anonymous counter.
// Empty when the client sent no id; such callers are not tracked.
func (s *billingService) guestKey(ctx context.Context) string {
	clientID := types.GetClientID(ctx)
	if clientID == "" {
		return ""
	}
	return cache.PrefixGuestUsage + clientID
}

func (s *billingService) guestCount(ctx context.Context) int {
	key := s.guestKey(ctx)
	if key == "" {
		return 0
	}
	if v, ok := s.Cache.Get(ctx, key); ok {
		if count, ok := v.(int); ok {
			return count
		}
	}
	return 0
}

func (s *billingService) guestStatus(ctx context.Context) *PaymentStatus {
	count := s.guestCount(ctx)
	limit := s.Config.Billing.GuestFreeLimit
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &PaymentStatus{
		Guest:           true,
		InvoicesCreated: count,
		FreeLimit:       limit,
		Remaining:       remaining,
		HasAccess:       remaining > 0,
	}
}
