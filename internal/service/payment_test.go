package service

import (
	"encoding/json"
	"fmt"
	"testing"

	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/testutil"
	"github.com/stitchesx/stitchesx/internal/types"
	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	billing BillingService
	service PaymentService
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		Cache:         s.GetCache(),
		EmailSender:   s.GetEmailRecorder(),
		InvoiceRepo:   s.GetStores().InvoiceRepo,
		TemplateRepo:  s.GetStores().TemplateRepo,
		AnalyticsRepo: s.GetStores().AnalyticsRepo,
		SettingsRepo:  s.GetStores().SettingsRepo,
		ProfileRepo:   s.GetStores().ProfileRepo,
	}
	s.billing = NewBillingService(params, NewAnalyticsService(params))
	s.service = NewPaymentService(params, s.billing)
}

func webhookEvent(eventType string, raw string) *stripeapi.Event {
	return &stripeapi.Event{
		ID:   "evt_test",
		Type: stripeapi.EventType(eventType),
		Data: &stripeapi.EventData{Raw: json.RawMessage(raw)},
	}
}

func (s *PaymentServiceSuite) TestCheckoutCompletedPaymentModeMarksInvoicePaid() {
	raw := fmt.Sprintf(`{"id":"cs_test","mode":"payment","metadata":{"user_id":%q}}`, testutil.TestUserID)
	err := s.service.ProcessWebhookEvent(s.GetContext(), webhookEvent(string(types.WebhookEventCheckoutSessionCompleted), raw))
	s.Require().NoError(err)

	status, err := s.billing.CheckPaymentStatus(s.GetContext())
	s.Require().NoError(err)
	s.True(status.PaidCurrentInvoice)
	s.False(status.SubscriptionActive)
}

func (s *PaymentServiceSuite) TestCheckoutCompletedSubscriptionModeActivatesSubscription() {
	raw := fmt.Sprintf(`{"id":"cs_test","mode":"subscription","metadata":{"user_id":%q}}`, testutil.TestUserID)
	err := s.service.ProcessWebhookEvent(s.GetContext(), webhookEvent(string(types.WebhookEventCheckoutSessionCompleted), raw))
	s.Require().NoError(err)

	status, err := s.billing.CheckPaymentStatus(s.GetContext())
	s.Require().NoError(err)
	s.True(status.SubscriptionActive)
	s.False(status.PaidCurrentInvoice)
}

func (s *PaymentServiceSuite) TestSubscriptionDeletedDeactivates() {
	s.Require().NoError(s.billing.MarkSubscriptionActive(s.GetContext(), testutil.TestUserID, true))

	raw := fmt.Sprintf(`{"id":"sub_test","metadata":{"user_id":%q}}`, testutil.TestUserID)
	err := s.service.ProcessWebhookEvent(s.GetContext(), webhookEvent(string(types.WebhookEventSubscriptionDeleted), raw))
	s.Require().NoError(err)

	status, err := s.billing.CheckPaymentStatus(s.GetContext())
	s.Require().NoError(err)
	s.False(status.SubscriptionActive)
}

func (s *PaymentServiceSuite) TestInvoicePaymentFailedLeavesStateUntouched() {
	raw := fmt.Sprintf(`{"id":"in_test","metadata":{"user_id":%q}}`, testutil.TestUserID)
	err := s.service.ProcessWebhookEvent(s.GetContext(), webhookEvent(string(types.WebhookEventInvoicePaymentFailed), raw))
	s.Require().NoError(err)

	status, err := s.billing.CheckPaymentStatus(s.GetContext())
	s.Require().NoError(err)
	s.False(status.PaidCurrentInvoice)
}

func (s *PaymentServiceSuite) TestMissingUserMetadataIsAcknowledged() {
	err := s.service.ProcessWebhookEvent(s.GetContext(), webhookEvent(string(types.WebhookEventCheckoutSessionCompleted), `{"id":"cs_test","mode":"payment"}`))
	s.Require().NoError(err)

	status, err := s.billing.CheckPaymentStatus(s.GetContext())
	s.Require().NoError(err)
	s.False(status.PaidCurrentInvoice)
}

func (s *PaymentServiceSuite) TestUnhandledEventTypeIsAcknowledged() {
	err := s.service.ProcessWebhookEvent(s.GetContext(), webhookEvent("charge.refunded", `{}`))
	s.Require().NoError(err)
}

func (s *PaymentServiceSuite) TestMalformedPayloadIsRejected() {
	err := s.service.ProcessWebhookEvent(s.GetContext(), webhookEvent(string(types.WebhookEventCheckoutSessionCompleted), `{`))
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestCheckoutRequiresAuthentication() {
	_, err := s.service.CreateCheckoutSession(testutil.SetupGuestContext("client-abc"), &CheckoutRequest{
		Mode: types.CheckoutModePayment,
	})
	s.Require().Error(err)
	s.True(ierr.IsAuthentication(err))
}

func (s *PaymentServiceSuite) TestCheckoutRejectsUnknownMode() {
	_, err := s.service.CreateCheckoutSession(s.GetContext(), &CheckoutRequest{
		Mode: types.CheckoutMode("trial"),
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}
