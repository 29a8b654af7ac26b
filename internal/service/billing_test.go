package service

import (
	"testing"

	"github.com/stitchesx/stitchesx/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BillingService
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
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
	s.service = NewBillingService(params, NewAnalyticsService(params))
}

func (s *BillingServiceSuite) TestGuestStartsWithAccess() {
	ctx := testutil.SetupGuestContext("client-abc")

	status, err := s.service.CheckPaymentStatus(ctx)
	s.Require().NoError(err)

	s.True(status.Guest)
	s.Equal(0, status.InvoicesCreated)
	s.Equal(s.GetConfig().Billing.GuestFreeLimit, status.FreeLimit)
	s.Equal(1, status.Remaining)
	s.True(status.HasAccess)
}

func (s *BillingServiceSuite) TestGuestLosesAccessAtLimit() {
	ctx := testutil.SetupGuestContext("client-abc")

	status, err := s.service.IncrementInvoiceCount(ctx)
	s.Require().NoError(err)

	s.True(status.Guest)
	s.Equal(1, status.InvoicesCreated)
	s.Equal(0, status.Remaining)
	s.False(status.HasAccess)
}

func (s *BillingServiceSuite) TestGuestCountersAreScopedByClientID() {
	first := testutil.SetupGuestContext("client-one")
	second := testutil.SetupGuestContext("client-two")

	_, err := s.service.IncrementInvoiceCount(first)
	s.Require().NoError(err)

	status, err := s.service.CheckPaymentStatus(second)
	s.Require().NoError(err)
	s.Equal(0, status.InvoicesCreated)
	s.True(status.HasAccess)
}

func (s *BillingServiceSuite) TestGuestWithoutClientIDIsUntracked() {
	ctx := testutil.SetupGuestContext("")

	status, err := s.service.IncrementInvoiceCount(ctx)
	s.Require().NoError(err)
	s.Equal(0, status.InvoicesCreated)
	s.True(status.HasAccess)
}

func (s *BillingServiceSuite) TestRegisteredUserWithinFreeLimit() {
	status, err := s.service.CheckPaymentStatus(s.GetContext())
	s.Require().NoError(err)

	s.False(status.Guest)
	s.Equal(s.GetConfig().Billing.RegisteredFreeLimit, status.FreeLimit)
	s.Equal(2, status.Remaining)
	s.True(status.HasAccess)
}

func (s *BillingServiceSuite) TestRegisteredUserExhaustsFreeLimit() {
	_, err := s.service.IncrementInvoiceCount(s.GetContext())
	s.Require().NoError(err)
	status, err := s.service.IncrementInvoiceCount(s.GetContext())
	s.Require().NoError(err)

	s.Equal(2, status.InvoicesCreated)
	s.Equal(0, status.Remaining)
	s.False(status.HasAccess)
}

func (s *BillingServiceSuite) TestSubscriptionGrantsAccessOverLimit() {
	_, err := s.service.IncrementInvoiceCount(s.GetContext())
	s.Require().NoError(err)
	_, err = s.service.IncrementInvoiceCount(s.GetContext())
	s.Require().NoError(err)

	err = s.service.MarkSubscriptionActive(s.GetContext(), testutil.TestUserID, true)
	s.Require().NoError(err)

	status, err := s.service.CheckPaymentStatus(s.GetContext())
	s.Require().NoError(err)
	s.True(status.SubscriptionActive)
	s.True(status.HasAccess)

	err = s.service.MarkSubscriptionActive(s.GetContext(), testutil.TestUserID, false)
	s.Require().NoError(err)

	status, err = s.service.CheckPaymentStatus(s.GetContext())
	s.Require().NoError(err)
	s.False(status.SubscriptionActive)
	s.False(status.HasAccess)
}

func (s *BillingServiceSuite) TestOneOffPaymentGrantsAndResets() {
	_, err := s.service.IncrementInvoiceCount(s.GetContext())
	s.Require().NoError(err)
	_, err = s.service.IncrementInvoiceCount(s.GetContext())
	s.Require().NoError(err)

	err = s.service.MarkInvoicePaid(s.GetContext(), testutil.TestUserID)
	s.Require().NoError(err)

	status, err := s.service.CheckPaymentStatus(s.GetContext())
	s.Require().NoError(err)
	s.True(status.PaidCurrentInvoice)
	s.True(status.HasAccess)

	err = s.service.ResetPaymentStatus(s.GetContext())
	s.Require().NoError(err)

	status, err = s.service.CheckPaymentStatus(s.GetContext())
	s.Require().NoError(err)
	s.False(status.PaidCurrentInvoice)
	s.False(status.HasAccess)
}
