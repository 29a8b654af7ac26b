package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stitchesx/stitchesx/internal/domain/invoice"
	"github.com/stitchesx/stitchesx/internal/domain/template"
	"github.com/stitchesx/stitchesx/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type AccountServiceSuite struct {
	testutil.BaseServiceTestSuite
	authProvider *testutil.FakeAuthProvider
	service      AccountService
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.authProvider = testutil.NewFakeAuthProvider()
	s.service = NewAccountService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		Cache:         s.GetCache(),
		EmailSender:   s.GetEmailRecorder(),
		AuthProvider:  s.authProvider,
		InvoiceRepo:   s.GetStores().InvoiceRepo,
		TemplateRepo:  s.GetStores().TemplateRepo,
		AnalyticsRepo: s.GetStores().AnalyticsRepo,
		SettingsRepo:  s.GetStores().SettingsRepo,
		ProfileRepo:   s.GetStores().ProfileRepo,
	})
}

func (s *AccountServiceSuite) seedData() {
	_, err := s.GetStores().InvoiceRepo.Create(s.GetContext(), &invoice.Invoice{
		InvoiceNumber: "INV-001",
		CompanyName:   "Acme Ltd",
		ClientName:    "Wayne Enterprises",
		Total:         decimal.NewFromInt(100),
	})
	s.Require().NoError(err)

	_, err = s.GetStores().TemplateRepo.Create(s.GetContext(), &template.Template{
		Name: "Consulting",
	})
	s.Require().NoError(err)
}

func (s *AccountServiceSuite) TestExportUserData() {
	s.seedData()

	export, filename, err := s.service.ExportUserData(s.GetContext())
	s.Require().NoError(err)

	s.Equal(testutil.TestUserID, export.UserID)
	s.Len(export.Invoices, 1)
	s.Len(export.Templates, 1)
	s.Nil(export.Analytics)
	s.Equal(ExportFileName(export.ExportedAt), filename)
	s.Regexp(`^stitches-x-data-export-\d{4}-\d{2}-\d{2}\.json$`, filename)
}

func (s *AccountServiceSuite) TestDeleteAccountRemovesEverything() {
	s.seedData()

	result, err := s.service.DeleteAccount(s.GetContext())
	s.Require().NoError(err)

	s.True(result.Complete)
	for _, table := range []string{
		"invoices", "invoice_templates", "user_analytics",
		"user_settings", "user_profiles", "auth_account",
	} {
		s.True(result.Results[table], table)
	}
	s.Equal([]string{testutil.TestUserID}, s.authProvider.Deleted())

	invoices, err := s.GetStores().InvoiceRepo.List(s.GetContext())
	s.Require().NoError(err)
	s.Empty(invoices)
}

func (s *AccountServiceSuite) TestDeleteAccountEmptyTablesStillComplete() {
	result, err := s.service.DeleteAccount(s.GetContext())
	s.Require().NoError(err)
	s.True(result.Complete)
}

func (s *AccountServiceSuite) TestDeleteAccountReportsAuthFailure() {
	s.authProvider.FailDeletes = true

	result, err := s.service.DeleteAccount(s.GetContext())
	s.Require().NoError(err)

	s.False(result.Complete)
	s.True(result.Results["invoices"])
	s.False(result.Results["auth_account"])
}
