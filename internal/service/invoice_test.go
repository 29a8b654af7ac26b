package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stitchesx/stitchesx/internal/domain/invoice"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/pdf"
	"github.com/stitchesx/stitchesx/internal/testutil"
	"github.com/stitchesx/stitchesx/internal/types"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewInvoiceService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		Cache:         s.GetCache(),
		PDFGenerator:  pdf.NewGenerator(s.GetLogger()),
		EmailSender:   s.GetEmailRecorder(),
		InvoiceRepo:   stores.InvoiceRepo,
		TemplateRepo:  stores.TemplateRepo,
		AnalyticsRepo: stores.AnalyticsRepo,
		SettingsRepo:  stores.SettingsRepo,
		ProfileRepo:   stores.ProfileRepo,
	})
}

func (s *InvoiceServiceSuite) createInvoice(number string) *invoice.Invoice {
	created, err := s.service.CreateInvoice(s.GetContext(), &invoice.Invoice{
		InvoiceNumber: number,
		CompanyName:   "Acme Ltd",
		ClientName:    "Wayne Enterprises",
		ClientEmail:   "client@example.com",
		Total:         decimal.NewFromInt(100),
	})
	s.Require().NoError(err)
	return created
}

func (s *InvoiceServiceSuite) TestNextInvoiceNumberWithNoInvoices() {
	number, err := s.service.GetNextInvoiceNumber(s.GetContext())
	s.Require().NoError(err)
	s.Equal("INV-001", number)
}

func (s *InvoiceServiceSuite) TestNextInvoiceNumberIncrements() {
	s.createInvoice("INV-007")

	number, err := s.service.GetNextInvoiceNumber(s.GetContext())
	s.Require().NoError(err)
	s.Equal("INV-008", number)
}

func (s *InvoiceServiceSuite) TestNextInvoiceNumberPadsBeyondThreeDigits() {
	s.createInvoice("INV-999")

	number, err := s.service.GetNextInvoiceNumber(s.GetContext())
	s.Require().NoError(err)
	s.Equal("INV-1000", number)
}

func (s *InvoiceServiceSuite) TestNextInvoiceNumberRestartsOnForeignFormat() {
	s.createInvoice("2024/001")

	number, err := s.service.GetNextInvoiceNumber(s.GetContext())
	s.Require().NoError(err)
	s.Equal("INV-001", number)
}

func (s *InvoiceServiceSuite) TestNextInvoiceNumberRequiresAuth() {
	_, err := s.service.GetNextInvoiceNumber(context.Background())
	s.Require().Error(err)
	s.True(ierr.IsAuthentication(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceFillsDefaults() {
	created, err := s.service.CreateInvoice(s.GetContext(), &invoice.Invoice{
		CompanyName: "Acme Ltd",
		ClientName:  "Wayne Enterprises",
	})
	s.Require().NoError(err)

	s.Equal("INV-001", created.InvoiceNumber)
	s.Equal(types.DefaultCurrency, created.Currency)
	s.Equal(types.InvoiceStatusDraft, created.Status)
	s.NotEmpty(created.ID)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRejectsBadStatus() {
	_, err := s.service.CreateInvoice(s.GetContext(), &invoice.Invoice{
		CompanyName: "Acme Ltd",
		ClientName:  "Wayne Enterprises",
		Status:      types.InvoiceStatus("cancelled"),
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRequiresAuth() {
	_, err := s.service.CreateInvoice(context.Background(), &invoice.Invoice{})
	s.Require().Error(err)
	s.True(ierr.IsAuthentication(err))
}

func (s *InvoiceServiceSuite) TestGetInvoiceNotFound() {
	_, err := s.service.GetInvoice(s.GetContext(), "inv_missing")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestRenderInvoicePDF() {
	created := s.createInvoice("INV-042")

	data, filename, err := s.service.RenderInvoicePDF(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal("invoice-INV-042.pdf", filename)
	s.True(len(data) > 0)
	s.Equal("%PDF", string(data[:4]))
}

func (s *InvoiceServiceSuite) TestSendInvoiceEmailMarksSent() {
	created := s.createInvoice("INV-001")

	err := s.service.SendInvoiceEmail(s.GetContext(), created.ID)
	s.Require().NoError(err)

	sent := s.GetEmailRecorder().Sent()
	s.Require().Len(sent, 1)
	s.Equal("client@example.com", sent[0].ToAddress)
	s.Contains(sent[0].Subject, "INV-001")

	stored, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal(types.InvoiceStatusSent, stored.Status)
}

func (s *InvoiceServiceSuite) TestSendInvoiceEmailRequiresClientEmail() {
	created, err := s.service.CreateInvoice(s.GetContext(), &invoice.Invoice{
		CompanyName: "Acme Ltd",
		ClientName:  "Wayne Enterprises",
	})
	s.Require().NoError(err)

	err = s.service.SendInvoiceEmail(s.GetContext(), created.ID)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Empty(s.GetEmailRecorder().Sent())
}
