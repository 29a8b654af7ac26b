package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/stitchesx/stitchesx/internal/domain/invoice"
	"github.com/stitchesx/stitchesx/internal/email"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/pdf"
	"github.com/stitchesx/stitchesx/internal/types"
)

// invoiceNumberPattern matches the generated numbering scheme. Imported
// or hand-entered numbers may not match; numbering then restarts.
var invoiceNumberPattern = regexp.MustCompile(`^INV-(\d+)$`)

const firstInvoiceNumber = "INV-001"

// InvoiceService manages persisted invoices.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error)
	ListInvoices(ctx context.Context) ([]*invoice.Invoice, error)
	UpdateInvoice(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error

	// GetNextInvoiceNumber derives the next sequential number from the
	// user's most recent invoice.
	GetNextInvoiceNumber(ctx context.Context) (string, error)

	// RenderInvoicePDF renders a stored invoice to PDF bytes plus its
	// download filename.
	RenderInvoicePDF(ctx context.Context, id string) ([]byte, string, error)

	// SendInvoiceEmail emails a stored invoice to its client contact.
	SendInvoiceEmail(ctx context.Context, id string) error
}

type invoiceService struct {
	ServiceParams
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("create an invoice")
	}
	if inv.InvoiceNumber == "" {
		number, err := s.GetNextInvoiceNumber(ctx)
		if err != nil {
			return nil, err
		}
		inv.InvoiceNumber = number
	}
	if inv.Currency == "" {
		inv.Currency = types.DefaultCurrency
	}
	if inv.Status == "" {
		inv.Status = types.InvoiceStatusDraft
	}
	if err := inv.Status.Validate(); err != nil {
		return nil, err
	}

	created, err := s.InvoiceRepo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("invoice created",
		"invoice_id", created.ID,
		"invoice_number", created.InvoiceNumber,
	)
	return created, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("view an invoice")
	}
	return s.InvoiceRepo.Get(ctx, id)
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]*invoice.Invoice, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("list invoices")
	}
	return s.InvoiceRepo.List(ctx)
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	if !types.IsAuthenticated(ctx) {
		return nil, authRequired("update an invoice")
	}
	if inv.Status != "" {
		if err := inv.Status.Validate(); err != nil {
			return nil, err
		}
	}
	return s.InvoiceRepo.Update(ctx, inv)
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if !types.IsAuthenticated(ctx) {
		return authRequired("delete an invoice")
	}
	return s.InvoiceRepo.Delete(ctx, id)
}

// GetNextInvoiceNumber parses the most recent invoice's number and
// increments it, zero-padded to three digits. With no prior invoice, or a
// number outside the INV-<digits> scheme, the sequence restarts at
// INV-001.
func (s *invoiceService) GetNextInvoiceNumber(ctx context.Context) (string, error) {
	if !types.IsAuthenticated(ctx) {
		return "", authRequired("generate an invoice number")
	}

	latest, err := s.InvoiceRepo.GetMostRecent(ctx)
	if err != nil {
		if ierr.IsNotFound(err) {
			return firstInvoiceNumber, nil
		}
		return "", err
	}

	matches := invoiceNumberPattern.FindStringSubmatch(latest.InvoiceNumber)
	if matches == nil {
		s.Logger.Warnw("most recent invoice number does not match numbering scheme, restarting sequence",
			"invoice_number", latest.InvoiceNumber,
		)
		return firstInvoiceNumber, nil
	}

	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return firstInvoiceNumber, nil
	}
	return fmt.Sprintf("INV-%03d", n+1), nil
}

func (s *invoiceService) RenderInvoicePDF(ctx context.Context, id string) ([]byte, string, error) {
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, "", err
	}

	data := invoiceToPDFData(inv)
	bytes, err := s.PDFGenerator.RenderInvoicePDF(ctx, data)
	if err != nil {
		return nil, "", err
	}
	return bytes, pdf.FileName(inv.InvoiceNumber), nil
}

func (s *invoiceService) SendInvoiceEmail(ctx context.Context, id string) error {
	inv, err := s.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	if inv.ClientEmail == "" {
		return ierr.NewError("invoice has no client email").
			WithHint("Add a client email address before sending").
			Mark(ierr.ErrValidation)
	}

	symbol := types.CurrencySymbol(inv.Currency)
	resp, err := s.EmailSender.SendEmail(ctx, email.SendEmailRequest{
		ToAddress: inv.ClientEmail,
		Subject:   fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, inv.CompanyName),
		Text: fmt.Sprintf(
			"Hello %s,\n\nPlease find invoice %s for %s%s.\n\n%s",
			inv.ClientName, inv.InvoiceNumber, symbol, inv.Total.StringFixed(2), inv.Notes,
		),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to send invoice email").
			Mark(ierr.ErrSystem)
	}
	if !resp.Success {
		return ierr.NewError("invoice email was not sent").
			WithHint("Email delivery is not available").
			Mark(ierr.ErrSystem)
	}

	if inv.Status == types.InvoiceStatusDraft {
		inv.Status = types.InvoiceStatusSent
		if _, err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			s.Logger.Errorw("failed to mark invoice as sent", "error", err, "invoice_id", inv.ID)
		}
	}
	return nil
}

// invoiceToPDFData maps a persisted invoice into the renderer's input.
func invoiceToPDFData(inv *invoice.Invoice) *pdf.InvoiceData {
	items := make([]pdf.Item, 0, len(inv.Items))
	for _, item := range inv.Items {
		if !item.Visible {
			continue
		}
		items = append(items, pdf.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
		})
	}

	dueDate := ""
	if inv.DueDate != nil {
		dueDate = inv.DueDate.Format("02 Jan 2006")
	}

	return &pdf.InvoiceData{
		InvoiceNumber:  inv.InvoiceNumber,
		TemplateID:     inv.TemplateID,
		Currency:       inv.Currency,
		CompanyName:    inv.CompanyName,
		CompanyAddress: inv.CompanyAddress,
		CompanyEmail:   inv.CompanyEmail,
		CompanyPhone:   inv.CompanyPhone,
		ClientName:     inv.ClientName,
		ClientAddress:  inv.ClientAddress,
		ClientEmail:    inv.ClientEmail,
		IssueDate:      inv.IssueDate.Format("02 Jan 2006"),
		DueDate:        dueDate,
		LogoURL:        inv.LogoURL,
		Terms:          inv.Terms,
		Notes:          inv.Notes,
		WatermarkText:  inv.WatermarkText,
		ShowWatermark:  inv.WatermarkText != "",
		Items:          items,
		Subtotal:       inv.Subtotal,
		TaxRate:        inv.TaxRate,
		TaxAmount:      inv.TaxAmount,
		DiscountAmount: inv.DiscountAmount,
		ShippingCost:   inv.ShippingCost,
		Total:          inv.Total,
		GeneratedAt:    inv.UpdatedAt.UTC().Truncate(time.Second),
	}
}

// authRequired is the uniform unauthenticated failure for service writes.
func authRequired(action string) error {
	return ierr.NewError("authentication required").
		WithHintf("Authentication required to %s", action).
		Mark(ierr.ErrAuthentication)
}
