package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stitchesx/stitchesx/internal/domain/invoice"
	"github.com/stitchesx/stitchesx/internal/types"
	"github.com/stitchesx/stitchesx/internal/validator"
)

// CreateInvoiceRequest is the payload for saving a new invoice. The
// invoice number is generated server-side when omitted.
type CreateInvoiceRequest struct {
	InvoiceNumber string `json:"invoice_number"`
	TemplateID    string `json:"template_id"`

	CompanyName    string `json:"company_name" validate:"required"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email" validate:"omitempty,email"`
	CompanyPhone   string `json:"company_phone"`
	ClientName     string `json:"client_name" validate:"required"`
	ClientAddress  string `json:"client_address"`
	ClientEmail    string `json:"client_email" validate:"omitempty,email"`

	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date"`

	Items []invoice.LineItem `json:"items"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`

	Status types.InvoiceStatus `json:"status"`
	Notes  string              `json:"notes"`
	Terms  string              `json:"terms"`

	LogoURL       string `json:"logo_url"`
	WatermarkText string `json:"watermark_text"`
}

func (r *CreateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateInvoiceRequest) ToInvoice() *invoice.Invoice {
	issueDate := r.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now().UTC()
	}

	return &invoice.Invoice{
		InvoiceNumber:  r.InvoiceNumber,
		TemplateID:     r.TemplateID,
		CompanyName:    r.CompanyName,
		CompanyAddress: r.CompanyAddress,
		CompanyEmail:   r.CompanyEmail,
		CompanyPhone:   r.CompanyPhone,
		ClientName:     r.ClientName,
		ClientAddress:  r.ClientAddress,
		ClientEmail:    r.ClientEmail,
		IssueDate:      issueDate,
		DueDate:        r.DueDate,
		Items:          r.Items,
		Subtotal:       r.Subtotal,
		TaxRate:        r.TaxRate,
		TaxAmount:      r.TaxAmount,
		DiscountAmount: r.DiscountAmount,
		ShippingCost:   r.ShippingCost,
		Total:          r.Total,
		Currency:       r.Currency,
		Status:         r.Status,
		Notes:          r.Notes,
		Terms:          r.Terms,
		LogoURL:        r.LogoURL,
		WatermarkText:  r.WatermarkText,
	}
}

// UpdateInvoiceRequest carries a full replacement body for an existing
// invoice; the id comes from the URL.
type UpdateInvoiceRequest struct {
	CreateInvoiceRequest
}

func (r *UpdateInvoiceRequest) ToInvoice(id, userID string) *invoice.Invoice {
	inv := r.CreateInvoiceRequest.ToInvoice()
	inv.ID = id
	inv.UserID = userID
	return inv
}

// InvoiceNumberResponse returns the next generated invoice number.
type InvoiceNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
}

// ListInvoicesResponse wraps the invoice collection.
type ListInvoicesResponse struct {
	Items []*invoice.Invoice `json:"items"`
	Total int                `json:"total"`
}
