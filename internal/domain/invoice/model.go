package invoice

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stitchesx/stitchesx/internal/types"
)

// LineItem is one line of a persisted invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Visible     bool            `json:"visible"`
}

// Invoice is the persisted, submitted artifact. One row per saved invoice,
// owned by a user, with denormalized company/client text. It has no
// ownership link to the editor's TemplateState.
type Invoice struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	InvoiceNumber string `json:"invoice_number"`
	TemplateID    string `json:"template_id"`

	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`
	ClientName     string `json:"client_name"`
	ClientAddress  string `json:"client_address"`
	ClientEmail    string `json:"client_email"`

	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date,omitempty"`

	Items []LineItem `json:"items"`

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

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
