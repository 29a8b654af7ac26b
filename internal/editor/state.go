package editor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/types"
)

// CustomField is a user-defined labeled input attached to a template section.
type CustomField struct {
	ID       string                   `json:"id"`
	Type     types.CustomFieldType    `json:"type"`
	Label    string                   `json:"label"`
	Value    string                   `json:"value"`
	Section  types.CustomFieldSection `json:"section"`
	Required bool                     `json:"required,omitempty"`
	Options  []string                 `json:"options,omitempty"`
	Visible  bool                     `json:"visible"`
}

// InvoiceItem is one line of the invoice being edited. Amount is not kept
// in sync with Quantity*Rate; recomputation is an explicit, caller-invoked
// operation.
type InvoiceItem struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Visible     bool            `json:"visible"`
}

// TemplateState is the live, in-editor configuration of one invoice
// template instance. It is ephemeral editor state, unrelated to the
// persisted Invoice entity.
type TemplateState struct {
	// Identity and text fields
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyEmail   string `json:"companyEmail"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyWebsite string `json:"companyWebsite"`
	ClientName     string `json:"clientName"`
	ClientAddress  string `json:"clientAddress"`
	ClientEmail    string `json:"clientEmail"`
	InvoiceNumber  string `json:"invoiceNumber"`
	IssueDate      string `json:"issueDate"`
	DueDate        string `json:"dueDate"`
	LogoURL        string `json:"logoUrl"`
	SignatureURL   string `json:"signatureUrl"`
	ThankYouNote   string `json:"thankYouNote"`
	Terms          string `json:"terms"`
	Notes          string `json:"notes"`
	FooterText     string `json:"footerText"`
	WatermarkText  string `json:"watermarkText"`

	// Toggleable elements (the closed set accepted by ToggleElement)
	ShowLogo               bool `json:"showLogo"`
	ShowThankYouNote       bool `json:"showThankYouNote"`
	ShowTermsAndConditions bool `json:"showTermsAndConditions"`
	ShowSignature          bool `json:"showSignature"`
	ShowWatermark          bool `json:"showWatermark"`

	// Per-section visibility flags. Independent of each other and of the
	// text fields: a hidden section keeps its text.
	ShowInvoiceNumber  bool `json:"showInvoiceNumber"`
	ShowIssueDate      bool `json:"showIssueDate"`
	ShowDueDate        bool `json:"showDueDate"`
	ShowCompanyAddress bool `json:"showCompanyAddress"`
	ShowCompanyEmail   bool `json:"showCompanyEmail"`
	ShowCompanyPhone   bool `json:"showCompanyPhone"`
	ShowClientAddress  bool `json:"showClientAddress"`
	ShowClientEmail    bool `json:"showClientEmail"`
	ShowItemQuantity   bool `json:"showItemQuantity"`
	ShowItemRate       bool `json:"showItemRate"`
	ShowTax            bool `json:"showTax"`
	ShowDiscount       bool `json:"showDiscount"`
	ShowShipping       bool `json:"showShipping"`
	ShowNotes          bool `json:"showNotes"`
	ShowFooter         bool `json:"showFooter"`

	CustomFields []CustomField `json:"customFields"`
	Items        []InvoiceItem `json:"items"`

	// Styling
	AccentColor     string             `json:"accentColor"`
	HeaderColor     string             `json:"headerColor"`
	TextColor       string             `json:"textColor"`
	BackgroundColor string             `json:"backgroundColor"`
	FontFamily      string             `json:"fontFamily"`
	Layout          types.LayoutStyle  `json:"layout"`
	CornerRadius    types.CornerRadius `json:"cornerRadius"`

	// Totals. Only valid immediately after CalculateTotals; nothing keeps
	// them consistent across subsequent item edits.
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	Total          decimal.Decimal `json:"total"`
}

// Clone returns a deep copy of the state.
func (s *TemplateState) Clone() *TemplateState {
	out := *s
	out.CustomFields = make([]CustomField, len(s.CustomFields))
	copy(out.CustomFields, s.CustomFields)
	for i, f := range s.CustomFields {
		if f.Options != nil {
			out.CustomFields[i].Options = append([]string(nil), f.Options...)
		}
	}
	out.Items = make([]InvoiceItem, len(s.Items))
	copy(out.Items, s.Items)
	return &out
}

// ApplyPatch shallow-merges a free-form partial into the state via its
// JSON representation. Field values are trusted; unknown keys are ignored
// on unmarshal.
func (s *TemplateState) ApplyPatch(patch map[string]any) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	var current map[string]any
	if err := json.Unmarshal(raw, &current); err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	for k, v := range patch {
		current[k] = v
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	var next TemplateState
	if err := json.Unmarshal(merged, &next); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid template state patch").
			Mark(ierr.ErrValidation)
	}

	*s = next
	return nil
}

// NextItemID returns max existing item id + 1, or 1 when the list is empty.
func (s *TemplateState) NextItemID() int {
	next := 1
	for _, item := range s.Items {
		if item.ID >= next {
			next = item.ID + 1
		}
	}
	return next
}

// CalculateTotals recomputes the totals snapshot:
// subtotal = sum of item amounts, tax = subtotal*rate/100,
// total = subtotal - discount + tax + shipping.
func (s *TemplateState) CalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.Amount)
	}

	s.Subtotal = subtotal
	s.TaxAmount = subtotal.Mul(s.TaxRate).Div(decimal.NewFromInt(100))
	s.Total = subtotal.Sub(s.DiscountAmount).Add(s.TaxAmount).Add(s.ShippingCost)
}

// NewCustomFieldID builds a practically unique id for a user-added field.
func NewCustomFieldID() string {
	return fmt.Sprintf("field-%d-%s", time.Now().UnixMilli(), strings.ToLower(types.GenerateShortID()))
}
