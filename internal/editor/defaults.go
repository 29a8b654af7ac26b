package editor

import (
	"github.com/shopspring/decimal"
	"github.com/stitchesx/stitchesx/internal/types"
)

// DefaultActiveTemplateID is the template selected before the user picks one.
const DefaultActiveTemplateID = "standard"

// DefaultTemplateState returns the initial editor state for a template id.
// Known ids (tech, retail, custom) override the base palette and seed
// template-specific custom fields; every other id gets the base default
// unmodified. Pure: no clocks, no randomness.
func DefaultTemplateState(templateID string) *TemplateState {
	state := baseTemplateState()

	switch templateID {
	case types.TemplateIDTech:
		state.AccentColor = "#7c3aed"
		state.HeaderColor = "#1e1b4b"
		state.CustomFields = []CustomField{
			{
				ID:      "field-tech-repository",
				Type:    types.CustomFieldTypeURL,
				Label:   "Project Repository",
				Section: types.SectionItems,
				Visible: true,
			},
			{
				ID:      "field-tech-sprint",
				Type:    types.CustomFieldTypeText,
				Label:   "Sprint",
				Section: types.SectionHeader,
				Visible: true,
			},
		}
	case types.TemplateIDRetail:
		state.AccentColor = "#ea580c"
		state.HeaderColor = "#431407"
		state.CustomFields = []CustomField{
			{
				ID:      "field-retail-order-ref",
				Type:    types.CustomFieldTypeText,
				Label:   "Order Reference",
				Section: types.SectionHeader,
				Visible: true,
			},
		}
	case types.TemplateIDCustom:
		state.AccentColor = "#0d9488"
		state.HeaderColor = "#134e4a"
		state.CustomFields = []CustomField{
			{
				ID:      "field-custom-notes",
				Type:    types.CustomFieldTypeTextarea,
				Label:   "Additional Notes",
				Section: types.SectionNotes,
				Visible: true,
			},
		}
	}

	return state
}

func baseTemplateState() *TemplateState {
	return &TemplateState{
		ThankYouNote: "Thank you for your business!",
		Terms:        "Payment is due within 30 days of the invoice date.",
		FooterText:   "Generated with Stitches X",

		ShowLogo:               true,
		ShowThankYouNote:       true,
		ShowTermsAndConditions: true,
		ShowSignature:          false,
		ShowWatermark:          false,

		ShowInvoiceNumber:  true,
		ShowIssueDate:      true,
		ShowDueDate:        true,
		ShowCompanyAddress: true,
		ShowCompanyEmail:   true,
		ShowCompanyPhone:   true,
		ShowClientAddress:  true,
		ShowClientEmail:    true,
		ShowItemQuantity:   true,
		ShowItemRate:       true,
		ShowTax:            true,
		ShowDiscount:       false,
		ShowShipping:       false,
		ShowNotes:          true,
		ShowFooter:         true,

		CustomFields: []CustomField{},
		Items: []InvoiceItem{
			{
				ID:          1,
				Description: "",
				Quantity:    decimal.NewFromInt(1),
				Rate:        decimal.Zero,
				Amount:      decimal.Zero,
				Visible:     true,
			},
		},

		AccentColor:     "#2563eb",
		HeaderColor:     "#1e293b",
		TextColor:       "#0f172a",
		BackgroundColor: "#ffffff",
		FontFamily:      "Helvetica",
		Layout:          types.LayoutClassic,
		CornerRadius:    types.CornerRadiusSmall,

		Subtotal:       decimal.Zero,
		TaxRate:        decimal.Zero,
		TaxAmount:      decimal.Zero,
		DiscountAmount: decimal.Zero,
		ShippingCost:   decimal.Zero,
		Total:          decimal.Zero,
	}
}
