package editor

import (
	"github.com/shopspring/decimal"
	"github.com/stitchesx/stitchesx/internal/pdf"
)

// ToPDFData maps the live editor state into the renderer's input,
// honoring the section visibility flags: hidden sections keep their text
// in the state but are blanked for rendering.
func (s *TemplateState) ToPDFData(templateID string) *pdf.InvoiceData {
	data := &pdf.InvoiceData{
		InvoiceNumber: s.InvoiceNumber,
		TemplateID:    templateID,
		CompanyName:   s.CompanyName,
		ClientName:    s.ClientName,
		Subtotal:      s.Subtotal,
		TaxRate:       s.TaxRate,
		TaxAmount:     s.TaxAmount,
		Total:         s.Total,
	}

	if !s.ShowInvoiceNumber {
		data.InvoiceNumber = ""
	}
	if s.ShowIssueDate {
		data.IssueDate = s.IssueDate
	}
	if s.ShowDueDate {
		data.DueDate = s.DueDate
	}
	if s.ShowCompanyAddress {
		data.CompanyAddress = s.CompanyAddress
	}
	if s.ShowCompanyEmail {
		data.CompanyEmail = s.CompanyEmail
	}
	if s.ShowCompanyPhone {
		data.CompanyPhone = s.CompanyPhone
	}
	if s.ShowClientAddress {
		data.ClientAddress = s.ClientAddress
	}
	if s.ShowClientEmail {
		data.ClientEmail = s.ClientEmail
	}
	if s.ShowLogo {
		data.LogoURL = s.LogoURL
	}
	if s.ShowThankYouNote {
		data.ThankYouNote = s.ThankYouNote
	}
	if s.ShowTermsAndConditions {
		data.Terms = s.Terms
	}
	if s.ShowNotes {
		data.Notes = s.Notes
	}
	if s.ShowWatermark && s.WatermarkText != "" {
		data.ShowWatermark = true
		data.WatermarkText = s.WatermarkText
	}
	if s.ShowDiscount {
		data.DiscountAmount = s.DiscountAmount
	}
	if s.ShowShipping {
		data.ShippingCost = s.ShippingCost
	}

	for _, item := range s.Items {
		if !item.Visible {
			continue
		}
		pdfItem := pdf.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
		}
		if !s.ShowItemQuantity {
			pdfItem.Quantity = decimal.Zero
		}
		if !s.ShowItemRate {
			pdfItem.Rate = decimal.Zero
		}
		data.Items = append(data.Items, pdfItem)
	}

	return data
}
