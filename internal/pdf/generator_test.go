package pdf

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoiceData() *InvoiceData {
	return &InvoiceData{
		InvoiceNumber:  "INV-042",
		TemplateID:     "tech",
		Currency:       "GBP",
		CompanyName:    "Acme Ltd",
		CompanyAddress: "1 High Street\nLondon",
		CompanyEmail:   "billing@acme.example",
		ClientName:     "Wayne Enterprises",
		ClientEmail:    "accounts@wayne.example",
		IssueDate:      "01 Aug 2026",
		DueDate:        "31 Aug 2026",
		Terms:          "Payment is due within 30 days of the invoice date.",
		Notes:          "Thank you for your business!",
		Items: []Item{
			{Description: "Consulting", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(100), Amount: decimal.NewFromInt(1000)},
			{Description: "Support retainer", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(250), Amount: decimal.NewFromInt(250)},
		},
		Subtotal:    decimal.NewFromInt(1250),
		TaxRate:     decimal.NewFromInt(20),
		TaxAmount:   decimal.NewFromInt(250),
		Total:       decimal.NewFromInt(1500),
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderInvoicePDF(t *testing.T) {
	g := NewGenerator(logger.NewNop())

	out, err := g.RenderInvoicePDF(context.Background(), sampleInvoiceData())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderInvoicePDFDeterministic(t *testing.T) {
	g := NewGenerator(logger.NewNop())

	first, err := g.RenderInvoicePDF(context.Background(), sampleInvoiceData())
	require.NoError(t, err)
	second, err := g.RenderInvoicePDF(context.Background(), sampleInvoiceData())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderInvoicePDFNilData(t *testing.T) {
	g := NewGenerator(logger.NewNop())

	_, err := g.RenderInvoicePDF(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestRenderInvoicePDFManyItemsPaginates(t *testing.T) {
	g := NewGenerator(logger.NewNop())

	data := sampleInvoiceData()
	data.Items = nil
	for i := 0; i < 60; i++ {
		data.Items = append(data.Items, Item{
			Description: "Line item",
			Quantity:    decimal.NewFromInt(1),
			Rate:        decimal.NewFromInt(10),
			Amount:      decimal.NewFromInt(10),
		})
	}

	out, err := g.RenderInvoicePDF(context.Background(), data)
	require.NoError(t, err)
	// Two page objects mean the table broke onto a second page.
	assert.GreaterOrEqual(t, strings.Count(string(out), "/Type /Page\n"), 2)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "invoice-INV-042.pdf", FileName("INV-042"))
}
