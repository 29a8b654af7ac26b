package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/types"
)

// Item is one row of the rendered items table.
type Item struct {
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// InvoiceData is everything the renderer needs. The caller maps either a
// persisted invoice or live editor state into it.
type InvoiceData struct {
	InvoiceNumber string
	TemplateID    string
	Currency      string

	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
	ClientName     string
	ClientAddress  string
	ClientEmail    string

	IssueDate string
	DueDate   string

	LogoURL       string
	Terms         string
	Notes         string
	ThankYouNote  string
	WatermarkText string
	ShowWatermark bool

	Items []Item

	Subtotal       decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	ShippingCost   decimal.Decimal
	Total          decimal.Decimal

	// GeneratedAt stamps the document's creation date so output is
	// reproducible for identical input.
	GeneratedAt time.Time
}

// Generator renders an invoice-data object to PDF bytes.
type Generator interface {
	RenderInvoicePDF(ctx context.Context, data *InvoiceData) ([]byte, error)
}

// FileName returns the download name for an invoice document.
func FileName(invoiceNumber string) string {
	return fmt.Sprintf("invoice-%s.pdf", invoiceNumber)
}

// palette is the color triple a template id selects.
type palette struct {
	header [3]int
	accent [3]int
	rowAlt [3]int
}

var palettes = map[string]palette{
	types.TemplateIDTech: {
		header: [3]int{30, 27, 75},
		accent: [3]int{124, 58, 237},
		rowAlt: [3]int{237, 233, 254},
	},
	types.TemplateIDRetail: {
		header: [3]int{67, 20, 7},
		accent: [3]int{234, 88, 12},
		rowAlt: [3]int{255, 237, 213},
	},
	types.TemplateIDCustom: {
		header: [3]int{19, 78, 74},
		accent: [3]int{13, 148, 136},
		rowAlt: [3]int{204, 251, 241},
	},
}

var defaultPalette = palette{
	header: [3]int{30, 41, 59},
	accent: [3]int{37, 99, 235},
	rowAlt: [3]int{241, 245, 249},
}

func paletteFor(templateID string) palette {
	if p, ok := palettes[templateID]; ok {
		return p
	}
	return defaultPalette
}

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	bottomMargin = 30.0
	rowHeight    = 8.0
)

type generator struct {
	logger *logger.Logger
}

// NewGenerator creates the fpdf-backed invoice renderer.
func NewGenerator(logger *logger.Logger) Generator {
	return &generator{logger: logger}
}

func (g *generator) RenderInvoicePDF(ctx context.Context, data *InvoiceData) ([]byte, error) {
	if data == nil {
		return nil, ierr.NewError("nil invoice data").
			WithHint("Nothing to render").
			Mark(ierr.ErrValidation)
	}

	pal := paletteFor(data.TemplateID)
	symbol := types.CurrencySymbol(data.Currency)
	money := func(amount decimal.Decimal) string {
		return symbol + amount.StringFixed(2)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	if !data.GeneratedAt.IsZero() {
		doc.SetCreationDate(data.GeneratedAt)
	}
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	g.drawHeader(doc, data, pal)
	y := g.drawParties(doc, data)
	y = g.drawItemsTable(doc, data, pal, y, money)
	y = g.drawTotals(doc, data, pal, y, money)
	g.drawNotes(doc, data, y)
	g.drawFooter(doc, data)
	g.drawWatermark(doc, data)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render invoice PDF").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}

// drawHeader renders the fixed-position band with company identity and
// invoice metadata.
func (g *generator) drawHeader(doc *fpdf.Fpdf, data *InvoiceData, pal palette) {
	doc.SetFillColor(pal.header[0], pal.header[1], pal.header[2])
	doc.Rect(0, 0, pageWidth, 34, "F")

	doc.SetFillColor(pal.accent[0], pal.accent[1], pal.accent[2])
	doc.Rect(0, 34, pageWidth, 1.5, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 20)
	doc.Text(marginLeft, 15, "INVOICE")

	if data.LogoURL != "" {
		// Placeholder only; logos are not decoded
		doc.SetFont("Helvetica", "I", 8)
		doc.Text(marginLeft, 21, "[logo]")
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.Text(marginLeft, 28, data.CompanyName)

	doc.SetFont("Helvetica", "", 9)
	right := pageWidth - marginRight
	doc.SetXY(right-60, 10)
	doc.CellFormat(60, 5, data.InvoiceNumber, "", 0, "R", false, 0, "")
	doc.SetXY(right-60, 16)
	doc.CellFormat(60, 5, "Issued: "+data.IssueDate, "", 0, "R", false, 0, "")
	if data.DueDate != "" {
		doc.SetXY(right-60, 22)
		doc.CellFormat(60, 5, "Due: "+data.DueDate, "", 0, "R", false, 0, "")
	}
}

// drawParties renders the company block and the bill-to block, returning
// the y position after the taller of the two.
func (g *generator) drawParties(doc *fpdf.Fpdf, data *InvoiceData) float64 {
	top := 44.0

	doc.SetTextColor(100, 100, 100)
	doc.SetFont("Helvetica", "B", 9)
	doc.Text(marginLeft, top, "FROM")
	doc.Text(pageWidth/2, top, "BILL TO")

	doc.SetTextColor(30, 30, 30)
	doc.SetFont("Helvetica", "", 9)

	leftLines := nonEmpty(data.CompanyName, data.CompanyAddress, data.CompanyEmail, data.CompanyPhone)
	rightLines := nonEmpty(data.ClientName, data.ClientAddress, data.ClientEmail)

	y := top + 5
	for _, line := range leftLines {
		doc.Text(marginLeft, y, line)
		y += 4.5
	}
	ry := top + 5
	for _, line := range rightLines {
		doc.Text(pageWidth/2, ry, line)
		ry += 4.5
	}
	if ry > y {
		y = ry
	}
	return y + 6
}

// drawItemsTable renders the items with alternating row shading, breaking
// to a new page when the cursor passes the bottom margin.
func (g *generator) drawItemsTable(doc *fpdf.Fpdf, data *InvoiceData, pal palette, y float64, money func(decimal.Decimal) string) float64 {
	tableWidth := pageWidth - marginLeft - marginRight
	colDesc := tableWidth * 0.50
	colQty := tableWidth * 0.14
	colRate := tableWidth * 0.18
	colAmount := tableWidth * 0.18

	drawHead := func(y float64) float64 {
		doc.SetFillColor(pal.accent[0], pal.accent[1], pal.accent[2])
		doc.SetTextColor(255, 255, 255)
		doc.SetFont("Helvetica", "B", 9)
		doc.SetXY(marginLeft, y)
		doc.CellFormat(colDesc, rowHeight, "Description", "", 0, "L", true, 0, "")
		doc.CellFormat(colQty, rowHeight, "Qty", "", 0, "R", true, 0, "")
		doc.CellFormat(colRate, rowHeight, "Rate", "", 0, "R", true, 0, "")
		doc.CellFormat(colAmount, rowHeight, "Amount", "", 0, "R", true, 0, "")
		return y + rowHeight
	}

	y = drawHead(y)
	doc.SetTextColor(30, 30, 30)
	doc.SetFont("Helvetica", "", 9)

	for i, item := range data.Items {
		if y > pageHeight-bottomMargin {
			doc.AddPage()
			y = drawHead(20)
			doc.SetTextColor(30, 30, 30)
			doc.SetFont("Helvetica", "", 9)
		}

		fill := i%2 == 1
		if fill {
			doc.SetFillColor(pal.rowAlt[0], pal.rowAlt[1], pal.rowAlt[2])
		}
		doc.SetXY(marginLeft, y)
		doc.CellFormat(colDesc, rowHeight, item.Description, "", 0, "L", fill, 0, "")
		doc.CellFormat(colQty, rowHeight, item.Quantity.String(), "", 0, "R", fill, 0, "")
		doc.CellFormat(colRate, rowHeight, money(item.Rate), "", 0, "R", fill, 0, "")
		doc.CellFormat(colAmount, rowHeight, money(item.Amount), "", 0, "R", fill, 0, "")
		y += rowHeight
	}

	return y + 6
}

// drawTotals renders the right-aligned totals block.
func (g *generator) drawTotals(doc *fpdf.Fpdf, data *InvoiceData, pal palette, y float64, money func(decimal.Decimal) string) float64 {
	if y > pageHeight-bottomMargin-30 {
		doc.AddPage()
		y = 20
	}

	labelX := pageWidth - marginRight - 80
	labelW := 45.0
	valueW := 35.0

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetFont("Helvetica", style, 9)
		doc.SetXY(labelX, y)
		doc.CellFormat(labelW, 6, label, "", 0, "R", false, 0, "")
		doc.CellFormat(valueW, 6, value, "", 0, "R", false, 0, "")
		y += 6
	}

	doc.SetTextColor(30, 30, 30)
	row("Subtotal", money(data.Subtotal), false)
	row(fmt.Sprintf("Tax (%s%%)", data.TaxRate.String()), money(data.TaxAmount), false)
	if !data.DiscountAmount.IsZero() {
		row("Discount", "-"+money(data.DiscountAmount), false)
	}
	if !data.ShippingCost.IsZero() {
		row("Shipping", money(data.ShippingCost), false)
	}

	doc.SetDrawColor(pal.accent[0], pal.accent[1], pal.accent[2])
	doc.Line(labelX, y+0.5, pageWidth-marginRight, y+0.5)
	y += 2
	row("Total", money(data.Total), true)

	return y + 8
}

func (g *generator) drawNotes(doc *fpdf.Fpdf, data *InvoiceData, y float64) {
	blocks := []struct {
		title string
		text  string
	}{
		{"Notes", data.Notes},
		{"Terms", data.Terms},
		{"", data.ThankYouNote},
	}

	for _, block := range blocks {
		if block.text == "" {
			continue
		}
		if y > pageHeight-bottomMargin-15 {
			doc.AddPage()
			y = 20
		}
		if block.title != "" {
			doc.SetTextColor(100, 100, 100)
			doc.SetFont("Helvetica", "B", 9)
			doc.Text(marginLeft, y, block.title)
			y += 4.5
		}
		doc.SetTextColor(30, 30, 30)
		doc.SetFont("Helvetica", "", 9)
		doc.SetXY(marginLeft, y-3.5)
		doc.MultiCell(pageWidth-marginLeft-marginRight, 4.5, block.text, "", "L", false)
		y = doc.GetY() + 6
	}
}

func (g *generator) drawFooter(doc *fpdf.Fpdf, data *InvoiceData) {
	doc.SetY(-15)
	doc.SetTextColor(150, 150, 150)
	doc.SetFont("Helvetica", "I", 8)
	doc.CellFormat(pageWidth-marginLeft-marginRight, 5,
		"Generated with Stitches X", "", 0, "C", false, 0, "")
}

// drawWatermark paints a diagonal semi-transparent text centered on the
// current page.
func (g *generator) drawWatermark(doc *fpdf.Fpdf, data *InvoiceData) {
	if !data.ShowWatermark || data.WatermarkText == "" {
		return
	}

	doc.SetAlpha(0.08, "Normal")
	doc.TransformBegin()
	doc.TransformRotate(45, pageWidth/2, pageHeight/2)
	doc.SetTextColor(60, 60, 60)
	doc.SetFont("Helvetica", "B", 60)
	width := doc.GetStringWidth(data.WatermarkText)
	doc.Text(pageWidth/2-width/2, pageHeight/2, data.WatermarkText)
	doc.TransformEnd()
	doc.SetAlpha(1.0, "Normal")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
