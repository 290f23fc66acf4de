package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/agrovivo/biocampo-api/internal/model"
)

type Generator struct {
	translate func(string) string
}

func NewGenerator() (*Generator, error) {
	// Core fonts cover the Spanish accents the portal needs via cp1252.
	probe := gofpdf.New("P", "mm", "A4", "")
	translate := probe.UnicodeTranslatorFromDescriptor("")
	if probe.Err() {
		return nil, fmt.Errorf("cp1252 translator unavailable: %v", probe.Error())
	}
	return &Generator{translate: translate}, nil
}

func (g *Generator) Generate(doc model.QuoteDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := g.translate

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr("Cotización"), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("No. %s — %s", doc.Quote.QuoteNumber, formatDate(doc.Quote.CreatedAt))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Cliente: %s", safeValue(doc.EntityName))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"Producto", "Unidad", "Cantidad", "Precio unitario", "Total"}
	colWidths := []float64{70, 20, 25, 35, 30}
	drawTableRow(pdf, tr, headers, colWidths, true)

	for _, line := range doc.Quote.Lines {
		row := []string{
			line.ProductName,
			line.Unit,
			line.Quantity.StringFixed(1),
			line.UnitPrice.StringFixed(2),
			line.LineTotal.StringFixed(2),
		}
		drawTableRow(pdf, tr, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "", 11)
	ivaPercent := doc.Quote.IVARate.Mul(decimal.NewFromInt(100)).StringFixed(0)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Subtotal: $%s", doc.Quote.Subtotal.StringFixed(2))), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("IVA (%s%%): $%s", ivaPercent, doc.Quote.IVAAmount.StringFixed(2))), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total: $%s", doc.Quote.Total.StringFixed(2))), "", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, tr("Cotización válida por 15 días calendario. Precios sujetos a disponibilidad."), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont("Arial", style, 10)
	for i, col := range cols {
		align := "L"
		if i > 1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02.01.2006")
}
