package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/printforge/printforge/internal/pricing"
)

// Page layout constants (A4 portrait in mm).
const (
	pdfPageWidth  = 210.0
	pdfMarginLeft = 15.0
	pdfMarginTop  = 15.0
	pdfLineHeight = 6.0
	pdfQRSize     = 28.0
)

// quoteStamp is the machine-readable summary encoded into the QR block of
// every exported quote sheet.
type quoteStamp struct {
	PartName    string  `json:"part_name"`
	Revision    string  `json:"revision"`
	Material    string  `json:"material"`
	TotalCost   float64 `json:"total_cost"`
	PriceCustom float64 `json:"price_custom"`
	Margin      float64 `json:"margin"`
	GeneratedAt string  `json:"generated_at"`
}

// WritePDF renders the pricing breakdown as a one-page quote sheet with a QR
// stamp that encodes the quote summary for later lookup.
func WritePDF(path string, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	contentWidth := pdfPageWidth - 2*pdfMarginLeft

	// Title bar
	pdf.SetFillColor(255, 107, 53)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(pdfMarginLeft, pdfMarginTop)
	pdf.CellFormat(contentWidth, 10, "PRINTFORGE PRICING BREAKDOWN", "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)

	if doc.CompanyName != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetX(pdfMarginLeft)
		pdf.CellFormat(contentWidth, 5, doc.CompanyName, "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}

	writeSection(pdf, "Product Information")
	writeLabelValues(pdf, [][2]string{
		{"Part Name", doc.partName()},
		{"Revision", doc.Input.Revision},
		{"Prepared By", doc.Input.PreparedBy},
		{"Date", doc.GeneratedAt.Format("2006-01-02")},
		{"Material", doc.Input.MaterialType},
	})

	writeSection(pdf, "Material & Print Settings")
	writeLabelValues(pdf, [][2]string{
		{"Filament Cost", money(doc.currency(), doc.Input.FilamentCost) + " /kg"},
		{"Filament Required", fmt.Sprintf("%.2f g", doc.Input.FilamentRequired)},
		{"Print Time", fmt.Sprintf("%.2f hours", doc.Input.PrintTime)},
		{"Labor Time", fmt.Sprintf("%.0f minutes", doc.Input.LaborTime)},
	})

	if len(doc.Input.HardwareItems) > 0 {
		writeSection(pdf, "Hardware Components")
		writeItemTable(pdf, doc, doc.Input.HardwareItems, 0)
	}
	if len(doc.Input.PackagingItems) > 0 || doc.Input.ShippingCost > 0 {
		writeSection(pdf, "Packaging & Shipping")
		writeItemTable(pdf, doc, doc.Input.PackagingItems, doc.Input.ShippingCost)
	}

	writeSection(pdf, "Cost Breakdown")
	writeLabelValues(pdf, costRows(doc))

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(255, 107, 53)
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(contentWidth*0.6, pdfLineHeight+2, "TOTAL LANDED COST", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth*0.4, pdfLineHeight+2, money(doc.currency(), doc.Result.TotalCost), "T", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)

	writeSection(pdf, "Suggested Pricing")
	writeLabelValues(pdf, priceRows(doc))

	if err := writeQRStamp(pdf, doc); err != nil {
		return err
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf file: %w", err)
	}
	return nil
}

func writeSection(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(224, 224, 224)
	pdf.SetX(pdfMarginLeft)
	pdf.CellFormat(pdfPageWidth-2*pdfMarginLeft, 7, title, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func writeLabelValues(pdf *fpdf.Fpdf, rows [][2]string) {
	contentWidth := pdfPageWidth - 2*pdfMarginLeft
	for _, row := range rows {
		pdf.SetX(pdfMarginLeft)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentWidth*0.6, pdfLineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentWidth*0.4, pdfLineHeight, row[1], "", 1, "R", false, 0, "")
	}
}

func writeItemTable(pdf *fpdf.Fpdf, doc Document, items []pricing.Item, shipping float64) {
	contentWidth := pdfPageWidth - 2*pdfMarginLeft
	widths := []float64{contentWidth * 0.4, contentWidth * 0.2, contentWidth * 0.2, contentWidth * 0.2}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetX(pdfMarginLeft)
	for i, header := range []string{"Name", "Quantity", "Unit Cost", "Total"} {
		pdf.CellFormat(widths[i], pdfLineHeight, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	symbol := doc.currency()
	pdf.SetFont("Helvetica", "", 9)
	writeRow := func(name string, quantity, unitCost float64) {
		pdf.SetX(pdfMarginLeft)
		pdf.CellFormat(widths[0], pdfLineHeight, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], pdfLineHeight, fmt.Sprintf("%g", quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], pdfLineHeight, money(symbol, unitCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], pdfLineHeight, money(symbol, quantity*unitCost), "1", 1, "R", false, 0, "")
	}

	for _, item := range items {
		writeRow(item.Name, item.Quantity, item.UnitCost)
	}
	if shipping > 0 {
		writeRow("Shipping", 1, shipping)
	}
	pdf.Ln(1)
}

func writeQRStamp(pdf *fpdf.Fpdf, doc Document) error {
	stamp := quoteStamp{
		PartName:    doc.partName(),
		Revision:    doc.Input.Revision,
		Material:    doc.Input.MaterialType,
		TotalCost:   doc.Result.TotalCost,
		PriceCustom: doc.Result.PriceCustom,
		Margin:      doc.Result.CustomMargin,
		GeneratedAt: doc.GeneratedAt.Format("2006-01-02"),
	}

	data, err := json.Marshal(stamp)
	if err != nil {
		return fmt.Errorf("marshal quote stamp: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate quote QR code: %w", err)
	}

	pdf.RegisterImageOptionsReader("quote-stamp", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions("quote-stamp", pdfPageWidth-pdfMarginLeft-pdfQRSize, pdfMarginTop+12, pdfQRSize, pdfQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	return nil
}
