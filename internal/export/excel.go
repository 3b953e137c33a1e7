package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/printforge/printforge/internal/pricing"
)

const sheetName = "Pricing Breakdown"

const accentColor = "FF6B35"

// WriteExcel renders the pricing breakdown into an xlsx workbook at path,
// mirroring the layout of the printed quote sheet: product information,
// print settings, item tables, cost breakdown and suggested pricing.
func WriteExcel(path string, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newExcelStyles(f)
	if err != nil {
		return err
	}

	w := &excelWriter{f: f, styles: styles, row: 1}

	if err := w.title("PRINTFORGE PRICING BREAKDOWN"); err != nil {
		return err
	}
	w.row++

	if err := w.section("PRODUCT INFORMATION"); err != nil {
		return err
	}
	productRows := [][2]string{
		{"Part Name:", doc.partName()},
		{"Revision:", doc.Input.Revision},
		{"Prepared By:", doc.Input.PreparedBy},
		{"Date:", doc.GeneratedAt.Format("2006-01-02")},
		{"Material:", doc.Input.MaterialType},
	}
	if err := w.labelValueRows(productRows); err != nil {
		return err
	}
	w.row++

	if err := w.section("MATERIAL & PRINT SETTINGS"); err != nil {
		return err
	}
	settingsRows := [][2]string{
		{"Filament Cost:", fmt.Sprintf("%s /kg", money(doc.currency(), doc.Input.FilamentCost))},
		{"Filament Required:", fmt.Sprintf("%.2f g", doc.Input.FilamentRequired)},
		{"Print Time:", fmt.Sprintf("%.2f hours", doc.Input.PrintTime)},
		{"Labor Time:", fmt.Sprintf("%.0f minutes", doc.Input.LaborTime)},
	}
	if err := w.labelValueRows(settingsRows); err != nil {
		return err
	}
	w.row++

	if len(doc.Input.HardwareItems) > 0 {
		if err := w.itemTable("HARDWARE COMPONENTS", doc, doc.Input.HardwareItems, 0); err != nil {
			return err
		}
	}
	if len(doc.Input.PackagingItems) > 0 || doc.Input.ShippingCost > 0 {
		if err := w.itemTable("PACKAGING & SHIPPING", doc, doc.Input.PackagingItems, doc.Input.ShippingCost); err != nil {
			return err
		}
	}

	if err := w.section("COST BREAKDOWN"); err != nil {
		return err
	}
	if err := w.moneyRows(costRows(doc)); err != nil {
		return err
	}
	w.row++

	if err := w.totalRow("TOTAL LANDED COST:", money(doc.currency(), doc.Result.TotalCost)); err != nil {
		return err
	}
	w.row++

	if err := w.section("SUGGESTED PRICING"); err != nil {
		return err
	}
	if err := w.moneyRows(priceRows(doc)); err != nil {
		return err
	}

	for col, width := range map[string]float64{"A": 30, "B": 15, "C": 15, "D": 15} {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

type excelStyles struct {
	header   int
	section  int
	label    int
	value    int
	currency int
	total    int
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	styles.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 14, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{accentColor}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styles, fmt.Errorf("create header style: %w", err)
	}

	styles.section, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Arial", Size: 12, Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
	})
	if err != nil {
		return styles, fmt.Errorf("create section style: %w", err)
	}

	styles.label, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Arial", Size: 10, Bold: true},
	})
	if err != nil {
		return styles, fmt.Errorf("create label style: %w", err)
	}

	styles.value, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Arial", Size: 10},
	})
	if err != nil {
		return styles, fmt.Errorf("create value style: %w", err)
	}

	styles.currency, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 10, Bold: true, Color: accentColor},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return styles, fmt.Errorf("create currency style: %w", err)
	}

	styles.total, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 14, Bold: true, Color: accentColor},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return styles, fmt.Errorf("create total style: %w", err)
	}

	return styles, nil
}

// excelWriter tracks the current row while sections are appended top to
// bottom.
type excelWriter struct {
	f      *excelize.File
	styles excelStyles
	row    int
}

func (w *excelWriter) cell(col string) string {
	return fmt.Sprintf("%s%d", col, w.row)
}

func (w *excelWriter) title(text string) error {
	if err := w.f.MergeCell(sheetName, w.cell("A"), w.cell("D")); err != nil {
		return fmt.Errorf("merge title cells: %w", err)
	}
	if err := w.f.SetCellValue(sheetName, w.cell("A"), text); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	if err := w.f.SetCellStyle(sheetName, w.cell("A"), w.cell("D"), w.styles.header); err != nil {
		return fmt.Errorf("style title: %w", err)
	}
	if err := w.f.SetRowHeight(sheetName, w.row, 25); err != nil {
		return fmt.Errorf("set title row height: %w", err)
	}
	w.row++
	return nil
}

func (w *excelWriter) section(text string) error {
	if err := w.f.MergeCell(sheetName, w.cell("A"), w.cell("D")); err != nil {
		return fmt.Errorf("merge section cells: %w", err)
	}
	if err := w.f.SetCellValue(sheetName, w.cell("A"), text); err != nil {
		return fmt.Errorf("set section title: %w", err)
	}
	if err := w.f.SetCellStyle(sheetName, w.cell("A"), w.cell("D"), w.styles.section); err != nil {
		return fmt.Errorf("style section title: %w", err)
	}
	w.row++
	return nil
}

func (w *excelWriter) labelValueRows(rows [][2]string) error {
	for _, row := range rows {
		if err := w.f.SetCellValue(sheetName, w.cell("A"), row[0]); err != nil {
			return fmt.Errorf("set label: %w", err)
		}
		if err := w.f.SetCellStyle(sheetName, w.cell("A"), w.cell("A"), w.styles.label); err != nil {
			return fmt.Errorf("style label: %w", err)
		}
		if err := w.f.SetCellValue(sheetName, w.cell("B"), row[1]); err != nil {
			return fmt.Errorf("set value: %w", err)
		}
		if err := w.f.SetCellStyle(sheetName, w.cell("B"), w.cell("B"), w.styles.value); err != nil {
			return fmt.Errorf("style value: %w", err)
		}
		w.row++
	}
	return nil
}

func (w *excelWriter) moneyRows(rows [][2]string) error {
	for _, row := range rows {
		if err := w.f.SetCellValue(sheetName, w.cell("A"), row[0]); err != nil {
			return fmt.Errorf("set label: %w", err)
		}
		if err := w.f.SetCellStyle(sheetName, w.cell("A"), w.cell("A"), w.styles.label); err != nil {
			return fmt.Errorf("style label: %w", err)
		}
		if err := w.f.SetCellValue(sheetName, w.cell("C"), row[1]); err != nil {
			return fmt.Errorf("set amount: %w", err)
		}
		if err := w.f.SetCellStyle(sheetName, w.cell("C"), w.cell("C"), w.styles.currency); err != nil {
			return fmt.Errorf("style amount: %w", err)
		}
		w.row++
	}
	return nil
}

func (w *excelWriter) totalRow(label, amount string) error {
	if err := w.f.SetCellValue(sheetName, w.cell("A"), label); err != nil {
		return fmt.Errorf("set total label: %w", err)
	}
	if err := w.f.SetCellStyle(sheetName, w.cell("A"), w.cell("A"), w.styles.total); err != nil {
		return fmt.Errorf("style total label: %w", err)
	}
	if err := w.f.SetCellValue(sheetName, w.cell("C"), amount); err != nil {
		return fmt.Errorf("set total amount: %w", err)
	}
	if err := w.f.SetCellStyle(sheetName, w.cell("C"), w.cell("C"), w.styles.total); err != nil {
		return fmt.Errorf("style total amount: %w", err)
	}
	w.row++
	return nil
}

func (w *excelWriter) itemTable(title string, doc Document, items []pricing.Item, shipping float64) error {
	if err := w.section(title); err != nil {
		return err
	}

	headers := []string{"Name", "Quantity", "Unit Cost", "Total"}
	for i, header := range headers {
		col := string(rune('A' + i))
		if err := w.f.SetCellValue(sheetName, w.cell(col), header); err != nil {
			return fmt.Errorf("set table header: %w", err)
		}
		if err := w.f.SetCellStyle(sheetName, w.cell(col), w.cell(col), w.styles.label); err != nil {
			return fmt.Errorf("style table header: %w", err)
		}
	}
	w.row++

	symbol := doc.currency()
	writeItem := func(name string, quantity float64, unitCost float64) error {
		if err := w.f.SetCellValue(sheetName, w.cell("A"), name); err != nil {
			return fmt.Errorf("set item name: %w", err)
		}
		if err := w.f.SetCellValue(sheetName, w.cell("B"), quantity); err != nil {
			return fmt.Errorf("set item quantity: %w", err)
		}
		if err := w.f.SetCellValue(sheetName, w.cell("C"), money(symbol, unitCost)); err != nil {
			return fmt.Errorf("set item unit cost: %w", err)
		}
		if err := w.f.SetCellValue(sheetName, w.cell("D"), money(symbol, quantity*unitCost)); err != nil {
			return fmt.Errorf("set item total: %w", err)
		}
		if err := w.f.SetCellStyle(sheetName, w.cell("A"), w.cell("D"), w.styles.value); err != nil {
			return fmt.Errorf("style item row: %w", err)
		}
		w.row++
		return nil
	}

	for _, item := range items {
		if err := writeItem(item.Name, item.Quantity, item.UnitCost); err != nil {
			return err
		}
	}
	if shipping > 0 {
		if err := writeItem("Shipping", 1, shipping); err != nil {
			return err
		}
	}
	w.row++
	return nil
}
