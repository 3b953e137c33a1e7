package export

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteCSV renders the pricing breakdown as section/label/value rows. The
// flat shape keeps the file trivially importable into spreadsheets and
// scripts.
func WriteCSV(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	records := [][]string{
		{"section", "label", "value"},
		{"product", "part_name", doc.partName()},
		{"product", "revision", doc.Input.Revision},
		{"product", "prepared_by", doc.Input.PreparedBy},
		{"product", "material", doc.Input.MaterialType},
		{"product", "date", doc.GeneratedAt.Format("2006-01-02")},
		{"settings", "filament_cost_per_kg", fmt.Sprintf("%.2f", doc.Input.FilamentCost)},
		{"settings", "filament_required_g", fmt.Sprintf("%.2f", doc.Input.FilamentRequired)},
		{"settings", "print_time_hours", fmt.Sprintf("%.2f", doc.Input.PrintTime)},
		{"settings", "labor_time_minutes", fmt.Sprintf("%.0f", doc.Input.LaborTime)},
	}

	for i, item := range doc.Input.HardwareItems {
		records = append(records, []string{
			"hardware", fmt.Sprintf("item_%d", i+1),
			fmt.Sprintf("%s x%g @ %.2f", item.Name, item.Quantity, item.UnitCost),
		})
	}
	for i, item := range doc.Input.PackagingItems {
		records = append(records, []string{
			"packaging", fmt.Sprintf("item_%d", i+1),
			fmt.Sprintf("%s x%g @ %.2f", item.Name, item.Quantity, item.UnitCost),
		})
	}

	records = append(records,
		[]string{"costs", "material_cost", fmt.Sprintf("%.2f", doc.Result.MaterialCost)},
		[]string{"costs", "labor_cost", fmt.Sprintf("%.2f", doc.Result.LaborCost)},
		[]string{"costs", "machine_depreciation", fmt.Sprintf("%.2f", doc.Result.MachineDepreciation)},
		[]string{"costs", "electricity_cost", fmt.Sprintf("%.2f", doc.Result.ElectricityCost)},
		[]string{"costs", "machine_cost_total", fmt.Sprintf("%.2f", doc.Result.MachineCostTotal)},
		[]string{"costs", "packaging_cost", fmt.Sprintf("%.2f", doc.Result.PackagingCost)},
		[]string{"costs", "total_cost", fmt.Sprintf("%.2f", doc.Result.TotalCost)},
		[]string{"costs", "cost_per_hour", fmt.Sprintf("%.4f", doc.Result.CostPerHour)},
		[]string{"pricing", "price_50", fmt.Sprintf("%.2f", doc.Result.Price50)},
		[]string{"pricing", "price_60", fmt.Sprintf("%.2f", doc.Result.Price60)},
		[]string{"pricing", "price_70", fmt.Sprintf("%.2f", doc.Result.Price70)},
		[]string{"pricing", "price_custom", fmt.Sprintf("%.2f", doc.Result.PriceCustom)},
		[]string{"pricing", "custom_margin", fmt.Sprintf("%g", doc.Result.CustomMargin)},
	)

	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
