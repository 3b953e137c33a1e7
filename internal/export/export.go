// Package export renders a finished pricing calculation into spreadsheet,
// PDF and CSV documents.
package export

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/printforge/printforge/internal/pricing"
)

// Document bundles everything an export format needs: the calculated input
// and result plus presentation metadata.
type Document struct {
	Input          pricing.Input
	Result         pricing.Result
	CurrencySymbol string
	CompanyName    string
	GeneratedAt    time.Time
}

func (d Document) currency() string {
	if d.CurrencySymbol == "" {
		return "$"
	}
	return d.CurrencySymbol
}

func (d Document) partName() string {
	if strings.TrimSpace(d.Input.PartName) == "" {
		return "New Part"
	}
	return d.Input.PartName
}

// Filename derives a filesystem-safe export file name from the part name.
// The part name is client input, so path separators and dot-dot segments are
// stripped before it is used in a path.
func (d Document) Filename(extension string) string {
	name := strings.ReplaceAll(d.partName(), " ", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		name = "New_Part"
	}
	return name + "_Pricing." + extension
}

// money formats a currency amount with exactly two decimals.
func money(symbol string, v float64) string {
	return symbol + decimal.NewFromFloat(v).StringFixed(2)
}

// costRows returns the cost breakdown section in display order.
func costRows(d Document) [][2]string {
	symbol := d.currency()
	return [][2]string{
		{"Materials Cost:", money(symbol, d.Result.MaterialCost)},
		{"Labor Cost:", money(symbol, d.Result.LaborCost)},
		{"Machine Cost:", money(symbol, d.Result.MachineCostTotal)},
		{"Packaging & Shipping:", money(symbol, d.Result.PackagingCost)},
	}
}

// priceRows returns the suggested pricing section in display order.
func priceRows(d Document) [][2]string {
	symbol := d.currency()
	customLabel := decimal.NewFromFloat(d.Result.CustomMargin).String() + "% Margin (Custom):"
	return [][2]string{
		{"50% Margin:", money(symbol, d.Result.Price50)},
		{"60% Margin:", money(symbol, d.Result.Price60)},
		{"70% Margin:", money(symbol, d.Result.Price70)},
		{customLabel, money(symbol, d.Result.PriceCustom)},
	}
}
