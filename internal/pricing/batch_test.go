package pricing

import "testing"

func batchBase() Input {
	return Input{
		PartName:     "Batch",
		FilamentCost: 40,
		LaborRate:    20,
		CustomMargin: 75,
	}
}

func TestComputeBatch_ExcludesInvalidRows(t *testing.T) {
	rows := []BatchRow{
		{Name: "no weight", Weight: 0, PrintTime: 2, Quantity: 1},
		{Name: "bracket", Weight: 50, PrintTime: 2, Quantity: 3},
	}

	result := ComputeBatch(batchBase(), rows)

	if result.ValidRows != 1 || result.InvalidRows != 1 {
		t.Fatalf("expected 1 valid and 1 invalid row, got %d/%d", result.ValidRows, result.InvalidRows)
	}
	if result.Rows[0].Valid {
		t.Fatalf("zero-weight row should be invalid: %+v", result.Rows[0])
	}
	if result.Rows[0].Reason == "" {
		t.Fatalf("invalid row should carry a reason")
	}

	// unit: 50g at 40/kg = 2.00 material, 2h at 20/h = 40.00 labor
	unitTotal := 2.0 + 40.0
	nearlyEqual(t, "row total", result.Rows[1].RowTotal, unitTotal*3)
	nearlyEqual(t, "aggregate total", result.TotalCost, unitTotal*3)
}

func TestComputeBatch_ZeroPrintTimeIsInvalid(t *testing.T) {
	rows := []BatchRow{{Name: "stalled", Weight: 80, PrintTime: 0, Quantity: 2}}

	result := ComputeBatch(batchBase(), rows)

	if result.ValidRows != 0 {
		t.Fatalf("expected no valid rows, got %d", result.ValidRows)
	}
	nearlyEqual(t, "aggregate total", result.TotalCost, 0)
}

func TestComputeBatch_ZeroQuantityCountsAsOne(t *testing.T) {
	rows := []BatchRow{{Name: "single", Weight: 100, PrintTime: 1}}

	result := ComputeBatch(batchBase(), rows)

	// 100g at 40/kg = 4.00 material, 1h at 20/h = 20.00 labor
	nearlyEqual(t, "row total", result.Rows[0].RowTotal, 24.0)
	nearlyEqual(t, "quantity", result.Rows[0].Quantity, 1)
}

func TestComputeBatch_AggregatePrices(t *testing.T) {
	rows := []BatchRow{
		{Name: "a", Weight: 500, PrintTime: 1, Quantity: 1},
		{Name: "b", Weight: 1000, PrintTime: 2, Quantity: 1},
	}
	base := Input{FilamentCost: 10, CustomMargin: 50}

	result := ComputeBatch(base, rows)

	nearlyEqual(t, "aggregate total", result.TotalCost, 5+10)
	nearlyEqual(t, "price50", result.Price50, 30)
	nearlyEqual(t, "priceCustom", result.PriceCustom, 30)
}
