package pricing

// BatchRow is one part entry in a multi-part quoting session. Weight and
// print time override the base input for that row; everything else (rates,
// machine economics, hardware) is shared.
type BatchRow struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`     // grams
	PrintTime float64 `json:"print_time"` // hours
	Quantity  float64 `json:"quantity"`
}

// BatchRowResult holds the outcome for a single batch row. Invalid rows keep
// their position but carry no cost and are excluded from the aggregate.
type BatchRowResult struct {
	Name     string  `json:"name"`
	Valid    bool    `json:"valid"`
	Reason   string  `json:"reason,omitempty"`
	Quantity float64 `json:"quantity"`
	Unit     Result  `json:"unit"`
	RowTotal float64 `json:"row_total"`
}

// BatchResult aggregates all valid rows of a batch.
type BatchResult struct {
	Rows        []BatchRowResult `json:"rows"`
	ValidRows   int              `json:"valid_rows"`
	InvalidRows int              `json:"invalid_rows"`
	TotalCost   float64          `json:"total_cost"`
	Price50     float64          `json:"price_50"`
	Price60     float64          `json:"price_60"`
	Price70     float64          `json:"price_70"`
	PriceCustom float64          `json:"price_custom"`
}

// ComputeBatch runs the engine once per row, substituting that row's weight
// and print time into the shared base input. Rows with non-positive weight or
// print time are flagged invalid and excluded from the aggregate rather than
// silently contributing zero cost. A non-positive quantity counts as one
// part.
func ComputeBatch(base Input, rows []BatchRow) BatchResult {
	result := BatchResult{Rows: make([]BatchRowResult, 0, len(rows))}

	for _, row := range rows {
		rowResult := BatchRowResult{Name: row.Name, Quantity: row.Quantity}

		switch {
		case row.Weight <= 0:
			rowResult.Reason = "weight must be greater than 0"
		case row.PrintTime <= 0:
			rowResult.Reason = "print time must be greater than 0"
		default:
			rowResult.Valid = true
		}

		if !rowResult.Valid {
			result.InvalidRows++
			result.Rows = append(result.Rows, rowResult)
			continue
		}

		in := base
		in.FilamentRequired = row.Weight
		in.PrintTime = row.PrintTime

		quantity := row.Quantity
		if quantity <= 0 {
			quantity = 1
			rowResult.Quantity = quantity
		}

		rowResult.Unit = Compute(in)
		rowResult.RowTotal = rowResult.Unit.TotalCost * quantity

		result.ValidRows++
		result.TotalCost += rowResult.RowTotal
		result.Rows = append(result.Rows, rowResult)
	}

	result.Price50 = PriceAtMargin(result.TotalCost, 50)
	result.Price60 = PriceAtMargin(result.TotalCost, 60)
	result.Price70 = PriceAtMargin(result.TotalCost, 70)
	result.PriceCustom = PriceAtMargin(result.TotalCost, base.CustomMargin)

	return result
}
