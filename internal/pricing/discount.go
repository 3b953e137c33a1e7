package pricing

// ApplyDiscount applies a client discount percentage to an already-computed
// result. The discount is a post-processing step over the total and each
// price tier; the underlying cost components are left untouched so the
// original breakdown stays visible next to the discounted figures.
func ApplyDiscount(r Result, discountPercent float64) Result {
	if discountPercent <= 0 {
		return r
	}
	if discountPercent > 100 {
		discountPercent = 100
	}

	factor := 1 - discountPercent/100.0
	r.TotalCost *= factor
	r.Price50 *= factor
	r.Price60 *= factor
	r.Price70 *= factor
	r.PriceCustom *= factor
	return r
}
