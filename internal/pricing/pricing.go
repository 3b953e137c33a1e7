package pricing

// DefaultCustomMargin is the margin applied when a request does not specify one.
const DefaultCustomMargin = 75.0

const hoursPerYear = 365.0 * 24.0

// Item is a priced line item attached to a part, such as an insert,
// fastener or box.
type Item struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
}

// Input carries every parameter of a single pricing request. Part identity
// fields are informational and never enter the arithmetic.
type Input struct {
	PartName     string `json:"part_name"`
	Revision     string `json:"revision"`
	PreparedBy   string `json:"prepared_by"`
	MaterialType string `json:"material_type"`

	FilamentCost     float64 `json:"filament_cost"`     // currency per kg
	FilamentRequired float64 `json:"filament_required"` // grams
	PrintTime        float64 `json:"print_time"`        // hours
	// LaborTime is collected in minutes for reporting only; the labor cost
	// formula is print-time based.
	LaborTime float64 `json:"labor_time"`

	HardwareItems  []Item  `json:"hardware_items"`
	PackagingItems []Item  `json:"packaging_items"`
	ShippingCost   float64 `json:"shipping_cost"`

	PrinterCost       float64 `json:"printer_cost"`
	UpfrontCost       float64 `json:"upfront_cost"`
	AnnualMaintenance float64 `json:"annual_maintenance"`
	PrinterLife       float64 `json:"printer_life"`   // years
	AverageUptime     float64 `json:"average_uptime"` // percent, 0-100

	PowerConsumption float64 `json:"power_consumption"` // watts
	ElectricityRate  float64 `json:"electricity_rate"`  // currency per kWh
	ElectricityDaily float64 `json:"electricity_daily"` // fixed currency per day of printing

	// EfficiencyFactor scales material cost for purge, supports and failed
	// starts. Zero means no correction (factor 1).
	EfficiencyFactor float64 `json:"efficiency_factor"`

	LaborRate    float64 `json:"labor_rate"`    // currency per hour
	CustomMargin float64 `json:"custom_margin"` // percent
}

// Result is the full cost breakdown and the margin-based sale prices for one
// pricing request.
type Result struct {
	MaterialCost        float64 `json:"material_cost"`
	LaborCost           float64 `json:"labor_cost"`
	MachineDepreciation float64 `json:"machine_depreciation"`
	ElectricityCost     float64 `json:"electricity_cost"`
	MachineCostTotal    float64 `json:"machine_cost_total"`
	PackagingCost       float64 `json:"packaging_cost"`
	TotalCost           float64 `json:"total_cost"`
	CostPerHour         float64 `json:"cost_per_hour"`

	Price50      float64 `json:"price_50"`
	Price60      float64 `json:"price_60"`
	Price70      float64 `json:"price_70"`
	PriceCustom  float64 `json:"price_custom"`
	CustomMargin float64 `json:"custom_margin"`
}

// Compute derives the cost breakdown and price tiers for one input. It is a
// pure function: no I/O, no shared state, identical output for identical
// input. Degenerate configurations (zero lifetime hours, margin at or above
// 100%) produce defined zero values instead of NaN or infinity.
func Compute(in Input) Result {
	efficiency := in.EfficiencyFactor
	if efficiency <= 0 {
		efficiency = 1
	}
	materialCost := (in.FilamentRequired / 1000.0) * in.FilamentCost * efficiency

	laborCost := in.PrintTime * in.LaborRate

	uptimeFraction := in.AverageUptime / 100.0
	lifetimeHours := in.PrinterLife * hoursPerYear * uptimeFraction

	depreciationPerHour := 0.0
	if lifetimeHours > 0 {
		depreciationPerHour = (in.PrinterCost + in.UpfrontCost) / lifetimeHours
	}

	maintenancePerHour := 0.0
	if annualHours := hoursPerYear * uptimeFraction; annualHours > 0 {
		maintenancePerHour = in.AnnualMaintenance / annualHours
	}

	costPerHour := depreciationPerHour + maintenancePerHour
	machineDepreciation := in.PrintTime * costPerHour

	electricityUsage := (in.PowerConsumption / 1000.0) * in.PrintTime * in.ElectricityRate
	electricityFixed := (in.PrintTime / 24.0) * in.ElectricityDaily
	electricityCost := electricityUsage + electricityFixed

	machineCostTotal := machineDepreciation + electricityCost

	packagingCost := itemsTotal(in.HardwareItems) + itemsTotal(in.PackagingItems) + in.ShippingCost

	totalCost := materialCost + laborCost + machineCostTotal + packagingCost

	return Result{
		MaterialCost:        materialCost,
		LaborCost:           laborCost,
		MachineDepreciation: machineDepreciation,
		ElectricityCost:     electricityCost,
		MachineCostTotal:    machineCostTotal,
		PackagingCost:       packagingCost,
		TotalCost:           totalCost,
		CostPerHour:         costPerHour,
		Price50:             PriceAtMargin(totalCost, 50),
		Price60:             PriceAtMargin(totalCost, 60),
		Price70:             PriceAtMargin(totalCost, 70),
		PriceCustom:         PriceAtMargin(totalCost, in.CustomMargin),
		CustomMargin:        in.CustomMargin,
	}
}

// PriceAtMargin converts a cost into a sale price at the given margin
// percentage, treating cost as the (1 - margin) share of the price.
// Margins at or above 100% have no finite price and return 0.
func PriceAtMargin(totalCost, marginPercent float64) float64 {
	if marginPercent >= 100 {
		return 0
	}
	return totalCost / (1 - marginPercent/100.0)
}

func itemsTotal(items []Item) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Quantity * item.UnitCost
	}
	return total
}
