package pricing

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9*math.Max(1, math.Abs(want)) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCompute_MaterialCost(t *testing.T) {
	result := Compute(Input{FilamentRequired: 100, FilamentCost: 40})

	nearlyEqual(t, "materialCost", result.MaterialCost, 4.00)
	nearlyEqual(t, "totalCost", result.TotalCost, 4.00)
}

func TestCompute_MaterialCostWithEfficiencyFactor(t *testing.T) {
	plain := Compute(Input{FilamentRequired: 1000, FilamentCost: 10})
	corrected := Compute(Input{FilamentRequired: 1000, FilamentCost: 10, EfficiencyFactor: 1.1})

	nearlyEqual(t, "plain materialCost", plain.MaterialCost, 10)
	nearlyEqual(t, "corrected materialCost", corrected.MaterialCost, 11)
}

func TestCompute_LaborCostUsesPrintTime(t *testing.T) {
	result := Compute(Input{PrintTime: 2, LaborRate: 20, LaborTime: 45})

	nearlyEqual(t, "laborCost", result.LaborCost, 40.00)
}

func TestCompute_MachineCostChain(t *testing.T) {
	in := Input{
		PrintTime:         2,
		PrinterCost:       1000,
		UpfrontCost:       0,
		AnnualMaintenance: 75,
		PrinterLife:       3,
		AverageUptime:     50,
	}

	result := Compute(in)

	// lifetime hours = 3 * 365 * 24 * 0.5 = 13140
	depreciationPerHour := 1000.0 / 13140.0
	maintenancePerHour := 75.0 / (365.0 * 24.0 * 0.5)
	costPerHour := depreciationPerHour + maintenancePerHour

	nearlyEqual(t, "costPerHour", result.CostPerHour, costPerHour)
	nearlyEqual(t, "machineDepreciation", result.MachineDepreciation, 2*costPerHour)
	nearlyEqual(t, "machineCostTotal", result.MachineCostTotal, result.MachineDepreciation+result.ElectricityCost)
}

func TestCompute_ElectricityCost(t *testing.T) {
	in := Input{
		PrintTime:        10,
		PowerConsumption: 250,
		ElectricityRate:  0.30,
	}

	result := Compute(in)

	nearlyEqual(t, "electricityCost", result.ElectricityCost, 0.25*10*0.30)

	in.ElectricityDaily = 1.50
	withFixed := Compute(in)

	nearlyEqual(t, "electricityCost with daily charge", withFixed.ElectricityCost, 0.25*10*0.30+(10.0/24.0)*1.50)
}

func TestCompute_PackagingCost(t *testing.T) {
	in := Input{
		HardwareItems: []Item{
			{Name: "M3 insert", Quantity: 4, UnitCost: 0.12},
			{Name: "M3x8 screw", Quantity: 4, UnitCost: 0.05},
		},
		PackagingItems: []Item{
			{Name: "Box", Quantity: 1, UnitCost: 0.80},
		},
		ShippingCost: 4.50,
	}

	result := Compute(in)

	nearlyEqual(t, "packagingCost", result.PackagingCost, 4*0.12+4*0.05+0.80+4.50)
	nearlyEqual(t, "totalCost", result.TotalCost, result.PackagingCost)
}

func TestCompute_TotalIsSumOfComponents(t *testing.T) {
	in := Input{
		FilamentCost:      42,
		FilamentRequired:  180,
		PrintTime:         6.5,
		LaborRate:         22,
		PrinterCost:       1200,
		UpfrontCost:       150,
		AnnualMaintenance: 90,
		PrinterLife:       4,
		AverageUptime:     60,
		PowerConsumption:  300,
		ElectricityRate:   0.28,
		ShippingCost:      6,
		HardwareItems:     []Item{{Name: "Bearing", Quantity: 2, UnitCost: 1.25}},
		CustomMargin:      75,
	}

	result := Compute(in)

	sum := result.MaterialCost + result.LaborCost + result.MachineCostTotal + result.PackagingCost
	nearlyEqual(t, "totalCost", result.TotalCost, sum)
	nearlyEqual(t, "machineCostTotal", result.MachineCostTotal, result.MachineDepreciation+result.ElectricityCost)
}

func TestCompute_MarginOnPriceTiers(t *testing.T) {
	// Shipping alone gives an exact total of 100 to price against.
	in := Input{ShippingCost: 100, CustomMargin: 75}

	result := Compute(in)

	nearlyEqual(t, "price50", result.Price50, 200)
	nearlyEqual(t, "price60", result.Price60, 250)
	nearlyEqual(t, "price70", result.Price70, 100.0/0.3)
	nearlyEqual(t, "priceCustom", result.PriceCustom, 400)

	if !(result.Price50 < result.Price60 && result.Price60 < result.Price70) {
		t.Fatalf("price tiers are not ordered: %v %v %v", result.Price50, result.Price60, result.Price70)
	}
}

func TestCompute_MarginAtOrAbove100ReturnsZero(t *testing.T) {
	result := Compute(Input{ShippingCost: 100, CustomMargin: 100})
	nearlyEqual(t, "priceCustom at 100%", result.PriceCustom, 0)

	result = Compute(Input{ShippingCost: 100, CustomMargin: 120})
	nearlyEqual(t, "priceCustom above 100%", result.PriceCustom, 0)
}

func TestCompute_ZeroLifetimeGuards(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"zero printer life", Input{PrintTime: 2, PrinterCost: 1000, AverageUptime: 50}},
		{"zero uptime", Input{PrintTime: 2, PrinterCost: 1000, PrinterLife: 3}},
		{"zero life and uptime", Input{PrintTime: 2, PrinterCost: 1000, AnnualMaintenance: 75}},
	}

	for _, tc := range cases {
		result := Compute(tc.in)
		if math.IsNaN(result.MachineDepreciation) || math.IsInf(result.MachineDepreciation, 0) {
			t.Fatalf("%s: machineDepreciation is not finite: %v", tc.name, result.MachineDepreciation)
		}
		nearlyEqual(t, tc.name+" machineDepreciation", result.MachineDepreciation, 0)
		nearlyEqual(t, tc.name+" costPerHour", result.CostPerHour, 0)
	}
}

func TestCompute_MonotonicInFilamentCost(t *testing.T) {
	in := Input{FilamentRequired: 250, FilamentCost: 20, PrintTime: 3, LaborRate: 15}

	cheap := Compute(in)
	in.FilamentCost = 30
	expensive := Compute(in)

	if expensive.MaterialCost <= cheap.MaterialCost {
		t.Fatalf("materialCost did not increase: %v -> %v", cheap.MaterialCost, expensive.MaterialCost)
	}
	if expensive.TotalCost <= cheap.TotalCost {
		t.Fatalf("totalCost did not increase: %v -> %v", cheap.TotalCost, expensive.TotalCost)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	in := Input{
		FilamentCost:     40,
		FilamentRequired: 123.4,
		PrintTime:        5.25,
		LaborRate:        20,
		PrinterCost:      1000,
		PrinterLife:      3,
		AverageUptime:    50,
		CustomMargin:     66,
	}

	first := Compute(in)
	second := Compute(in)

	if first != second {
		t.Fatalf("results differ for identical input:\n%+v\n%+v", first, second)
	}
}
