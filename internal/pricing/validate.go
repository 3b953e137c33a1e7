package pricing

import (
	"fmt"
	"strings"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is the full set of violations found in one input.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks an input before calculation. All violations are collected
// and returned together; a non-empty result means no calculation should be
// performed.
func Validate(in Input) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(in.PartName) == "" {
		errs = append(errs, FieldError{Field: "part_name", Message: "part name is required"})
	}

	nonNegative := func(field string, value float64) {
		if value < 0 {
			errs = append(errs, FieldError{Field: field, Message: "must be greater than or equal to 0"})
		}
	}

	nonNegative("filament_cost", in.FilamentCost)
	nonNegative("filament_required", in.FilamentRequired)
	nonNegative("print_time", in.PrintTime)
	nonNegative("labor_time", in.LaborTime)
	nonNegative("shipping_cost", in.ShippingCost)
	nonNegative("printer_cost", in.PrinterCost)
	nonNegative("upfront_cost", in.UpfrontCost)
	nonNegative("annual_maintenance", in.AnnualMaintenance)
	nonNegative("printer_life", in.PrinterLife)
	nonNegative("average_uptime", in.AverageUptime)
	nonNegative("power_consumption", in.PowerConsumption)
	nonNegative("electricity_rate", in.ElectricityRate)
	nonNegative("electricity_daily", in.ElectricityDaily)
	nonNegative("labor_rate", in.LaborRate)
	nonNegative("custom_margin", in.CustomMargin)

	if in.AverageUptime > 100 {
		errs = append(errs, FieldError{Field: "average_uptime", Message: "must be between 0 and 100"})
	}

	for i, item := range in.HardwareItems {
		nonNegative(fmt.Sprintf("hardware_items[%d].quantity", i), item.Quantity)
		nonNegative(fmt.Sprintf("hardware_items[%d].unit_cost", i), item.UnitCost)
	}
	for i, item := range in.PackagingItems {
		nonNegative(fmt.Sprintf("packaging_items[%d].quantity", i), item.Quantity)
		nonNegative(fmt.Sprintf("packaging_items[%d].unit_cost", i), item.UnitCost)
	}

	return errs
}
