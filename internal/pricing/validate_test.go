package pricing

import "testing"

func TestValidate_CollectsAllViolations(t *testing.T) {
	in := Input{
		PartName:         "",
		FilamentCost:     -1,
		FilamentRequired: -5,
		PrintTime:        -0.5,
		HardwareItems:    []Item{{Name: "screw", Quantity: -1, UnitCost: 0.05}},
	}

	errs := Validate(in)

	if len(errs) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(errs), errs)
	}

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"part_name", "filament_cost", "filament_required", "print_time", "hardware_items[0].quantity"} {
		if !fields[want] {
			t.Fatalf("missing violation for %s in %v", want, errs)
		}
	}
}

func TestValidate_AcceptsZeroValues(t *testing.T) {
	in := Input{PartName: "Bracket"}

	if errs := Validate(in); len(errs) != 0 {
		t.Fatalf("zero-valued input should validate, got %v", errs)
	}
}

func TestValidate_UptimeAbove100(t *testing.T) {
	in := Input{PartName: "Bracket", AverageUptime: 130}

	errs := Validate(in)
	if len(errs) != 1 || errs[0].Field != "average_uptime" {
		t.Fatalf("expected a single average_uptime violation, got %v", errs)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "part_name", Message: "part name is required"},
		{Field: "print_time", Message: "must be greater than or equal to 0"},
	}

	want := "part_name: part name is required; print_time: must be greater than or equal to 0"
	if errs.Error() != want {
		t.Fatalf("Error() = %q, want %q", errs.Error(), want)
	}
}
