package seed

import (
	"database/sql"
	"fmt"
)

const (
	defaultMaterialName = "PLA (Generic)"
	defaultProfileName  = "Default FDM Printer"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way: the settings singleton,
// one material preset and one printer profile with the stock defaults.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureSettings(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureMaterialPreset(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensurePrinterProfile(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSettings(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM settings WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check settings existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO settings (id, currency_symbol, default_margin, default_labor_rate, default_electricity_rate, company_name)
		VALUES (1, ?, ?, ?, ?, ?)
	`, "$", 75, 20, 0.30, ""); err != nil {
		return fmt.Errorf("insert settings singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureMaterialPreset(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM material_presets WHERE name = ? LIMIT 1)`, defaultMaterialName).Scan(&exists); err != nil {
		return fmt.Errorf("check default material preset existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO material_presets (name, material_type, cost_per_kg, notes, active)
		VALUES (?, ?, ?, ?, ?)
	`, defaultMaterialName, "PLA", 40, "", true); err != nil {
		return fmt.Errorf("insert default material preset: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensurePrinterProfile(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM printer_profiles WHERE name = ? LIMIT 1)`, defaultProfileName).Scan(&exists); err != nil {
		return fmt.Errorf("check default printer profile existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO printer_profiles (
			name, printer_cost, upfront_cost, annual_maintenance,
			printer_life, average_uptime, power_consumption, electricity_rate, active
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, defaultProfileName, 1000, 0, 75, 3, 50, 250, 0.30, true); err != nil {
		return fmt.Errorf("insert default printer profile: %w", err)
	}
	stats.Inserts++
	return nil
}
