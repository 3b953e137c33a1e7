// Package backup snapshots every record collection into a single versioned
// JSON file and restores it back, for moving data between installs and for
// scheduled safety copies.
package backup

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/printforge/printforge/internal/store"
)

// Version is the snapshot format version written into every backup file.
const Version = "1.0"

// Snapshot is the top-level structure of a backup file. Checksum covers the
// Data document so a tampered or truncated file is rejected on import.
type Snapshot struct {
	Version   string `json:"version"`
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Checksum  string `json:"checksum"`
	Data      Data   `json:"data"`
}

// Data holds every collection captured by a snapshot.
type Data struct {
	Settings        store.Settings         `json:"settings"`
	Clients         []store.Client         `json:"clients"`
	MaterialPresets []store.MaterialPreset `json:"material_presets"`
	PrinterProfiles []store.PrinterProfile `json:"printer_profiles"`
	Templates       []store.Template       `json:"templates"`
	Quotes          []store.Quote          `json:"quotes"`
}

// Take reads every collection and assembles a new snapshot.
func Take(db *sql.DB) (Snapshot, error) {
	settings, err := store.NewSettingsStore(db).Get()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot settings: %w", err)
	}
	clients, err := store.NewClientStore(db).List()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot clients: %w", err)
	}
	presets, err := store.NewMaterialPresetStore(db).List()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot material presets: %w", err)
	}
	profiles, err := store.NewPrinterProfileStore(db).List()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot printer profiles: %w", err)
	}
	templates, err := store.NewTemplateStore(db).List()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot templates: %w", err)
	}
	quotes, err := listAllQuotes(db)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot quotes: %w", err)
	}

	data := Data{
		Settings:        settings,
		Clients:         clients,
		MaterialPresets: presets,
		PrinterProfiles: profiles,
		Templates:       templates,
		Quotes:          quotes,
	}

	sum, err := checksum(data)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Version:   Version,
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Checksum:  sum,
		Data:      data,
	}, nil
}

// Write stores a snapshot as indented JSON, creating parent directories as
// needed.
func Write(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// Read loads a snapshot file and validates its version and checksum.
func Read(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read backup file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse backup file: %w", err)
	}
	if snap.Version == "" {
		return Snapshot{}, fmt.Errorf("invalid backup file: missing version field")
	}

	sum, err := checksum(snap.Data)
	if err != nil {
		return Snapshot{}, err
	}
	if sum != snap.Checksum {
		return Snapshot{}, fmt.Errorf("backup checksum mismatch: file is corrupted or was modified")
	}

	return snap, nil
}

// Restore replaces every collection with the snapshot's contents in a single
// transaction. Record IDs are preserved so quote-to-client references stay
// intact.
func Restore(db *sql.DB, snap Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin restore transaction: %w", err)
	}

	if err := restoreAll(tx, snap.Data); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit restore transaction: %w", err)
	}
	return nil
}

func restoreAll(tx *sql.Tx, data Data) error {
	for _, table := range []string{"quotes", "templates", "printer_profiles", "material_presets", "clients"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(`
		UPDATE settings
		SET currency_symbol = ?, default_margin = ?, default_labor_rate = ?, default_electricity_rate = ?, company_name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, data.Settings.CurrencySymbol, data.Settings.DefaultMargin, data.Settings.DefaultLaborRate,
		data.Settings.DefaultElectricityRate, data.Settings.CompanyName); err != nil {
		return fmt.Errorf("restore settings: %w", err)
	}

	for _, c := range data.Clients {
		if _, err := tx.Exec(`
			INSERT INTO clients (id, name, contact, notes, discount_percent, active)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, c.Name, c.Contact, c.Notes, c.DiscountPercent, c.Active); err != nil {
			return fmt.Errorf("restore client %q: %w", c.Name, err)
		}
	}

	for _, p := range data.MaterialPresets {
		if _, err := tx.Exec(`
			INSERT INTO material_presets (id, name, material_type, cost_per_kg, notes, active)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.MaterialType, p.CostPerKg, p.Notes, p.Active); err != nil {
			return fmt.Errorf("restore material preset %q: %w", p.Name, err)
		}
	}

	for _, p := range data.PrinterProfiles {
		if _, err := tx.Exec(`
			INSERT INTO printer_profiles (
				id, name, printer_cost, upfront_cost, annual_maintenance,
				printer_life, average_uptime, power_consumption, electricity_rate, active
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.PrinterCost, p.UpfrontCost, p.AnnualMaintenance,
			p.PrinterLife, p.AverageUptime, p.PowerConsumption, p.ElectricityRate, p.Active); err != nil {
			return fmt.Errorf("restore printer profile %q: %w", p.Name, err)
		}
	}

	for _, t := range data.Templates {
		inputJSON, err := json.Marshal(t.Input)
		if err != nil {
			return fmt.Errorf("marshal template %q input: %w", t.Name, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO templates (id, name, notes, input_json)
			VALUES (?, ?, ?, ?)
		`, t.ID, t.Name, t.Notes, string(inputJSON)); err != nil {
			return fmt.Errorf("restore template %q: %w", t.Name, err)
		}
	}

	for _, q := range data.Quotes {
		inputJSON, err := json.Marshal(q.Input)
		if err != nil {
			return fmt.Errorf("marshal quote %d input: %w", q.ID, err)
		}
		resultJSON, err := json.Marshal(q.Result)
		if err != nil {
			return fmt.Errorf("marshal quote %d result: %w", q.ID, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO quotes (id, title, notes, client_id, input_json, result_json, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, q.ID, q.Title, q.Notes, q.ClientID, string(inputJSON), string(resultJSON), q.CreatedAt); err != nil {
			return fmt.Errorf("restore quote %d: %w", q.ID, err)
		}
	}

	return nil
}

func listAllQuotes(db *sql.DB) ([]store.Quote, error) {
	quotes := store.NewQuoteStore(db)

	items, err := quotes.List("")
	if err != nil {
		return nil, err
	}

	all := make([]store.Quote, 0, len(items))
	for _, item := range items {
		q, err := quotes.Get(item.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, q)
	}
	return all, nil
}

func checksum(data Data) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot data: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
