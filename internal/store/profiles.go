package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// PrinterProfile bundles the machine economics of one printer so quotes can
// switch machines without retyping amortization parameters.
type PrinterProfile struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	PrinterCost       float64 `json:"printer_cost"`
	UpfrontCost       float64 `json:"upfront_cost"`
	AnnualMaintenance float64 `json:"annual_maintenance"`
	PrinterLife       float64 `json:"printer_life"`
	AverageUptime     float64 `json:"average_uptime"`
	PowerConsumption  float64 `json:"power_consumption"`
	ElectricityRate   float64 `json:"electricity_rate"`
	Active            bool    `json:"active"`
}

type PrinterProfileStore struct {
	db *sql.DB
}

func NewPrinterProfileStore(db *sql.DB) *PrinterProfileStore {
	return &PrinterProfileStore{db: db}
}

func (s *PrinterProfileStore) Create(p PrinterProfile) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO printer_profiles (
			name, printer_cost, upfront_cost, annual_maintenance,
			printer_life, average_uptime, power_consumption, electricity_rate, active
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.PrinterCost, p.UpfrontCost, p.AnnualMaintenance,
		p.PrinterLife, p.AverageUptime, p.PowerConsumption, p.ElectricityRate, p.Active)
	if err != nil {
		return 0, fmt.Errorf("insert printer profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read printer profile id: %w", err)
	}
	return id, nil
}

func (s *PrinterProfileStore) Get(id int64) (PrinterProfile, error) {
	var p PrinterProfile
	err := s.db.QueryRow(`
		SELECT id, name, printer_cost, upfront_cost, annual_maintenance,
			printer_life, average_uptime, power_consumption, electricity_rate, active
		FROM printer_profiles
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.PrinterCost, &p.UpfrontCost, &p.AnnualMaintenance,
		&p.PrinterLife, &p.AverageUptime, &p.PowerConsumption, &p.ElectricityRate, &p.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return PrinterProfile{}, ErrNotFound
	}
	if err != nil {
		return PrinterProfile{}, fmt.Errorf("query printer profile: %w", err)
	}
	return p, nil
}

func (s *PrinterProfileStore) Update(p PrinterProfile) error {
	result, err := s.db.Exec(`
		UPDATE printer_profiles
		SET
			name = ?,
			printer_cost = ?,
			upfront_cost = ?,
			annual_maintenance = ?,
			printer_life = ?,
			average_uptime = ?,
			power_consumption = ?,
			electricity_rate = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Name, p.PrinterCost, p.UpfrontCost, p.AnnualMaintenance,
		p.PrinterLife, p.AverageUptime, p.PowerConsumption, p.ElectricityRate, p.Active, p.ID)
	if err != nil {
		return fmt.Errorf("update printer profile: %w", err)
	}
	return requireAffected(result)
}

func (s *PrinterProfileStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM printer_profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete printer profile: %w", err)
	}
	return requireAffected(result)
}

func (s *PrinterProfileStore) List() ([]PrinterProfile, error) {
	rows, err := s.db.Query(`
		SELECT id, name, printer_cost, upfront_cost, annual_maintenance,
			printer_life, average_uptime, power_consumption, electricity_rate, active
		FROM printer_profiles
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query printer profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]PrinterProfile, 0)
	for rows.Next() {
		var p PrinterProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.PrinterCost, &p.UpfrontCost, &p.AnnualMaintenance,
			&p.PrinterLife, &p.AverageUptime, &p.PowerConsumption, &p.ElectricityRate, &p.Active); err != nil {
			return nil, fmt.Errorf("scan printer profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate printer profiles: %w", err)
	}

	return profiles, nil
}
