package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Settings is the singleton row of regional and display preferences. It is
// loaded once at startup and threaded through explicitly to whatever needs
// it; nothing reads it from ambient global state.
type Settings struct {
	CurrencySymbol         string  `json:"currency_symbol"`
	DefaultMargin          float64 `json:"default_margin"`
	DefaultLaborRate       float64 `json:"default_labor_rate"`
	DefaultElectricityRate float64 `json:"default_electricity_rate"`
	CompanyName            string  `json:"company_name"`
}

// SettingsStore manages the settings singleton (id = 1).
type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Ensure inserts the default settings row if it does not exist yet.
func (s *SettingsStore) Ensure() error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, currency_symbol, default_margin, default_labor_rate, default_electricity_rate, company_name)
		VALUES (1, '$', 75, 20, 0.30, '')
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("insert default settings: %w", err)
	}
	return nil
}

func (s *SettingsStore) Get() (Settings, error) {
	var st Settings
	err := s.db.QueryRow(`
		SELECT currency_symbol, default_margin, default_labor_rate, default_electricity_rate, company_name
		FROM settings
		WHERE id = 1
	`).Scan(
		&st.CurrencySymbol,
		&st.DefaultMargin,
		&st.DefaultLaborRate,
		&st.DefaultElectricityRate,
		&st.CompanyName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Settings{}, fmt.Errorf("settings singleton not found")
		}
		return Settings{}, fmt.Errorf("query settings: %w", err)
	}
	return st, nil
}

func (s *SettingsStore) Update(st Settings) error {
	_, err := s.db.Exec(`
		UPDATE settings
		SET
			currency_symbol = ?,
			default_margin = ?,
			default_labor_rate = ?,
			default_electricity_rate = ?,
			company_name = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		st.CurrencySymbol,
		st.DefaultMargin,
		st.DefaultLaborRate,
		st.DefaultElectricityRate,
		st.CompanyName,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
