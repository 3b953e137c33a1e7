package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// MaterialPreset is a catalog entry of filament type and cost per kilogram.
type MaterialPreset struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	MaterialType string  `json:"material_type"`
	CostPerKg    float64 `json:"cost_per_kg"`
	Notes        string  `json:"notes"`
	Active       bool    `json:"active"`
}

type MaterialPresetStore struct {
	db *sql.DB
}

func NewMaterialPresetStore(db *sql.DB) *MaterialPresetStore {
	return &MaterialPresetStore{db: db}
}

func (s *MaterialPresetStore) Create(p MaterialPreset) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO material_presets (name, material_type, cost_per_kg, notes, active)
		VALUES (?, ?, ?, ?, ?)
	`, p.Name, p.MaterialType, p.CostPerKg, p.Notes, p.Active)
	if err != nil {
		return 0, fmt.Errorf("insert material preset: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read material preset id: %w", err)
	}
	return id, nil
}

func (s *MaterialPresetStore) Get(id int64) (MaterialPreset, error) {
	var p MaterialPreset
	err := s.db.QueryRow(`
		SELECT id, name, material_type, cost_per_kg, COALESCE(notes, ''), active
		FROM material_presets
		WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.MaterialType, &p.CostPerKg, &p.Notes, &p.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return MaterialPreset{}, ErrNotFound
	}
	if err != nil {
		return MaterialPreset{}, fmt.Errorf("query material preset: %w", err)
	}
	return p, nil
}

func (s *MaterialPresetStore) Update(p MaterialPreset) error {
	result, err := s.db.Exec(`
		UPDATE material_presets
		SET
			name = ?,
			material_type = ?,
			cost_per_kg = ?,
			notes = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Name, p.MaterialType, p.CostPerKg, p.Notes, p.Active, p.ID)
	if err != nil {
		return fmt.Errorf("update material preset: %w", err)
	}
	return requireAffected(result)
}

func (s *MaterialPresetStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM material_presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete material preset: %w", err)
	}
	return requireAffected(result)
}

func (s *MaterialPresetStore) List() ([]MaterialPreset, error) {
	rows, err := s.db.Query(`
		SELECT id, name, material_type, cost_per_kg, COALESCE(notes, ''), active
		FROM material_presets
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query material presets: %w", err)
	}
	defer rows.Close()

	presets := make([]MaterialPreset, 0)
	for rows.Next() {
		var p MaterialPreset
		if err := rows.Scan(&p.ID, &p.Name, &p.MaterialType, &p.CostPerKg, &p.Notes, &p.Active); err != nil {
			return nil, fmt.Errorf("scan material preset: %w", err)
		}
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate material presets: %w", err)
	}

	return presets, nil
}
