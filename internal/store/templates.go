package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/printforge/printforge/internal/pricing"
)

// Template is a named, reusable snapshot of a full pricing input.
type Template struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Notes string        `json:"notes"`
	Input pricing.Input `json:"input"`
}

type TemplateStore struct {
	db *sql.DB
}

func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

func (s *TemplateStore) Create(t Template) (int64, error) {
	inputJSON, err := json.Marshal(t.Input)
	if err != nil {
		return 0, fmt.Errorf("marshal template input: %w", err)
	}

	result, err := s.db.Exec(`
		INSERT INTO templates (name, notes, input_json)
		VALUES (?, ?, ?)
	`, t.Name, t.Notes, string(inputJSON))
	if err != nil {
		return 0, fmt.Errorf("insert template: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read template id: %w", err)
	}
	return id, nil
}

func (s *TemplateStore) Get(id int64) (Template, error) {
	var t Template
	var inputJSON string
	err := s.db.QueryRow(`
		SELECT id, name, COALESCE(notes, ''), input_json
		FROM templates
		WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.Notes, &inputJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return Template{}, ErrNotFound
	}
	if err != nil {
		return Template{}, fmt.Errorf("query template: %w", err)
	}

	if err := json.Unmarshal([]byte(inputJSON), &t.Input); err != nil {
		return Template{}, fmt.Errorf("parse template input: %w", err)
	}
	return t, nil
}

func (s *TemplateStore) Update(t Template) error {
	inputJSON, err := json.Marshal(t.Input)
	if err != nil {
		return fmt.Errorf("marshal template input: %w", err)
	}

	result, err := s.db.Exec(`
		UPDATE templates
		SET
			name = ?,
			notes = ?,
			input_json = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, t.Name, t.Notes, string(inputJSON), t.ID)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return requireAffected(result)
}

func (s *TemplateStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return requireAffected(result)
}

func (s *TemplateStore) List() ([]Template, error) {
	rows, err := s.db.Query(`
		SELECT id, name, COALESCE(notes, ''), input_json
		FROM templates
		ORDER BY name COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	templates := make([]Template, 0)
	for rows.Next() {
		var t Template
		var inputJSON string
		if err := rows.Scan(&t.ID, &t.Name, &t.Notes, &inputJSON); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		if err := json.Unmarshal([]byte(inputJSON), &t.Input); err != nil {
			return nil, fmt.Errorf("parse template input: %w", err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}

	return templates, nil
}
