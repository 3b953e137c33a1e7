package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Client is a customer record. DiscountPercent is the default discount the
// caller applies to a finished calculation when quoting this client.
type Client struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Contact         string  `json:"contact"`
	Notes           string  `json:"notes"`
	DiscountPercent float64 `json:"discount_percent"`
	Active          bool    `json:"active"`
}

type ClientStore struct {
	db *sql.DB
}

func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

func (s *ClientStore) Create(c Client) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO clients (name, contact, notes, discount_percent, active)
		VALUES (?, ?, ?, ?, ?)
	`, c.Name, c.Contact, c.Notes, c.DiscountPercent, c.Active)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read client id: %w", err)
	}
	return id, nil
}

func (s *ClientStore) Get(id int64) (Client, error) {
	var c Client
	err := s.db.QueryRow(`
		SELECT id, name, COALESCE(contact, ''), COALESCE(notes, ''), discount_percent, active
		FROM clients
		WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Contact, &c.Notes, &c.DiscountPercent, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return Client{}, ErrNotFound
	}
	if err != nil {
		return Client{}, fmt.Errorf("query client: %w", err)
	}
	return c, nil
}

func (s *ClientStore) Update(c Client) error {
	result, err := s.db.Exec(`
		UPDATE clients
		SET
			name = ?,
			contact = ?,
			notes = ?,
			discount_percent = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, c.Name, c.Contact, c.Notes, c.DiscountPercent, c.Active, c.ID)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return requireAffected(result)
}

func (s *ClientStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return requireAffected(result)
}

func (s *ClientStore) List() ([]Client, error) {
	rows, err := s.db.Query(`
		SELECT id, name, COALESCE(contact, ''), COALESCE(notes, ''), discount_percent, active
		FROM clients
		ORDER BY name COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]Client, 0)
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Contact, &c.Notes, &c.DiscountPercent, &c.Active); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
