package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/printforge/printforge/internal/pricing"
)

// Quote is one persisted history entry: the input that was calculated and
// the result it produced, copied verbatim at calculation time.
type Quote struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Notes     string         `json:"notes"`
	ClientID  *int64         `json:"client_id,omitempty"`
	Input     pricing.Input  `json:"input"`
	Result    pricing.Result `json:"result"`
	CreatedAt string         `json:"created_at"`
}

// QuoteListItem is the compact row shown in history listings.
type QuoteListItem struct {
	ID        int64   `json:"id"`
	CreatedAt string  `json:"created_at"`
	Title     string  `json:"title"`
	Total     float64 `json:"total"`
}

type QuoteStore struct {
	db *sql.DB
}

func NewQuoteStore(db *sql.DB) *QuoteStore {
	return &QuoteStore{db: db}
}

func (s *QuoteStore) Create(q Quote) (int64, error) {
	inputJSON, err := json.Marshal(q.Input)
	if err != nil {
		return 0, fmt.Errorf("marshal quote input: %w", err)
	}
	resultJSON, err := json.Marshal(q.Result)
	if err != nil {
		return 0, fmt.Errorf("marshal quote result: %w", err)
	}

	result, err := s.db.Exec(`
		INSERT INTO quotes (title, notes, client_id, input_json, result_json)
		VALUES (?, ?, ?, ?, ?)
	`, q.Title, q.Notes, q.ClientID, string(inputJSON), string(resultJSON))
	if err != nil {
		return 0, fmt.Errorf("insert quote: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read quote id: %w", err)
	}
	return id, nil
}

func (s *QuoteStore) Get(id int64) (Quote, error) {
	var q Quote
	var inputJSON, resultJSON string
	err := s.db.QueryRow(`
		SELECT id, COALESCE(title, ''), COALESCE(notes, ''), client_id, input_json, result_json, created_at
		FROM quotes
		WHERE id = ?
	`, id).Scan(&q.ID, &q.Title, &q.Notes, &q.ClientID, &inputJSON, &resultJSON, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	if err != nil {
		return Quote{}, fmt.Errorf("query quote: %w", err)
	}

	if err := json.Unmarshal([]byte(inputJSON), &q.Input); err != nil {
		return Quote{}, fmt.Errorf("parse quote input: %w", err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &q.Result); err != nil {
		return Quote{}, fmt.Errorf("parse quote result: %w", err)
	}
	return q, nil
}

func (s *QuoteStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return requireAffected(result)
}

// List returns history entries newest first, optionally filtered by a
// substring match over title and notes.
func (s *QuoteStore) List(query string) ([]QuoteListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT
			id,
			created_at,
			COALESCE(title, ''),
			result_json
		FROM quotes
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]QuoteListItem, 0)
	for rows.Next() {
		var item QuoteListItem
		var resultJSON string
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.Title, &resultJSON); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		item.Total = extractTotalFromJSON(resultJSON)
		quotes = append(quotes, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

// extractTotalFromJSON reads the total cost out of a stored result document
// without fully decoding it. Older exports used different key names.
func extractTotalFromJSON(resultJSON string) float64 {
	var values map[string]json.RawMessage
	if err := json.Unmarshal([]byte(resultJSON), &values); err != nil {
		return 0
	}

	for _, key := range []string{"total_cost", "total", "grand_total"} {
		raw, ok := values[key]
		if !ok {
			continue
		}
		var total float64
		if err := json.Unmarshal(raw, &total); err == nil {
			return total
		}
	}

	return 0
}
