package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// BackupRecord is a registry entry pointing at a snapshot file on disk.
type BackupRecord struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Checksum  string `json:"checksum"`
	Version   string `json:"version"`
	CreatedAt string `json:"created_at"`
}

type BackupStore struct {
	db *sql.DB
}

func NewBackupStore(db *sql.DB) *BackupStore {
	return &BackupStore{db: db}
}

// Create registers a snapshot. CreatedAt is the snapshot's own timestamp so
// the registry and the file agree on when the backup was taken.
func (s *BackupStore) Create(b BackupRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO backups (id, path, checksum, version, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, b.ID, b.Path, b.Checksum, b.Version, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert backup record: %w", err)
	}
	return nil
}

func (s *BackupStore) Get(id string) (BackupRecord, error) {
	var b BackupRecord
	err := s.db.QueryRow(`
		SELECT id, path, checksum, version, created_at
		FROM backups
		WHERE id = ?
	`, id).Scan(&b.ID, &b.Path, &b.Checksum, &b.Version, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return BackupRecord{}, ErrNotFound
	}
	if err != nil {
		return BackupRecord{}, fmt.Errorf("query backup record: %w", err)
	}
	return b, nil
}

func (s *BackupStore) List() ([]BackupRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, path, checksum, version, created_at
		FROM backups
		ORDER BY datetime(created_at) DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query backup records: %w", err)
	}
	defer rows.Close()

	records := make([]BackupRecord, 0)
	for rows.Next() {
		var b BackupRecord
		if err := rows.Scan(&b.ID, &b.Path, &b.Checksum, &b.Version, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup record: %w", err)
		}
		records = append(records, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backup records: %w", err)
	}

	return records, nil
}
