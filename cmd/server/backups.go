package main

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/printforge/printforge/internal/backup"
	"github.com/printforge/printforge/internal/store"
)

func (s *server) handleBackupsList(w http.ResponseWriter, r *http.Request) {
	records, err := s.backups.List()
	if err != nil {
		s.writeStoreError(w, err, "list backups")
		return
	}
	writeJSON(w, http.StatusOK, listResponse[store.BackupRecord]{Success: true, Records: records})
}

// handleBackupsCreate snapshots every collection to a checksummed file and
// registers it.
func (s *server) handleBackupsCreate(w http.ResponseWriter, r *http.Request) {
	snap, err := backup.Take(s.db)
	if err != nil {
		s.log.Error("take backup snapshot", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to create backup")
		return
	}

	path := filepath.Join(s.cfg.DataDir, "backups", snap.ID+".json")
	if err := backup.Write(path, snap); err != nil {
		s.log.Error("write backup file", zap.String("path", path), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to create backup")
		return
	}

	record := store.BackupRecord{
		ID:        snap.ID,
		Path:      path,
		Checksum:  snap.Checksum,
		Version:   snap.Version,
		CreatedAt: snap.CreatedAt,
	}
	if err := s.backups.Create(record); err != nil {
		s.writeStoreError(w, err, "register backup")
		return
	}

	s.log.Info("backup created", zap.String("id", snap.ID), zap.String("path", path))
	writeJSON(w, http.StatusCreated, recordResponse[store.BackupRecord]{Success: true, Record: record})
}

// handleBackupsRestore replaces every collection with the snapshot contents.
// The file checksum is verified on read, so a tampered snapshot never
// reaches the database.
func (s *server) handleBackupsRestore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	record, err := s.backups.Get(id)
	if err != nil {
		s.writeStoreError(w, err, "load backup")
		return
	}

	snap, err := backup.Read(record.Path)
	if err != nil {
		s.log.Error("read backup file", zap.String("path", record.Path), zap.Error(err))
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := backup.Restore(s.db, snap); err != nil {
		s.log.Error("restore backup", zap.String("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to restore backup")
		return
	}

	s.log.Info("backup restored", zap.String("id", id))
	writeJSON(w, http.StatusOK, recordResponse[store.BackupRecord]{Success: true, Record: record})
}
