package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/printforge/printforge/internal/pricing"
)

const configVersion = "1.0"

// configDocument is the portable form of a pricing setup: every input field
// plus enough metadata to recognize the file later.
type configDocument struct {
	Version   string        `json:"version"`
	SavedDate string        `json:"saved_date"`
	Config    pricing.Input `json:"config"`
}

type configSaveResponse struct {
	Success bool           `json:"success"`
	Path    string         `json:"path"`
	Saved   configDocument `json:"saved"`
}

type configLoadResponse struct {
	Success bool          `json:"success"`
	Config  pricing.Input `json:"config"`
}

// handleConfigSave snapshots the posted input into a JSON file under the
// data directory and echoes the document back.
func (s *server) handleConfigSave(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc := configDocument{
		Version:   configVersion,
		SavedDate: time.Now().UTC().Format(time.RFC3339),
		Config:    req.input(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.log.Error("marshal config document", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save configuration")
		return
	}

	dir := filepath.Join(s.cfg.DataDir, "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.Error("create config directory", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save configuration")
		return
	}

	path := filepath.Join(dir, configFilename(doc.Config.PartName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.log.Error("write config file", zap.String("path", path), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save configuration")
		return
	}

	writeJSON(w, http.StatusCreated, configSaveResponse{Success: true, Path: path, Saved: doc})
}

// handleConfigLoad accepts a previously saved configuration file as a
// multipart upload and returns the parsed input.
func (s *server) handleConfigLoad(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRequestBody); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	var doc configDocument
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		s.writeError(w, http.StatusBadRequest, "file is not a valid configuration")
		return
	}
	if doc.Version != configVersion {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported configuration version %q", doc.Version))
		return
	}

	writeJSON(w, http.StatusOK, configLoadResponse{Success: true, Config: doc.Config})
}

// configFilename builds a file name from the part name. The part name is
// client input, so path separators and dot-dot segments are stripped to keep
// the file inside the configs directory.
func configFilename(partName string) string {
	name := strings.ReplaceAll(strings.TrimSpace(partName), " ", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		name = "config"
	}
	return fmt.Sprintf("%s_%s.json", name, time.Now().UTC().Format("20060102T150405"))
}
