package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigSaveWritesDocument(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/config/save", map[string]any{
		"part_name":         "Bracket",
		"filament_cost":     40,
		"filament_required": 100,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("config save status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp configSaveResponse
	decodeBody(t, rec, &resp)
	if resp.Saved.Version != configVersion {
		t.Fatalf("saved version = %q, want %q", resp.Saved.Version, configVersion)
	}
	if resp.Saved.Config.FilamentCost != 40 {
		t.Fatalf("saved config lost fields: %+v", resp.Saved.Config)
	}
	if !strings.HasPrefix(resp.Path, srv.cfg.DataDir) {
		t.Fatalf("config written outside data dir: %s", resp.Path)
	}
	if _, err := os.Stat(resp.Path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}
}

func TestConfigSaveKeepsFileInsideDataDir(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/config/save", map[string]any{
		"part_name": "../../etc/escaped",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("config save status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp configSaveResponse
	decodeBody(t, rec, &resp)

	configsDir := filepath.Join(srv.cfg.DataDir, "configs")
	rel, err := filepath.Rel(configsDir, resp.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		t.Fatalf("config written outside %s: %s", configsDir, resp.Path)
	}
	if _, err := os.Stat(resp.Path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}
}

func TestConfigLoadRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/config/save", map[string]any{
		"part_name":     "Bracket",
		"filament_cost": 40,
		"labor_rate":    25,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("config save status = %d", rec.Code)
	}

	var saved configSaveResponse
	decodeBody(t, rec, &saved)

	data, err := os.ReadFile(saved.Path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}

	rec = postConfigFile(t, srv, data)
	if rec.Code != http.StatusOK {
		t.Fatalf("config load status = %d, body %s", rec.Code, rec.Body.String())
	}

	var loaded configLoadResponse
	decodeBody(t, rec, &loaded)
	if loaded.Config.PartName != "Bracket" || loaded.Config.LaborRate != 25 {
		t.Fatalf("loaded config does not match saved one: %+v", loaded.Config)
	}
}

func TestConfigLoadRejectsWrongVersion(t *testing.T) {
	srv := newTestServer(t)

	rec := postConfigFile(t, srv, []byte(`{"version": "9.9", "config": {}}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported version, got %d", rec.Code)
	}
}

func postConfigFile(t *testing.T, srv *server, contents []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "config.json")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(contents); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/config/load", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	return rec
}
