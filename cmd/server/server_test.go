package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/printforge/printforge/internal/config"
	"github.com/printforge/printforge/internal/migrations"
	"github.com/printforge/printforge/internal/seed"
	"github.com/printforge/printforge/internal/store"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := migrations.Up(db, "../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if _, err := seed.Run(db); err != nil {
		t.Fatalf("failed to seed database: %v", err)
	}

	cfg := config.Config{DataDir: t.TempDir()}
	return newServer(db, zap.NewNop(), cfg)
}

func doJSON(t *testing.T, srv *server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	return rec
}

func newRawRequest(t *testing.T, method, path, body string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestClientsCRUD(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/clients", map[string]any{
		"name":             "Acme Robotics",
		"contact":          "ops@acme.example",
		"discount_percent": 10,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created recordResponse[store.Client]
	decodeBody(t, rec, &created)
	if created.Record.ID == 0 || created.Record.Name != "Acme Robotics" {
		t.Fatalf("unexpected created client: %+v", created.Record)
	}

	rec = doJSON(t, srv, http.MethodPut, "/clients/1", map[string]any{
		"name":             "Acme Robotics",
		"discount_percent": 15,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update client status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/clients/1", nil)
	var fetched recordResponse[store.Client]
	decodeBody(t, rec, &fetched)
	if fetched.Record.DiscountPercent != 15 {
		t.Fatalf("discount not updated: %+v", fetched.Record)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/clients/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete client status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/clients/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestClientsCreateRejectsBadDiscount(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/clients", map[string]any{
		"name":             "Acme",
		"discount_percent": 120,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for discount over 100, got %d", rec.Code)
	}

	var resp errorResponse
	decodeBody(t, rec, &resp)
	if resp.Success {
		t.Fatalf("error response claims success: %s", rec.Body.String())
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/settings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get settings status = %d", rec.Code)
	}

	var got recordResponse[store.Settings]
	decodeBody(t, rec, &got)
	if got.Record.DefaultMargin != 75 {
		t.Fatalf("seeded default margin = %v, want 75", got.Record.DefaultMargin)
	}

	got.Record.CurrencySymbol = "€"
	got.Record.DefaultMargin = 60
	rec = doJSON(t, srv, http.MethodPut, "/settings", got.Record)
	if rec.Code != http.StatusOK {
		t.Fatalf("update settings status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/settings", nil)
	decodeBody(t, rec, &got)
	if got.Record.CurrencySymbol != "€" || got.Record.DefaultMargin != 60 {
		t.Fatalf("settings not persisted: %+v", got.Record)
	}
}

func TestHistoryCreateAndList(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/history", map[string]any{
		"part_name":         "Bracket",
		"filament_cost":     40,
		"filament_required": 100,
		"print_time":        2,
		"labor_rate":        20,
		"shipping_cost":     4,
		"title":             "Bracket for Acme",
		"notes":             "rush job",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create history status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created recordResponse[store.Quote]
	decodeBody(t, rec, &created)
	if created.Record.Result.TotalCost != 48 {
		t.Fatalf("stored total = %v, want 48", created.Record.Result.TotalCost)
	}

	rec = doJSON(t, srv, http.MethodGet, "/history?q=Acme", nil)
	var list listResponse[store.QuoteListItem]
	decodeBody(t, rec, &list)
	if len(list.Records) != 1 || list.Records[0].Title != "Bracket for Acme" {
		t.Fatalf("unexpected history listing: %+v", list.Records)
	}
	if list.Records[0].Total != 48 {
		t.Fatalf("listed total = %v, want 48", list.Records[0].Total)
	}

	rec = doJSON(t, srv, http.MethodGet, "/history?q=nomatch", nil)
	decodeBody(t, rec, &list)
	if len(list.Records) != 0 {
		t.Fatalf("expected empty listing for unmatched query, got %+v", list.Records)
	}
}

func TestHistoryCreateEchoesRoundedResult(t *testing.T) {
	srv := newTestServer(t)

	// 33.33g at 40/kg is 1.3332 before rounding.
	rec := doJSON(t, srv, http.MethodPost, "/history", map[string]any{
		"part_name":         "Widget",
		"filament_cost":     40,
		"filament_required": 33.33,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create history status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created recordResponse[store.Quote]
	decodeBody(t, rec, &created)
	if created.Record.Result.MaterialCost != 1.33 {
		t.Fatalf("echoed material cost = %v, want 1.33", created.Record.Result.MaterialCost)
	}
	if created.Record.Result.TotalCost != 1.33 {
		t.Fatalf("echoed total = %v, want 1.33", created.Record.Result.TotalCost)
	}
}

func TestBackupCreateAndRestore(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/clients", map[string]any{
		"name":             "Keep Me",
		"discount_percent": 5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/backups", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create backup status = %d, body %s", rec.Code, rec.Body.String())
	}

	var backupResp recordResponse[store.BackupRecord]
	decodeBody(t, rec, &backupResp)
	if backupResp.Record.ID == "" || backupResp.Record.Checksum == "" {
		t.Fatalf("backup record incomplete: %+v", backupResp.Record)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/clients/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete client status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/backups/"+backupResp.Record.ID+"/restore", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("restore status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/clients", nil)
	var clients listResponse[store.Client]
	decodeBody(t, rec, &clients)
	if len(clients.Records) != 1 || clients.Records[0].Name != "Keep Me" {
		t.Fatalf("client not restored: %+v", clients.Records)
	}
}

func TestBackupsList(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/backups", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list backups status = %d", rec.Code)
	}

	var list listResponse[store.BackupRecord]
	decodeBody(t, rec, &list)
	if len(list.Records) != 0 {
		t.Fatalf("expected no backups, got %+v", list.Records)
	}

	rec = doJSON(t, srv, http.MethodPost, "/backups", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create backup status = %d", rec.Code)
	}
	var created recordResponse[store.BackupRecord]
	decodeBody(t, rec, &created)

	rec = doJSON(t, srv, http.MethodGet, "/backups", nil)
	decodeBody(t, rec, &list)
	if len(list.Records) != 1 {
		t.Fatalf("expected 1 backup, got %+v", list.Records)
	}

	// The listed timestamp is the snapshot's own, in the same format the
	// create response reported.
	if list.Records[0].CreatedAt != created.Record.CreatedAt {
		t.Fatalf("listed created_at %q != created %q", list.Records[0].CreatedAt, created.Record.CreatedAt)
	}
	if _, err := time.Parse(time.RFC3339, list.Records[0].CreatedAt); err != nil {
		t.Fatalf("listed created_at is not RFC3339: %v", err)
	}
}
