package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/printforge/printforge/internal/export"
	"github.com/printforge/printforge/internal/pricing"
)

func (s *server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.WriteExcel)
}

func (s *server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "pdf", "application/pdf", export.WritePDF)
}

func (s *server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, "csv", "text/csv; charset=utf-8", export.WriteCSV)
}

// serveExport prices the posted input, renders it through the given writer
// and streams the file back as a download. The result is always recomputed
// server-side so an export can never show numbers the engine did not
// produce.
func (s *server) serveExport(w http.ResponseWriter, r *http.Request, ext, contentType string, render func(string, export.Document) error) {
	var req calculateRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	in := req.input()
	if errs := pricing.Validate(in); len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	settings, err := s.settings.Get()
	if err != nil {
		s.writeStoreError(w, err, "load settings")
		return
	}

	doc := export.Document{
		Input:          in,
		Result:         roundResult(pricing.Compute(in)),
		CurrencySymbol: settings.CurrencySymbol,
		CompanyName:    settings.CompanyName,
		GeneratedAt:    time.Now().UTC(),
	}

	dir, err := os.MkdirTemp("", "printforge-export-")
	if err != nil {
		s.log.Error("create export directory", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to render export")
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, doc.Filename(ext))
	if err := render(path, doc); err != nil {
		s.log.Error("render export", zap.String("format", ext), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to render export")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename(ext)))
	http.ServeFile(w, r, path)
}
