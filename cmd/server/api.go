package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/printforge/printforge/internal/pricing"
	"github.com/printforge/printforge/internal/store"
)

const maxRequestBody = 1 << 20 // 1 MiB

type errorResponse struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error"`
	Fields  []pricing.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *server) writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func (s *server) writeValidationError(w http.ResponseWriter, errs pricing.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:  "validation failed",
		Fields: errs,
	})
}

// writeStoreError maps ErrNotFound to 404 and everything else to a logged 500.
func (s *server) writeStoreError(w http.ResponseWriter, err error, action string) {
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "record not found")
		return
	}
	s.log.Error("store operation failed", zap.String("action", action), zap.Error(err))
	s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to %s", action))
}

func readJSON(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBody)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

func round2(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded
}

func round4(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return rounded
}

// roundResult rounds every money field to 2 decimals for the wire. The
// hourly machine rate keeps 4 decimals since it is routinely well under a
// cent.
func roundResult(r pricing.Result) pricing.Result {
	r.MaterialCost = round2(r.MaterialCost)
	r.LaborCost = round2(r.LaborCost)
	r.MachineDepreciation = round2(r.MachineDepreciation)
	r.ElectricityCost = round2(r.ElectricityCost)
	r.MachineCostTotal = round2(r.MachineCostTotal)
	r.PackagingCost = round2(r.PackagingCost)
	r.TotalCost = round2(r.TotalCost)
	r.CostPerHour = round4(r.CostPerHour)
	r.Price50 = round2(r.Price50)
	r.Price60 = round2(r.Price60)
	r.Price70 = round2(r.Price70)
	r.PriceCustom = round2(r.PriceCustom)
	return r
}

func roundBatchResult(b pricing.BatchResult) pricing.BatchResult {
	for i := range b.Rows {
		b.Rows[i].Unit = roundResult(b.Rows[i].Unit)
		b.Rows[i].RowTotal = round2(b.Rows[i].RowTotal)
	}
	b.TotalCost = round2(b.TotalCost)
	b.Price50 = round2(b.Price50)
	b.Price60 = round2(b.Price60)
	b.Price70 = round2(b.Price70)
	b.PriceCustom = round2(b.PriceCustom)
	return b
}
