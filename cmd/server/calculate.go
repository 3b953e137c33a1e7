package main

import (
	"fmt"
	"net/http"

	"github.com/printforge/printforge/internal/pricing"
)

// calculateRequest is a pricing input where the custom margin is optional.
// The pointer field shadows the embedded one so an absent key falls back to
// the default margin while an explicit zero stays zero.
type calculateRequest struct {
	pricing.Input
	CustomMargin *float64 `json:"custom_margin"`
	ClientID     *int64   `json:"client_id"`
}

func (req calculateRequest) input() pricing.Input {
	in := req.Input
	in.CustomMargin = pricing.DefaultCustomMargin
	if req.CustomMargin != nil {
		in.CustomMargin = *req.CustomMargin
	}
	return in
}

type calculateResponse struct {
	Success         bool            `json:"success"`
	Result          pricing.Result  `json:"result"`
	Discounted      *pricing.Result `json:"discounted,omitempty"`
	DiscountPercent float64         `json:"discount_percent,omitempty"`
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
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

	result := pricing.Compute(in)
	resp := calculateResponse{Success: true, Result: roundResult(result)}

	if req.ClientID != nil {
		client, err := s.clients.Get(*req.ClientID)
		if err != nil {
			s.writeStoreError(w, err, "load client")
			return
		}
		if client.DiscountPercent > 0 {
			discounted := roundResult(pricing.ApplyDiscount(result, client.DiscountPercent))
			resp.Discounted = &discounted
			resp.DiscountPercent = client.DiscountPercent
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type batchRequest struct {
	calculateRequest
	Rows []pricing.BatchRow `json:"rows"`
}

type batchResponse struct {
	Success bool                `json:"success"`
	Batch   pricing.BatchResult `json:"batch"`
}

func (s *server) handleCalculateBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Rows) == 0 {
		s.writeError(w, http.StatusBadRequest, "rows is required")
		return
	}

	// Rows carry their own names, so the base part name is not required;
	// every other violation still blocks the calculation.
	in := req.input()
	var errs pricing.ValidationErrors
	for _, fieldErr := range pricing.Validate(in) {
		if fieldErr.Field == "part_name" {
			continue
		}
		errs = append(errs, fieldErr)
	}
	if len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	batch := pricing.ComputeBatch(in, req.Rows)
	writeJSON(w, http.StatusOK, batchResponse{Success: true, Batch: roundBatchResult(batch)})
}

type compareSlot struct {
	Label string `json:"label"`
	calculateRequest
}

type compareResult struct {
	Label  string         `json:"label"`
	Result pricing.Result `json:"result"`
}

type compareResponse struct {
	Success bool            `json:"success"`
	Slots   []compareResult `json:"slots"`
}

// handleCalculateCompare prices several labeled configurations side by side.
func (s *server) handleCalculateCompare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Slots []compareSlot `json:"slots"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Slots) == 0 {
		s.writeError(w, http.StatusBadRequest, "slots is required")
		return
	}

	resp := compareResponse{Success: true, Slots: make([]compareResult, 0, len(req.Slots))}
	for i, slot := range req.Slots {
		in := slot.input()
		if errs := pricing.Validate(in); len(errs) > 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("slot %d: %s", i, errs.Error()))
			return
		}
		label := slot.Label
		if label == "" {
			label = in.PartName
		}
		resp.Slots = append(resp.Slots, compareResult{
			Label:  label,
			Result: roundResult(pricing.Compute(in)),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
