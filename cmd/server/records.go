package main

import (
	"net/http"
	"strings"

	"github.com/printforge/printforge/internal/pricing"
	"github.com/printforge/printforge/internal/store"
)

type listResponse[T any] struct {
	Success bool `json:"success"`
	Records []T  `json:"records"`
}

type recordResponse[T any] struct {
	Success bool `json:"success"`
	Record  T    `json:"record"`
}

type deletedResponse struct {
	Success bool `json:"success"`
}

func (s *server) handleClientsList(w http.ResponseWriter, r *http.Request) {
	clients, err := s.clients.List()
	if err != nil {
		s.writeStoreError(w, err, "list clients")
		return
	}
	writeJSON(w, http.StatusOK, listResponse[store.Client]{Success: true, Records: clients})
}

func (s *server) handleClientsCreate(w http.ResponseWriter, r *http.Request) {
	var c store.Client
	if err := readJSON(r, &c); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if c.DiscountPercent < 0 || c.DiscountPercent > 100 {
		s.writeError(w, http.StatusBadRequest, "discount_percent must be between 0 and 100")
		return
	}

	c.Active = true
	id, err := s.clients.Create(c)
	if err != nil {
		s.writeStoreError(w, err, "create client")
		return
	}
	c.ID = id
	writeJSON(w, http.StatusCreated, recordResponse[store.Client]{Success: true, Record: c})
}

func (s *server) handleClientsGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := s.clients.Get(id)
	if err != nil {
		s.writeStoreError(w, err, "load client")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.Client]{Success: true, Record: c})
}

func (s *server) handleClientsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var c store.Client
	if err := readJSON(r, &c); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if c.DiscountPercent < 0 || c.DiscountPercent > 100 {
		s.writeError(w, http.StatusBadRequest, "discount_percent must be between 0 and 100")
		return
	}

	c.ID = id
	if err := s.clients.Update(c); err != nil {
		s.writeStoreError(w, err, "update client")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.Client]{Success: true, Record: c})
}

func (s *server) handleClientsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.clients.Delete(id); err != nil {
		s.writeStoreError(w, err, "delete client")
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Success: true})
}

func (s *server) handlePresetsList(w http.ResponseWriter, r *http.Request) {
	presets, err := s.presets.List()
	if err != nil {
		s.writeStoreError(w, err, "list material presets")
		return
	}
	writeJSON(w, http.StatusOK, listResponse[store.MaterialPreset]{Success: true, Records: presets})
}

func (s *server) handlePresetsCreate(w http.ResponseWriter, r *http.Request) {
	var p store.MaterialPreset
	if err := readJSON(r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if p.CostPerKg < 0 {
		s.writeError(w, http.StatusBadRequest, "cost_per_kg must be greater than or equal to 0")
		return
	}

	p.Active = true
	id, err := s.presets.Create(p)
	if err != nil {
		s.writeStoreError(w, err, "create material preset")
		return
	}
	p.ID = id
	writeJSON(w, http.StatusCreated, recordResponse[store.MaterialPreset]{Success: true, Record: p})
}

func (s *server) handlePresetsGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := s.presets.Get(id)
	if err != nil {
		s.writeStoreError(w, err, "load material preset")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.MaterialPreset]{Success: true, Record: p})
}

func (s *server) handlePresetsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var p store.MaterialPreset
	if err := readJSON(r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if p.CostPerKg < 0 {
		s.writeError(w, http.StatusBadRequest, "cost_per_kg must be greater than or equal to 0")
		return
	}

	p.ID = id
	if err := s.presets.Update(p); err != nil {
		s.writeStoreError(w, err, "update material preset")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.MaterialPreset]{Success: true, Record: p})
}

func (s *server) handlePresetsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.presets.Delete(id); err != nil {
		s.writeStoreError(w, err, "delete material preset")
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Success: true})
}

func (s *server) handleProfilesList(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.List()
	if err != nil {
		s.writeStoreError(w, err, "list printer profiles")
		return
	}
	writeJSON(w, http.StatusOK, listResponse[store.PrinterProfile]{Success: true, Records: profiles})
}

func (s *server) handleProfilesCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := s.readPrinterProfile(w, r)
	if !ok {
		return
	}

	p.Active = true
	id, err := s.profiles.Create(p)
	if err != nil {
		s.writeStoreError(w, err, "create printer profile")
		return
	}
	p.ID = id
	writeJSON(w, http.StatusCreated, recordResponse[store.PrinterProfile]{Success: true, Record: p})
}

func (s *server) handleProfilesGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := s.profiles.Get(id)
	if err != nil {
		s.writeStoreError(w, err, "load printer profile")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.PrinterProfile]{Success: true, Record: p})
}

func (s *server) handleProfilesUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, ok := s.readPrinterProfile(w, r)
	if !ok {
		return
	}

	p.ID = id
	if err := s.profiles.Update(p); err != nil {
		s.writeStoreError(w, err, "update printer profile")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.PrinterProfile]{Success: true, Record: p})
}

func (s *server) handleProfilesDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.profiles.Delete(id); err != nil {
		s.writeStoreError(w, err, "delete printer profile")
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Success: true})
}

func (s *server) readPrinterProfile(w http.ResponseWriter, r *http.Request) (store.PrinterProfile, bool) {
	var p store.PrinterProfile
	if err := readJSON(r, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return p, false
	}
	if strings.TrimSpace(p.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return p, false
	}
	for field, value := range map[string]float64{
		"printer_cost":       p.PrinterCost,
		"upfront_cost":       p.UpfrontCost,
		"annual_maintenance": p.AnnualMaintenance,
		"printer_life":       p.PrinterLife,
		"power_consumption":  p.PowerConsumption,
		"electricity_rate":   p.ElectricityRate,
	} {
		if value < 0 {
			s.writeError(w, http.StatusBadRequest, field+" must be greater than or equal to 0")
			return p, false
		}
	}
	if p.AverageUptime < 0 || p.AverageUptime > 100 {
		s.writeError(w, http.StatusBadRequest, "average_uptime must be between 0 and 100")
		return p, false
	}
	return p, true
}

func (s *server) handleTemplatesList(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List()
	if err != nil {
		s.writeStoreError(w, err, "list templates")
		return
	}
	writeJSON(w, http.StatusOK, listResponse[store.Template]{Success: true, Records: templates})
}

func (s *server) handleTemplatesCreate(w http.ResponseWriter, r *http.Request) {
	var t store.Template
	if err := readJSON(r, &t); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(t.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := s.templates.Create(t)
	if err != nil {
		s.writeStoreError(w, err, "create template")
		return
	}
	t.ID = id
	writeJSON(w, http.StatusCreated, recordResponse[store.Template]{Success: true, Record: t})
}

func (s *server) handleTemplatesGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.templates.Get(id)
	if err != nil {
		s.writeStoreError(w, err, "load template")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.Template]{Success: true, Record: t})
}

func (s *server) handleTemplatesUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var t store.Template
	if err := readJSON(r, &t); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(t.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	t.ID = id
	if err := s.templates.Update(t); err != nil {
		s.writeStoreError(w, err, "update template")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.Template]{Success: true, Record: t})
}

func (s *server) handleTemplatesDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.templates.Delete(id); err != nil {
		s.writeStoreError(w, err, "delete template")
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Success: true})
}

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get()
	if err != nil {
		s.writeStoreError(w, err, "load settings")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.Settings]{Success: true, Record: settings})
}

func (s *server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var settings store.Settings
	if err := readJSON(r, &settings); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if settings.CurrencySymbol == "" {
		s.writeError(w, http.StatusBadRequest, "currency_symbol is required")
		return
	}
	if settings.DefaultMargin < 0 || settings.DefaultMargin >= 100 {
		s.writeError(w, http.StatusBadRequest, "default_margin must be between 0 and 99.99")
		return
	}

	if err := s.settings.Update(settings); err != nil {
		s.writeStoreError(w, err, "update settings")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.Settings]{Success: true, Record: settings})
}

func (s *server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.quotes.List(query)
	if err != nil {
		s.writeStoreError(w, err, "list quotes")
		return
	}
	writeJSON(w, http.StatusOK, listResponse[store.QuoteListItem]{Success: true, Records: quotes})
}

type historyCreateRequest struct {
	calculateRequest
	Title string `json:"title"`
	Notes string `json:"notes"`
}

// handleHistoryCreate prices the input server-side and stores the pair, so a
// stored result can never disagree with its stored input.
func (s *server) handleHistoryCreate(w http.ResponseWriter, r *http.Request) {
	var req historyCreateRequest
	if err := readJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	in := req.input()
	if errs := pricing.Validate(in); len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = in.PartName
	}

	quote := store.Quote{
		Title:    title,
		Notes:    strings.TrimSpace(req.Notes),
		ClientID: req.ClientID,
		Input:    in,
		Result:   pricing.Compute(in),
	}
	id, err := s.quotes.Create(quote)
	if err != nil {
		s.writeStoreError(w, err, "create quote")
		return
	}

	quote.ID = id
	// Stored results stay raw; the echoed copy is rounded like /calculate.
	quote.Result = roundResult(quote.Result)
	writeJSON(w, http.StatusCreated, recordResponse[store.Quote]{Success: true, Record: quote})
}

func (s *server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	quote, err := s.quotes.Get(id)
	if err != nil {
		s.writeStoreError(w, err, "load quote")
		return
	}
	writeJSON(w, http.StatusOK, recordResponse[store.Quote]{Success: true, Record: quote})
}

func (s *server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.quotes.Delete(id); err != nil {
		s.writeStoreError(w, err, "delete quote")
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Success: true})
}
