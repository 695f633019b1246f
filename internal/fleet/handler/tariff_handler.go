package handler

import (
	"net/http"

	"freightops/internal/fleet/repository"
	"freightops/internal/fleet/service"
)

// TariffHandler handles tariff HTTP requests.
type TariffHandler struct {
	tariffs *service.TariffService
}

// NewTariffHandler creates a new handler wired to the tariff service.
func NewTariffHandler(tariffs *service.TariffService) *TariffHandler {
	return &TariffHandler{tariffs: tariffs}
}

// List handles GET /api/tarifas
func (h *TariffHandler) List(w http.ResponseWriter, r *http.Request) {
	tariffs, err := h.tariffs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tariffs)
}

// Get handles GET /api/tarifas/{id}
func (h *TariffHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	t, err := h.tariffs.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Active handles GET /api/tarifas/actual
//
// Returns the single active tariff, or 404 if none is active. The
// operations service quotes routes against this endpoint.
func (h *TariffHandler) Active(w http.ResponseWriter, r *http.Request) {
	t, err := h.tariffs.Active(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// ExistsActive handles GET /api/tarifas/existe-activa
func (h *TariffHandler) ExistsActive(w http.ResponseWriter, r *http.Request) {
	exists, err := h.tariffs.ExistsActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"existe": exists})
}

// Create handles POST /api/tarifas
func (h *TariffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateTariffInput
	if !decodeBody(w, r, &in) {
		return
	}
	t, err := h.tariffs.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// Update handles PUT /api/tarifas/{id}
func (h *TariffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	var upd repository.TariffUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	t, err := h.tariffs.Update(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /api/tarifas/{id}
func (h *TariffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	if err := h.tariffs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
