package handler

import (
	"net/http"
	"strconv"

	"freightops/internal/fleet/service"
	"freightops/internal/model"
)

// TruckHandler handles truck HTTP requests.
type TruckHandler struct {
	trucks *service.TruckService
}

// NewTruckHandler creates a new handler wired to the truck service.
func NewTruckHandler(trucks *service.TruckService) *TruckHandler {
	return &TruckHandler{trucks: trucks}
}

// List handles GET /api/camiones
func (h *TruckHandler) List(w http.ResponseWriter, r *http.Request) {
	trucks, err := h.trucks.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trucks)
}

// Available handles GET /api/camiones/disponibles?pesoMinimo=&volumenMinimo=
//
// Both query parameters are optional and default to zero.
func (h *TruckHandler) Available(w http.ResponseWriter, r *http.Request) {
	minWeight, ok := queryFloat(r, "pesoMinimo")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid pesoMinimo: must be a number",
		})
		return
	}
	minVolume, ok := queryFloat(r, "volumenMinimo")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid volumenMinimo: must be a number",
		})
		return
	}

	trucks, err := h.trucks.Available(r.Context(), minWeight, minVolume)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trucks)
}

// Get handles GET /api/camiones/{id}
func (h *TruckHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	t, err := h.trucks.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Create handles POST /api/camiones
func (h *TruckHandler) Create(w http.ResponseWriter, r *http.Request) {
	var t model.Truck
	if !decodeBody(w, r, &t) {
		return
	}
	created, err := h.trucks.Create(r.Context(), &t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/camiones/{id}
func (h *TruckHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	var t model.Truck
	if !decodeBody(w, r, &t) {
		return
	}
	updated, err := h.trucks.Update(r.Context(), id, &t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// SetAvailability handles PATCH /api/camiones/{id}/disponibilidad
//
// Body: {"disponible": true|false}. Called by the operations service to
// mirror truck occupation after segment assignment and release.
func (h *TruckHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	var body struct {
		Available *bool `json:"disponible"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Available == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "disponible is required",
		})
		return
	}
	t, err := h.trucks.SetAvailability(r.Context(), id, *body.Available)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /api/camiones/{id}
func (h *TruckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	if err := h.trucks.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryFloat parses an optional float query parameter, defaulting to 0.
func queryFloat(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}
