package handler

import (
	"net/http"

	"freightops/internal/model"
	"freightops/internal/ops/service"
)

// ShipmentHandler handles shipment request HTTP endpoints, including route
// planning.
type ShipmentHandler struct {
	shipments *service.ShipmentService
	planner   *service.PlannerService
}

// NewShipmentHandler creates a new handler wired to the shipment and
// planner services.
func NewShipmentHandler(shipments *service.ShipmentService, planner *service.PlannerService) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments, planner: planner}
}

// Create handles POST /api/solicitudes
//
// Registers a shipment request: client (existing or inline), container,
// draft route and the request itself, atomically.
func (h *ShipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateShipmentInput
	if !decodeBody(w, r, &in) {
		return
	}
	s, err := h.shipments.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// List handles GET /api/solicitudes
func (h *ShipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.shipments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shipments)
}

// Get handles GET /api/solicitudes/{id}
func (h *ShipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	s, err := h.shipments.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Status handles GET /api/solicitudes/{id}/estado
//
// Returns the tracking view: container location, progress percentage,
// delivery estimate, route and segment history.
func (h *ShipmentHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	view, err := h.shipments.Status(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Update handles PUT /api/solicitudes/{id}
//
// Only the observations are editable after registration.
func (h *ShipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	var body struct {
		Observations string `json:"observaciones"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	s, err := h.shipments.UpdateObservations(r.Context(), id, body.Observations)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Delete handles DELETE /api/solicitudes/{id}
func (h *ShipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	if err := h.shipments.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tentatives handles GET /api/solicitudes/{id}/rutas/tentativas
//
// Returns the itinerary candidates for a draft shipment, priced against the
// live active tariff. 503 when the fleet service cannot provide the rate.
func (h *ShipmentHandler) Tentatives(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	itineraries, err := h.planner.Tentatives(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraries)
}

// AssignRoute handles POST /api/solicitudes/{id}/asignar-ruta
//
// Body: the chosen itinerary as returned by Tentatives.
func (h *ShipmentHandler) AssignRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	var it model.Itinerary
	if !decodeBody(w, r, &it) {
		return
	}
	route, segments, err := h.planner.AssignRoute(r.Context(), id, it)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ruta":   route,
		"tramos": segments,
	})
}
