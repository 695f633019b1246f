package handler

import (
	"net/http"

	"freightops/internal/ops/service"
)

// SegmentHandler handles segment lifecycle HTTP endpoints.
type SegmentHandler struct {
	segments *service.SegmentService
}

// NewSegmentHandler creates a new handler wired to the segment service.
func NewSegmentHandler(segments *service.SegmentService) *SegmentHandler {
	return &SegmentHandler{segments: segments}
}

// List handles GET /api/tramos
func (h *SegmentHandler) List(w http.ResponseWriter, r *http.Request) {
	segments, err := h.segments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, segments)
}

// Get handles GET /api/tramos/{id}
func (h *SegmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	seg, err := h.segments.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seg)
}

// AssignTruck handles POST /api/tramos/{id}/asignar-camion
//
// Body: {"camionId": N}. Checks availability and container fit inside one
// locked transaction; two dispatchers racing for the same truck serialize
// and the loser gets 400.
func (h *SegmentHandler) AssignTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	var body struct {
		TruckID *int64 `json:"camionId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.TruckID == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "camionId is required",
		})
		return
	}
	seg, err := h.segments.Assign(r.Context(), id, *body.TruckID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seg)
}

// Start handles POST /api/tramos/{id}/iniciar
func (h *SegmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	seg, err := h.segments.Start(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seg)
}

// Finish handles POST /api/tramos/{id}/finalizar
func (h *SegmentHandler) Finish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	seg, err := h.segments.Finish(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seg)
}

// ByTruck handles GET /api/tramos/transportistas/{camionId}/tramos
//
// Returns the non-finished segments assigned to a truck.
func (h *SegmentHandler) ByTruck(w http.ResponseWriter, r *http.Request) {
	truckID, ok := pathID(r, "camionId")
	if !ok {
		badID(w, "camionId")
		return
	}
	segments, err := h.segments.ListByTruck(r.Context(), truckID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, segments)
}
