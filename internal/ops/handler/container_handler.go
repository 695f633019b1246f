package handler

import (
	"net/http"

	"freightops/internal/ops/service"
)

// ContainerHandler handles container HTTP endpoints.
type ContainerHandler struct {
	containers *service.ContainerService
}

// NewContainerHandler creates a new handler wired to the container service.
func NewContainerHandler(containers *service.ContainerService) *ContainerHandler {
	return &ContainerHandler{containers: containers}
}

// List handles GET /api/contenedores
func (h *ContainerHandler) List(w http.ResponseWriter, r *http.Request) {
	containers, err := h.containers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, containers)
}

// Get handles GET /api/contenedores/{id}
func (h *ContainerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	c, err := h.containers.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Update handles PUT /api/contenedores/{id}
//
// Only identity fields are editable; status belongs to the segment
// lifecycle.
func (h *ContainerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	var body struct {
		Code   string  `json:"numero"`
		Weight float64 `json:"peso"`
		Volume float64 `json:"volumen"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	c, err := h.containers.UpdateIdentity(r.Context(), id, body.Code, body.Weight, body.Volume)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
