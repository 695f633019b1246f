package handler

import (
	"net/http"

	"freightops/internal/fleet/service"
	"freightops/internal/model"
)

// WarehouseHandler handles warehouse HTTP requests.
type WarehouseHandler struct {
	warehouses *service.WarehouseService
}

// NewWarehouseHandler creates a new handler wired to the warehouse service.
func NewWarehouseHandler(warehouses *service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouses: warehouses}
}

// List handles GET /api/depositos
func (h *WarehouseHandler) List(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.warehouses.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, warehouses)
}

// Get handles GET /api/depositos/{id}
func (h *WarehouseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	wh, err := h.warehouses.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wh)
}

// Create handles POST /api/depositos
func (h *WarehouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var wh model.Warehouse
	if !decodeBody(w, r, &wh) {
		return
	}
	created, err := h.warehouses.Create(r.Context(), &wh)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/depositos/{id}
func (h *WarehouseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	var wh model.Warehouse
	if !decodeBody(w, r, &wh) {
		return
	}
	updated, err := h.warehouses.Update(r.Context(), id, &wh)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/depositos/{id}
func (h *WarehouseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	if err := h.warehouses.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
