package handler

import (
	"net/http"

	"freightops/internal/model"
	"freightops/internal/ops/service"
)

// ClientHandler handles client HTTP endpoints.
type ClientHandler struct {
	clients *service.ClientService
}

// NewClientHandler creates a new handler wired to the client service.
func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// List handles GET /api/clientes
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// Get handles GET /api/clientes/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	c, err := h.clients.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Create handles POST /api/clientes
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c model.Client
	if !decodeBody(w, r, &c) {
		return
	}
	created, err := h.clients.Create(r.Context(), &c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/clientes/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	var c model.Client
	if !decodeBody(w, r, &c) {
		return
	}
	updated, err := h.clients.Update(r.Context(), id, &c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/clientes/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w, "id")
		return
	}
	if err := h.clients.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
