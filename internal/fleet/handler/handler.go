// Package handler contains HTTP request handlers for the fleet API.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"freightops/internal/fleet/service"
)

// writeJSON is a helper that writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps service sentinels to HTTP codes. The external contract
// uses 404 for missing resources and 400 for every domain rejection.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "not_found",
		})
	case errors.Is(err, service.ErrNoActiveTariff):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "no_active_tariff",
			"message": "No hay una tarifa activa.",
		})
	case errors.Is(err, service.ErrActiveTariffDelete):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "active_tariff",
			"message": "La tarifa activa no puede eliminarse; desactívela primero.",
		})
	case errors.Is(err, service.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "validation_error",
			"message": err.Error(),
		})
	default:
		log.Printf("[handler] error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
	}
}

// pathID extracts the {id} path variable as int64.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil
}

// badID writes the standard invalid-id response.
func badID(w http.ResponseWriter, name string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": "invalid " + name + ": must be an integer",
	})
}

// decodeBody decodes a JSON request body into dst, reporting malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_body",
			"message": "request body is not valid JSON",
		})
		return false
	}
	return true
}
