// Package handler contains HTTP request handlers for the operations API.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"freightops/internal/ops/service"
)

// writeJSON is a helper that writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps service sentinels to HTTP codes. The external contract
// uses 404 for missing resources and 400 for every domain rejection; a
// degraded fleet service surfaces as 503.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "not_found",
		})
	case errors.Is(err, service.ErrTruckCapacity):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "capacidad_insuficiente",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrTruckUnavailable):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "camion_no_disponible",
			"message": "El camión no está disponible.",
		})
	case errors.Is(err, service.ErrSegmentNotPending),
		errors.Is(err, service.ErrSegmentNotAssigned),
		errors.Is(err, service.ErrSegmentNotStarted):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "estado_invalido",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrShipmentNotDraft):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "solicitud_no_borrador",
			"message": "La solicitud ya tiene una ruta asignada.",
		})
	case errors.Is(err, service.ErrShipmentInFlight):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "solicitud_en_curso",
			"message": "La solicitud tiene tramos en curso y no puede eliminarse.",
		})
	case errors.Is(err, service.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "validation_error",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrFleetUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "flota_no_disponible",
			"message": "El servicio de flota no está disponible; intente nuevamente.",
		})
	default:
		log.Printf("[handler] error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal_error",
		})
	}
}

// pathID extracts a path variable as int64.
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
