package service

import (
	"fmt"

	"freightops/internal/model"
)

// Status projection: pure functions turning persisted state into the
// client-facing tracking view. No I/O here so the mappings are trivially
// testable.

// DescribeContainerLocation returns the human-readable location text for a
// container state. Unknown states fall back to naming the raw state.
func DescribeContainerLocation(status model.ContainerStatus) string {
	switch status {
	case model.ContainerAtOrigin:
		return "En origen, esperando retiro"
	case model.ContainerInTransit:
		return "En viaje hacia el destino"
	case model.ContainerAtWarehouse:
		return "En depósito intermedio"
	case model.ContainerDelivered:
		return "Entregado en destino"
	default:
		return fmt.Sprintf("Estado: %s", status)
	}
}

// Progress returns the completion percentage for a shipment state.
func Progress(status model.ShipmentStatus) float64 {
	switch status {
	case model.ShipmentDraft:
		return 10
	case model.ShipmentScheduled:
		return 25
	case model.ShipmentInTransit:
		return 60
	case model.ShipmentDelivered:
		return 100
	default:
		return 0
	}
}

// ETA returns the delivery estimate text for a shipment.
func ETA(s *model.Shipment) string {
	switch s.Status {
	case model.ShipmentDraft:
		return "Pendiente de programación"
	case model.ShipmentScheduled:
		return fmt.Sprintf("Estimado: %.1f horas desde el inicio del viaje", s.EstimatedTime)
	case model.ShipmentInTransit:
		return fmt.Sprintf("Estimado: %.1f horas de viaje", s.EstimatedTime)
	case model.ShipmentDelivered:
		return "Entregado"
	default:
		return "Sin estimación"
	}
}

// StatusView is the assembled tracking response for a shipment.
type StatusView struct {
	Shipment          *model.Shipment       `json:"solicitud"`
	ContainerStatus   model.ContainerStatus `json:"estadoContenedor"`
	ContainerLocation string                `json:"ubicacionContenedor"`
	Progress          float64               `json:"progreso"`
	ETA               string                `json:"entregaEstimada"`
	Route             *model.Route          `json:"ruta,omitempty"`
	Segments          []model.Segment       `json:"tramos"`
}

// BuildStatusView assembles the tracking view from already-loaded state.
func BuildStatusView(s *model.Shipment, c *model.Container, route *model.Route, segments []model.Segment) *StatusView {
	return &StatusView{
		Shipment:          s,
		ContainerStatus:   c.Status,
		ContainerLocation: DescribeContainerLocation(c.Status),
		Progress:          Progress(s.Status),
		ETA:               ETA(s),
		Route:             route,
		Segments:          segments,
	}
}
