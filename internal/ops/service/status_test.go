package service

import (
	"strings"
	"testing"

	"freightops/internal/model"
)

func TestDescribeContainerLocation(t *testing.T) {
	cases := []struct {
		status model.ContainerStatus
		want   string
	}{
		{model.ContainerAtOrigin, "En origen, esperando retiro"},
		{model.ContainerInTransit, "En viaje hacia el destino"},
		{model.ContainerAtWarehouse, "En depósito intermedio"},
		{model.ContainerDelivered, "Entregado en destino"},
	}
	for _, c := range cases {
		if got := DescribeContainerLocation(c.status); got != c.want {
			t.Errorf("DescribeContainerLocation(%s) = %q, want %q", c.status, got, c.want)
		}
	}
}

func TestDescribeContainerLocation_Unknown(t *testing.T) {
	got := DescribeContainerLocation(model.ContainerStatus("PERDIDO"))
	if !strings.Contains(got, "PERDIDO") {
		t.Errorf("unknown state should name the raw state, got %q", got)
	}
}

func TestProgress(t *testing.T) {
	cases := []struct {
		status model.ShipmentStatus
		want   float64
	}{
		{model.ShipmentDraft, 10},
		{model.ShipmentScheduled, 25},
		{model.ShipmentInTransit, 60},
		{model.ShipmentDelivered, 100},
		{model.ShipmentStatus("OTRO"), 0},
	}
	for _, c := range cases {
		if got := Progress(c.status); got != c.want {
			t.Errorf("Progress(%s) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestETA(t *testing.T) {
	s := &model.Shipment{Status: model.ShipmentInTransit, EstimatedTime: 8.1}
	got := ETA(s)
	if !strings.Contains(got, "8.1") {
		t.Errorf("ETA for EN_TRANSITO should carry the estimated hours, got %q", got)
	}

	s.Status = model.ShipmentDelivered
	if got := ETA(s); got != "Entregado" {
		t.Errorf("ETA for ENTREGADA = %q, want %q", got, "Entregado")
	}

	s.Status = model.ShipmentDraft
	if got := ETA(s); got != "Pendiente de programación" {
		t.Errorf("ETA for BORRADOR = %q", got)
	}
}

func TestBuildStatusView(t *testing.T) {
	shipment := &model.Shipment{ID: 1, Status: model.ShipmentInTransit, EstimatedTime: 8.1}
	container := &model.Container{ID: 2, Status: model.ContainerInTransit}
	route := &model.Route{ID: 3}
	segments := []model.Segment{{ID: 4}}

	view := BuildStatusView(shipment, container, route, segments)

	if view.Progress != 60 {
		t.Errorf("progreso = %v, want 60", view.Progress)
	}
	if view.ContainerLocation != "En viaje hacia el destino" {
		t.Errorf("ubicacionContenedor = %q", view.ContainerLocation)
	}
	if view.Route != route || len(view.Segments) != 1 {
		t.Error("route and segments should pass through unchanged")
	}
}
