package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestShipmentStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to ShipmentStatus
		want     bool
	}{
		{ShipmentDraft, ShipmentScheduled, true},
		{ShipmentScheduled, ShipmentInTransit, true},
		{ShipmentInTransit, ShipmentDelivered, true},
		{ShipmentDraft, ShipmentInTransit, false}, // no skipping
		{ShipmentScheduled, ShipmentDraft, false}, // no reversal
		{ShipmentDelivered, ShipmentDraft, false}, // terminal
		{ShipmentDelivered, ShipmentDelivered, false},
		{ShipmentStatus("DESCONOCIDO"), ShipmentScheduled, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%s → %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestSegmentStatus_Lifecycle(t *testing.T) {
	if !SegmentPending.CanAssign() {
		t.Error("PENDIENTE should allow assignment")
	}
	if SegmentAssigned.CanAssign() || SegmentStarted.CanAssign() || SegmentFinished.CanAssign() {
		t.Error("only PENDIENTE allows assignment")
	}

	if !SegmentAssigned.CanStart() {
		t.Error("ASIGNADO should allow start")
	}
	if SegmentPending.CanStart() || SegmentStarted.CanStart() || SegmentFinished.CanStart() {
		t.Error("only ASIGNADO allows start")
	}

	if !SegmentStarted.CanFinish() {
		t.Error("INICIADO should allow finish")
	}
	if SegmentPending.CanFinish() || SegmentAssigned.CanFinish() || SegmentFinished.CanFinish() {
		t.Error("only INICIADO allows finish")
	}
}

func TestItinerarySegment_PlannedDatesDecode(t *testing.T) {
	body := []byte(`{
		"tramos": [{
			"orden": 1,
			"tipo": "ORIGEN_DESTINO",
			"puntoInicio": {"latitud": -31.4, "longitud": -64.2},
			"puntoFin": {"latitud": -34.6, "longitud": -58.4},
			"fechaEstimadaInicio": "2026-09-01T08:00:00Z",
			"fechaEstimadaFin": "2026-09-01T16:00:00Z"
		}]
	}`)

	var it Itinerary
	if err := json.Unmarshal(body, &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	seg := it.Segments[0]
	if seg.PlannedStart == nil || seg.PlannedEnd == nil {
		t.Fatal("planned dates were dropped during decoding")
	}
	wantStart := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	if !seg.PlannedStart.Equal(wantStart) {
		t.Errorf("fechaEstimadaInicio = %v, want %v", seg.PlannedStart, wantStart)
	}
	if !seg.PlannedEnd.After(*seg.PlannedStart) {
		t.Errorf("fechaEstimadaFin = %v, want after %v", seg.PlannedEnd, seg.PlannedStart)
	}
}

func TestSegmentType_EndsAtWarehouse(t *testing.T) {
	cases := []struct {
		typ  SegmentType
		want bool
	}{
		{SegmentOriginDestination, false},
		{SegmentOriginWarehouse, true},
		{SegmentWarehouseWarehouse, true},
		{SegmentWarehouseDestination, false},
	}
	for _, c := range cases {
		if got := c.typ.EndsAtWarehouse(); got != c.want {
			t.Errorf("EndsAtWarehouse(%s) = %v, want %v", c.typ, got, c.want)
		}
	}
}
