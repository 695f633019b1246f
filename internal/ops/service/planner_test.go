package service

import (
	"math"
	"testing"

	"freightops/internal/model"
)

var (
	cordoba     = model.Location{Lat: -31.4, Lon: -64.2}
	buenosAires = model.Location{Lat: -34.6, Lon: -58.4}
)

func TestBuildDirectItinerary_SingleLeg(t *testing.T) {
	it := BuildDirectItinerary(cordoba, buenosAires, 1500)

	if len(it.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(it.Segments))
	}
	seg := it.Segments[0]
	if seg.Order != 1 {
		t.Errorf("orden = %d, want 1", seg.Order)
	}
	if seg.Type != model.SegmentOriginDestination {
		t.Errorf("tipo = %s, want %s", seg.Type, model.SegmentOriginDestination)
	}
	if seg.Start != cordoba || seg.End != buenosAires {
		t.Error("segment endpoints do not match origin/destination")
	}
}

func TestBuildDirectItinerary_Totals(t *testing.T) {
	it := BuildDirectItinerary(cordoba, buenosAires, 1500)

	if it.TotalDistance < 640 || it.TotalDistance > 655 {
		t.Errorf("distancia = %.2f km, want ~647", it.TotalDistance)
	}

	// Cost is distance times per-km rate, up to rounding.
	wantCost := it.TotalDistance * 1500
	if math.Abs(it.TotalCost-wantCost) > 1 {
		t.Errorf("costo = %.2f, want %.2f", it.TotalCost, wantCost)
	}

	// Time is distance at 80 km/h, up to rounding.
	wantHours := it.TotalDistance / 80
	if math.Abs(it.TotalTime-wantHours) > 0.05 {
		t.Errorf("tiempo = %.2f h, want %.2f", it.TotalTime, wantHours)
	}

	// Totals equal the single leg's values.
	seg := it.Segments[0]
	if seg.DistanceKm != it.TotalDistance || seg.EstimatedCost != it.TotalCost || seg.EstimatedHours != it.TotalTime {
		t.Error("itinerary totals differ from the single leg")
	}
}

func TestBuildDirectItinerary_RateScalesCost(t *testing.T) {
	cheap := BuildDirectItinerary(cordoba, buenosAires, 100)
	dear := BuildDirectItinerary(cordoba, buenosAires, 200)

	if math.Abs(dear.TotalCost-2*cheap.TotalCost) > 1 {
		t.Errorf("doubling the rate should double the cost: %.2f vs %.2f", cheap.TotalCost, dear.TotalCost)
	}
	if cheap.TotalDistance != dear.TotalDistance || cheap.TotalTime != dear.TotalTime {
		t.Error("rate must not affect distance or time")
	}
}
