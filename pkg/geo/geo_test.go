package geo

import (
	"testing"

	"freightops/internal/model"
)

func TestHaversineKm_SamePoint(t *testing.T) {
	loc := model.Location{Lat: -34.6037, Lon: -58.3816}
	got := HaversineKm(loc, loc)
	if got != 0 {
		t.Errorf("HaversineKm(same point) = %v, want 0", got)
	}
}

func TestHaversineKm_CordobaBuenosAires(t *testing.T) {
	// Córdoba to Buenos Aires, great-circle ≈ 647 km.
	cordoba := model.Location{Lat: -31.4, Lon: -64.2}
	buenosAires := model.Location{Lat: -34.6, Lon: -58.4}
	got := HaversineKm(cordoba, buenosAires)
	wantMin, wantMax := 640.0, 655.0
	if got < wantMin || got > wantMax {
		t.Errorf("HaversineKm(Córdoba→Buenos Aires) = %.2f km, want between %.0f and %.0f", got, wantMin, wantMax)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := model.Location{Lat: -31.4, Lon: -64.2}
	b := model.Location{Lat: -34.6, Lon: -58.4}
	if ab, ba := HaversineKm(a, b), HaversineKm(b, a); ab != ba {
		t.Errorf("HaversineKm not symmetric: %v vs %v", ab, ba)
	}
}

func TestEstimateTimeHours(t *testing.T) {
	// ~647 km at 80 km/h ≈ 8.1 h.
	cordoba := model.Location{Lat: -31.4, Lon: -64.2}
	buenosAires := model.Location{Lat: -34.6, Lon: -58.4}
	got := EstimateTimeHours(cordoba, buenosAires)
	if got < 7.5 || got > 8.5 {
		t.Errorf("EstimateTimeHours = %.2f, expected ~8 h", got)
	}
}

func TestPathDistanceKm(t *testing.T) {
	// Córdoba → Rosario → Buenos Aires: longer than the direct leg.
	path := []model.Location{
		{Lat: -31.4, Lon: -64.2},
		{Lat: -32.95, Lon: -60.65},
		{Lat: -34.6, Lon: -58.4},
	}
	got := PathDistanceKm(path)
	direct := HaversineKm(path[0], path[2])
	if got <= direct {
		t.Errorf("PathDistanceKm = %.2f, want > direct distance %.2f", got, direct)
	}
}

func TestPathDistanceKm_SingleStop(t *testing.T) {
	path := []model.Location{{Lat: -31.4, Lon: -64.2}}
	if got := PathDistanceKm(path); got != 0 {
		t.Errorf("PathDistanceKm(single stop) = %v, want 0", got)
	}
}
