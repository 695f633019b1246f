// Package geo provides geographic utility functions for route planning.
//
// All distance calculations use the Haversine formula on WGS-84 coordinates.
// Travel time is estimated using a constant average highway speed — good
// enough for itinerary estimates until a routing engine is wired in.
package geo

import (
	"math"

	"freightops/internal/model"
)

// ─── Constants ──────────────────────────────────────────────

const (
	// EarthRadiusKm is the mean radius of Earth in kilometers.
	EarthRadiusKm = 6371.0

	// AverageSpeedKmph is the assumed average truck speed over a leg.
	// Used for time estimation when a routing engine is not available.
	AverageSpeedKmph = 80.0
)

// ─── Distance ───────────────────────────────────────────────

// HaversineKm returns the great-circle distance between two points in kilometers.
//
// Complexity: O(1)
func HaversineKm(a, b model.Location) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// EstimateTimeHours returns the estimated travel time between two points
// in hours, assuming AverageSpeedKmph.
//
// Complexity: O(1)
func EstimateTimeHours(a, b model.Location) float64 {
	return HaversineKm(a, b) / AverageSpeedKmph
}

// PathDistanceKm returns the total distance of an ordered sequence of stops
// in kilometers.
//
// Complexity: O(S) where S = number of stops.
func PathDistanceKm(stops []model.Location) float64 {
	total := 0.0
	for i := 0; i < len(stops)-1; i++ {
		total += HaversineKm(stops[i], stops[i+1])
	}
	return total
}

// ─── Helpers ────────────────────────────────────────────────

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
