package service

import (
	"context"
	"log"
	"math"

	"freightops/internal/fleetclient"
	"freightops/internal/model"
	"freightops/internal/ops/repository"
	"freightops/pkg/geo"
)

// PlannerService proposes tentative itineraries for draft shipments and
// commits the chosen one.
//
// Pricing always uses the live active tariff from the fleet service; if the
// fleet service is unreachable the proposal fails with ErrFleetUnavailable
// instead of quoting with stale or assumed rates.
type PlannerService struct {
	shipments *repository.ShipmentRepository
	routes    *repository.RouteRepository
	fleet     *fleetclient.Client
}

// NewPlannerService creates a planner service.
func NewPlannerService(
	shipments *repository.ShipmentRepository,
	routes *repository.RouteRepository,
	fleet *fleetclient.Client,
) *PlannerService {
	return &PlannerService{shipments: shipments, routes: routes, fleet: fleet}
}

// Tentatives returns the itinerary candidates for a draft shipment, ordered
// best first. Today there is a single direct candidate; the list shape is
// the contract so ranked alternatives (warehouse stopovers) can be added
// without breaking callers.
func (s *PlannerService) Tentatives(ctx context.Context, shipmentID int64) ([]model.Itinerary, error) {
	shipment, err := s.shipments.Get(ctx, shipmentID)
	if err != nil {
		return nil, classifyError(err)
	}
	if shipment.Status != model.ShipmentDraft {
		return nil, ErrShipmentNotDraft
	}

	route, err := s.routes.Get(ctx, *shipment.RouteID)
	if err != nil {
		return nil, classifyError(err)
	}

	tariff, err := s.fleet.ActiveTariff(ctx)
	if err != nil {
		return nil, classifyError(err)
	}

	it := BuildDirectItinerary(route.Origin, route.Destination, tariff.Value)
	log.Printf("[planner] solicitud #%d: ruta directa %.1f km, %.1f h, $%.2f",
		shipmentID, it.TotalDistance, it.TotalTime, it.TotalCost)

	return []model.Itinerary{it}, nil
}

// AssignRoute commits a chosen itinerary: segments become PENDIENTE rows,
// the shipment gets its estimates and moves BORRADOR → PROGRAMADA.
func (s *PlannerService) AssignRoute(
	ctx context.Context,
	shipmentID int64,
	it model.Itinerary,
) (*model.Route, []model.Segment, error) {

	if len(it.Segments) == 0 {
		return nil, nil, validationf("la ruta debe tener al menos un tramo")
	}
	for i, seg := range it.Segments {
		if seg.Order != i+1 {
			return nil, nil, validationf("orden de tramos inválido: posición %d tiene orden %d", i+1, seg.Order)
		}
		if seg.DistanceKm < 0 || seg.EstimatedHours < 0 || seg.EstimatedCost < 0 {
			return nil, nil, validationf("tramo %d: valores negativos", seg.Order)
		}
		if seg.PlannedStart != nil && seg.PlannedEnd != nil && seg.PlannedEnd.Before(*seg.PlannedStart) {
			return nil, nil, validationf("tramo %d: fechaEstimadaFin anterior a fechaEstimadaInicio", seg.Order)
		}
	}

	route, segments, err := s.routes.CommitItinerary(ctx, shipmentID, it)
	if err != nil {
		return nil, nil, classifyError(err)
	}

	log.Printf("[planner] solicitud #%d programada: ruta #%d con %d tramos",
		shipmentID, route.ID, len(segments))
	return route, segments, nil
}

// BuildDirectItinerary builds the single-leg origin→destination candidate:
// Haversine distance, travel time at the average truck speed, cost as
// distance times the per-km rate. Values are rounded to two decimals to
// keep quotes stable across recomputation.
func BuildDirectItinerary(origin, destination model.Location, ratePerKm float64) model.Itinerary {
	distance := round2(geo.HaversineKm(origin, destination))
	hours := round2(distance / geo.AverageSpeedKmph)
	cost := round2(distance * ratePerKm)

	return model.Itinerary{
		Segments: []model.ItinerarySegment{{
			Order:          1,
			Type:           model.SegmentOriginDestination,
			Start:          origin,
			End:            destination,
			DistanceKm:     distance,
			EstimatedHours: hours,
			EstimatedCost:  cost,
			Notes:          "Viaje directo origen-destino",
		}},
		TotalDistance: distance,
		TotalTime:     hours,
		TotalCost:     cost,
		RouteKind:     "DIRECTA",
		Description:   "Ruta directa sin escalas",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
