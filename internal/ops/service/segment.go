package service

import (
	"context"
	"log"

	"freightops/internal/fleetclient"
	"freightops/internal/model"
	"freightops/internal/ops/repository"
)

// SegmentService drives the segment lifecycle:
//
//	PENDIENTE → ASIGNADO → INICIADO → FINALIZADO
//
// Assignment refreshes the local truck mirror from the fleet service first
// (fail-safe: if the fleet service is down the assignment is rejected), then
// runs the locked transaction. Availability changes are mirrored back to the
// fleet service after commit on a best-effort basis; a failed mirror write
// is logged and the local state stays authoritative.
type SegmentService struct {
	segments  *repository.SegmentRepository
	truckRefs *repository.TruckRefRepository
	fleet     *fleetclient.Client
}

// NewSegmentService creates a segment service.
func NewSegmentService(
	segments *repository.SegmentRepository,
	truckRefs *repository.TruckRefRepository,
	fleet *fleetclient.Client,
) *SegmentService {
	return &SegmentService{segments: segments, truckRefs: truckRefs, fleet: fleet}
}

// Get returns a segment by id.
func (s *SegmentService) Get(ctx context.Context, id int64) (*model.Segment, error) {
	seg, err := s.segments.Get(ctx, id)
	return seg, classifyError(err)
}

// List returns all segments.
func (s *SegmentService) List(ctx context.Context) ([]model.Segment, error) {
	segments, err := s.segments.List(ctx)
	return segments, classifyError(err)
}

// ListByTruck returns the pending work queue of a truck: its assigned and
// started segments.
func (s *SegmentService) ListByTruck(ctx context.Context, truckID int64) ([]model.Segment, error) {
	segments, err := s.segments.ListByTruck(ctx, truckID)
	return segments, classifyError(err)
}

// Assign assigns a truck to a pending segment.
//
// Flow:
//  1. Fetch the truck from the fleet service and refresh the local mirror.
//     Fleet down → ErrFleetUnavailable, assignment rejected.
//  2. Locked transaction: segment must be PENDIENTE, mirror row must be
//     disponible, container must fit (weight and volume). Two dispatchers
//     racing for the same truck serialize on the mirror row lock.
//  3. After commit: mirror disponible=false back to the fleet service.
func (s *SegmentService) Assign(ctx context.Context, segmentID, truckID int64) (*model.Segment, error) {
	truck, err := s.fleet.Truck(ctx, truckID)
	if err != nil {
		return nil, classifyError(err)
	}
	if err := s.truckRefs.Upsert(ctx, truck); err != nil {
		return nil, classifyError(err)
	}

	seg, err := s.segments.Assign(ctx, segmentID, truckID)
	if err != nil {
		return nil, classifyError(err)
	}

	log.Printf("[segment] #%d asignado a camión #%d (%s)", seg.ID, truckID, truck.Plate)
	s.mirrorAvailability(ctx, truckID, false)
	return seg, nil
}

// Start marks a segment INICIADO; the container goes EN_VIAJE and the
// shipment EN_TRANSITO when the first leg departs.
func (s *SegmentService) Start(ctx context.Context, segmentID int64) (*model.Segment, error) {
	seg, err := s.segments.Start(ctx, segmentID)
	if err != nil {
		return nil, classifyError(err)
	}

	log.Printf("[segment] #%d iniciado (camión #%d)", seg.ID, *seg.TruckID)
	return seg, nil
}

// Finish marks a segment FINALIZADO. On the last leg of a route the
// container is delivered and the shipment closed with its final cost and
// travel time; intermediate warehouse legs park the container EN_DEPOSITO.
// The truck is released either way.
func (s *SegmentService) Finish(ctx context.Context, segmentID int64) (*model.Segment, error) {
	res, err := s.segments.Finish(ctx, segmentID)
	if err != nil {
		return nil, classifyError(err)
	}

	if res.Last {
		log.Printf("[segment] #%d finalizado: último tramo, envío entregado", segmentID)
	} else {
		log.Printf("[segment] #%d finalizado", segmentID)
	}
	s.mirrorAvailability(ctx, res.TruckID, true)
	return res.Segment, nil
}

// mirrorAvailability propagates a local availability change to the fleet
// service. Best effort: the local mirror already committed, so a failure
// here is logged and the next read-through refresh reconciles.
func (s *SegmentService) mirrorAvailability(ctx context.Context, truckID int64, available bool) {
	if err := s.fleet.UpdateTruckAvailability(ctx, truckID, available); err != nil {
		log.Printf("[segment] mirror disponibilidad camión #%d → %v failed: %v",
			truckID, available, err)
	}
}
