package service

import (
	"context"
	"log"

	"freightops/internal/model"
	"freightops/internal/ops/repository"
)

// ShipmentService orchestrates shipment requests end to end: registration,
// queries, the tracking view and deletion.
type ShipmentService struct {
	shipments  *repository.ShipmentRepository
	routes     *repository.RouteRepository
	segments   *repository.SegmentRepository
	containers *repository.ContainerRepository
}

// NewShipmentService creates a shipment service.
func NewShipmentService(
	shipments *repository.ShipmentRepository,
	routes *repository.RouteRepository,
	segments *repository.SegmentRepository,
	containers *repository.ContainerRepository,
) *ShipmentService {
	return &ShipmentService{
		shipments:  shipments,
		routes:     routes,
		segments:   segments,
		containers: containers,
	}
}

// CreateShipmentInput is the registration payload. Exactly one of ClientID /
// Client identifies the requester.
type CreateShipmentInput struct {
	ClientID     *int64          `json:"clienteId"`
	Client       *model.Client   `json:"cliente"`
	Container    model.Container `json:"contenedor"`
	Origin       model.Location  `json:"origen"`
	Destination  model.Location  `json:"destino"`
	Observations string          `json:"observaciones"`
}

// Create validates and registers a shipment request. The client, container,
// draft route and request are created atomically; a failure in any step
// leaves nothing behind.
func (s *ShipmentService) Create(ctx context.Context, in CreateShipmentInput) (*model.Shipment, error) {
	if (in.ClientID == nil) == (in.Client == nil) {
		return nil, validationf("debe indicarse clienteId o cliente, pero no ambos")
	}
	if in.Client != nil && in.Client.Name == "" {
		return nil, validationf("cliente.nombre is required")
	}
	if in.Container.Code == "" {
		return nil, validationf("contenedor.numero is required")
	}
	if in.Container.Weight <= 0 {
		return nil, validationf("contenedor.peso must be positive, got %v", in.Container.Weight)
	}
	if in.Container.Volume <= 0 {
		return nil, validationf("contenedor.volumen must be positive, got %v", in.Container.Volume)
	}
	if err := validateLocation("origen", in.Origin); err != nil {
		return nil, err
	}
	if err := validateLocation("destino", in.Destination); err != nil {
		return nil, err
	}

	shipment, err := s.shipments.Create(ctx, repository.NewShipment{
		ClientID:     in.ClientID,
		Client:       in.Client,
		Container:    in.Container,
		Origin:       in.Origin,
		Destination:  in.Destination,
		Observations: in.Observations,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	log.Printf("[shipment] created #%d cliente=%d contenedor=%d",
		shipment.ID, shipment.ClientID, shipment.ContainerID)
	return shipment, nil
}

// Get returns a shipment by id.
func (s *ShipmentService) Get(ctx context.Context, id int64) (*model.Shipment, error) {
	shipment, err := s.shipments.Get(ctx, id)
	return shipment, classifyError(err)
}

// List returns all shipments.
func (s *ShipmentService) List(ctx context.Context) ([]model.Shipment, error) {
	shipments, err := s.shipments.List(ctx)
	return shipments, classifyError(err)
}

// UpdateObservations replaces the free-text notes of a shipment.
func (s *ShipmentService) UpdateObservations(ctx context.Context, id int64, obs string) (*model.Shipment, error) {
	shipment, err := s.shipments.UpdateObservations(ctx, id, obs)
	return shipment, classifyError(err)
}

// Delete removes a shipment. Requests with trucks assigned or en route
// cannot be deleted.
func (s *ShipmentService) Delete(ctx context.Context, id int64) error {
	if err := s.shipments.Delete(ctx, id); err != nil {
		return classifyError(err)
	}
	log.Printf("[shipment] deleted #%d", id)
	return nil
}

// Status assembles the tracking view for a shipment: container location,
// route, segment history, progress percentage and delivery estimate.
func (s *ShipmentService) Status(ctx context.Context, id int64) (*StatusView, error) {
	shipment, err := s.shipments.Get(ctx, id)
	if err != nil {
		return nil, classifyError(err)
	}

	container, err := s.containers.Get(ctx, shipment.ContainerID)
	if err != nil {
		return nil, classifyError(err)
	}

	var route *model.Route
	segments := []model.Segment{}
	if shipment.RouteID != nil {
		route, err = s.routes.Get(ctx, *shipment.RouteID)
		if err != nil {
			return nil, classifyError(err)
		}
		segments, err = s.segments.ListByRoute(ctx, *shipment.RouteID)
		if err != nil {
			return nil, classifyError(err)
		}
	}

	return BuildStatusView(shipment, container, route, segments), nil
}

func validateLocation(field string, loc model.Location) error {
	if loc.Lat < -90 || loc.Lat > 90 {
		return validationf("%s.latitud out of range: %v", field, loc.Lat)
	}
	if loc.Lon < -180 || loc.Lon > 180 {
		return validationf("%s.longitud out of range: %v", field, loc.Lon)
	}
	return nil
}
