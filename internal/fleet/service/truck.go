package service

import (
	"context"
	"log"

	"freightops/internal/fleet/repository"
	"freightops/internal/model"
)

// TruckService manages the truck registry. The availability flag on this
// side is the fleet-wide source of truth; the operations service mirrors it
// and writes back through SetAvailability after each assignment or release.
type TruckService struct {
	repo *repository.TruckRepository
}

// NewTruckService creates a truck service.
func NewTruckService(repo *repository.TruckRepository) *TruckService {
	return &TruckService{repo: repo}
}

// List returns all trucks.
func (s *TruckService) List(ctx context.Context) ([]model.Truck, error) {
	trucks, err := s.repo.List(ctx)
	return trucks, classifyError(err)
}

// Available returns available trucks meeting the minimum capacities.
func (s *TruckService) Available(ctx context.Context, minWeight, minVolume float64) ([]model.Truck, error) {
	if minWeight < 0 {
		return nil, validationf("pesoMinimo must not be negative, got %v", minWeight)
	}
	if minVolume < 0 {
		return nil, validationf("volumenMinimo must not be negative, got %v", minVolume)
	}
	trucks, err := s.repo.ListAvailable(ctx, minWeight, minVolume)
	return trucks, classifyError(err)
}

// Get returns a truck by id.
func (s *TruckService) Get(ctx context.Context, id int64) (*model.Truck, error) {
	t, err := s.repo.Get(ctx, id)
	return t, classifyError(err)
}

// Create validates and persists a new truck.
func (s *TruckService) Create(ctx context.Context, t *model.Truck) (*model.Truck, error) {
	if err := validateTruck(t); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, classifyError(err)
	}

	log.Printf("[truck] created #%d dominio=%s peso=%.0f volumen=%.0f",
		created.ID, created.Plate, created.WeightCapacity, created.VolumeCapacity)
	return created, nil
}

// Update replaces the mutable fields of a truck.
func (s *TruckService) Update(ctx context.Context, id int64, t *model.Truck) (*model.Truck, error) {
	if err := validateTruck(t); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, t)
	return updated, classifyError(err)
}

// SetAvailability flips the availability flag. Called by the operations
// service to occupy a truck on assignment and release it on segment finish.
func (s *TruckService) SetAvailability(ctx context.Context, id int64, available bool) (*model.Truck, error) {
	t, err := s.repo.SetAvailability(ctx, id, available)
	if err != nil {
		return nil, classifyError(err)
	}

	log.Printf("[truck] #%d disponible=%v", id, available)
	return t, nil
}

// Delete removes a truck.
func (s *TruckService) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return classifyError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func validateTruck(t *model.Truck) error {
	if t.Plate == "" {
		return validationf("dominio is required")
	}
	if t.WeightCapacity <= 0 {
		return validationf("capacidadPeso must be positive, got %v", t.WeightCapacity)
	}
	if t.VolumeCapacity <= 0 {
		return validationf("capacidadVolumen must be positive, got %v", t.VolumeCapacity)
	}
	if t.CostPerKm < 0 {
		return validationf("costoPorKm must not be negative, got %v", t.CostPerKm)
	}
	return nil
}
