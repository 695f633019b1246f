package service

import (
	"context"

	"freightops/internal/fleet/repository"
	"freightops/internal/model"
)

// WarehouseService manages the warehouse registry.
type WarehouseService struct {
	repo *repository.WarehouseRepository
}

// NewWarehouseService creates a warehouse service.
func NewWarehouseService(repo *repository.WarehouseRepository) *WarehouseService {
	return &WarehouseService{repo: repo}
}

// List returns all warehouses.
func (s *WarehouseService) List(ctx context.Context) ([]model.Warehouse, error) {
	warehouses, err := s.repo.List(ctx)
	return warehouses, classifyError(err)
}

// Get returns a warehouse by id.
func (s *WarehouseService) Get(ctx context.Context, id int64) (*model.Warehouse, error) {
	w, err := s.repo.Get(ctx, id)
	return w, classifyError(err)
}

// Create validates and persists a new warehouse.
func (s *WarehouseService) Create(ctx context.Context, w *model.Warehouse) (*model.Warehouse, error) {
	if err := validateWarehouse(w); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, w)
	return created, classifyError(err)
}

// Update replaces the mutable fields of a warehouse.
func (s *WarehouseService) Update(ctx context.Context, id int64, w *model.Warehouse) (*model.Warehouse, error) {
	if err := validateWarehouse(w); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, w)
	return updated, classifyError(err)
}

// Delete removes a warehouse.
func (s *WarehouseService) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return classifyError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func validateWarehouse(w *model.Warehouse) error {
	if w.Name == "" {
		return validationf("nombre is required")
	}
	if w.Location.Lat < -90 || w.Location.Lat > 90 {
		return validationf("latitud out of range: %v", w.Location.Lat)
	}
	if w.Location.Lon < -180 || w.Location.Lon > 180 {
		return validationf("longitud out of range: %v", w.Location.Lon)
	}
	if w.CostPerDay < 0 {
		return validationf("costoEstadiaDiaria must not be negative, got %v", w.CostPerDay)
	}
	return nil
}
