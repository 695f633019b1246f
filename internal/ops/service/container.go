package service

import (
	"context"

	"freightops/internal/model"
	"freightops/internal/ops/repository"
)

// ContainerService exposes containers for consultation. Containers are
// created with their shipment request and their status belongs to the
// segment lifecycle; only identity fields are editable here.
type ContainerService struct {
	repo *repository.ContainerRepository
}

// NewContainerService creates a container service.
func NewContainerService(repo *repository.ContainerRepository) *ContainerService {
	return &ContainerService{repo: repo}
}

// List returns all containers.
func (s *ContainerService) List(ctx context.Context) ([]model.Container, error) {
	containers, err := s.repo.List(ctx)
	return containers, classifyError(err)
}

// Get returns a container by id.
func (s *ContainerService) Get(ctx context.Context, id int64) (*model.Container, error) {
	c, err := s.repo.Get(ctx, id)
	return c, classifyError(err)
}

// UpdateIdentity replaces the identity fields of a container.
func (s *ContainerService) UpdateIdentity(ctx context.Context, id int64, code string, weight, volume float64) (*model.Container, error) {
	if code == "" {
		return nil, validationf("numero is required")
	}
	if weight <= 0 {
		return nil, validationf("peso must be positive, got %v", weight)
	}
	if volume <= 0 {
		return nil, validationf("volumen must be positive, got %v", volume)
	}
	c, err := s.repo.UpdateIdentity(ctx, id, code, weight, volume)
	return c, classifyError(err)
}
