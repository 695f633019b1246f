package service

import (
	"context"

	"freightops/internal/model"
	"freightops/internal/ops/repository"
)

// ClientService manages the client registry.
type ClientService struct {
	repo *repository.ClientRepository
}

// NewClientService creates a client service.
func NewClientService(repo *repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// List returns all clients.
func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	clients, err := s.repo.List(ctx)
	return clients, classifyError(err)
}

// Get returns a client by id.
func (s *ClientService) Get(ctx context.Context, id int64) (*model.Client, error) {
	c, err := s.repo.Get(ctx, id)
	return c, classifyError(err)
}

// Create validates and persists a new client.
func (s *ClientService) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	if c.Name == "" {
		return nil, validationf("nombre is required")
	}
	created, err := s.repo.Create(ctx, c)
	return created, classifyError(err)
}

// Update replaces the mutable fields of a client.
func (s *ClientService) Update(ctx context.Context, id int64, c *model.Client) (*model.Client, error) {
	if c.Name == "" {
		return nil, validationf("nombre is required")
	}
	updated, err := s.repo.Update(ctx, id, c)
	return updated, classifyError(err)
}

// Delete removes a client.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return classifyError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
