package service

import (
	"context"
	"errors"
	"log"

	"freightops/internal/fleet/repository"
	"freightops/internal/model"
)

// TariffService manages the tariff registry.
//
// Invariant: at most one active tariff at any instant. The repository
// enforces it transactionally; this layer validates input and decides the
// activation default (a tariff created without an explicit flag becomes
// the active one).
type TariffService struct {
	repo *repository.TariffRepository
}

// NewTariffService creates a tariff service.
func NewTariffService(repo *repository.TariffRepository) *TariffService {
	return &TariffService{repo: repo}
}

// CreateTariffInput is the payload for creating a tariff.
// Active defaults to true when omitted.
type CreateTariffInput struct {
	Type        string  `json:"tipo"`
	Value       float64 `json:"valor"`
	Description string  `json:"descripcion"`
	Active      *bool   `json:"activa"`
}

// List returns all tariffs, most recent validity first.
func (s *TariffService) List(ctx context.Context) ([]model.Tariff, error) {
	tariffs, err := s.repo.List(ctx)
	return tariffs, classifyError(err)
}

// Get returns a tariff by id.
func (s *TariffService) Get(ctx context.Context, id int64) (*model.Tariff, error) {
	t, err := s.repo.Get(ctx, id)
	return t, classifyError(err)
}

// Active returns the currently active tariff, or ErrNoActiveTariff.
func (s *TariffService) Active(ctx context.Context) (*model.Tariff, error) {
	t, err := s.repo.GetActive(ctx)
	if err := classifyError(err); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoActiveTariff
		}
		return nil, err
	}
	return t, nil
}

// ExistsActive reports whether an active tariff exists.
func (s *TariffService) ExistsActive(ctx context.Context) (bool, error) {
	ok, err := s.repo.ExistsActive(ctx)
	return ok, classifyError(err)
}

// Create validates and persists a new tariff. When the new tariff is active,
// the previous active one has its validity window closed in the same
// transaction.
func (s *TariffService) Create(ctx context.Context, in CreateTariffInput) (*model.Tariff, error) {
	if in.Type == "" {
		return nil, validationf("tipo is required")
	}
	if in.Value <= 0 {
		return nil, validationf("valor must be positive, got %v", in.Value)
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	t, err := s.repo.Create(ctx, &model.Tariff{
		Type:        in.Type,
		Value:       in.Value,
		Description: in.Description,
		Active:      active,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	log.Printf("[tariff] created #%d tipo=%s valor=%.2f activa=%v", t.ID, t.Type, t.Value, t.Active)
	return t, nil
}

// Update applies a partial update. Activating a tariff closes the current
// active one; deactivating is always permitted, even if that leaves no
// active tariff.
func (s *TariffService) Update(ctx context.Context, id int64, upd repository.TariffUpdate) (*model.Tariff, error) {
	if upd.Value != nil && *upd.Value <= 0 {
		return nil, validationf("valor must be positive, got %v", *upd.Value)
	}
	if upd.Type != nil && *upd.Type == "" {
		return nil, validationf("tipo must not be empty")
	}

	t, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, classifyError(err)
	}

	log.Printf("[tariff] updated #%d activa=%v", t.ID, t.Active)
	return t, nil
}

// Delete removes a tariff. The active tariff cannot be deleted.
func (s *TariffService) Delete(ctx context.Context, id int64) error {
	deleted, active, err := s.repo.Delete(ctx, id)
	if err != nil {
		return classifyError(err)
	}
	if active {
		return ErrActiveTariffDelete
	}
	if !deleted {
		return ErrNotFound
	}

	log.Printf("[tariff] deleted #%d", id)
	return nil
}
