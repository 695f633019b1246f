package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"freightops/internal/model"
)

// TruckRefRepository maintains camiones_ref, the local mirror of fleet-owned
// trucks. Rows are refreshed read-through from the fleet service before each
// assignment; the disponible bit is locally authoritative while a truck is
// occupied, so a refresh never overwrites it.
type TruckRefRepository struct {
	pool *pgxpool.Pool
}

// NewTruckRefRepository creates a new truck mirror repository.
func NewTruckRefRepository(pool *pgxpool.Pool) *TruckRefRepository {
	return &TruckRefRepository{pool: pool}
}

// Upsert refreshes the mirror row for a fleet truck. On first sight the
// fleet's availability is taken as-is; on refresh only identity and
// capacities are updated, keeping the local disponible bit.
func (r *TruckRefRepository) Upsert(ctx context.Context, t *model.Truck) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO camiones_ref (id, dominio, capacidad_peso, capacidad_volumen, disponible)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET dominio = EXCLUDED.dominio,
		    capacidad_peso = EXCLUDED.capacidad_peso,
		    capacidad_volumen = EXCLUDED.capacidad_volumen
	`, t.ID, t.Plate, t.WeightCapacity, t.VolumeCapacity, t.Available)
	if err != nil {
		return fmt.Errorf("truckref: upsert %d: %w", t.ID, err)
	}
	return nil
}

// Get returns a mirror row by truck id.
func (r *TruckRefRepository) Get(ctx context.Context, id int64) (*model.TruckRef, error) {
	ref := &model.TruckRef{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, dominio, capacidad_peso, capacidad_volumen, disponible
		FROM camiones_ref
		WHERE id = $1
	`, id).Scan(&ref.ID, &ref.Plate, &ref.WeightCapacity, &ref.VolumeCapacity, &ref.Available)
	if err != nil {
		return nil, fmt.Errorf("truckref: get %d: %w", id, err)
	}
	return ref, nil
}
