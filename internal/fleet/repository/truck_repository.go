package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freightops/internal/model"
)

// TruckRepository handles truck persistence. Availability writes go through
// SetAvailability so the operations service can release and occupy trucks
// remotely.
type TruckRepository struct {
	pool *pgxpool.Pool
}

// NewTruckRepository creates a new truck repository.
func NewTruckRepository(pool *pgxpool.Pool) *TruckRepository {
	return &TruckRepository{pool: pool}
}

const truckColumns = `id, dominio, modelo, capacidad_peso, capacidad_volumen,
	costo_por_km, disponible, created_at, updated_at`

func scanTruck(row pgx.Row) (*model.Truck, error) {
	t := &model.Truck{}
	err := row.Scan(&t.ID, &t.Plate, &t.Model, &t.WeightCapacity, &t.VolumeCapacity,
		&t.CostPerKm, &t.Available, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all trucks ordered by plate.
func (r *TruckRepository) List(ctx context.Context) ([]model.Truck, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+truckColumns+` FROM camiones ORDER BY dominio`)
	if err != nil {
		return nil, fmt.Errorf("truck: list: %w", err)
	}
	defer rows.Close()

	trucks := []model.Truck{}
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("truck: scan: %w", err)
		}
		trucks = append(trucks, *t)
	}
	return trucks, rows.Err()
}

// ListAvailable returns available trucks with at least the given capacities.
// Zero minimums match every available truck.
func (r *TruckRepository) ListAvailable(ctx context.Context, minWeight, minVolume float64) ([]model.Truck, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+truckColumns+`
		FROM camiones
		WHERE disponible
		  AND capacidad_peso >= $1
		  AND capacidad_volumen >= $2
		ORDER BY capacidad_peso
	`, minWeight, minVolume)
	if err != nil {
		return nil, fmt.Errorf("truck: list available: %w", err)
	}
	defer rows.Close()

	trucks := []model.Truck{}
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("truck: scan: %w", err)
		}
		trucks = append(trucks, *t)
	}
	return trucks, rows.Err()
}

// Get returns a single truck by id.
func (r *TruckRepository) Get(ctx context.Context, id int64) (*model.Truck, error) {
	t, err := scanTruck(r.pool.QueryRow(ctx,
		`SELECT `+truckColumns+` FROM camiones WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("truck: get %d: %w", id, err)
	}
	return t, nil
}

// Create inserts a new truck. New trucks start available.
func (r *TruckRepository) Create(ctx context.Context, t *model.Truck) (*model.Truck, error) {
	created := *t
	created.Available = true
	err := r.pool.QueryRow(ctx, `
		INSERT INTO camiones (dominio, modelo, capacidad_peso, capacidad_volumen, costo_por_km, disponible)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, created_at, updated_at
	`, t.Plate, t.Model, t.WeightCapacity, t.VolumeCapacity, t.CostPerKm).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("truck: insert: %w", err)
	}
	return &created, nil
}

// Update replaces the mutable fields of a truck.
func (r *TruckRepository) Update(ctx context.Context, id int64, t *model.Truck) (*model.Truck, error) {
	updated, err := scanTruck(r.pool.QueryRow(ctx, `
		UPDATE camiones
		SET dominio = $2, modelo = $3, capacidad_peso = $4,
		    capacidad_volumen = $5, costo_por_km = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+truckColumns+`
	`, id, t.Plate, t.Model, t.WeightCapacity, t.VolumeCapacity, t.CostPerKm))
	if err != nil {
		return nil, fmt.Errorf("truck: update %d: %w", id, err)
	}
	return updated, nil
}

// SetAvailability flips the availability flag. Idempotent.
func (r *TruckRepository) SetAvailability(ctx context.Context, id int64, available bool) (*model.Truck, error) {
	t, err := scanTruck(r.pool.QueryRow(ctx, `
		UPDATE camiones
		SET disponible = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+truckColumns+`
	`, id, available))
	if err != nil {
		return nil, fmt.Errorf("truck: set availability %d: %w", id, err)
	}
	return t, nil
}

// Delete removes a truck. Returns the number of rows deleted.
func (r *TruckRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM camiones WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("truck: delete %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
