package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"freightops/internal/model"
)

// WarehouseRepository handles warehouse persistence. Warehouses have no
// state machine; this is plain CRUD.
type WarehouseRepository struct {
	pool *pgxpool.Pool
}

// NewWarehouseRepository creates a new warehouse repository.
func NewWarehouseRepository(pool *pgxpool.Pool) *WarehouseRepository {
	return &WarehouseRepository{pool: pool}
}

// List returns all warehouses ordered by name.
func (r *WarehouseRepository) List(ctx context.Context) ([]model.Warehouse, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, nombre, direccion, latitud, longitud, costo_estadia_diaria
		FROM depositos
		ORDER BY nombre
	`)
	if err != nil {
		return nil, fmt.Errorf("warehouse: list: %w", err)
	}
	defer rows.Close()

	warehouses := []model.Warehouse{}
	for rows.Next() {
		var w model.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address,
			&w.Location.Lat, &w.Location.Lon, &w.CostPerDay); err != nil {
			return nil, fmt.Errorf("warehouse: scan: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

// Get returns a single warehouse by id.
func (r *WarehouseRepository) Get(ctx context.Context, id int64) (*model.Warehouse, error) {
	w := &model.Warehouse{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, nombre, direccion, latitud, longitud, costo_estadia_diaria
		FROM depositos
		WHERE id = $1
	`, id).Scan(&w.ID, &w.Name, &w.Address, &w.Location.Lat, &w.Location.Lon, &w.CostPerDay)
	if err != nil {
		return nil, fmt.Errorf("warehouse: get %d: %w", id, err)
	}
	return w, nil
}

// Create inserts a new warehouse.
func (r *WarehouseRepository) Create(ctx context.Context, w *model.Warehouse) (*model.Warehouse, error) {
	created := *w
	err := r.pool.QueryRow(ctx, `
		INSERT INTO depositos (nombre, direccion, latitud, longitud, costo_estadia_diaria)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, w.Name, w.Address, w.Location.Lat, w.Location.Lon, w.CostPerDay).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("warehouse: insert: %w", err)
	}
	return &created, nil
}

// Update replaces the mutable fields of a warehouse.
func (r *WarehouseRepository) Update(ctx context.Context, id int64, w *model.Warehouse) (*model.Warehouse, error) {
	updated := &model.Warehouse{}
	err := r.pool.QueryRow(ctx, `
		UPDATE depositos
		SET nombre = $2, direccion = $3, latitud = $4, longitud = $5, costo_estadia_diaria = $6
		WHERE id = $1
		RETURNING id, nombre, direccion, latitud, longitud, costo_estadia_diaria
	`, id, w.Name, w.Address, w.Location.Lat, w.Location.Lon, w.CostPerDay).
		Scan(&updated.ID, &updated.Name, &updated.Address,
			&updated.Location.Lat, &updated.Location.Lon, &updated.CostPerDay)
	if err != nil {
		return nil, fmt.Errorf("warehouse: update %d: %w", id, err)
	}
	return updated, nil
}

// Delete removes a warehouse. Returns the number of rows deleted.
func (r *WarehouseRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM depositos WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("warehouse: delete %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
