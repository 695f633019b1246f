package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"freightops/internal/model"
)

// ContainerRepository handles container persistence. Container status is
// mutated only by the segment lifecycle; this repository offers read access
// plus identity updates.
type ContainerRepository struct {
	pool *pgxpool.Pool
}

// NewContainerRepository creates a new container repository.
func NewContainerRepository(pool *pgxpool.Pool) *ContainerRepository {
	return &ContainerRepository{pool: pool}
}

// List returns all containers.
func (r *ContainerRepository) List(ctx context.Context) ([]model.Container, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, numero, peso, volumen, estado, cliente_id
		FROM contenedores
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("container: list: %w", err)
	}
	defer rows.Close()

	containers := []model.Container{}
	for rows.Next() {
		var c model.Container
		if err := rows.Scan(&c.ID, &c.Code, &c.Weight, &c.Volume, &c.Status, &c.ClientID); err != nil {
			return nil, fmt.Errorf("container: scan: %w", err)
		}
		containers = append(containers, c)
	}
	return containers, rows.Err()
}

// Get returns a container by id.
func (r *ContainerRepository) Get(ctx context.Context, id int64) (*model.Container, error) {
	c := &model.Container{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, numero, peso, volumen, estado, cliente_id
		FROM contenedores
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Code, &c.Weight, &c.Volume, &c.Status, &c.ClientID)
	if err != nil {
		return nil, fmt.Errorf("container: get %d: %w", id, err)
	}
	return c, nil
}

// UpdateIdentity replaces the identity fields of a container. Status and
// ownership are deliberately not touchable through this path.
func (r *ContainerRepository) UpdateIdentity(ctx context.Context, id int64, code string, weight, volume float64) (*model.Container, error) {
	c := &model.Container{}
	err := r.pool.QueryRow(ctx, `
		UPDATE contenedores
		SET numero = $2, peso = $3, volumen = $4
		WHERE id = $1
		RETURNING id, numero, peso, volumen, estado, cliente_id
	`, id, code, weight, volume).
		Scan(&c.ID, &c.Code, &c.Weight, &c.Volume, &c.Status, &c.ClientID)
	if err != nil {
		return nil, fmt.Errorf("container: update %d: %w", id, err)
	}
	return c, nil
}
