package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"freightops/internal/model"
)

// ClientRepository handles client persistence.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new client repository.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// List returns all clients ordered by name.
func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nombre, email, telefono FROM clientes ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("client: list: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("client: scan: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Get returns a client by id.
func (r *ClientRepository) Get(ctx context.Context, id int64) (*model.Client, error) {
	c := &model.Client{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, nombre, email, telefono FROM clientes WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		return nil, fmt.Errorf("client: get %d: %w", id, err)
	}
	return c, nil
}

// Create inserts a new client.
func (r *ClientRepository) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	created := *c
	err := r.pool.QueryRow(ctx, `
		INSERT INTO clientes (nombre, email, telefono)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.Name, c.Email, c.Phone).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("client: insert: %w", err)
	}
	return &created, nil
}

// Update replaces the mutable fields of a client.
func (r *ClientRepository) Update(ctx context.Context, id int64, c *model.Client) (*model.Client, error) {
	updated := &model.Client{}
	err := r.pool.QueryRow(ctx, `
		UPDATE clientes
		SET nombre = $2, email = $3, telefono = $4
		WHERE id = $1
		RETURNING id, nombre, email, telefono
	`, id, c.Name, c.Email, c.Phone).
		Scan(&updated.ID, &updated.Name, &updated.Email, &updated.Phone)
	if err != nil {
		return nil, fmt.Errorf("client: update %d: %w", id, err)
	}
	return updated, nil
}

// Delete removes a client. Returns the number of rows deleted.
func (r *ClientRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("client: delete %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}
