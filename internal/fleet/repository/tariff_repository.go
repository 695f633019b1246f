// Package repository provides database access for the fleet service.
//
// TariffRepository enforces the single-active-tariff invariant with
// pessimistic locking (SELECT ... FOR UPDATE) plus a partial unique index,
// and serves the active tariff through a short-TTL Redis cache.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"freightops/internal/model"
)

// TariffRepository handles tariff persistence and the active-tariff cache.
type TariffRepository struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

// NewTariffRepository creates a new tariff repository.
func NewTariffRepository(pool *pgxpool.Pool, redis *redis.Client) *TariffRepository {
	return &TariffRepository{pool: pool, redis: redis}
}

// ─── Redis-backed fast path ─────────────────────────────────

const (
	activeTariffKey      = "tarifa:activa"
	activeTariffCacheTTL = 30 * time.Second // Short TTL: the rate is read on every quote.
)

// GetActive returns the currently active tariff.
//
// Strategy:
//  1. Try Redis cache first (fast path, <1ms).
//  2. On cache miss, query Postgres, then cache in Redis.
//
// Every tariff write invalidates the cache, so the TTL only bounds staleness
// after a cache-invalidation failure.
func (r *TariffRepository) GetActive(ctx context.Context) (*model.Tariff, error) {
	// ── Fast path: Redis cache ──────────────────────────
	if raw, err := r.redis.Get(ctx, activeTariffKey).Bytes(); err == nil {
		t := &model.Tariff{}
		if err := json.Unmarshal(raw, t); err == nil {
			return t, nil
		}
		// Corrupt cache entry: fall through to the DB and overwrite it.
	}

	// ── Slow path: Postgres ─────────────────────────────
	t := &model.Tariff{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, tipo, valor, descripcion, vigencia_desde, vigencia_hasta, activa
		FROM tarifas
		WHERE activa
	`).Scan(&t.ID, &t.Type, &t.Value, &t.Description, &t.ValidFrom, &t.ValidTo, &t.Active)
	if err != nil {
		return nil, fmt.Errorf("tariff: get active: %w", err)
	}

	// Cache the result in Redis (fire-and-forget, don't block on errors).
	if raw, err := json.Marshal(t); err == nil {
		_ = r.redis.Set(ctx, activeTariffKey, raw, activeTariffCacheTTL).Err()
	}

	return t, nil
}

// invalidateActiveCache clears the cached active tariff.
// Called after every tariff write.
func (r *TariffRepository) invalidateActiveCache(ctx context.Context) {
	_ = r.redis.Del(ctx, activeTariffKey).Err()
}

// ─── Queries ────────────────────────────────────────────────

// List returns all tariffs, most recent validity first.
func (r *TariffRepository) List(ctx context.Context) ([]model.Tariff, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tipo, valor, descripcion, vigencia_desde, vigencia_hasta, activa
		FROM tarifas
		ORDER BY vigencia_desde DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("tariff: list: %w", err)
	}
	defer rows.Close()

	tariffs := []model.Tariff{}
	for rows.Next() {
		var t model.Tariff
		if err := rows.Scan(&t.ID, &t.Type, &t.Value, &t.Description,
			&t.ValidFrom, &t.ValidTo, &t.Active); err != nil {
			return nil, fmt.Errorf("tariff: scan: %w", err)
		}
		tariffs = append(tariffs, t)
	}
	return tariffs, rows.Err()
}

// Get returns a single tariff by id.
func (r *TariffRepository) Get(ctx context.Context, id int64) (*model.Tariff, error) {
	t := &model.Tariff{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, tipo, valor, descripcion, vigencia_desde, vigencia_hasta, activa
		FROM tarifas
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Type, &t.Value, &t.Description, &t.ValidFrom, &t.ValidTo, &t.Active)
	if err != nil {
		return nil, fmt.Errorf("tariff: get %d: %w", id, err)
	}
	return t, nil
}

// ExistsActive reports whether any tariff is currently active.
func (r *TariffRepository) ExistsActive(ctx context.Context) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tarifas WHERE activa)`,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("tariff: exists active: %w", err)
	}
	return exists, nil
}

// ─── Transactional writes ───────────────────────────────────

// Create inserts a new tariff. If the tariff is to become active, the
// current active tariff (if any) is closed in the same transaction:
// its validity window is ended (vigencia_hasta = now) and activa is cleared
// before the new row is inserted. The partial unique index on
// tarifas(activa) WHERE activa backstops this against writers that skip
// the lock.
//
// Concurrency: the active row is locked FOR UPDATE, so two concurrent
// activations serialize; the second one deactivates the first's new row.
func (r *TariffRepository) Create(ctx context.Context, t *model.Tariff) (*model.Tariff, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("tariff: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if t.Active {
		if err := deactivateCurrent(ctx, tx); err != nil {
			return nil, err
		}
	}

	created := *t
	err = tx.QueryRow(ctx, `
		INSERT INTO tarifas (tipo, valor, descripcion, vigencia_desde, activa)
		VALUES ($1, $2, $3, now(), $4)
		RETURNING id, vigencia_desde
	`, t.Type, t.Value, t.Description, t.Active).Scan(&created.ID, &created.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("tariff: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tariff: commit: %w", err)
	}

	r.invalidateActiveCache(ctx)
	return &created, nil
}

// TariffUpdate carries the mutable tariff fields for a partial update.
// Nil pointers mean "leave unchanged".
type TariffUpdate struct {
	Type        *string  `json:"tipo"`
	Value       *float64 `json:"valor"`
	Description *string  `json:"descripcion"`
	Active      *bool    `json:"activa"`
}

// Update applies a partial update to a tariff inside one transaction.
//
// Activation rules:
//   - activating a tariff closes the current active one first (FOR UPDATE);
//   - deactivating a tariff ends its validity window (vigencia_hasta = now);
//     a period with no active tariff is legal, callers of GetActive must
//     handle its absence.
func (r *TariffRepository) Update(ctx context.Context, id int64, upd TariffUpdate) (*model.Tariff, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("tariff: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the target row so concurrent updates serialize.
	t := &model.Tariff{}
	err = tx.QueryRow(ctx, `
		SELECT id, tipo, valor, descripcion, vigencia_desde, vigencia_hasta, activa
		FROM tarifas
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&t.ID, &t.Type, &t.Value, &t.Description, &t.ValidFrom, &t.ValidTo, &t.Active)
	if err != nil {
		return nil, fmt.Errorf("tariff: lock %d: %w", id, err)
	}

	if upd.Type != nil {
		t.Type = *upd.Type
	}
	if upd.Value != nil {
		t.Value = *upd.Value
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}

	activating := upd.Active != nil && *upd.Active && !t.Active
	deactivating := upd.Active != nil && !*upd.Active && t.Active

	if activating {
		if err := deactivateCurrent(ctx, tx); err != nil {
			return nil, err
		}
		t.Active = true
		t.ValidTo = nil
	}
	if deactivating {
		now := time.Now()
		t.Active = false
		t.ValidTo = &now
	}

	_, err = tx.Exec(ctx, `
		UPDATE tarifas
		SET tipo = $2, valor = $3, descripcion = $4, vigencia_hasta = $5, activa = $6
		WHERE id = $1
	`, t.ID, t.Type, t.Value, t.Description, t.ValidTo, t.Active)
	if err != nil {
		return nil, fmt.Errorf("tariff: update %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tariff: commit: %w", err)
	}

	r.invalidateActiveCache(ctx)
	return t, nil
}

// Delete removes a tariff. The active tariff cannot be deleted; deactivate
// it first. Returns (deleted, active, error).
func (r *TariffRepository) Delete(ctx context.Context, id int64) (bool, bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return false, false, fmt.Errorf("tariff: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var active bool
	err = tx.QueryRow(ctx,
		`SELECT activa FROM tarifas WHERE id = $1 FOR UPDATE`, id,
	).Scan(&active)
	if err != nil {
		return false, false, fmt.Errorf("tariff: lock %d: %w", id, err)
	}

	if active {
		return false, true, nil
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tarifas WHERE id = $1`, id); err != nil {
		return false, false, fmt.Errorf("tariff: delete %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, false, fmt.Errorf("tariff: commit: %w", err)
	}

	r.invalidateActiveCache(ctx)
	return true, false, nil
}

// deactivateCurrent closes the current active tariff inside tx, if one exists.
func deactivateCurrent(ctx context.Context, tx pgx.Tx) error {
	// Lock the active row so a concurrent activation blocks here.
	var currentID int64
	err := tx.QueryRow(ctx,
		`SELECT id FROM tarifas WHERE activa FOR UPDATE`,
	).Scan(&currentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil // No active tariff, nothing to close.
	}
	if err != nil {
		return fmt.Errorf("tariff: lock active: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE tarifas
		SET activa = false, vigencia_hasta = now()
		WHERE id = $1
	`, currentID)
	if err != nil {
		return fmt.Errorf("tariff: deactivate %d: %w", currentID, err)
	}
	return nil
}
