package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freightops/internal/model"
)

// SegmentRepository handles route segments (tramos) and the transactional
// lifecycle transitions that cascade into containers, shipments and the
// truck mirror.
type SegmentRepository struct {
	pool *pgxpool.Pool
}

// NewSegmentRepository creates a new segment repository.
func NewSegmentRepository(pool *pgxpool.Pool) *SegmentRepository {
	return &SegmentRepository{pool: pool}
}

const segmentColumns = `id, ruta_id, orden, tipo, inicio_lat, inicio_lon,
	fin_lat, fin_lon, distancia_km, tiempo_estimado_horas, estado,
	costo_aproximado, costo_real, fecha_estimada_inicio, fecha_estimada_fin,
	fecha_real_inicio, fecha_real_fin, camion_id`

func scanSegment(row pgx.Row) (*model.Segment, error) {
	s := &model.Segment{}
	err := row.Scan(&s.ID, &s.RouteID, &s.Order, &s.Type,
		&s.Start.Lat, &s.Start.Lon, &s.End.Lat, &s.End.Lon,
		&s.DistanceKm, &s.EstimatedHours, &s.Status,
		&s.EstimatedCost, &s.RealCost,
		&s.PlannedStart, &s.PlannedEnd, &s.ActualStart, &s.ActualEnd,
		&s.TruckID)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ─── Queries ────────────────────────────────────────────────

// Get returns a segment by id.
func (r *SegmentRepository) Get(ctx context.Context, id int64) (*model.Segment, error) {
	s, err := scanSegment(r.pool.QueryRow(ctx,
		`SELECT `+segmentColumns+` FROM tramos WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("segment: get %d: %w", id, err)
	}
	return s, nil
}

// List returns all segments ordered by route and position.
func (r *SegmentRepository) List(ctx context.Context) ([]model.Segment, error) {
	return r.listWhere(ctx, ``)
}

// ListByRoute returns the segments of a route in itinerary order.
func (r *SegmentRepository) ListByRoute(ctx context.Context, routeID int64) ([]model.Segment, error) {
	return r.listWhere(ctx, `WHERE ruta_id = $1`, routeID)
}

// ListByTruck returns the non-finished segments currently assigned to a
// truck: its pending work queue.
func (r *SegmentRepository) ListByTruck(ctx context.Context, truckID int64) ([]model.Segment, error) {
	return r.listWhere(ctx, `WHERE camion_id = $1 AND estado <> 'FINALIZADO'`, truckID)
}

func (r *SegmentRepository) listWhere(ctx context.Context, where string, args ...interface{}) ([]model.Segment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+segmentColumns+` FROM tramos `+where+` ORDER BY ruta_id, orden`, args...)
	if err != nil {
		return nil, fmt.Errorf("segment: list: %w", err)
	}
	defer rows.Close()

	segments := []model.Segment{}
	for rows.Next() {
		s, err := scanSegment(rows)
		if err != nil {
			return nil, fmt.Errorf("segment: scan: %w", err)
		}
		segments = append(segments, *s)
	}
	return segments, rows.Err()
}

// ─── Assign ─────────────────────────────────────────────────

// Assign assigns a truck to a pending segment in one serialized transaction.
//
// Concurrency strategy: PESSIMISTIC LOCKING.
//
//	Scenario: two dispatchers assign the same truck at the same millisecond.
//
//	T1: BEGIN → lock tramo A → lock camiones_ref 5 → disponible → UPDATE → COMMIT
//	T2: BEGIN → lock tramo B → lock camiones_ref 5 → (BLOCKS on T1)
//	T2: (unblocked) → re-reads → disponible=false → ROLLBACK → ErrTruckUnavailable
//
// The capacity check runs inside the same transaction, against the container
// of the shipment the segment belongs to.
func (r *SegmentRepository) Assign(ctx context.Context, segmentID, truckID int64) (*model.Segment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("segment: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// ── Step 1: LOCK the segment ────────────────────────
	var (
		status  model.SegmentStatus
		routeID int64
	)
	err = tx.QueryRow(ctx, `
		SELECT estado, ruta_id
		FROM tramos
		WHERE id = $1
		FOR UPDATE
	`, segmentID).Scan(&status, &routeID)
	if err != nil {
		return nil, fmt.Errorf("segment: lock %d: %w", segmentID, err)
	}
	if !status.CanAssign() {
		return nil, ErrSegmentNotPending
	}

	// ── Step 2: LOCK the truck mirror row ───────────────
	var (
		available      bool
		weightCapacity float64
		volumeCapacity float64
	)
	err = tx.QueryRow(ctx, `
		SELECT disponible, capacidad_peso, capacidad_volumen
		FROM camiones_ref
		WHERE id = $1
		FOR UPDATE
	`, truckID).Scan(&available, &weightCapacity, &volumeCapacity)
	if err != nil {
		return nil, fmt.Errorf("segment: lock truck %d: %w", truckID, err)
	}
	if !available {
		return nil, ErrTruckUnavailable
	}

	// ── Step 3: capacity check against the container ────
	var weight, volume float64
	err = tx.QueryRow(ctx, `
		SELECT c.peso, c.volumen
		FROM contenedores c
		JOIN solicitudes s ON s.contenedor_id = c.id
		WHERE s.ruta_id = $1
	`, routeID).Scan(&weight, &volume)
	if err != nil {
		return nil, fmt.Errorf("segment: container for route %d: %w", routeID, err)
	}

	if weight > weightCapacity {
		return nil, &CapacityError{Dimension: "peso", Required: weight, Available: weightCapacity}
	}
	if volume > volumeCapacity {
		return nil, &CapacityError{Dimension: "volumen", Required: volume, Available: volumeCapacity}
	}

	// ── Step 4: UPDATE — all constraints passed ─────────
	seg, err := scanSegment(tx.QueryRow(ctx, `
		UPDATE tramos
		SET estado = $2, camion_id = $3
		WHERE id = $1
		RETURNING `+segmentColumns+`
	`, segmentID, model.SegmentAssigned, truckID))
	if err != nil {
		return nil, fmt.Errorf("segment: update %d: %w", segmentID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE camiones_ref SET disponible = false WHERE id = $1
	`, truckID)
	if err != nil {
		return nil, fmt.Errorf("segment: occupy truck %d: %w", truckID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("segment: commit: %w", err)
	}
	return seg, nil
}

// ─── Start ──────────────────────────────────────────────────

// Start marks a segment INICIADO and cascades: the container goes EN_VIAJE
// and the shipment goes EN_TRANSITO if it has not already (starting the
// second leg of a route leaves it untouched).
func (r *SegmentRepository) Start(ctx context.Context, segmentID int64) (*model.Segment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("segment: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		status  model.SegmentStatus
		routeID int64
	)
	err = tx.QueryRow(ctx, `
		SELECT estado, ruta_id FROM tramos WHERE id = $1 FOR UPDATE
	`, segmentID).Scan(&status, &routeID)
	if err != nil {
		return nil, fmt.Errorf("segment: lock %d: %w", segmentID, err)
	}
	if !status.CanStart() {
		return nil, ErrSegmentNotAssigned
	}

	seg, err := scanSegment(tx.QueryRow(ctx, `
		UPDATE tramos
		SET estado = $2, fecha_real_inicio = now()
		WHERE id = $1
		RETURNING `+segmentColumns+`
	`, segmentID, model.SegmentStarted))
	if err != nil {
		return nil, fmt.Errorf("segment: update %d: %w", segmentID, err)
	}

	// Cascade: container and shipment follow the segment.
	var (
		shipmentID     int64
		shipmentStatus model.ShipmentStatus
		containerID    int64
	)
	err = tx.QueryRow(ctx, `
		SELECT id, estado, contenedor_id
		FROM solicitudes
		WHERE ruta_id = $1
		FOR UPDATE
	`, routeID).Scan(&shipmentID, &shipmentStatus, &containerID)
	if err != nil {
		return nil, fmt.Errorf("segment: shipment for route %d: %w", routeID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE contenedores SET estado = $2 WHERE id = $1
	`, containerID, model.ContainerInTransit)
	if err != nil {
		return nil, fmt.Errorf("segment: update container %d: %w", containerID, err)
	}

	if shipmentStatus.CanTransition(model.ShipmentInTransit) {
		_, err = tx.Exec(ctx, `
			UPDATE solicitudes SET estado = $2 WHERE id = $1
		`, shipmentID, model.ShipmentInTransit)
		if err != nil {
			return nil, fmt.Errorf("segment: update shipment %d: %w", shipmentID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("segment: commit: %w", err)
	}
	return seg, nil
}

// ─── Finish ─────────────────────────────────────────────────

// FinishResult is the outcome of finishing a segment.
type FinishResult struct {
	Segment *model.Segment
	TruckID int64
	Last    bool // True if this was the final segment of the route.
}

// Finish marks a segment FINALIZADO and cascades.
//
// Every segment of the route is locked FOR UPDATE in orden order, so the
// "was this the last segment" decision is atomic: two trucks finishing the
// final two legs concurrently serialize here, and exactly one of them
// observes all other legs finished and closes the shipment.
//
// The real cost of the leg is settled at the estimated cost; re-pricing
// against the tariff current at delivery time is a separate concern.
func (r *SegmentRepository) Finish(ctx context.Context, segmentID int64) (*FinishResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("segment: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// ── Step 1: find the route, then LOCK all its segments ──
	var routeID int64
	err = tx.QueryRow(ctx,
		`SELECT ruta_id FROM tramos WHERE id = $1`, segmentID,
	).Scan(&routeID)
	if err != nil {
		return nil, fmt.Errorf("segment: get %d: %w", segmentID, err)
	}

	rows, err := tx.Query(ctx, `
		SELECT id, estado, tipo, camion_id
		FROM tramos
		WHERE ruta_id = $1
		ORDER BY orden
		FOR UPDATE
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("segment: lock route %d: %w", routeID, err)
	}

	type lockedSeg struct {
		id      int64
		status  model.SegmentStatus
		segType model.SegmentType
		truckID *int64
	}
	var locked []lockedSeg
	for rows.Next() {
		var ls lockedSeg
		if err := rows.Scan(&ls.id, &ls.status, &ls.segType, &ls.truckID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("segment: scan lock: %w", err)
		}
		locked = append(locked, ls)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("segment: lock route %d: %w", routeID, err)
	}

	// ── Step 2: validate the target, decide "last" ──────
	var target *lockedSeg
	last := true
	for i := range locked {
		if locked[i].id == segmentID {
			target = &locked[i]
			continue
		}
		if locked[i].status != model.SegmentFinished {
			last = false
		}
	}
	if target == nil {
		return nil, fmt.Errorf("segment: %d not in route %d", segmentID, routeID)
	}
	if !target.status.CanFinish() {
		return nil, ErrSegmentNotStarted
	}

	// ── Step 3: finish the segment ──────────────────────
	seg, err := scanSegment(tx.QueryRow(ctx, `
		UPDATE tramos
		SET estado = $2, fecha_real_fin = now(), costo_real = costo_aproximado
		WHERE id = $1
		RETURNING `+segmentColumns+`
	`, segmentID, model.SegmentFinished))
	if err != nil {
		return nil, fmt.Errorf("segment: update %d: %w", segmentID, err)
	}

	// ── Step 4: cascade into container and shipment ─────
	var (
		shipmentID  int64
		containerID int64
	)
	err = tx.QueryRow(ctx, `
		SELECT id, contenedor_id FROM solicitudes WHERE ruta_id = $1 FOR UPDATE
	`, routeID).Scan(&shipmentID, &containerID)
	if err != nil {
		return nil, fmt.Errorf("segment: shipment for route %d: %w", routeID, err)
	}

	switch {
	case last:
		_, err = tx.Exec(ctx, `
			UPDATE contenedores SET estado = $2 WHERE id = $1
		`, containerID, model.ContainerDelivered)
		if err != nil {
			return nil, fmt.Errorf("segment: deliver container %d: %w", containerID, err)
		}

		// Close the shipment with totals from the finished legs.
		_, err = tx.Exec(ctx, `
			UPDATE solicitudes
			SET estado = $2,
			    costo_final = (SELECT COALESCE(SUM(costo_real), 0) FROM tramos WHERE ruta_id = $3),
			    tiempo_real = (SELECT COALESCE(
			        EXTRACT(EPOCH FROM (MAX(fecha_real_fin) - MIN(fecha_real_inicio))) / 3600.0,
			        0) FROM tramos WHERE ruta_id = $3)
			WHERE id = $1
		`, shipmentID, model.ShipmentDelivered, routeID)
		if err != nil {
			return nil, fmt.Errorf("segment: close shipment %d: %w", shipmentID, err)
		}

	case seg.Type.EndsAtWarehouse():
		_, err = tx.Exec(ctx, `
			UPDATE contenedores SET estado = $2 WHERE id = $1
		`, containerID, model.ContainerAtWarehouse)
		if err != nil {
			return nil, fmt.Errorf("segment: park container %d: %w", containerID, err)
		}
	}

	// ── Step 5: release the truck locally ───────────────
	truckID := *seg.TruckID
	_, err = tx.Exec(ctx, `
		UPDATE camiones_ref SET disponible = true WHERE id = $1
	`, truckID)
	if err != nil {
		return nil, fmt.Errorf("segment: release truck %d: %w", truckID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("segment: commit: %w", err)
	}
	return &FinishResult{Segment: seg, TruckID: truckID, Last: last}, nil
}
