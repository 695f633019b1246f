package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freightops/internal/model"
)

// RouteRepository handles routes and the commit of a planned itinerary.
type RouteRepository struct {
	pool *pgxpool.Pool
}

// NewRouteRepository creates a new route repository.
func NewRouteRepository(pool *pgxpool.Pool) *RouteRepository {
	return &RouteRepository{pool: pool}
}

// Get returns a route by id.
func (r *RouteRepository) Get(ctx context.Context, id int64) (*model.Route, error) {
	rt := &model.Route{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, origen_lat, origen_lon, destino_lat, destino_lon,
		       distancia_km, tiempo_estimado_horas
		FROM rutas
		WHERE id = $1
	`, id).Scan(&rt.ID, &rt.Origin.Lat, &rt.Origin.Lon,
		&rt.Destination.Lat, &rt.Destination.Lon,
		&rt.TotalDistance, &rt.TotalTime)
	if err != nil {
		return nil, fmt.Errorf("route: get %d: %w", id, err)
	}
	return rt, nil
}

// CommitItinerary materializes a chosen itinerary for a shipment in one
// transaction: a new route is inserted with the itinerary totals, each leg
// becomes a PENDIENTE segment without a truck, the shipment is re-pointed at
// the new route with its estimates set, and its state moves
// BORRADOR → PROGRAMADA. The old draft route is removed.
//
// Concurrency: the shipment row is locked FOR UPDATE, so two concurrent
// commits serialize and the second fails the BORRADOR check.
func (r *RouteRepository) CommitItinerary(
	ctx context.Context,
	shipmentID int64,
	it model.Itinerary,
) (*model.Route, []model.Segment, error) {

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, nil, fmt.Errorf("route: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// ── Step 1: LOCK the shipment, check state ──────────
	var (
		status     model.ShipmentStatus
		oldRouteID *int64
	)
	err = tx.QueryRow(ctx, `
		SELECT estado, ruta_id
		FROM solicitudes
		WHERE id = $1
		FOR UPDATE
	`, shipmentID).Scan(&status, &oldRouteID)
	if err != nil {
		return nil, nil, fmt.Errorf("route: lock shipment %d: %w", shipmentID, err)
	}
	if status != model.ShipmentDraft {
		return nil, nil, ErrShipmentNotDraft
	}

	// ── Step 2: insert the committed route ──────────────
	first := it.Segments[0]
	last := it.Segments[len(it.Segments)-1]

	route := &model.Route{
		Origin:        first.Start,
		Destination:   last.End,
		TotalDistance: it.TotalDistance,
		TotalTime:     it.TotalTime,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO rutas (origen_lat, origen_lon, destino_lat, destino_lon,
		                   distancia_km, tiempo_estimado_horas)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, route.Origin.Lat, route.Origin.Lon, route.Destination.Lat, route.Destination.Lon,
		route.TotalDistance, route.TotalTime).Scan(&route.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("route: insert: %w", err)
	}

	// ── Step 3: insert the segments, all PENDIENTE ──────
	segments := make([]model.Segment, 0, len(it.Segments))
	for _, leg := range it.Segments {
		seg := model.Segment{
			RouteID:        route.ID,
			Order:          leg.Order,
			Type:           leg.Type,
			Start:          leg.Start,
			End:            leg.End,
			DistanceKm:     leg.DistanceKm,
			EstimatedHours: leg.EstimatedHours,
			Status:         model.SegmentPending,
			EstimatedCost:  leg.EstimatedCost,
			PlannedStart:   leg.PlannedStart,
			PlannedEnd:     leg.PlannedEnd,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO tramos (ruta_id, orden, tipo, inicio_lat, inicio_lon,
			                    fin_lat, fin_lon, distancia_km, tiempo_estimado_horas,
			                    estado, costo_aproximado, costo_real,
			                    fecha_estimada_inicio, fecha_estimada_fin)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, $13)
			RETURNING id
		`, seg.RouteID, seg.Order, seg.Type,
			seg.Start.Lat, seg.Start.Lon, seg.End.Lat, seg.End.Lon,
			seg.DistanceKm, seg.EstimatedHours, seg.Status, seg.EstimatedCost,
			seg.PlannedStart, seg.PlannedEnd).Scan(&seg.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("route: insert segment %d: %w", seg.Order, err)
		}
		segments = append(segments, seg)
	}

	// ── Step 4: re-point the shipment, set estimates ────
	_, err = tx.Exec(ctx, `
		UPDATE solicitudes
		SET ruta_id = $2, estado = $3, costo_estimado = $4, tiempo_estimado = $5
		WHERE id = $1
	`, shipmentID, route.ID, model.ShipmentScheduled, it.TotalCost, it.TotalTime)
	if err != nil {
		return nil, nil, fmt.Errorf("route: update shipment %d: %w", shipmentID, err)
	}

	// Drop the draft route; nothing references it anymore.
	if oldRouteID != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM rutas WHERE id = $1`, *oldRouteID); err != nil {
			return nil, nil, fmt.Errorf("route: delete draft %d: %w", *oldRouteID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("route: commit: %w", err)
	}
	return route, segments, nil
}
