package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"freightops/internal/model"
)

// ShipmentRepository handles shipment requests (solicitudes) and the
// entities created alongside them.
type ShipmentRepository struct {
	pool *pgxpool.Pool
}

// NewShipmentRepository creates a new shipment repository.
func NewShipmentRepository(pool *pgxpool.Pool) *ShipmentRepository {
	return &ShipmentRepository{pool: pool}
}

// NewShipment carries everything needed to register a shipment request.
// Exactly one of ClientID / Client must be set; the service layer validates
// that before calling Create.
type NewShipment struct {
	ClientID     *int64
	Client       *model.Client
	Container    model.Container
	Origin       model.Location
	Destination  model.Location
	Observations string
}

const shipmentColumns = `id, cliente_id, contenedor_id, ruta_id, estado,
	costo_estimado, tiempo_estimado, costo_final, tiempo_real,
	COALESCE(observaciones, ''), fecha_solicitud`

func scanShipment(row pgx.Row) (*model.Shipment, error) {
	s := &model.Shipment{}
	err := row.Scan(&s.ID, &s.ClientID, &s.ContainerID, &s.RouteID, &s.Status,
		&s.EstimatedCost, &s.EstimatedTime, &s.FinalCost, &s.RealTime,
		&s.Observations, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create registers a shipment request in a single transaction: the client is
// resolved or inserted, the container is inserted EN_ORIGEN, a draft route
// holding origin and destination is inserted with zeroed totals, and the
// shipment row is inserted BORRADOR. Any failure rolls the whole thing back.
func (r *ShipmentRepository) Create(ctx context.Context, in NewShipment) (*model.Shipment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("shipment: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// ── Step 1: resolve or insert the client ────────────
	var clientID int64
	if in.ClientID != nil {
		err = tx.QueryRow(ctx,
			`SELECT id FROM clientes WHERE id = $1`, *in.ClientID,
		).Scan(&clientID)
		if err != nil {
			return nil, fmt.Errorf("shipment: resolve client %d: %w", *in.ClientID, err)
		}
	} else {
		err = tx.QueryRow(ctx, `
			INSERT INTO clientes (nombre, email, telefono)
			VALUES ($1, $2, $3)
			RETURNING id
		`, in.Client.Name, in.Client.Email, in.Client.Phone).Scan(&clientID)
		if err != nil {
			return nil, fmt.Errorf("shipment: insert client: %w", err)
		}
	}

	// ── Step 2: insert the container at origin ──────────
	var containerID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO contenedores (numero, peso, volumen, estado, cliente_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, in.Container.Code, in.Container.Weight, in.Container.Volume,
		model.ContainerAtOrigin, clientID).Scan(&containerID)
	if err != nil {
		return nil, fmt.Errorf("shipment: insert container: %w", err)
	}

	// ── Step 3: insert the draft route ──────────────────
	// Totals stay zero until a tentative itinerary is committed.
	var routeID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO rutas (origen_lat, origen_lon, destino_lat, destino_lon,
		                   distancia_km, tiempo_estimado_horas)
		VALUES ($1, $2, $3, $4, 0, 0)
		RETURNING id
	`, in.Origin.Lat, in.Origin.Lon, in.Destination.Lat, in.Destination.Lon).Scan(&routeID)
	if err != nil {
		return nil, fmt.Errorf("shipment: insert route: %w", err)
	}

	// ── Step 4: insert the shipment request ─────────────
	s, err := scanShipment(tx.QueryRow(ctx, `
		INSERT INTO solicitudes (cliente_id, contenedor_id, ruta_id, estado,
		                         costo_estimado, tiempo_estimado, costo_final,
		                         tiempo_real, observaciones, fecha_solicitud)
		VALUES ($1, $2, $3, $4, 0, 0, 0, 0, $5, now())
		RETURNING `+shipmentColumns+`
	`, clientID, containerID, routeID, model.ShipmentDraft, in.Observations))
	if err != nil {
		return nil, fmt.Errorf("shipment: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("shipment: commit: %w", err)
	}
	return s, nil
}

// Get returns a shipment by id.
func (r *ShipmentRepository) Get(ctx context.Context, id int64) (*model.Shipment, error) {
	s, err := scanShipment(r.pool.QueryRow(ctx,
		`SELECT `+shipmentColumns+` FROM solicitudes WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("shipment: get %d: %w", id, err)
	}
	return s, nil
}

// List returns all shipments, newest first.
func (r *ShipmentRepository) List(ctx context.Context) ([]model.Shipment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+shipmentColumns+` FROM solicitudes ORDER BY fecha_solicitud DESC`)
	if err != nil {
		return nil, fmt.Errorf("shipment: list: %w", err)
	}
	defer rows.Close()

	shipments := []model.Shipment{}
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("shipment: scan: %w", err)
		}
		shipments = append(shipments, *s)
	}
	return shipments, rows.Err()
}

// UpdateObservations replaces the free-text observations of a shipment.
func (r *ShipmentRepository) UpdateObservations(ctx context.Context, id int64, obs string) (*model.Shipment, error) {
	s, err := scanShipment(r.pool.QueryRow(ctx, `
		UPDATE solicitudes
		SET observaciones = $2
		WHERE id = $1
		RETURNING `+shipmentColumns+`
	`, id, obs))
	if err != nil {
		return nil, fmt.Errorf("shipment: update %d: %w", id, err)
	}
	return s, nil
}

// Delete removes a shipment together with its route and segments.
//
// Guard: a shipment whose route has segments not yet FINALIZADO cannot be
// deleted (trucks may be en route). The shipment row is locked FOR UPDATE so
// the check and the delete are atomic against concurrent lifecycle calls.
// The container row survives: it belongs to the client, not the request.
func (r *ShipmentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("shipment: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var routeID *int64
	err = tx.QueryRow(ctx,
		`SELECT ruta_id FROM solicitudes WHERE id = $1 FOR UPDATE`, id,
	).Scan(&routeID)
	if err != nil {
		return fmt.Errorf("shipment: lock %d: %w", id, err)
	}

	if routeID != nil {
		var unfinished int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*)::int
			FROM tramos
			WHERE ruta_id = $1
			  AND estado <> $2
			  AND estado <> $3
		`, *routeID, model.SegmentFinished, model.SegmentPending).Scan(&unfinished)
		if err != nil {
			return fmt.Errorf("shipment: count active segments: %w", err)
		}
		if unfinished > 0 {
			return ErrShipmentInFlight
		}

		if _, err := tx.Exec(ctx, `DELETE FROM tramos WHERE ruta_id = $1`, *routeID); err != nil {
			return fmt.Errorf("shipment: delete segments: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM solicitudes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("shipment: delete %d: %w", id, err)
	}
	if routeID != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM rutas WHERE id = $1`, *routeID); err != nil {
			return fmt.Errorf("shipment: delete route %d: %w", *routeID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("shipment: commit: %w", err)
	}
	return nil
}
