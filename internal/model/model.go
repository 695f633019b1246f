// Package model contains domain models shared by the fleet and operations
// services. Field names are Go; JSON tags follow the external REST contract
// (Spanish camelCase). The structs map to the PostgreSQL schemas under
// migrations/fleet and migrations/operations.
package model

import "time"

// ─── Enums ──────────────────────────────────────────────────

// ShipmentStatus is the lifecycle state of a shipment request (solicitud).
// The ordering BORRADOR < PROGRAMADA < EN_TRANSITO < ENTREGADA is monotonic:
// a shipment never moves backwards.
type ShipmentStatus string

const (
	ShipmentDraft     ShipmentStatus = "BORRADOR"
	ShipmentScheduled ShipmentStatus = "PROGRAMADA"
	ShipmentInTransit ShipmentStatus = "EN_TRANSITO"
	ShipmentDelivered ShipmentStatus = "ENTREGADA"
)

// rank returns the position of s in the lifecycle, or -1 for unknown values.
func (s ShipmentStatus) rank() int {
	switch s {
	case ShipmentDraft:
		return 0
	case ShipmentScheduled:
		return 1
	case ShipmentInTransit:
		return 2
	case ShipmentDelivered:
		return 3
	}
	return -1
}

// CanTransition reports whether moving from s to next is a single forward
// step in the shipment lifecycle.
func (s ShipmentStatus) CanTransition(next ShipmentStatus) bool {
	from, to := s.rank(), next.rank()
	return from >= 0 && to == from+1
}

// ContainerStatus is the location state of a container (contenedor).
type ContainerStatus string

const (
	ContainerAtOrigin    ContainerStatus = "EN_ORIGEN"
	ContainerInTransit   ContainerStatus = "EN_VIAJE"
	ContainerAtWarehouse ContainerStatus = "EN_DEPOSITO"
	ContainerDelivered   ContainerStatus = "ENTREGADO"
)

// SegmentStatus is the state of a route segment (tramo).
//
// State transitions:
//
//	PENDIENTE ──> ASIGNADO ──> INICIADO ──> FINALIZADO
//
// No transition may be skipped or reversed.
type SegmentStatus string

const (
	SegmentPending  SegmentStatus = "PENDIENTE"
	SegmentAssigned SegmentStatus = "ASIGNADO"
	SegmentStarted  SegmentStatus = "INICIADO"
	SegmentFinished SegmentStatus = "FINALIZADO"
)

// CanAssign reports whether a truck may be assigned in the current state.
func (s SegmentStatus) CanAssign() bool { return s == SegmentPending }

// CanStart reports whether the segment may be started in the current state.
func (s SegmentStatus) CanStart() bool { return s == SegmentAssigned }

// CanFinish reports whether the segment may be finished in the current state.
func (s SegmentStatus) CanFinish() bool { return s == SegmentStarted }

// SegmentType classifies a leg by its endpoints.
type SegmentType string

const (
	SegmentOriginDestination    SegmentType = "ORIGEN_DESTINO"
	SegmentOriginWarehouse      SegmentType = "ORIGEN_DEPOSITO"
	SegmentWarehouseWarehouse   SegmentType = "DEPOSITO_DEPOSITO"
	SegmentWarehouseDestination SegmentType = "DEPOSITO_DESTINO"
)

// EndsAtWarehouse reports whether the leg terminates at an intermediate
// warehouse, in which case finishing it parks the container EN_DEPOSITO.
func (t SegmentType) EndsAtWarehouse() bool {
	return t == SegmentOriginWarehouse || t == SegmentWarehouseWarehouse
}

// ─── Location ───────────────────────────────────────────────

// Location represents a WGS-84 geographic point (EPSG:4326).
type Location struct {
	Lat float64 `json:"latitud"`
	Lon float64 `json:"longitud"`
}

// ─── Fleet-side models ──────────────────────────────────────

// Tariff maps to the fleet `tarifas` table. At most one row has Active=true
// at any instant (partial unique index + transactional activation).
type Tariff struct {
	ID          int64      `json:"id"`
	Type        string     `json:"tipo"`
	Value       float64    `json:"valor"`
	Description string     `json:"descripcion"`
	ValidFrom   time.Time  `json:"vigenciaDesde"`
	ValidTo     *time.Time `json:"vigenciaHasta,omitempty"`
	Active      bool       `json:"activa"`
}

// Truck maps to the fleet `camiones` table. Availability on this row is the
// fleet-side source of truth; the operations service keeps a mirror (TruckRef).
type Truck struct {
	ID             int64     `json:"id"`
	Plate          string    `json:"dominio"`
	Model          string    `json:"modelo"`
	WeightCapacity float64   `json:"capacidadPeso"`
	VolumeCapacity float64   `json:"capacidadVolumen"`
	CostPerKm      float64   `json:"costoPorKm"`
	Available      bool      `json:"disponible"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Warehouse maps to the fleet `depositos` table.
type Warehouse struct {
	ID         int64    `json:"id"`
	Name       string   `json:"nombre"`
	Address    string   `json:"direccion"`
	Location   Location `json:"ubicacion"`
	CostPerDay float64  `json:"costoEstadiaDiaria"`
}

// ─── Operations-side models ─────────────────────────────────

// Client maps to the operations `clientes` table.
type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Phone string `json:"telefono"`
}

// Container maps to the operations `contenedores` table. It is created with
// the shipment request and only segment lifecycle transitions mutate its status.
type Container struct {
	ID       int64           `json:"id"`
	Code     string          `json:"numero"`
	Weight   float64         `json:"peso"`
	Volume   float64         `json:"volumen"`
	Status   ContainerStatus `json:"estado"`
	ClientID int64           `json:"clienteId"`
}

// Route maps to the operations `rutas` table. A route exclusively owns its
// ordered segments.
type Route struct {
	ID            int64    `json:"id"`
	Origin        Location `json:"origen"`
	Destination   Location `json:"destino"`
	TotalDistance float64  `json:"distanciaKm"`
	TotalTime     float64  `json:"tiempoEstimadoHoras"`
}

// Shipment maps to the operations `solicitudes` table: one client, one
// container and (after planning) one committed route.
type Shipment struct {
	ID            int64          `json:"id"`
	ClientID      int64          `json:"clienteId"`
	ContainerID   int64          `json:"contenedorId"`
	RouteID       *int64         `json:"rutaId,omitempty"`
	Status        ShipmentStatus `json:"estado"`
	EstimatedCost float64        `json:"costoEstimado"`
	EstimatedTime float64        `json:"tiempoEstimado"`
	FinalCost     float64        `json:"costoFinal"`
	RealTime      float64        `json:"tiempoReal"`
	Observations  string         `json:"observaciones,omitempty"`
	CreatedAt     time.Time      `json:"fechaSolicitud"`
}

// Segment maps to the operations `tramos` table: one leg of a route, the unit
// the truck-assignment and travel state machine operates on.
//
// Invariant: TruckID is non-nil iff Status ∈ {ASIGNADO, INICIADO, FINALIZADO}.
type Segment struct {
	ID             int64         `json:"id"`
	RouteID        int64         `json:"rutaId"`
	Order          int           `json:"orden"`
	Type           SegmentType   `json:"tipo"`
	Start          Location      `json:"puntoInicio"`
	End            Location      `json:"puntoFin"`
	DistanceKm     float64       `json:"distanciaKm"`
	EstimatedHours float64       `json:"tiempoEstimadoHoras"`
	Status         SegmentStatus `json:"estado"`
	EstimatedCost  float64       `json:"costoAproximado"`
	RealCost       float64       `json:"costoReal"`
	PlannedStart   *time.Time    `json:"fechaEstimadaInicio,omitempty"`
	PlannedEnd     *time.Time    `json:"fechaEstimadaFin,omitempty"`
	ActualStart    *time.Time    `json:"fechaRealInicio,omitempty"`
	ActualEnd      *time.Time    `json:"fechaRealFin,omitempty"`
	TruckID        *int64        `json:"camionId,omitempty"`
}

// TruckRef maps to the operations `camiones_ref` table: a locally cached
// mirror of a fleet-owned truck. The availability bit is locally authoritative
// for the duration of an assignment and reconciled back to the fleet service
// after each commit.
type TruckRef struct {
	ID             int64   `json:"id"`
	Plate          string  `json:"dominio"`
	WeightCapacity float64 `json:"capacidadPeso"`
	VolumeCapacity float64 `json:"capacidadVolumen"`
	Available      bool    `json:"disponible"`
}

// ─── Planning DTOs ──────────────────────────────────────────

// ItinerarySegment is one tentative leg inside an Itinerary. The planned
// start and end dates are optional; when the dispatcher schedules them they
// are persisted on the committed segment.
type ItinerarySegment struct {
	Order          int         `json:"orden"`
	Type           SegmentType `json:"tipo"`
	Start          Location    `json:"puntoInicio"`
	End            Location    `json:"puntoFin"`
	DistanceKm     float64     `json:"distanciaKm"`
	EstimatedHours float64     `json:"tiempoEstimadoHoras"`
	EstimatedCost  float64     `json:"costoAproximado"`
	PlannedStart   *time.Time  `json:"fechaEstimadaInicio,omitempty"`
	PlannedEnd     *time.Time  `json:"fechaEstimadaFin,omitempty"`
	Notes          string      `json:"observaciones,omitempty"`
}

// Itinerary is one costed route candidate for a shipment. The planner returns
// an ordered list of these so ranked alternatives can be added without a
// breaking change, even though today there is always exactly one.
type Itinerary struct {
	Segments      []ItinerarySegment `json:"tramos"`
	TotalDistance float64            `json:"distanciaTotal"`
	TotalTime     float64            `json:"tiempoEstimadoTotal"`
	TotalCost     float64            `json:"costoEstimadoTotal"`
	RouteKind     string             `json:"tipoRuta"`
	Description   string             `json:"descripcion"`
}
