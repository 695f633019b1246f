// Package repository provides database access for the operations service.
//
// All multi-entity invariants (segment lifecycle, truck occupation, shipment
// deletion guard) are enforced transactionally with pessimistic locking
// (SELECT ... FOR UPDATE), so concurrent writers serialize on the rows they
// touch instead of racing.
package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrSegmentNotPending is returned when assigning a truck to a segment
	// that already left PENDIENTE.
	ErrSegmentNotPending = errors.New("segment is not in PENDIENTE state")

	// ErrSegmentNotAssigned is returned when starting a segment that is not
	// in ASIGNADO state.
	ErrSegmentNotAssigned = errors.New("segment is not in ASIGNADO state")

	// ErrSegmentNotStarted is returned when finishing a segment that is not
	// in INICIADO state.
	ErrSegmentNotStarted = errors.New("segment is not in INICIADO state")

	// ErrTruckUnavailable is returned when the locked truck mirror row shows
	// the truck is already occupied.
	ErrTruckUnavailable = errors.New("truck is not available")

	// ErrShipmentNotDraft is returned when committing a route on a shipment
	// that already left BORRADOR.
	ErrShipmentNotDraft = errors.New("shipment is not in BORRADOR state")

	// ErrShipmentInFlight is returned when deleting a shipment whose route
	// still has unfinished segments.
	ErrShipmentInFlight = errors.New("shipment has unfinished segments")
)

// CapacityError reports that a container does not fit in a truck.
// It unwraps to ErrTruckCapacity so handlers can match it as a class.
type CapacityError struct {
	Dimension string  // "peso" or "volumen"
	Required  float64 // What the container needs.
	Available float64 // What the truck offers.
}

// ErrTruckCapacity is the class sentinel every CapacityError unwraps to.
var ErrTruckCapacity = errors.New("container exceeds truck capacity")

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s requerido %.2f, capacidad %.2f",
		ErrTruckCapacity.Error(), e.Dimension, e.Required, e.Available)
}

func (e *CapacityError) Unwrap() error { return ErrTruckCapacity }
