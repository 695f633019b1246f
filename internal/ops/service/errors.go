// Package service contains the business logic of the operations service.
//
// Services validate input, orchestrate repositories and the fleet gateway,
// and classify low-level errors into the sentinels below; handlers map
// sentinels to HTTP codes.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"freightops/internal/fleetclient"
	"freightops/internal/ops/repository"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation is wrapped by input validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrFleetUnavailable is returned when the fleet service cannot be
	// reached. Operations that need fleet data fail rather than proceed
	// with assumed values.
	ErrFleetUnavailable = fleetclient.ErrUnavailable

	// Repository sentinels surface unchanged so handlers can match them.
	ErrSegmentNotPending  = repository.ErrSegmentNotPending
	ErrSegmentNotAssigned = repository.ErrSegmentNotAssigned
	ErrSegmentNotStarted  = repository.ErrSegmentNotStarted
	ErrTruckUnavailable   = repository.ErrTruckUnavailable
	ErrTruckCapacity      = repository.ErrTruckCapacity
	ErrShipmentNotDraft   = repository.ErrShipmentNotDraft
	ErrShipmentInFlight   = repository.ErrShipmentInFlight
)

// classifyError maps low-level errors to service sentinels.
// Domain sentinels and CapacityError values pass through unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, fleetclient.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("operation timed out: %w", err)
	}
	return err
}

// validationf builds a field-level validation error.
func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
