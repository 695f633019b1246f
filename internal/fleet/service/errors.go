// Package service contains the business logic of the fleet service.
//
// Services validate input, call repositories and classify low-level errors
// into the sentinel errors below; handlers map sentinels to HTTP codes.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNoActiveTariff is returned when no tariff is currently active.
	ErrNoActiveTariff = errors.New("no active tariff")

	// ErrActiveTariffDelete is returned when deleting the active tariff.
	// The tariff must be deactivated first.
	ErrActiveTariffDelete = errors.New("active tariff cannot be deleted")

	// ErrValidation is wrapped by input validation failures; the wrapping
	// message carries the field-level detail.
	ErrValidation = errors.New("validation failed")
)

// classifyError maps low-level DB errors to service sentinels.
// Errors that are already sentinels pass through unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
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
