package repository

import (
	"errors"
	"strings"
	"testing"
)

func TestCapacityError_Unwrap(t *testing.T) {
	var err error = &CapacityError{Dimension: "peso", Required: 1500, Available: 1000}

	if !errors.Is(err, ErrTruckCapacity) {
		t.Error("CapacityError should unwrap to ErrTruckCapacity")
	}

	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatal("errors.As should recover the CapacityError")
	}
	if capErr.Required != 1500 || capErr.Available != 1000 {
		t.Errorf("got required=%v available=%v", capErr.Required, capErr.Available)
	}
}

func TestCapacityError_Message(t *testing.T) {
	err := &CapacityError{Dimension: "peso", Required: 1500, Available: 1000}
	msg := err.Error()
	for _, want := range []string{"peso", "1500.00", "1000.00"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q should contain %q", msg, want)
		}
	}
}
