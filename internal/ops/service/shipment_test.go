package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"freightops/internal/model"
)

// Validation runs before any repository access, so a zero service is enough
// to exercise the rejection paths.

func validInput() CreateShipmentInput {
	id := int64(1)
	return CreateShipmentInput{
		ClientID: &id,
		Container: model.Container{
			Code:   "CONT-001",
			Weight: 800,
			Volume: 20,
		},
		Origin:      model.Location{Lat: -31.4, Lon: -64.2},
		Destination: model.Location{Lat: -34.6, Lon: -58.4},
	}
}

func TestShipmentCreate_ClientExactlyOne(t *testing.T) {
	svc := NewShipmentService(nil, nil, nil, nil)

	// Neither clienteId nor cliente.
	in := validInput()
	in.ClientID = nil
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Errorf("no client: err = %v, want ErrValidation", err)
	}

	// Both at once.
	in = validInput()
	in.Client = &model.Client{Name: "ACME"}
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Errorf("both clients: err = %v, want ErrValidation", err)
	}

	// Inline client without a name.
	in = validInput()
	in.ClientID = nil
	in.Client = &model.Client{}
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Errorf("unnamed inline client: err = %v, want ErrValidation", err)
	}
}

func TestShipmentCreate_ContainerValidation(t *testing.T) {
	svc := NewShipmentService(nil, nil, nil, nil)

	in := validInput()
	in.Container.Code = ""
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Errorf("missing numero: err = %v, want ErrValidation", err)
	}

	in = validInput()
	in.Container.Weight = 0
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Errorf("zero peso: err = %v, want ErrValidation", err)
	}

	in = validInput()
	in.Container.Volume = -3
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Errorf("negative volumen: err = %v, want ErrValidation", err)
	}
}

func TestShipmentCreate_LocationValidation(t *testing.T) {
	svc := NewShipmentService(nil, nil, nil, nil)

	in := validInput()
	in.Origin.Lat = 95
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Errorf("bad origen: err = %v, want ErrValidation", err)
	}

	in = validInput()
	in.Destination.Lon = -200
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrValidation) {
		t.Errorf("bad destino: err = %v, want ErrValidation", err)
	}
}

func TestAssignRoute_Validation(t *testing.T) {
	svc := NewPlannerService(nil, nil, nil)

	// Empty itinerary.
	_, _, err := svc.AssignRoute(context.Background(), 1, model.Itinerary{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("empty itinerary: err = %v, want ErrValidation", err)
	}

	// Out-of-order legs.
	it := BuildDirectItinerary(cordoba, buenosAires, 1500)
	it.Segments[0].Order = 3
	_, _, err = svc.AssignRoute(context.Background(), 1, it)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("bad orden: err = %v, want ErrValidation", err)
	}

	// Negative cost.
	it = BuildDirectItinerary(cordoba, buenosAires, 1500)
	it.Segments[0].EstimatedCost = -1
	_, _, err = svc.AssignRoute(context.Background(), 1, it)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("negative cost: err = %v, want ErrValidation", err)
	}

	// Planned end before planned start.
	it = BuildDirectItinerary(cordoba, buenosAires, 1500)
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(-2 * time.Hour)
	it.Segments[0].PlannedStart = &start
	it.Segments[0].PlannedEnd = &end
	_, _, err = svc.AssignRoute(context.Background(), 1, it)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("inverted planned dates: err = %v, want ErrValidation", err)
	}
}
