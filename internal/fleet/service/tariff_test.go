package service

import (
	"context"
	"errors"
	"testing"

	"freightops/internal/model"
)

// Validation runs before any repository access, so a zero service is enough
// to exercise the rejection paths.

func TestTariffCreate_Validation(t *testing.T) {
	svc := NewTariffService(nil)

	cases := []struct {
		name string
		in   CreateTariffInput
	}{
		{"missing tipo", CreateTariffInput{Value: 1500}},
		{"zero valor", CreateTariffInput{Type: "POR_KM", Value: 0}},
		{"negative valor", CreateTariffInput{Type: "POR_KM", Value: -10}},
	}
	for _, c := range cases {
		_, err := svc.Create(context.Background(), c.in)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", c.name, err)
		}
	}
}

func TestTruckCreate_Validation(t *testing.T) {
	svc := NewTruckService(nil)

	for _, c := range []struct {
		name  string
		plate string
		peso  float64
		vol   float64
	}{
		{"missing dominio", "", 1000, 30},
		{"zero peso", "AB123CD", 0, 30},
		{"zero volumen", "AB123CD", 1000, 0},
	} {
		_, err := svc.Create(context.Background(), truckWith(c.plate, c.peso, c.vol))
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", c.name, err)
		}
	}
}

func TestWarehouseCreate_Validation(t *testing.T) {
	svc := NewWarehouseService(nil)

	w := warehouseAt("Depósito Rosario", -132.95, -60.65)
	if _, err := svc.Create(context.Background(), w); !errors.Is(err, ErrValidation) {
		t.Errorf("out-of-range latitud: err = %v, want ErrValidation", err)
	}

	w = warehouseAt("", -32.95, -60.65)
	if _, err := svc.Create(context.Background(), w); !errors.Is(err, ErrValidation) {
		t.Errorf("missing nombre: err = %v, want ErrValidation", err)
	}
}

func truckWith(plate string, weight, volume float64) *model.Truck {
	return &model.Truck{Plate: plate, WeightCapacity: weight, VolumeCapacity: volume, CostPerKm: 100}
}

func warehouseAt(name string, lat, lon float64) *model.Warehouse {
	return &model.Warehouse{Name: name, Location: model.Location{Lat: lat, Lon: lon}}
}
