package fleetclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freightops/internal/model"
)

func TestActiveTariff_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tarifas/actual" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(model.Tariff{ID: 7, Type: "POR_KM", Value: 1500, Active: true})
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	got, err := c.ActiveTariff(context.Background())
	if err != nil {
		t.Fatalf("ActiveTariff: %v", err)
	}
	if got.ID != 7 || got.Value != 1500 {
		t.Errorf("got tariff %+v", got)
	}
}

func TestActiveTariff_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.ActiveTariff(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTruck_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.Truck(context.Background(), 5)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestTruck_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, 20*time.Millisecond)
	_, err := c.Truck(context.Background(), 5)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable on timeout", err)
	}
}

func TestTruck_ConnectionRefused(t *testing.T) {
	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.Truck(context.Background(), 5)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestUpdateTruckAvailability(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(model.Truck{ID: 5, Available: false})
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	if err := c.UpdateTruckAvailability(context.Background(), 5, false); err != nil {
		t.Fatalf("UpdateTruckAvailability: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", gotMethod)
	}
	if gotPath != "/api/camiones/5/disponibilidad" {
		t.Errorf("path = %s", gotPath)
	}
	if v, ok := gotBody["disponible"]; !ok || v {
		t.Errorf("body = %v, want disponible=false", gotBody)
	}
}

func TestStatusError_Message(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.Truck(context.Background(), 5)
	if err == nil {
		t.Fatal("want error on 400")
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
		t.Errorf("4xx other than 404 should be a plain status error, got %v", err)
	}
}
