// Package fleetclient is the HTTP client the operations service uses to
// reach the fleet service.
//
// Failure policy: one attempt with a bounded timeout, no retries. A slow or
// down fleet service degrades into ErrUnavailable and callers reject the
// operation rather than proceed with assumed data.
package fleetclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"freightops/internal/model"
)

var (
	// ErrNotFound is returned when the fleet service reports 404.
	ErrNotFound = errors.New("fleet: resource not found")

	// ErrUnavailable is returned on timeouts, connection errors and 5xx
	// responses from the fleet service.
	ErrUnavailable = errors.New("fleet service unavailable")
)

// statusError carries an unexpected HTTP status from the fleet service.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("fleet: unexpected status %d: %s", e.status, e.body)
}

// Client calls the fleet service REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a fleet client with the given base URL and request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// ActiveTariff fetches the currently active tariff.
// Returns ErrNotFound when no tariff is active.
func (c *Client) ActiveTariff(ctx context.Context) (*model.Tariff, error) {
	t := &model.Tariff{}
	if err := c.getJSON(ctx, "/api/tarifas/actual", t); err != nil {
		return nil, err
	}
	return t, nil
}

// Truck fetches a truck by id.
func (c *Client) Truck(ctx context.Context, id int64) (*model.Truck, error) {
	t := &model.Truck{}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/camiones/%d", id), t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTruckAvailability mirrors a truck's availability back to the fleet
// service after an assignment or release.
func (c *Client) UpdateTruckAvailability(ctx context.Context, id int64, available bool) error {
	body, _ := json.Marshal(map[string]bool{"disponible": available})

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		fmt.Sprintf("%s/api/camiones/%d/disponibilidad", c.baseURL, id),
		bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("fleet: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[fleetclient] PATCH disponibilidad camion #%d: %v", id, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	return classifyStatus(resp)
}

// ─── Helpers ────────────────────────────────────────────────

// getJSON performs a GET and decodes the 200 body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("fleet: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[fleetclient] GET %s: %v", path, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("fleet: decode response: %w", err)
	}
	return nil
}

// classifyStatus maps a fleet response status to a client error.
func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		log.Printf("[fleetclient] %s %s → %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{status: resp.StatusCode, body: string(bytes.TrimSpace(body))}
	}
}
