package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"freightops/config"
	"freightops/internal/fleetclient"
	"freightops/internal/middleware"
	"freightops/internal/ops/handler"
	"freightops/internal/ops/repository"
	"freightops/internal/ops/service"
	"freightops/pkg/db"
)

func main() {
	// ── Load configuration ──────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// ── Connect to PostgreSQL ───────────────────────────
	pgPool, err := db.NewPostgresPool(ctx, cfg.Postgres, "operations")
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer pgPool.Close()
	log.Println("✓ PostgreSQL connected")

	// ── Fleet service client ────────────────────────────
	fleet := fleetclient.New(cfg.Fleet.BaseURL, cfg.Fleet.Timeout)
	log.Printf("✓ Fleet gateway → %s (timeout %s)", cfg.Fleet.BaseURL, cfg.Fleet.Timeout)

	// ── Initialize layers ───────────────────────────────
	shipmentRepo := repository.NewShipmentRepository(pgPool)
	routeRepo := repository.NewRouteRepository(pgPool)
	segmentRepo := repository.NewSegmentRepository(pgPool)
	truckRefRepo := repository.NewTruckRefRepository(pgPool)
	clientRepo := repository.NewClientRepository(pgPool)
	containerRepo := repository.NewContainerRepository(pgPool)

	shipmentSvc := service.NewShipmentService(shipmentRepo, routeRepo, segmentRepo, containerRepo)
	plannerSvc := service.NewPlannerService(shipmentRepo, routeRepo, fleet)
	segmentSvc := service.NewSegmentService(segmentRepo, truckRefRepo, fleet)
	clientSvc := service.NewClientService(clientRepo)
	containerSvc := service.NewContainerService(containerRepo)

	shipmentHandler := handler.NewShipmentHandler(shipmentSvc, plannerSvc)
	segmentHandler := handler.NewSegmentHandler(segmentSvc)
	clientHandler := handler.NewClientHandler(clientSvc)
	containerHandler := handler.NewContainerHandler(containerSvc)

	// ── Setup router ────────────────────────────────────
	router := mux.NewRouter()

	// Health check endpoint.
	router.HandleFunc("/health", healthHandler(pgPool)).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// Shipment requests and planning.
	api.HandleFunc("/solicitudes", shipmentHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/solicitudes", shipmentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/solicitudes/{id}", shipmentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/solicitudes/{id}", shipmentHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/solicitudes/{id}", shipmentHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/solicitudes/{id}/estado", shipmentHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/solicitudes/{id}/rutas/tentativas", shipmentHandler.Tentatives).Methods(http.MethodGet)
	api.HandleFunc("/solicitudes/{id}/asignar-ruta", shipmentHandler.AssignRoute).Methods(http.MethodPost)

	// Segment lifecycle.
	api.HandleFunc("/tramos", segmentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/tramos/transportistas/{camionId}/tramos", segmentHandler.ByTruck).Methods(http.MethodGet)
	api.HandleFunc("/tramos/{id}", segmentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/tramos/{id}/asignar-camion", segmentHandler.AssignTruck).Methods(http.MethodPost)
	api.HandleFunc("/tramos/{id}/iniciar", segmentHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/tramos/{id}/finalizar", segmentHandler.Finish).Methods(http.MethodPost)

	// Clients.
	api.HandleFunc("/clientes", clientHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/clientes", clientHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/clientes/{id}", clientHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/clientes/{id}", clientHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/clientes/{id}", clientHandler.Delete).Methods(http.MethodDelete)

	// Containers.
	api.HandleFunc("/contenedores", containerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/contenedores/{id}", containerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/contenedores/{id}", containerHandler.Update).Methods(http.MethodPut)

	h := middleware.CORS(middleware.RequestLogger(middleware.Recoverer(router)))

	// ── Start HTTP server ───────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("🚀 Operations service listening on %s", cfg.Server.ServerAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⏳ Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}

// HealthResponse represents the /health endpoint response.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// healthHandler returns an HTTP handler that checks PostgreSQL connectivity.
func healthHandler(pgPool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:   "ok",
			Services: make(map[string]string),
		}

		if err := db.HealthCheck(r.Context(), pgPool); err != nil {
			resp.Status = "degraded"
			resp.Services["postgres"] = "unhealthy: " + err.Error()
		} else {
			resp.Services["postgres"] = "healthy"
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
