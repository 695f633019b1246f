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
	"github.com/redis/go-redis/v9"

	"freightops/config"
	"freightops/internal/fleet/handler"
	"freightops/internal/fleet/repository"
	"freightops/internal/fleet/service"
	"freightops/internal/middleware"
	"freightops/pkg/cache"
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
	pgPool, err := db.NewPostgresPool(ctx, cfg.Postgres, "fleet")
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer pgPool.Close()
	log.Println("✓ PostgreSQL connected")

	// ── Connect to Redis ────────────────────────────────
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, "fleet")
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ── Initialize layers ───────────────────────────────
	tariffRepo := repository.NewTariffRepository(pgPool, redisClient)
	truckRepo := repository.NewTruckRepository(pgPool)
	warehouseRepo := repository.NewWarehouseRepository(pgPool)

	tariffSvc := service.NewTariffService(tariffRepo)
	truckSvc := service.NewTruckService(truckRepo)
	warehouseSvc := service.NewWarehouseService(warehouseRepo)

	tariffHandler := handler.NewTariffHandler(tariffSvc)
	truckHandler := handler.NewTruckHandler(truckSvc)
	warehouseHandler := handler.NewWarehouseHandler(warehouseSvc)

	// ── Setup router ────────────────────────────────────
	router := mux.NewRouter()

	// Health check endpoint.
	router.HandleFunc("/health", healthHandler(pgPool, redisClient)).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// Tariffs. Fixed paths before {id} so "actual" never parses as an id.
	api.HandleFunc("/tarifas", tariffHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/tarifas", tariffHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/tarifas/actual", tariffHandler.Active).Methods(http.MethodGet)
	api.HandleFunc("/tarifas/existe-activa", tariffHandler.ExistsActive).Methods(http.MethodGet)
	api.HandleFunc("/tarifas/{id}", tariffHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/tarifas/{id}", tariffHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/tarifas/{id}", tariffHandler.Delete).Methods(http.MethodDelete)

	// Trucks.
	api.HandleFunc("/camiones", truckHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/camiones", truckHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/camiones/disponibles", truckHandler.Available).Methods(http.MethodGet)
	api.HandleFunc("/camiones/{id}", truckHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/camiones/{id}", truckHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/camiones/{id}", truckHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/camiones/{id}/disponibilidad", truckHandler.SetAvailability).Methods(http.MethodPatch)

	// Warehouses.
	api.HandleFunc("/depositos", warehouseHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/depositos", warehouseHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/depositos/{id}", warehouseHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/depositos/{id}", warehouseHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/depositos/{id}", warehouseHandler.Delete).Methods(http.MethodDelete)

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
		log.Printf("🚀 Fleet service listening on %s", cfg.Server.ServerAddr())
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

// healthHandler returns an HTTP handler that checks PG and Redis connectivity.
func healthHandler(pgPool *pgxpool.Pool, redisClient *redis.Client) http.HandlerFunc {
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

		if err := cache.HealthCheck(r.Context(), redisClient); err != nil {
			resp.Status = "degraded"
			resp.Services["redis"] = "unhealthy: " + err.Error()
		} else {
			resp.Services["redis"] = "healthy"
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
