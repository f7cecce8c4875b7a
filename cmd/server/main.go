package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fieldserve/serviceops/internal/api"
	"github.com/fieldserve/serviceops/internal/api/handlers"
	"github.com/fieldserve/serviceops/internal/cache"
	"github.com/fieldserve/serviceops/internal/config"
	"github.com/fieldserve/serviceops/internal/repository/postgres"
	"github.com/fieldserve/serviceops/internal/service"
	"github.com/fieldserve/serviceops/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Warehouse)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize cache (falls back to noop when redis is disabled or down)
	dashCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		dashCache = cache.NewNoopDashboardCache()
	}

	// Initialize repositories and services
	workOrderRepo := postgres.NewWorkOrderRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)
	supplyRepo := postgres.NewSupplyRepository(db)
	demandRepo := postgres.NewDemandRepository(db)

	services := &api.Services{
		Dashboard:  service.NewDashboardService(workOrderRepo, snapshotRepo, dashCache),
		WorkOrders: service.NewWorkOrderService(workOrderRepo),
		Snapshot:   service.NewSnapshotService(snapshotRepo, supplyRepo, demandRepo),
		Pinger:     db,
		Defaults: handlers.FilterDefaults{
			HorizonDays: cfg.App.DefaultHorizonDays,
			MaxRows:     cfg.App.MaxRows,
		},
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
