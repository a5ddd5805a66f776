package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusworks/timetable-engine/internal/api"
	"github.com/campusworks/timetable-engine/internal/catalog"
	"github.com/campusworks/timetable-engine/internal/cleanup"
	"github.com/campusworks/timetable-engine/internal/config"
	"github.com/campusworks/timetable-engine/internal/engine"
	"github.com/campusworks/timetable-engine/internal/snapshot"
	"github.com/campusworks/timetable-engine/internal/storage"
	"github.com/campusworks/timetable-engine/internal/timetable"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting timetable-engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"grid_days", len(cfg.Grid.Days),
		"grid_slots", len(cfg.Grid.TimeSlots),
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Run database migrations
	slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
	if err := storage.MigrateFromDSN(initCtx, cfg.Database.DSN, cfg.Database.MigrationsDir); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize database repository
	repo, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: int32(cfg.Database.MaxOpenConns),
		MaxIdleConns: int32(cfg.Database.MaxIdleConns),
	})
	if err != nil {
		slog.Error("failed to create database repository", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected successfully")

	// Initialize snapshot store
	snapshots, err := snapshot.NewStore(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Error("failed to create snapshot store", "error", err)
		os.Exit(1)
	}

	// Seed the catalog from fixtures when configured
	if cfg.Catalog.SeedDir != "" {
		loader := catalog.NewLoader()
		if err := loader.LoadFromDir(cfg.Catalog.SeedDir); err != nil {
			slog.Warn("failed to load catalog fixtures", "dir", cfg.Catalog.SeedDir, "error", err)
		} else if err := loader.Seed(initCtx, repo); err != nil {
			slog.Warn("failed to seed catalog", "error", err)
		}
	}

	// Build the scheduling engine
	grid := engine.Grid{Days: cfg.Grid.Days, TimeSlots: cfg.Grid.TimeSlots}
	generator := engine.NewGenerator(grid)

	// Initialize the timetable service
	service := timetable.NewService(repo, snapshots, generator, cfg.Cleanup.RunRetention)

	// Initialize cleanup worker
	cleaner := cleanup.NewCleaner(service, cfg.Cleanup.Interval)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, repo, service)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Close backing stores
	if err := snapshots.Close(); err != nil {
		slog.Error("snapshot store close error", "error", err)
	}
	if err := repo.Close(); err != nil {
		slog.Error("repository close error", "error", err)
	}

	slog.Info("timetable-engine stopped")
}
