package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // statistics.timezone must resolve on hosts without zoneinfo

	"github.com/aevon-lab/inspektr/internal/config"
	"github.com/aevon-lab/inspektr/internal/core/storage"
	"github.com/aevon-lab/inspektr/internal/core/storage/postgres"
	"github.com/aevon-lab/inspektr/internal/ingestion"
	"github.com/aevon-lab/inspektr/internal/metrics"
	"github.com/aevon-lab/inspektr/internal/migrations"
	"github.com/aevon-lab/inspektr/internal/projection"
	"github.com/aevon-lab/inspektr/internal/server"
	"github.com/aevon-lab/inspektr/internal/statistics"
	"github.com/avast/retry-go/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", "inspektr.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logLevel := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logLevel.Set(cfg.Resolved.LogLevel)
	slog.Info("Loaded config",
		"store", cfg.Database.Type,
		"timezone", cfg.Resolved.Location.String(),
		"default_precisions", cfg.Resolved.DefaultPrecisions.Strings(),
		"definitions", len(cfg.Resolved.Definitions.Definitions()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// 3. Initialize Statistic Store
	var (
		store  storage.StatisticStore
		health server.HealthChecker
	)
	switch cfg.Database.Type {
	case "memory":
		slog.Warn("Using in-memory statistic store; counts are lost on restart")
		store = storage.NewMemoryStatisticStore(cfg.Resolved.Location)
	default:
		dbAdapter, err := connectWithRetry(ctx, cfg)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer dbAdapter.Close()

		// 3.1. Run Database Migrations
		if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		if err := dbAdapter.ValidateSchema(ctx); err != nil {
			slog.Error("Database schema validation failed", "error", err)
			os.Exit(1)
		}

		store = postgres.NewStatisticAdapter(dbAdapter.DB(),
			postgres.WithLocation(cfg.Resolved.Location),
			postgres.WithBreaker(postgres.BreakerConfig{
				MaxRequests:         cfg.Breaker.MaxRequests,
				Interval:            cfg.Resolved.BreakerInterval,
				Timeout:             cfg.Resolved.BreakerTimeout,
				ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
				OnStateChange:       m.SetBreakerOpen,
			}),
		)
		health = dbAdapter
	}

	// 4. Initialize Statistics (manager + recorder)
	manager := statistics.NewManager(store, cfg.Resolved.Location, m)
	recorder := statistics.NewRecorder(manager, nil, cfg.Resolved.DefaultPrecisions, m)

	// 5. Initialize Ingestion (remote action reports)
	ingestionSvc := ingestion.NewService(
		recorder,
		cfg.Resolved.Definitions,
		cfg.Statistics.RequireDefinitions,
		cfg.Server.MaxBodySizeMB,
	)

	// 6. Initialize Projection (query API)
	projectionSvc := projection.NewService(store, cfg.Resolved.Location, m)

	// 7. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode, server.Options{
		Store:           health,
		StoreName:       cfg.Database.Type,
		Gatherer:        reg,
		ShutdownTimeout: cfg.Resolved.ShutdownTimeout,
	})
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// connectWithRetry opens the PostgreSQL pool, backing off between attempts while the database starts.
func connectWithRetry(ctx context.Context, cfg *config.Config) (*postgres.Adapter, error) {
	var adapter *postgres.Adapter
	attempt := 0

	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(cfg.Database.ConnectAttempts),
		retry.Delay(cfg.Resolved.ConnectDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	err := r.Do(func() error {
		attempt++
		a, err := postgres.NewAdapter(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			slog.Warn("Database not reachable yet",
				"attempt", attempt,
				"max_attempts", cfg.Database.ConnectAttempts,
				"error", err)
			return err
		}
		adapter = a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempt, err)
	}
	return adapter, nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
