package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Engine *gin.Engine
	Addr   string

	store           HealthChecker
	storeName       string
	shutdownTimeout time.Duration
}

// HealthChecker is an interface for components that can report their health status.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Options configures optional server behavior.
type Options struct {
	// Store is pinged by /health. A nil Store always reports healthy.
	Store     HealthChecker
	StoreName string // reported by /health, e.g. "postgres"

	// Gatherer is exposed on /metrics when set.
	Gatherer prometheus.Gatherer

	ShutdownTimeout time.Duration
}

func New(addr string, mode string, opts Options) *Server {
	// Set Gin mode based on configuration
	if mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.StoreName == "" {
		opts.StoreName = "store"
	}

	s := &Server{
		Engine:          r,
		Addr:            addr,
		store:           opts.Store,
		storeName:       opts.StoreName,
		shutdownTimeout: opts.ShutdownTimeout,
	}

	// Health check endpoint with statistic store connectivity verification
	r.GET("/health", s.healthHandler)

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	return s
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			slog.Error("Health check failed: statistic store unreachable", "store", s.storeName, "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"store":  s.storeName,
				"error":  "statistic store unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"store":  s.storeName,
	})
}

// Run serves until ctx is cancelled, then waits for in-flight requests to finish
// (bounded by the shutdown timeout) before returning.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Engine,
	}

	slog.Info("Starting HTTP Server...", "address", s.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	// ListenAndServe returns as soon as Shutdown starts; Wait also covers the drain.
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP Server forced to shutdown", "error", err)
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
