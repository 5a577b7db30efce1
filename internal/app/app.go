package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/utafrali/reviewcarousel/internal/config"
	"github.com/utafrali/reviewcarousel/internal/domain"
	handler "github.com/utafrali/reviewcarousel/internal/handler/http"
	"github.com/utafrali/reviewcarousel/internal/repository/memory"
	"github.com/utafrali/reviewcarousel/internal/service"
	storagememory "github.com/utafrali/reviewcarousel/internal/storage/memory"
	"github.com/utafrali/reviewcarousel/pkg/health"
	"github.com/utafrali/reviewcarousel/pkg/middleware"
	"github.com/utafrali/reviewcarousel/pkg/tracing"
)

// App wires together all dependencies and runs the review API.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	shutdown   tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
// seed pre-fills the review store.
func NewApp(cfg *config.Config, logger *slog.Logger, seed ...domain.Review) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdown, err := tracing.InitTracer(ctx, cfg.Tracing("review-api"))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Build the dependency graph.
	repo := memory.NewReviewRepository(seed...)
	store := storagememory.New(cfg.PublicBaseURL(), domain.MaxImageSize)
	reviewService := service.NewReviewService(repo, store, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("reviews", reviewService.Ping)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSOrigins

	router := handler.NewRouter(reviewService, healthHandler, cors, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("review store initialized",
		slog.Int("seeded", len(seed)),
		slog.Any("health_checks", healthHandler.Names()),
		slog.String("media_base_url", cfg.PublicBaseURL()),
	)

	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		shutdown:   shutdown,
	}, nil
}

// Handler returns the HTTP handler, for tests.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.httpServer.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until the context is canceled.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", ln.Addr().String()),
		)
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.shutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
