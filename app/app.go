package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/Black-And-White-Club/tenpin/app/modules/bowling"
	"github.com/Black-And-White-Club/tenpin/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App wires configuration, telemetry and modules into one HTTP service.
type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Registry      *prometheus.Registry
	Router        *chi.Mux
	BowlingModule *bowling.Module

	shutdownTracing func(context.Context) error
}

// NewApp initializes the application. Logs are written to logOutput.
func NewApp(ctx context.Context, cfg *config.Config, logOutput io.Writer) (*App, error) {
	logger := NewLogger(cfg.Observability, logOutput)

	registry, metrics, err := NewMetrics(cfg.Observability)
	if err != nil {
		return nil, err
	}

	tracer, shutdownTracing, err := NewTracer(ctx, cfg.Observability)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	}

	bowlingModule, err := bowling.NewModule(ctx, cfg, logger, metrics, tracer, router)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("failed to initialize bowling module: %w", err)
	}

	return &App{
		Config:          cfg,
		Logger:          logger,
		Registry:        registry,
		Router:          router,
		BowlingModule:   bowlingModule,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Start listens on the configured address and serves until ctx is cancelled.
func (app *App) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.Config.HTTP.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.Config.HTTP.Address, err)
	}
	return app.Serve(ctx, ln)
}

// Serve runs the modules and the HTTP server on ln until ctx is cancelled,
// then shuts everything down gracefully.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.Router,
		ReadTimeout:       app.Config.HTTP.ReadTimeout,
		ReadHeaderTimeout: app.Config.HTTP.ReadTimeout,
	}

	moduleCtx, cancelModules := context.WithCancel(ctx)
	defer cancelModules()

	var wg sync.WaitGroup
	wg.Add(1)
	go app.BowlingModule.Run(moduleCtx, &wg)

	serveErr := make(chan error, 1)
	go func() {
		app.Logger.Info("Starting HTTP server", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		app.Logger.Info("Shutting down application")
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.Config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("HTTP server shutdown failed", "error", err)
		runErr = errors.Join(runErr, err)
	}

	cancelModules()
	if err := app.BowlingModule.Close(); err != nil {
		runErr = errors.Join(runErr, err)
	}
	wg.Wait()

	if err := app.shutdownTracing(shutdownCtx); err != nil {
		app.Logger.Error("Tracer shutdown failed", "error", err)
	}

	app.Logger.Info("Application shut down gracefully")
	return runErr
}
