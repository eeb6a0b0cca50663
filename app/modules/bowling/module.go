package bowling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	bowlingevents "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/events"
	bowlinghandlers "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/handlers"
	bowlingmetrics "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/metrics"
	bowlingrouter "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/router"
	"github.com/Black-And-White-Club/tenpin/config"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the bowling scoring module.
type Module struct {
	config   *config.Config
	catalog  *bowlingservice.Catalog
	handlers bowlinghandlers.Handlers
	eventBus *bowlingevents.EventBus
	audit    *bowlingevents.AuditRouter
	logger   *slog.Logger

	mu         sync.Mutex
	cancelFunc context.CancelFunc
}

// NewModule creates the bowling module. Routes are registered on httpRouter
// when it is not nil.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	metrics bowlingmetrics.Metrics,
	tracer trace.Tracer,
	httpRouter chi.Router,
) (*Module, error) {
	logger.InfoContext(ctx, "Initializing bowling module")

	catalog, err := bowlingservice.NewCatalog(
		bowlingservice.Strategy{
			Validation: cfg.Scoring.Validation,
			Calculator: cfg.Scoring.Calculator,
		},
		bowlingservice.WithLogger(logger),
		bowlingservice.WithMetrics(metrics),
		bowlingservice.WithTracer(tracer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring catalog: %w", err)
	}

	module := &Module{
		config:  cfg,
		catalog: catalog,
		logger:  logger,
	}

	var publisher bowlingevents.Publisher
	if cfg.Events.Enabled {
		module.eventBus = bowlingevents.NewEventBus(logger, cfg.Events.Buffer)
		module.audit, err = bowlingevents.NewAuditRouter(logger, module.eventBus.Subscriber())
		if err != nil {
			_ = module.eventBus.Close()
			return nil, err
		}
		publisher = module.eventBus
	}

	module.handlers = bowlinghandlers.NewBowlingHandlers(catalog, publisher, logger, tracer)

	if httpRouter != nil {
		bowlingrouter.Register(httpRouter, module.handlers, bowlingrouter.Options{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			RateLimit:      cfg.HTTP.RateLimit,
			RateBurst:      cfg.HTTP.RateBurst,
		})
	}

	return module, nil
}

// Run starts the audit subscriber and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting bowling module")

	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancelFunc = cancel
	m.mu.Unlock()
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.audit != nil {
		if err := m.audit.Run(ctx); err != nil {
			m.logger.ErrorContext(ctx, "Audit router stopped", "error", err)
			return
		}
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Bowling module goroutine stopped")
}

// Ready is closed once the module consumes events. It is closed immediately
// when events are disabled.
func (m *Module) Ready() <-chan struct{} {
	if m.audit == nil {
		ready := make(chan struct{})
		close(ready)
		return ready
	}
	return m.audit.Running()
}

// Close stops the bowling module.
func (m *Module) Close() error {
	m.logger.Info("Stopping bowling module")

	m.mu.Lock()
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.mu.Unlock()

	var errs []error
	if m.audit != nil {
		if err := m.audit.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error stopping audit router: %w", err))
		}
	}
	if m.eventBus != nil {
		if err := m.eventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing event bus: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		m.logger.Error("Error stopping bowling module", "error", err)
		return err
	}

	m.logger.Info("Bowling module stopped")
	return nil
}

// Catalog returns the scoring services for use outside the HTTP API.
func (m *Module) Catalog() *bowlingservice.Catalog {
	return m.catalog
}

// Publisher returns the event publisher, or a no-op one when events are disabled.
func (m *Module) Publisher() bowlingevents.Publisher {
	if m.eventBus == nil {
		return bowlingevents.NoOpPublisher{}
	}
	return m.eventBus
}
