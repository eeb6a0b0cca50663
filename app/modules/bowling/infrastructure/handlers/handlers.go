package bowlinghandlers

import (
	"log/slog"
	"net/http"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	bowlingevents "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/events"
	"go.opentelemetry.io/otel/trace"
)

// Handlers serves the bowling HTTP API.
type Handlers interface {
	HandleScore(w http.ResponseWriter, r *http.Request)
	HandleChart(w http.ResponseWriter, r *http.Request)
	HandleStrategies(w http.ResponseWriter, r *http.Request)
}

// ServiceProvider hands out a scoring service per strategy.
type ServiceProvider interface {
	Get(strategy bowlingservice.Strategy) (bowlingservice.Service, error)
	Strategies() []bowlingservice.Strategy
}

// BowlingHandlers implements the Handlers interface.
type BowlingHandlers struct {
	services  ServiceProvider
	publisher bowlingevents.Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewBowlingHandlers creates a new BowlingHandlers instance. A nil publisher
// disables scoring events.
func NewBowlingHandlers(
	services ServiceProvider,
	publisher bowlingevents.Publisher,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	if publisher == nil {
		publisher = bowlingevents.NoOpPublisher{}
	}
	return &BowlingHandlers{
		services:  services,
		publisher: publisher,
		logger:    logger,
		tracer:    tracer,
	}
}

var _ ServiceProvider = (*bowlingservice.Catalog)(nil)
