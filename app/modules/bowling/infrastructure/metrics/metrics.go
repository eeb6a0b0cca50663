package bowlingmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded against tenpin_operations_total.
const (
	OutcomeAttempt         = "attempt"
	OutcomeSuccess         = "success"
	OutcomeFormatError     = "format_error"
	OutcomeValidationError = "validation_error"
	OutcomeFailure         = "failure"
)

// Metrics records scoring telemetry.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, strategy string)
	RecordOperationOutcome(ctx context.Context, operation, strategy, outcome string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordGameScore(ctx context.Context, strategy string, score int)
}

// PrometheusMetrics implements Metrics on a prometheus registry.
type PrometheusMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	scores     *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the scoring collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tenpin",
			Name:      "operations_total",
			Help:      "Scoring operations by strategy and outcome.",
		}, []string{"operation", "strategy", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tenpin",
			Name:      "operation_duration_seconds",
			Help:      "Duration of scoring operations.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"operation"}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tenpin",
			Name:      "game_score",
			Help:      "Final scores of accepted games.",
			Buckets:   prometheus.LinearBuckets(0, 30, 11),
		}, []string{"strategy"}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.duration, m.scores} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordOperationAttempt(ctx context.Context, operation, strategy string) {
	m.operations.WithLabelValues(operation, strategy, OutcomeAttempt).Inc()
}

func (m *PrometheusMetrics) RecordOperationOutcome(ctx context.Context, operation, strategy, outcome string) {
	m.operations.WithLabelValues(operation, strategy, outcome).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(ctx context.Context, operation string, duration time.Duration) {
	m.duration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordGameScore(ctx context.Context, strategy string, score int) {
	m.scores.WithLabelValues(strategy).Observe(float64(score))
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string) {}
func (NoOpMetrics) RecordOperationOutcome(context.Context, string, string, string) {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordGameScore(context.Context, string, int) {}

var (
	_ Metrics = (*PrometheusMetrics)(nil)
	_ Metrics = NoOpMetrics{}
)
