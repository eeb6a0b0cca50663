package bowlingmetrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMetrics(reg)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordOperationAttempt(ctx, "CalculateScore", "full/classic")
	m.RecordOperationAttempt(ctx, "CalculateScore", "full/classic")
	m.RecordOperationOutcome(ctx, "CalculateScore", "full/classic", OutcomeSuccess)
	m.RecordOperationOutcome(ctx, "CalculateScore", "full/classic", OutcomeValidationError)
	m.RecordOperationDuration(ctx, "CalculateScore", 3*time.Millisecond)
	m.RecordGameScore(ctx, "full/classic", 300)

	require.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("CalculateScore", "full/classic", OutcomeAttempt)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("CalculateScore", "full/classic", OutcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("CalculateScore", "full/classic", OutcomeValidationError)))
	require.Equal(t, 1, testutil.CollectAndCount(m.duration))
	require.Equal(t, 1, testutil.CollectAndCount(m.scores))
}

func TestNewPrometheusMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMetrics(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMetrics(reg)
	require.Error(t, err)
}
