package bowlingservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/calculators"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/parsers"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/validators"
	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
	bowlingmetrics "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Operation names used for spans, metrics and logs.
const (
	OperationCalculateScore = "CalculateScore"
	OperationScoreCard      = "ScoreCard"
)

// BowlingService implements the Service interface for one validator and
// calculator pair. It holds no mutable state.
type BowlingService struct {
	parser     *parsers.Parser
	calculator calculators.Calculator
	strategy   Strategy
	logger     *slog.Logger
	metrics    bowlingmetrics.Metrics
	tracer     trace.Tracer
}

// Option configures a BowlingService.
type Option func(*BowlingService)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *BowlingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m bowlingmetrics.Metrics) Option {
	return func(s *BowlingService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *BowlingService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithStrategy names the validator and calculator the service was built with.
func WithStrategy(strategy Strategy) Option {
	return func(s *BowlingService) {
		s.strategy = strategy
	}
}

// New creates a BowlingService. The validator is bound into the parser.
func New(validator validators.Validator, calculator calculators.Calculator, opts ...Option) *BowlingService {
	s := &BowlingService{
		parser:     parsers.New(validator),
		calculator: calculator,
		strategy:   Strategy{Validation: "custom", Calculator: "custom"},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    bowlingmetrics.NoOpMetrics{},
		tracer:     noop.NewTracerProvider().Tracer("bowling"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BowlingService) Strategy() Strategy {
	return s.strategy
}

// CalculateScore returns the final score of the game written in input.
func (s *BowlingService) CalculateScore(ctx context.Context, input string) (int, error) {
	return withTelemetry(s, ctx, OperationCalculateScore, func(ctx context.Context) (int, error) {
		game, err := s.parser.Parse(input)
		if err != nil {
			return 0, err
		}

		score := s.calculator.Score(game)
		s.metrics.RecordGameScore(ctx, s.strategy.String(), score)
		return score, nil
	})
}

// ScoreCard scores the game and breaks it down per frame. The score comes from
// the bound calculator; the running totals come from the index walk, so the
// last cumulative value equals the score for every valid game.
func (s *BowlingService) ScoreCard(ctx context.Context, input string) (bowlingtypes.ScoreCard, error) {
	return withTelemetry(s, ctx, OperationScoreCard, func(ctx context.Context) (bowlingtypes.ScoreCard, error) {
		game, err := s.parser.Parse(input)
		if err != nil {
			return bowlingtypes.ScoreCard{}, err
		}

		score := s.calculator.Score(game)
		totals := calculators.RunningTotals(game)
		s.metrics.RecordGameScore(ctx, s.strategy.String(), score)

		card := bowlingtypes.ScoreCard{
			Notation: input,
			Score:    score,
			Frames:   make([]bowlingtypes.FrameScore, 0, len(totals)),
			Strategy: s.strategy.String(),
		}
		for i, frame := range game.Frames() {
			if frame.IsBonus() || i >= len(totals) {
				continue
			}
			pins := make([]int, 0, frame.Len())
			for _, b := range frame.Balls() {
				pins = append(pins, b.Pins())
			}
			card.Frames = append(card.Frames, bowlingtypes.FrameScore{
				Number:     i + 1,
				Marks:      frame.Marks(),
				Pins:       pins,
				Cumulative: totals[i],
			})
		}
		if bonus, ok := game.BonusFrame(); ok {
			card.Bonus = bonus.Marks()
		}
		return card, nil
	})
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *BowlingService,
	ctx context.Context,
	operationName string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	strategy := s.strategy.String()

	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("strategy", strategy),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, strategy)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = fmt.Errorf("%s: %w: %v", operationName, ErrScoringFailed, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("strategy", strategy),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationOutcome(ctx, operationName, strategy, bowlingmetrics.OutcomeFailure)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		outcome := outcomeOf(err)
		if outcome == bowlingmetrics.OutcomeFailure {
			s.logger.ErrorContext(ctx, "Operation failed with error",
				slog.String("operation", operationName),
				slog.String("strategy", strategy),
				slog.Any("error", wrappedErr),
			)
		} else {
			s.logger.WarnContext(ctx, "Game rejected",
				slog.String("operation", operationName),
				slog.String("strategy", strategy),
				slog.Any("error", wrappedErr),
			)
		}
		s.metrics.RecordOperationOutcome(ctx, operationName, strategy, outcome)
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, wrappedErr.Error())
		return result, wrappedErr
	}

	s.logger.InfoContext(ctx, operationName+" completed successfully",
		slog.String("operation", operationName),
		slog.String("strategy", strategy),
	)
	s.metrics.RecordOperationOutcome(ctx, operationName, strategy, bowlingmetrics.OutcomeSuccess)
	return result, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, bowlingtypes.ErrFormat):
		return bowlingmetrics.OutcomeFormatError
	case errors.Is(err, bowlingtypes.ErrValidation):
		return bowlingmetrics.OutcomeValidationError
	default:
		return bowlingmetrics.OutcomeFailure
	}
}
