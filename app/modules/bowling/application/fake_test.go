package bowlingservice

import (
	"context"
	"sync"
	"time"

	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/calculators"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/validators"
	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
	bowlingmetrics "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/metrics"
)

// ------------------------
// Fake Validator
// ------------------------

// FakeValidator provides a programmable stub for validators.Validator.
type FakeValidator struct {
	ValidateFunc func(frames []bowlingtypes.Frame) error
	Calls        int
}

func (f *FakeValidator) Validate(frames []bowlingtypes.Frame) error {
	f.Calls++
	if f.ValidateFunc != nil {
		return f.ValidateFunc(frames)
	}
	return nil
}

// ------------------------
// Fake Calculator
// ------------------------

// FakeCalculator provides a programmable stub for calculators.Calculator.
type FakeCalculator struct {
	ScoreFunc func(game bowlingtypes.Game) int
	Calls     int
}

func (f *FakeCalculator) Score(game bowlingtypes.Game) int {
	f.Calls++
	if f.ScoreFunc != nil {
		return f.ScoreFunc(game)
	}
	return 0
}

// ------------------------
// Fake Metrics
// ------------------------

// FakeMetrics records every call by operation and outcome.
type FakeMetrics struct {
	mu        sync.Mutex
	trace     []string
	Attempts  int
	Outcomes  []string
	Durations int
	Scores    []int
}

func (f *FakeMetrics) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeMetrics) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMetrics) RecordOperationAttempt(ctx context.Context, operation, strategy string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Attempt")
	f.Attempts++
}

func (f *FakeMetrics) RecordOperationOutcome(ctx context.Context, operation, strategy, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Outcome")
	f.Outcomes = append(f.Outcomes, outcome)
}

func (f *FakeMetrics) RecordOperationDuration(ctx context.Context, operation string, duration time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Duration")
	f.Durations++
}

func (f *FakeMetrics) RecordGameScore(ctx context.Context, strategy string, score int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GameScore")
	f.Scores = append(f.Scores, score)
}

// Ensure the fakes actually satisfy the interfaces
var (
	_ validators.Validator   = (*FakeValidator)(nil)
	_ calculators.Calculator = (*FakeCalculator)(nil)
	_ bowlingmetrics.Metrics = (*FakeMetrics)(nil)
)
