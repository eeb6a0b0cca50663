package bowlinghandlers

import (
	"context"
	"sync"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
	bowlingevents "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/events"
)

// ------------------------
// Fake Service
// ------------------------

// FakeService provides a programmable stub for bowlingservice.Service.
type FakeService struct {
	CalculateScoreFunc func(ctx context.Context, input string) (int, error)
	ScoreCardFunc      func(ctx context.Context, input string) (bowlingtypes.ScoreCard, error)
	StrategyValue      bowlingservice.Strategy
}

func (f *FakeService) CalculateScore(ctx context.Context, input string) (int, error) {
	if f.CalculateScoreFunc != nil {
		return f.CalculateScoreFunc(ctx, input)
	}
	return 0, nil
}

func (f *FakeService) ScoreCard(ctx context.Context, input string) (bowlingtypes.ScoreCard, error) {
	if f.ScoreCardFunc != nil {
		return f.ScoreCardFunc(ctx, input)
	}
	return bowlingtypes.ScoreCard{}, nil
}

func (f *FakeService) Strategy() bowlingservice.Strategy {
	return f.StrategyValue
}

// ------------------------
// Fake Provider
// ------------------------

// FakeProvider returns Service for every strategy unless GetErr is set.
type FakeProvider struct {
	Service   bowlingservice.Service
	GetErr    error
	Requested []bowlingservice.Strategy
}

func (f *FakeProvider) Get(strategy bowlingservice.Strategy) (bowlingservice.Service, error) {
	f.Requested = append(f.Requested, strategy)
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.Service, nil
}

func (f *FakeProvider) Strategies() []bowlingservice.Strategy {
	return []bowlingservice.Strategy{f.Service.Strategy()}
}

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic         string
	Payload       any
	CorrelationID string
}

// FakePublisher records published events.
type FakePublisher struct {
	mu     sync.Mutex
	Err    error
	events []publishedEvent
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{
		Topic:         topic,
		Payload:       payload,
		CorrelationID: bowlingevents.CorrelationID(ctx),
	})
	return f.Err
}

// Events returns a copy of the published events.
func (f *FakePublisher) Events() []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]publishedEvent, len(f.events))
	copy(out, f.events)
	return out
}

// Ensure the fakes actually satisfy the interfaces
var (
	_ bowlingservice.Service  = (*FakeService)(nil)
	_ ServiceProvider         = (*FakeProvider)(nil)
	_ bowlingevents.Publisher = (*FakePublisher)(nil)
)
