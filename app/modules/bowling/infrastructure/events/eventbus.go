package bowlingevents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Publisher sends scoring events.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// EventBus is an in-process watermill pub/sub for scoring events.
type EventBus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewEventBus creates the bus. buffer is the output channel size of every subscription.
func NewEventBus(logger *slog.Logger, buffer int64) *EventBus {
	return &EventBus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: buffer},
			watermill.NewSlogLogger(logger),
		),
		logger: logger,
	}
}

// Publish marshals payload to JSON and publishes it on topic.
func (b *EventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(uuid.NewString(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set("topic", topic)
	if id := CorrelationID(ctx); id != "" {
		msg.Metadata.Set("correlation_id", id)
	}

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns the messages published on topic until ctx is done.
func (b *EventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Subscriber exposes the bus to a watermill router.
func (b *EventBus) Subscriber() message.Subscriber {
	return b.pubsub
}

func (b *EventBus) Close() error {
	return b.pubsub.Close()
}

// NoOpPublisher drops every event. It is used when events are disabled.
type NoOpPublisher struct{}

func (NoOpPublisher) Publish(context.Context, string, any) error { return nil }

var (
	_ Publisher = (*EventBus)(nil)
	_ Publisher = NoOpPublisher{}
)

type correlationKey struct{}

// WithCorrelationID stores id for the events published under ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id stored by WithCorrelationID.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// DecodePayload unmarshals a message published by EventBus.
func DecodePayload[T any](msg *message.Message) (T, error) {
	var payload T
	if msg == nil {
		return payload, errors.New("nil message")
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload of message %s: %w", msg.UUID, err)
	}
	return payload, nil
}
