package bowlingevents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// AuditRouter consumes every scoring event and writes it to the log.
type AuditRouter struct {
	Router *message.Router
	logger *slog.Logger
}

// NewAuditRouter registers the audit handlers on a new watermill router fed by subscriber.
func NewAuditRouter(logger *slog.Logger, subscriber message.Subscriber) (*AuditRouter, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create audit router: %w", err)
	}

	r := &AuditRouter{Router: router, logger: logger}
	router.AddMiddleware(middleware.Recoverer)

	router.AddNoPublisherHandler("bowling.audit."+GameScoredV1, GameScoredV1, subscriber, r.HandleGameScored)
	router.AddNoPublisherHandler("bowling.audit."+GameRejectedV1, GameRejectedV1, subscriber, r.HandleGameRejected)
	return r, nil
}

// Run blocks until ctx is cancelled or the router is closed.
func (r *AuditRouter) Run(ctx context.Context) error {
	return r.Router.Run(ctx)
}

// Running is closed once every handler is subscribed.
func (r *AuditRouter) Running() chan struct{} {
	return r.Router.Running()
}

func (r *AuditRouter) Close() error {
	return r.Router.Close()
}

func (r *AuditRouter) HandleGameScored(msg *message.Message) error {
	payload, err := DecodePayload[GameScoredPayloadV1](msg)
	if err != nil {
		r.logger.Error("Dropping malformed game scored event",
			slog.String("message_id", msg.UUID),
			slog.Any("error", err),
		)
		return nil
	}

	r.logger.Info("Game scored",
		slog.String("game_id", payload.GameID.String()),
		slog.String("strategy", payload.Strategy),
		slog.Int("score", payload.Score),
		slog.String("source", payload.Source),
		slog.String("correlation_id", msg.Metadata.Get("correlation_id")),
	)
	return nil
}

func (r *AuditRouter) HandleGameRejected(msg *message.Message) error {
	payload, err := DecodePayload[GameRejectedPayloadV1](msg)
	if err != nil {
		r.logger.Error("Dropping malformed game rejected event",
			slog.String("message_id", msg.UUID),
			slog.Any("error", err),
		)
		return nil
	}

	r.logger.Warn("Game rejected",
		slog.String("game_id", payload.GameID.String()),
		slog.String("strategy", payload.Strategy),
		slog.String("kind", payload.Kind),
		slog.String("reason", payload.Reason),
		slog.String("source", payload.Source),
		slog.String("correlation_id", msg.Metadata.Get("correlation_id")),
	)
	return nil
}
