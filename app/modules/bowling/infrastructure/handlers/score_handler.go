package bowlinghandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
	bowlingevents "github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/events"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// maxBodyBytes bounds score requests. A game is under 64 characters.
const maxBodyBytes = 4 << 10

// EventSource marks events published by the HTTP API.
const EventSource = "http"

// ScoreRequest is the body of POST /score.
type ScoreRequest struct {
	Notation   string `json:"notation"`
	Validation string `json:"validation,omitempty"`
	Calculator string `json:"calculator,omitempty"`
}

// ScoreResponse is the body of a successful POST /score.
type ScoreResponse struct {
	GameID   uuid.UUID                 `json:"game_id"`
	Score    int                       `json:"score"`
	Frames   []bowlingtypes.FrameScore `json:"frames"`
	Bonus    string                    `json:"bonus,omitempty"`
	Strategy string                    `json:"strategy"`
}

func (h *BowlingHandlers) HandleScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HandleScore")
	defer span.End()

	var req ScoreRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "request", "invalid JSON body")
		return
	}

	strategy := bowlingservice.Strategy{Validation: req.Validation, Calculator: req.Calculator}
	gameID := uuid.New()
	span.SetAttributes(attribute.String("game_id", gameID.String()))

	card, err := h.scoreCard(ctx, strategy, req.Notation)
	if err != nil {
		status, kind, message := classify(err)
		h.logger.WarnContext(ctx, "Score request rejected",
			slog.String("game_id", gameID.String()),
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		h.publishRejected(ctx, gameID, req.Notation, strategy, kind, message)
		writeError(w, status, kind, message)
		return
	}

	h.publishScored(ctx, gameID, card)
	writeJSON(w, http.StatusOK, ScoreResponse{
		GameID:   gameID,
		Score:    card.Score,
		Frames:   card.Frames,
		Bonus:    card.Bonus,
		Strategy: card.Strategy,
	})
}

func (h *BowlingHandlers) HandleStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.services.Strategies())
}

func (h *BowlingHandlers) scoreCard(ctx context.Context, strategy bowlingservice.Strategy, notation string) (bowlingtypes.ScoreCard, error) {
	svc, err := h.services.Get(strategy)
	if err != nil {
		return bowlingtypes.ScoreCard{}, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("strategy", svc.Strategy().String()))
	return svc.ScoreCard(ctx, notation)
}

func (h *BowlingHandlers) publishScored(ctx context.Context, gameID uuid.UUID, card bowlingtypes.ScoreCard) {
	payload := bowlingevents.GameScoredPayloadV1{
		GameID:     gameID,
		Notation:   card.Notation,
		Strategy:   card.Strategy,
		Score:      card.Score,
		Cumulative: card.Cumulative(),
		Source:     EventSource,
		ScoredAt:   time.Now().UTC(),
	}
	h.publish(ctx, bowlingevents.GameScoredV1, payload)
}

func (h *BowlingHandlers) publishRejected(ctx context.Context, gameID uuid.UUID, notation string, strategy bowlingservice.Strategy, kind, reason string) {
	payload := bowlingevents.GameRejectedPayloadV1{
		GameID:     gameID,
		Notation:   notation,
		Strategy:   strategy.String(),
		Kind:       kind,
		Reason:     reason,
		Source:     EventSource,
		RejectedAt: time.Now().UTC(),
	}
	h.publish(ctx, bowlingevents.GameRejectedV1, payload)
}

// publish never fails the request; a lost audit event is only logged.
func (h *BowlingHandlers) publish(ctx context.Context, topic string, payload any) {
	if id := middleware.GetReqID(ctx); id != "" {
		ctx = bowlingevents.WithCorrelationID(ctx, id)
	}
	if err := h.publisher.Publish(ctx, topic, payload); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish scoring event",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
	}
}
