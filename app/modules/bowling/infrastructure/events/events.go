package bowlingevents

import (
	"time"

	"github.com/google/uuid"
)

// Topics published by the scoring handlers.
const (
	GameScoredV1   = "bowling.game.scored.v1"
	GameRejectedV1 = "bowling.game.rejected.v1"
)

// Rejection kinds carried by GameRejectedPayloadV1.
const (
	RejectionFormat     = "format"
	RejectionValidation = "validation"
	RejectionScoring    = "scoring"
)

// GameScoredPayloadV1 is published once a game was accepted and scored.
type GameScoredPayloadV1 struct {
	GameID     uuid.UUID `json:"game_id"`
	Notation   string    `json:"notation"`
	Strategy   string    `json:"strategy"`
	Score      int       `json:"score"`
	Cumulative []int     `json:"cumulative,omitempty"`
	Source     string    `json:"source"`
	ScoredAt   time.Time `json:"scored_at"`
}

// GameRejectedPayloadV1 is published when a game could not be scored.
type GameRejectedPayloadV1 struct {
	GameID     uuid.UUID `json:"game_id"`
	Notation   string    `json:"notation"`
	Strategy   string    `json:"strategy"`
	Kind       string    `json:"kind"`
	Reason     string    `json:"reason"`
	Source     string    `json:"source"`
	RejectedAt time.Time `json:"rejected_at"`
}
