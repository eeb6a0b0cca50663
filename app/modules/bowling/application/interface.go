package bowlingservice

import (
	"context"

	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
)

// Service defines the interface for scoring bowling games.
type Service interface {
	// Parses, validates and scores a game written in frame notation.
	CalculateScore(ctx context.Context, input string) (int, error)

	// Same as CalculateScore, with the cumulative score after every frame.
	ScoreCard(ctx context.Context, input string) (bowlingtypes.ScoreCard, error)

	// The validation and calculator the service is bound to.
	Strategy() Strategy
}
