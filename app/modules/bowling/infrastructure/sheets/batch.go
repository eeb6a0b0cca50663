package sheets

import (
	"context"
	"errors"

	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
)

// Scorer scores one game notation.
type Scorer interface {
	CalculateScore(ctx context.Context, input string) (int, error)
}

// ScoreEntries scores every entry in order. A rejected game does not stop the
// batch; its reason is kept on the result instead.
func ScoreEntries(ctx context.Context, scorer Scorer, strategy string, entries []Entry) []Result {
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		result := Result{Entry: entry, Strategy: strategy}
		score, err := scorer.CalculateScore(ctx, entry.Notation)
		if err != nil {
			result.Error = reason(err)
		} else {
			result.Score = score
		}
		results = append(results, result)
	}
	return results
}

// Failed counts the rejected results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Error != "" {
			n++
		}
	}
	return n
}

func reason(err error) string {
	var fe *bowlingtypes.FormatError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	var ve *bowlingtypes.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return err.Error()
}
