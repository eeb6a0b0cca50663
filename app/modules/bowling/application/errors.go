package bowlingservice

import "errors"

// Service errors. Format and validation failures are reported with the
// bowlingtypes error kinds and are normal outcomes for bad input.
var (
	// ErrScoringFailed indicates a calculator could not score the game. It only
	// happens when validation was skipped and the game is malformed.
	ErrScoringFailed = errors.New("scoring failed")

	// ErrUnknownStrategy indicates a validation or calculator name the catalog does not know.
	ErrUnknownStrategy = errors.New("unknown strategy")
)
