package bowlingtypes

import "errors"

// Error kinds returned while turning notation into a scored game.
// Callers match them with errors.Is; the concrete types carry the message.
var (
	// ErrFormat indicates the notation could not be parsed.
	ErrFormat = errors.New("format error")

	// ErrValidation indicates a parseable game that breaks a bowling rule.
	ErrValidation = errors.New("validation error")
)

// FormatError is raised by the parser for malformed notation.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return e.Reason }

// Is reports ErrFormat as the kind of every FormatError.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// ValidationError carries the message of the first rule a game violated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Is reports ErrValidation as the kind of every ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
