package parsers

import (
	"strings"

	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/validators"
	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
)

const (
	// BonusDelimiter separates the ten regular frames from the bonus frame.
	BonusDelimiter = "||"
	// FrameDelimiter separates two regular frames.
	FrameDelimiter = "|"

	miss   = '-'
	strike = 'X'
	spare  = '/'
)

// WrongFormatReason describes the notation grammar. It is the reason of every
// format error except a spare in the bonus frame.
const WrongFormatReason = "input format is wrong: " +
	"it should have 10 frames separated by '|' followed by '||' and an optional bonus frame; " +
	"each frame holds up to 2 symbols from digits, 'X', '/' and '-', " +
	"for example 'X|5/|22|--|33|X|X|--|4/|X||23'"

// Parser turns game notation into frames and hands them to its validator
// before building the game.
type Parser struct {
	validator validators.Validator
}

// New creates a parser bound to a validator. A nil validator accepts everything.
func New(validator validators.Validator) *Parser {
	if validator == nil {
		validator = validators.NewNoOp()
	}
	return &Parser{validator: validator}
}

// Parse parses input into a game. It fails with a *bowlingtypes.FormatError
// for malformed notation and with whatever the validator reports otherwise.
func (p *Parser) Parse(input string) (bowlingtypes.Game, error) {
	frames, err := ParseFrames(input)
	if err != nil {
		return bowlingtypes.Game{}, err
	}

	if err := p.validator.Validate(frames); err != nil {
		return bowlingtypes.Game{}, err
	}

	return bowlingtypes.NewGame(frames), nil
}

// ParseFrames splits the notation into regular frames followed by the bonus
// frame when one is present. No bowling rule is checked here.
func ParseFrames(input string) ([]bowlingtypes.Frame, error) {
	main, bonus, found := strings.Cut(input, BonusDelimiter)
	if input == "" || !found {
		return nil, &bowlingtypes.FormatError{Reason: WrongFormatReason}
	}

	tokens := strings.Split(main, FrameDelimiter)
	frames := make([]bowlingtypes.Frame, 0, len(tokens)+1)
	for _, token := range tokens {
		frame, err := parseFrame(token, false)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	if bonus != "" {
		frame, err := parseFrame(bonus, true)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	return frames, nil
}

// parseFrame resolves the symbols of one token left to right. A spare needs
// the pins already knocked down earlier in the same token.
func parseFrame(token string, bonus bool) (bowlingtypes.Frame, error) {
	balls := make([]bowlingtypes.Ball, 0, len(token))
	knocked := 0
	for _, symbol := range token {
		ball, err := parseBall(symbol, knocked, bonus)
		if err != nil {
			return bowlingtypes.Frame{}, err
		}
		knocked += ball.Pins()
		balls = append(balls, ball)
	}
	return bowlingtypes.NewFrame(balls...), nil
}

func parseBall(symbol rune, knocked int, bonus bool) (bowlingtypes.Ball, error) {
	switch {
	case symbol == miss:
		return bowlingtypes.NewMiss(bonus), nil
	case symbol == strike:
		return bowlingtypes.NewStrike(bonus), nil
	case symbol == spare:
		return bowlingtypes.NewSpare(bowlingtypes.MaxPins-knocked, bonus)
	case symbol >= '1' && symbol <= '9':
		return bowlingtypes.NewPlain(int(symbol-'0'), bonus), nil
	default:
		return bowlingtypes.Ball{}, &bowlingtypes.FormatError{Reason: WrongFormatReason}
	}
}
