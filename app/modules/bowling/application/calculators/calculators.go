package calculators

import (
	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
)

// Calculator turns a validated game into its final score.
//
// Implementations assume ten frames that honour the strike, spare and bonus
// structure. On malformed games the result is undefined and an implementation
// may panic with an index out of range.
type Calculator interface {
	Score(game bowlingtypes.Game) int
}

// Names used to select a calculator from configuration, the CLI and the API.
const (
	NameClassic = "classic"
	NameRules   = "rules"
)

// Classic walks the flattened rolls with a cursor, one frame at a time.
// The bonus rolls follow the tenth frame so strike and spare lookahead reads
// straight past the frame boundary.
type Classic struct{}

// NewClassic returns the index-walk calculator.
func NewClassic() Classic { return Classic{} }

func (Classic) Score(game bowlingtypes.Game) int {
	rolls := game.Rolls()
	score := 0
	cursor := 0
	for frame := 0; frame < bowlingtypes.FrameCount; frame++ {
		points, next := scoreFrame(rolls, cursor)
		score += points
		cursor = next
	}
	return score
}

// scoreFrame scores the frame starting at rolls[cursor] and returns the cursor
// of the following frame.
func scoreFrame(rolls []int, cursor int) (points, next int) {
	switch {
	case rolls[cursor] == bowlingtypes.MaxPins:
		return bowlingtypes.MaxPins + rolls[cursor+1] + rolls[cursor+2], cursor + 1
	case rolls[cursor]+rolls[cursor+1] == bowlingtypes.MaxPins:
		return bowlingtypes.MaxPins + rolls[cursor+2], cursor + 2
	default:
		return rolls[cursor] + rolls[cursor+1], cursor + 2
	}
}

// ballRule is the contribution of the ball at index i, given every ball of the
// game. Rules only look at balls after i.
type ballRule func(balls []bowlingtypes.Ball, i int) int

// RuleBased scores a game as the sum, over every ball, of independent rule
// contributions.
type RuleBased struct {
	rules []ballRule
}

// NewRuleBased returns the rule-fold calculator.
func NewRuleBased() RuleBased {
	return RuleBased{rules: []ballRule{
		strikeBonusRule,
		spareBonusRule,
		ownPinsRule,
	}}
}

func (c RuleBased) Score(game bowlingtypes.Game) int {
	balls := game.Balls()
	score := 0
	for i := range balls {
		for _, rule := range c.rules {
			score += rule(balls, i)
		}
	}
	return score
}

func strikeBonusRule(balls []bowlingtypes.Ball, i int) int {
	if !balls[i].IsStrike() {
		return 0
	}
	return balls[i+1].Pins() + balls[i+2].Pins()
}

func spareBonusRule(balls []bowlingtypes.Ball, i int) int {
	if !balls[i].IsSpare() {
		return 0
	}
	return balls[i+1].Pins()
}

// Bonus balls are only ever counted through the lookahead of the tenth frame.
func ownPinsRule(balls []bowlingtypes.Ball, i int) int {
	if balls[i].IsBonus() {
		return 0
	}
	return balls[i].Pins()
}

// RunningTotals returns the cumulative score after each of the ten frames.
// The last value is the final score. Like the calculators it expects a
// validated game.
func RunningTotals(game bowlingtypes.Game) []int {
	rolls := game.Rolls()
	totals := make([]int, 0, bowlingtypes.FrameCount)
	score := 0
	cursor := 0
	for frame := 0; frame < bowlingtypes.FrameCount; frame++ {
		points, next := scoreFrame(rolls, cursor)
		score += points
		cursor = next
		totals = append(totals, score)
	}
	return totals
}
