package validators

import (
	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
)

// Validator inspects a parsed frame sequence and reports the first rule it
// breaks as a *bowlingtypes.ValidationError, or nil when the game is legal.
type Validator interface {
	Validate(frames []bowlingtypes.Frame) error
}

// Names used to select a validator from configuration, the CLI and the API.
const (
	NameFull = "full"
	NameNone = "none"
)

// Rule messages, in evaluation order.
const (
	FrameCountMessage        = "count of non-bonus frames should be equal to 10"
	BonusFrameMissingMessage = "if the 10th frame is a strike or a spare, the bonus frame should be present"
	BonusFrameInvalidMessage = "if the 10th frame is a spare the bonus frame should contain 1 ball; if it is a strike the bonus frame should contain exactly 2 balls"
	BallPinsMessage          = "pins of each ball should be between 0 and 10"
	FrameSumMessage          = "sum of pins of each frame should not be greater than 10"
	StrikeFrameMessage       = "a strike frame should contain only one ball with 10 pins"
	SpareFrameMessage        = "a spare frame should contain 2 balls whose pins sum to 10"
	OpenFrameMessage         = "a frame without strike or spare should contain exactly 2 balls with a sum less than 10"
)

// NoOp accepts every frame sequence. Use it only for trusted input: scoring a
// malformed game without validation gives an undefined result.
type NoOp struct{}

// NewNoOp returns the validator that never reports an error.
func NewNoOp() NoOp { return NoOp{} }

func (NoOp) Validate([]bowlingtypes.Frame) error { return nil }

// rule is a whole-game check paired with the message reported when it fails.
type rule struct {
	check   func(frames []bowlingtypes.Frame) bool
	message string
}

// Full runs the bowling rules in a fixed order and stops at the first failure.
type Full struct {
	rules []rule
}

// NewFull returns the rule-based validator.
func NewFull() Full {
	return Full{rules: []rule{
		{check: frameCountCorrect, message: FrameCountMessage},
		{check: bonusFrameShouldExist, message: BonusFrameMissingMessage},
		{check: bonusFrameCorrect, message: BonusFrameInvalidMessage},
		{check: everyFrame(ballsHaveCorrectPins), message: BallPinsMessage},
		{check: everyFrame(ballsHaveCorrectSum), message: FrameSumMessage},
		{check: everyFrame(strikeFrameCorrect), message: StrikeFrameMessage},
		{check: everyFrame(spareFrameCorrect), message: SpareFrameMessage},
		{check: everyFrame(openFrameCorrect), message: OpenFrameMessage},
	}}
}

// Validate returns the message of the first violated rule.
func (v Full) Validate(frames []bowlingtypes.Frame) error {
	for _, r := range v.rules {
		if !r.check(frames) {
			return &bowlingtypes.ValidationError{Reason: r.message}
		}
	}
	return nil
}

// everyFrame lifts a per-frame predicate to the whole game.
func everyFrame(pred func(bowlingtypes.Frame) bool) func([]bowlingtypes.Frame) bool {
	return func(frames []bowlingtypes.Frame) bool {
		for _, f := range frames {
			if !pred(f) {
				return false
			}
		}
		return true
	}
}

func frameCountCorrect(frames []bowlingtypes.Frame) bool {
	regular := 0
	for _, f := range frames {
		if !f.IsBonus() {
			regular++
		}
	}
	return regular == bowlingtypes.FrameCount
}

// bonusFrameShouldExist only demands the bonus frame when it was earned.
// An unearned bonus frame is rejected by bonusFrameCorrect.
func bonusFrameShouldExist(frames []bowlingtypes.Frame) bool {
	if !frames[bowlingtypes.LastRegularFrameIndex].IsMaxEarned() {
		return true
	}
	return len(frames) == bowlingtypes.FrameCount+1
}

func bonusFrameCorrect(frames []bowlingtypes.Frame) bool {
	bonus := frames[len(frames)-1]
	if !bonus.IsBonus() {
		return true
	}
	tenth := frames[bowlingtypes.LastRegularFrameIndex]
	return tenth.IsSpare() && bonusAfterSpareCorrect(bonus) ||
		tenth.IsStrike() && bonusAfterStrikeCorrect(bonus)
}

func bonusAfterSpareCorrect(bonus bowlingtypes.Frame) bool {
	return bonus.Len() == bowlingtypes.MaxBallsPerFrame-1 && bonus.Ball(0).IsCorrect()
}

func bonusAfterStrikeCorrect(bonus bowlingtypes.Frame) bool {
	if bonus.Len() != bowlingtypes.MaxBallsPerFrame {
		return false
	}
	return ballsHaveCorrectPins(bonus)
}

func ballsHaveCorrectPins(f bowlingtypes.Frame) bool {
	for _, b := range f.Balls() {
		if !b.IsCorrect() {
			return false
		}
	}
	return true
}

// Bonus frames are exempt: after a tenth-frame strike both bonus balls may be strikes.
func ballsHaveCorrectSum(f bowlingtypes.Frame) bool {
	return f.IsBonus() || f.HasCorrectSum()
}

func strikeFrameCorrect(f bowlingtypes.Frame) bool {
	if !f.IsStrike() {
		return true
	}
	return f.Len() == bowlingtypes.MaxBallsPerFrame-1 && f.Ball(0).Pins() == bowlingtypes.MaxPins
}

func spareFrameCorrect(f bowlingtypes.Frame) bool {
	if !f.IsSpare() {
		return true
	}
	return f.Len() == bowlingtypes.MaxBallsPerFrame &&
		f.Total() == bowlingtypes.MaxPins &&
		f.Ball(0).Pins() < bowlingtypes.MaxPins
}

func openFrameCorrect(f bowlingtypes.Frame) bool {
	if f.IsSpecial() {
		return true
	}
	return f.Len() == bowlingtypes.MaxBallsPerFrame && f.Total() < bowlingtypes.MaxPins
}
