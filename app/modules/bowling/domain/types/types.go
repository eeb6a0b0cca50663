package bowlingtypes

import "strings"

const (
	// MaxPins is the pin count of a strike and the ceiling of a regular frame.
	MaxPins = 10
	// MinPins is the pin count of a miss.
	MinPins = 0
	// FrameCount is the number of regular (non-bonus) frames in a game.
	FrameCount = 10
	// LastRegularFrameIndex is the index of the tenth frame.
	LastRegularFrameIndex = FrameCount - 1
	// MaxBallsPerFrame is the number of balls in an open or spare frame.
	MaxBallsPerFrame = 2
)

// BonusSpareReason is the reason reported when a spare appears in the bonus frame.
const BonusSpareReason = "bonus ball can't be spare"

// Ball is one roll. Values are immutable once constructed.
type Ball struct {
	pins   int
	bonus  bool
	spare  bool
	strike bool
}

// NewMiss returns a gutter ball.
func NewMiss(bonus bool) Ball {
	return Ball{pins: MinPins, bonus: bonus}
}

// NewPlain returns a ball that is neither a strike nor a spare.
func NewPlain(pins int, bonus bool) Ball {
	return Ball{pins: pins, bonus: bonus}
}

// NewStrike returns a ten-pin ball. Inside the bonus frame the pins count
// but the ball is not flagged as a scoring strike.
func NewStrike(bonus bool) Ball {
	return Ball{pins: MaxPins, bonus: bonus, strike: !bonus}
}

// NewSpare returns the ball that completes a spare.
func NewSpare(pins int, bonus bool) (Ball, error) {
	if bonus {
		return Ball{}, &FormatError{Reason: BonusSpareReason}
	}
	return Ball{pins: pins, spare: true}, nil
}

func (b Ball) Pins() int      { return b.pins }
func (b Ball) IsBonus() bool  { return b.bonus }
func (b Ball) IsSpare() bool  { return b.spare }
func (b Ball) IsStrike() bool { return b.strike }

// IsCorrect reports whether the pin count is within a single rack.
func (b Ball) IsCorrect() bool {
	return b.pins >= MinPins && b.pins <= MaxPins
}

// Frame is an ordered group of balls. A well-formed frame holds one or two
// balls; the parser builds whatever the notation says and leaves the rest to
// validation.
type Frame struct {
	balls []Ball
}

// NewFrame copies balls into a new frame.
func NewFrame(balls ...Ball) Frame {
	return Frame{balls: append([]Ball(nil), balls...)}
}

// Balls returns a copy of the frame's balls.
func (f Frame) Balls() []Ball {
	return append([]Ball(nil), f.balls...)
}

// Len returns the number of balls in the frame.
func (f Frame) Len() int { return len(f.balls) }

// Ball returns the i-th ball of the frame.
func (f Frame) Ball(i int) Ball { return f.balls[i] }

func (f Frame) IsStrike() bool { return f.any(Ball.IsStrike) }
func (f Frame) IsSpare() bool  { return f.any(Ball.IsSpare) }
func (f Frame) IsBonus() bool  { return f.any(Ball.IsBonus) }

// IsMaxEarned reports a strike or a spare.
func (f Frame) IsMaxEarned() bool {
	return f.IsStrike() || f.IsSpare()
}

// IsSpecial reports a strike, a spare or the bonus frame.
func (f Frame) IsSpecial() bool {
	return f.IsMaxEarned() || f.IsBonus()
}

// Total sums the pins of every ball in the frame.
func (f Frame) Total() int {
	total := 0
	for _, b := range f.balls {
		total += b.pins
	}
	return total
}

// HasCorrectSum reports whether the frame total fits in one rack.
func (f Frame) HasCorrectSum() bool {
	total := f.Total()
	return total >= MinPins && total <= MaxPins
}

// Marks renders the frame back into notation symbols.
func (f Frame) Marks() string {
	var sb strings.Builder
	for _, b := range f.balls {
		switch {
		case b.spare:
			sb.WriteByte('/')
		case b.pins == MaxPins:
			sb.WriteByte('X')
		case b.pins == MinPins:
			sb.WriteByte('-')
		case b.pins > MinPins && b.pins < MaxPins:
			sb.WriteByte(byte('0' + b.pins))
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

func (f Frame) any(pred func(Ball) bool) bool {
	for _, b := range f.balls {
		if pred(b) {
			return true
		}
	}
	return false
}

// Game is the ordered frame sequence of one game: ten regular frames plus an
// optional trailing bonus frame.
type Game struct {
	frames []Frame
}

// NewGame copies frames into a new game.
func NewGame(frames []Frame) Game {
	return Game{frames: append([]Frame(nil), frames...)}
}

// Frames returns a copy of the game's frames.
func (g Game) Frames() []Frame {
	return append([]Frame(nil), g.frames...)
}

// BonusFrame returns the trailing bonus frame when the game has one.
func (g Game) BonusFrame() (Frame, bool) {
	if len(g.frames) == 0 {
		return Frame{}, false
	}
	last := g.frames[len(g.frames)-1]
	return last, last.IsBonus()
}

// Balls flattens the game into its ordered balls.
func (g Game) Balls() []Ball {
	balls := make([]Ball, 0, len(g.frames)*MaxBallsPerFrame)
	for _, f := range g.frames {
		balls = append(balls, f.balls...)
	}
	return balls
}

// Rolls flattens the game into its ordered pin counts.
func (g Game) Rolls() []int {
	rolls := make([]int, 0, len(g.frames)*MaxBallsPerFrame)
	for _, f := range g.frames {
		for _, b := range f.balls {
			rolls = append(rolls, b.pins)
		}
	}
	return rolls
}
