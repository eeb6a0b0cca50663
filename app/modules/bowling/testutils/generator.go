package testutils

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// GameGenerator produces random but legal game notation for property tests.
type GameGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewGameGenerator creates a generator with an optional seed. Without one the
// current time is used; Seed reports it so failures can be replayed.
func NewGameGenerator(seed ...int64) *GameGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &GameGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was created with.
func (g *GameGenerator) Seed() int64 {
	return g.seed
}

// Notation returns a complete legal game: ten frames, the bonus delimiter and
// the bonus balls the tenth frame earned.
func (g *GameGenerator) Notation() string {
	frames := make([]string, 0, 10)
	var tenth string
	for i := 0; i < 10; i++ {
		tenth = g.frame()
		frames = append(frames, tenth)
	}

	var bonus string
	switch {
	case tenth == "X":
		bonus = g.bonusBall() + g.bonusBall()
	case strings.HasSuffix(tenth, "/"):
		bonus = g.bonusBall()
	}

	return strings.Join(frames, "|") + "||" + bonus
}

// Games returns n notations.
func (g *GameGenerator) Games(n int) []string {
	games := make([]string, 0, n)
	for i := 0; i < n; i++ {
		games = append(games, g.Notation())
	}
	return games
}

// frame favours strikes and spares so lookahead paths get exercised.
func (g *GameGenerator) frame() string {
	if g.faker.IntRange(1, 4) == 1 {
		return "X"
	}

	first := g.faker.IntRange(0, 9)
	if g.faker.IntRange(1, 3) == 1 {
		return symbol(first) + "/"
	}

	second := g.faker.IntRange(0, 9-first)
	return symbol(first) + symbol(second)
}

// bonusBall never uses '/': the bonus frame has no spares.
func (g *GameGenerator) bonusBall() string {
	return symbol(g.faker.IntRange(0, 10))
}

func symbol(pins int) string {
	switch pins {
	case 0:
		return "-"
	case 10:
		return "X"
	default:
		return string(rune('0' + pins))
	}
}
