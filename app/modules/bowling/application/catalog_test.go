package bowlingservice

import (
	"context"
	"testing"

	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/calculators"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/application/validators"
	bowlingtypes "github.com/Black-And-White-Club/tenpin/app/modules/bowling/domain/types"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/testutils"
	"github.com/stretchr/testify/require"
)

var fullClassic = Strategy{Validation: validators.NameFull, Calculator: calculators.NameClassic}

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog(fullClassic)
	require.NoError(t, err)

	require.Equal(t, []Strategy{
		{Validation: validators.NameFull, Calculator: calculators.NameClassic},
		{Validation: validators.NameFull, Calculator: calculators.NameRules},
		{Validation: validators.NameNone, Calculator: calculators.NameClassic},
		{Validation: validators.NameNone, Calculator: calculators.NameRules},
	}, c.Strategies())

	for _, s := range c.Strategies() {
		svc, err := c.Get(s)
		require.NoError(t, err)
		require.Equal(t, s, svc.Strategy())
	}

	require.Equal(t, fullClassic, c.Default().Strategy())
}

func TestNewCatalog_UnknownDefault(t *testing.T) {
	_, err := NewCatalog(Strategy{Validation: "strict", Calculator: calculators.NameClassic})
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestCatalog_Get(t *testing.T) {
	c, err := NewCatalog(fullClassic)
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      Strategy
		want    Strategy
		wantErr bool
	}{
		{name: "empty uses default", in: Strategy{}, want: fullClassic},
		{name: "only calculator", in: Strategy{Calculator: calculators.NameRules}, want: Strategy{Validation: validators.NameFull, Calculator: calculators.NameRules}},
		{name: "only validation", in: Strategy{Validation: validators.NameNone}, want: Strategy{Validation: validators.NameNone, Calculator: calculators.NameClassic}},
		{name: "unknown validation", in: Strategy{Validation: "lenient"}, wantErr: true},
		{name: "unknown calculator", in: Strategy{Calculator: "magic"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := c.Get(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownStrategy)
				require.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, svc.Strategy())
		})
	}
}

func TestCatalog_ServicesAgreeOnValidGames(t *testing.T) {
	c, err := NewCatalog(fullClassic)
	require.NoError(t, err)
	ctx := context.Background()

	gen := testutils.NewGameGenerator()
	for _, input := range gen.Games(100) {
		scores := map[int]bool{}
		for _, s := range c.Strategies() {
			svc, err := c.Get(s)
			require.NoError(t, err)
			score, err := svc.CalculateScore(ctx, input)
			require.NoError(t, err, "input %q strategy %s seed %d", input, s, gen.Seed())
			scores[score] = true
		}
		require.Len(t, scores, 1, "strategies disagree on %q (seed %d)", input, gen.Seed())
	}
}

func TestCatalog_BonusSpareFailsEverywhere(t *testing.T) {
	c, err := NewCatalog(fullClassic)
	require.NoError(t, err)

	for _, s := range c.Strategies() {
		svc, err := c.Get(s)
		require.NoError(t, err)
		_, err = svc.CalculateScore(context.Background(), "11|11|11|11|11|11|11|11|11|X||5/")
		require.ErrorIs(t, err, bowlingtypes.ErrFormat, "strategy %s", s)
	}
}

func TestStrategy_String(t *testing.T) {
	require.Equal(t, "none/rules", Strategy{Validation: validators.NameNone, Calculator: calculators.NameRules}.String())
}
