package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briahnloo/arbitrage-finder/internal/outcome"
)

func TestFamilyFor(t *testing.T) {
	assert.Equal(t, FamilyHockey, FamilyFor("icehockey_nhl"))
	assert.Equal(t, FamilySoccer, FamilyFor("soccer_epl"))
	assert.Equal(t, FamilyBasketball, FamilyFor("basketball_nba"))
	assert.Equal(t, FamilyTennis, FamilyFor("tennis_atp"))
	assert.Equal(t, FamilyCombat, FamilyFor("mma_mixed_martial_arts"))
	assert.Equal(t, FamilyHockey, FamilyFor("something_new"), "unknown keys fall back to hockey")
}

func TestDrawPossible(t *testing.T) {
	assert.True(t, DrawPossible("soccer_epl"))
	assert.True(t, DrawPossible("icehockey_nhl"))
	assert.True(t, DrawPossible("boxing_boxing"))
	assert.False(t, DrawPossible("tennis_atp"))
	assert.False(t, DrawPossible("basketball_nba"))
}

func TestMoneylinePredicates(t *testing.T) {
	cases := []struct {
		o    outcome.Canonical
		s    Scenario
		want bool
	}{
		{outcome.New(outcome.HomeWin), Score(3, 2), true},
		{outcome.New(outcome.HomeWin), Score(2, 2), false},
		{outcome.New(outcome.AwayWin), Score(1, 2), true},
		{outcome.New(outcome.Draw), Score(2, 2), true},
		{outcome.New(outcome.Draw), Score(3, 2), false},
	}
	for _, tc := range cases {
		got, err := Wins(tc.o, tc.s)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s in %s", tc.o, tc.s)
	}
}

func TestSpreadPredicates(t *testing.T) {
	// Home favored at -1.5: must win by 2 or more.
	fav := outcome.WithLine(outcome.HomeSpreadCover, -1.5)
	// Away underdog at +1.5: covers unless losing by 2 or more.
	dog := outcome.WithLine(outcome.AwaySpreadCover, 1.5)

	cases := []struct {
		o    outcome.Canonical
		s    Scenario
		want bool
	}{
		{fav, Score(3, 1), true},
		{fav, Score(2, 1), false},
		{fav, Score(1, 1), false},
		{dog, Score(2, 1), true},
		{dog, Score(3, 1), false},
		{dog, Score(1, 2), true},
	}
	for _, tc := range cases {
		got, err := Wins(tc.o, tc.s)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s in %s", tc.o, tc.s)
	}
}

func TestSpreadPushDoesNotCover(t *testing.T) {
	// Integer line, exact landing: neither side covers.
	fav := outcome.WithLine(outcome.HomeSpreadCover, -2)
	dog := outcome.WithLine(outcome.AwaySpreadCover, 2)

	won, err := Wins(fav, Score(3, 1))
	require.NoError(t, err)
	assert.False(t, won)

	won, err = Wins(dog, Score(3, 1))
	require.NoError(t, err)
	assert.False(t, won)
}

func TestTotalPredicates(t *testing.T) {
	over := outcome.WithLine(outcome.Over, 5.5)
	under := outcome.WithLine(outcome.Under, 5.5)

	won, err := Wins(over, Score(4, 2))
	require.NoError(t, err)
	assert.True(t, won)

	won, err = Wins(under, Score(3, 2))
	require.NoError(t, err)
	assert.True(t, won)

	// Exact landing on an integer line: a push, neither wins.
	overInt := outcome.WithLine(outcome.Over, 6)
	underInt := outcome.WithLine(outcome.Under, 6)

	won, err = Wins(overInt, Score(4, 2))
	require.NoError(t, err)
	assert.False(t, won)

	won, err = Wins(underInt, Score(4, 2))
	require.NoError(t, err)
	assert.False(t, won)
}

func TestBinaryPredicates(t *testing.T) {
	won, err := Wins(outcome.New(outcome.AWins), Result(LabelAWins))
	require.NoError(t, err)
	assert.True(t, won)

	won, err = Wins(outcome.New(outcome.BWins), Result(LabelAWins))
	require.NoError(t, err)
	assert.False(t, won)

	won, err = Wins(outcome.New(outcome.Draw), Result(LabelDraw))
	require.NoError(t, err)
	assert.True(t, won)

	_, err = Wins(outcome.WithLine(outcome.Over, 2.5), Result(LabelAWins))
	assert.Error(t, err, "totals cannot be scored against a binary result")
}

func TestPredicateErrors(t *testing.T) {
	_, err := Wins(outcome.Canonical{}, Score(1, 0))
	assert.Error(t, err, "unclassified outcome must not silently lose")

	_, err = Wins(outcome.Canonical{Kind: outcome.Over}, Score(1, 0))
	assert.Error(t, err, "missing line must not silently lose")
}

func TestForSportWithLinesAugmentation(t *testing.T) {
	base := ForSport("icehockey_nhl")
	augmented := ForSportWithLines("icehockey_nhl", []float64{7.5})

	assert.Greater(t, len(augmented), len(base))
	assert.Contains(t, augmented, Score(7, 0))
	assert.Contains(t, augmented, Score(8, 0))
	assert.Contains(t, augmented, Score(0, 8))
}

func TestForSportWithLinesNoDuplicates(t *testing.T) {
	augmented := ForSportWithLines("icehockey_nhl", []float64{1.5, 1.5})
	seen := make(map[Scenario]bool)
	for _, s := range augmented {
		assert.False(t, seen[s], "duplicate scenario %s", s)
		seen[s] = true
	}
}

func TestForSportWithLinesNoDrawForBasketball(t *testing.T) {
	augmented := ForSportWithLines("basketball_nba", []float64{3.5})
	for _, s := range augmented {
		assert.False(t, s.IsDraw(), "basketball scenario set must not contain a tie, got %s", s)
	}
}

func TestForSportWithLinesBinaryIgnoresLines(t *testing.T) {
	assert.Equal(t, ForSport("tennis_atp"), ForSportWithLines("tennis_atp", []float64{2.5}))
}
