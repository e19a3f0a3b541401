package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briahnloo/arbitrage-finder/internal/cache"
	"github.com/briahnloo/arbitrage-finder/internal/config"
	"github.com/briahnloo/arbitrage-finder/internal/money"
	"github.com/briahnloo/arbitrage-finder/internal/oddsapi"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type stubSource struct {
	events map[string][]oddsapi.Event
}

func (s stubSource) FetchOdds(_ context.Context, sport string) ([]oddsapi.Event, error) {
	return s.events[sport], nil
}

func testConfig() config.Config {
	return config.Config{
		Sports:         []string{"soccer_epl"},
		ThreeWaySports: map[string]bool{"soccer_epl": true, "icehockey_nhl": true},
		BinarySports:   map[string]bool{"tennis_atp": true},
		TotalStake:     money.FromDollars(100),
		MinMargin:      0.5,
		SportMargins:   map[string]float64{},
		MaxImpliedSum:  1.15,
		TrustScores:    map[string]int{"FanDuel": 10, "DraftKings": 10},
		MinTrust:       6,
		MinLeadTime:    15 * time.Minute,
		MaxLeadTime:    7 * 24 * time.Hour,
		DedupTTL:       time.Hour,
		TopCount:       5,
	}
}

func soccerEvent(commence time.Time) oddsapi.Event {
	return oddsapi.Event{
		ID:           "ev1",
		SportKey:     "soccer_epl",
		HomeTeam:     "Arsenal",
		AwayTeam:     "Chelsea",
		CommenceTime: commence,
		Bookmakers: []oddsapi.Bookmaker{
			{
				Key:   "fanduel",
				Title: "FanDuel",
				Markets: []oddsapi.Market{
					{
						Key: "h2h",
						Outcomes: []oddsapi.OutcomeQuote{
							{Name: "Arsenal", Price: 2.50},
							{Name: "Draw", Price: 4.00},
							{Name: "Chelsea", Price: 3.00},
						},
					},
				},
			},
		},
	}
}

func newTestEngine(t *testing.T, cfg config.Config, events map[string][]oddsapi.Event, emitted *[]*Candidate) *Engine {
	t.Helper()
	seen := cache.NewMemorySeenCache(cfg.DedupTTL, func() time.Time { return fixedNow })
	return New(&cfg, stubSource{events: events}, seen,
		WithClock(func() time.Time { return fixedNow }),
		WithEmit(func(_ context.Context, c *Candidate) { *emitted = append(*emitted, c) }),
	)
}

func TestRunCycleFindsThreeWayArb(t *testing.T) {
	cfg := testConfig()
	var emitted []*Candidate
	eng := newTestEngine(t, cfg, map[string][]oddsapi.Event{
		"soccer_epl": {soccerEvent(fixedNow.Add(24 * time.Hour))},
	}, &emitted)

	stats, err := eng.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Events)
	require.Equal(t, 1, stats.Emitted)
	require.Len(t, emitted, 1)

	c := emitted[0]
	assert.Equal(t, "soccer_epl", c.Sport)
	assert.Equal(t, "Arsenal vs Chelsea", c.EventName)
	assert.Equal(t, "h2h", c.Market)
	require.Len(t, c.Legs, 3)
	assert.InDelta(t, 1.67, c.Margin, 0.01)
	assert.Equal(t, money.FromDollars(1.68), c.Profit)
	assert.Equal(t, money.FromDollars(100), c.StakeSum())
	assert.Equal(t, "HIGH", c.ConfidenceLabel)
	assert.NotEmpty(t, c.Fingerprint())
}

func TestRunCycleSuppressesRepeats(t *testing.T) {
	cfg := testConfig()
	var emitted []*Candidate
	eng := newTestEngine(t, cfg, map[string][]oddsapi.Event{
		"soccer_epl": {soccerEvent(fixedNow.Add(24 * time.Hour))},
	}, &emitted)

	_, err := eng.RunCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, emitted, 1)

	stats, err := eng.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Emitted, "identical odds inside the TTL must not alert twice")
	assert.Len(t, emitted, 1)
}

func TestRunCycleRejectsTwoWayOnThreeWaySport(t *testing.T) {
	ev := soccerEvent(fixedNow.Add(24 * time.Hour))
	// Strip the draw leg: 2.50/3.00 looks like a fat arb but leaves the
	// draw unhedged.
	ev.Bookmakers[0].Markets[0].Outcomes = []oddsapi.OutcomeQuote{
		{Name: "Arsenal", Price: 2.50},
		{Name: "Chelsea", Price: 3.00},
	}

	cfg := testConfig()
	var emitted []*Candidate
	eng := newTestEngine(t, cfg, map[string][]oddsapi.Event{"soccer_epl": {ev}}, &emitted)

	stats, err := eng.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Emitted)
}

func TestRunCycleTrustFilter(t *testing.T) {
	ev := soccerEvent(fixedNow.Add(24 * time.Hour))
	ev.Bookmakers[0].Key = "shadybook"
	ev.Bookmakers[0].Title = "ShadyBook" // unknown book, trust defaults to 5

	cfg := testConfig()
	var emitted []*Candidate
	eng := newTestEngine(t, cfg, map[string][]oddsapi.Event{"soccer_epl": {ev}}, &emitted)

	stats, err := eng.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Emitted)
}

func TestRunCycleLeadTimeFilter(t *testing.T) {
	cfg := testConfig()
	var emitted []*Candidate
	eng := newTestEngine(t, cfg, map[string][]oddsapi.Event{
		"soccer_epl": {soccerEvent(fixedNow.Add(5 * time.Minute))},
	}, &emitted)

	stats, err := eng.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Emitted, "too close to kickoff to place both legs")
}

func TestRunCycleSpreadPair(t *testing.T) {
	ev := oddsapi.Event{
		ID:           "ev2",
		SportKey:     "icehockey_nhl",
		HomeTeam:     "Boston Bruins",
		AwayTeam:     "Toronto Maple Leafs",
		CommenceTime: fixedNow.Add(24 * time.Hour),
		Bookmakers: []oddsapi.Bookmaker{
			{
				Key: "fanduel", Title: "FanDuel",
				Markets: []oddsapi.Market{{
					Key: "spreads",
					Outcomes: []oddsapi.OutcomeQuote{
						{Name: "Boston Bruins", Price: 2.10, Point: ptr(-1.5)},
						{Name: "Toronto Maple Leafs", Price: 1.70, Point: ptr(1.5)},
					},
				}},
			},
			{
				Key: "draftkings", Title: "DraftKings",
				Markets: []oddsapi.Market{{
					Key: "spreads",
					Outcomes: []oddsapi.OutcomeQuote{
						{Name: "Boston Bruins", Price: 1.75, Point: ptr(-1.5)},
						{Name: "Toronto Maple Leafs", Price: 2.05, Point: ptr(1.5)},
					},
				}},
			},
		},
	}

	cfg := testConfig()
	cfg.Sports = []string{"icehockey_nhl"}
	var emitted []*Candidate
	eng := newTestEngine(t, cfg, map[string][]oddsapi.Event{"icehockey_nhl": {ev}}, &emitted)

	stats, err := eng.RunCycle(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Emitted, "only the cross-book 2.10/2.05 pairing is an arb")

	c := emitted[0]
	assert.Equal(t, "spreads", c.Market)
	require.Len(t, c.Legs, 2)
	assert.Equal(t, "FanDuel", c.Legs[0].Bookmaker)
	assert.Equal(t, "DraftKings", c.Legs[1].Bookmaker)
	assert.Equal(t, []money.Money{money.FromDollars(49.40), money.FromDollars(50.60)},
		[]money.Money{c.Legs[0].Stake, c.Legs[1].Stake})
}

func TestRunCycleDeterministic(t *testing.T) {
	events := map[string][]oddsapi.Event{
		"soccer_epl": {soccerEvent(fixedNow.Add(24 * time.Hour))},
	}

	var first, second []*Candidate
	eng1 := newTestEngine(t, testConfig(), events, &first)
	eng2 := newTestEngine(t, testConfig(), events, &second)

	_, err := eng1.RunCycle(context.Background())
	require.NoError(t, err)
	_, err = eng2.RunCycle(context.Background())
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Fingerprint(), second[i].Fingerprint())
		assert.Equal(t, first[i].Legs, second[i].Legs)
	}
}

func TestConfidenceScoring(t *testing.T) {
	assert.InDelta(t, 90, Confidence("h2h", 0, 0, 0), 1e-9)
	assert.InDelta(t, 85.5, Confidence("h2h", 0, 1, 0), 1e-9)
	assert.InDelta(t, 76.5, Confidence("h2h", 0, 2), 1e-9)
	assert.InDelta(t, 75, Confidence("spreads", 0, 0), 1e-9)
	assert.InDelta(t, 80, Confidence("unknown_market", 0), 1e-9)

	assert.Equal(t, "HIGH", ConfidenceLabel(90))
	assert.Equal(t, "MEDIUM", ConfidenceLabel(75))
	assert.Equal(t, "LOW", ConfidenceLabel(60))
}

func ptr(v float64) *float64 { return &v }
