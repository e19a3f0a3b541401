package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briahnloo/arbitrage-finder/internal/money"
	"github.com/briahnloo/arbitrage-finder/internal/outcome"
)

func TestSimulateThreeWay(t *testing.T) {
	legs := []Leg{
		{Outcome: outcome.New(outcome.HomeWin), Odds: 2.50, Stake: money.FromDollars(40.68)},
		{Outcome: outcome.New(outcome.Draw), Odds: 4.00, Stake: money.FromDollars(25.42)},
		{Outcome: outcome.New(outcome.AwayWin), Odds: 3.00, Stake: money.FromDollars(33.90)},
	}
	res := Simulate(legs, "soccer_epl", SimulationOptions{})

	assert.True(t, res.Valid, res.Reason)
	assert.Equal(t, money.FromDollars(1.68), res.MinProfit)
	assert.Equal(t, money.FromDollars(1.70), res.MaxProfit)
	assert.Equal(t, money.Money(0), res.DrawLoss)
	assert.NotEmpty(t, res.PerScenario)
}

func TestSimulateMoneylineDrawLoss(t *testing.T) {
	legs := []Leg{
		{Outcome: outcome.New(outcome.HomeWin), Odds: 2.20, Stake: money.FromDollars(50)},
		{Outcome: outcome.New(outcome.AwayWin), Odds: 2.20, Stake: money.FromDollars(50)},
	}
	res := Simulate(legs, "soccer_epl", SimulationOptions{})

	assert.True(t, res.Valid, res.Reason)
	assert.Equal(t, money.FromDollars(10), res.MinProfit)
	assert.Equal(t, money.FromDollars(-100), res.DrawLoss, "the accepted draw branch loses the full stake")
	assert.Contains(t, res.Reason, "draw loses")
}

func TestSimulateBinary(t *testing.T) {
	legs := []Leg{
		{Outcome: outcome.New(outcome.AWins), Odds: 2.10, Stake: money.FromDollars(50)},
		{Outcome: outcome.New(outcome.BWins), Odds: 2.10, Stake: money.FromDollars(50)},
	}
	res := Simulate(legs, "tennis_atp", SimulationOptions{})

	assert.True(t, res.Valid, res.Reason)
	assert.Equal(t, money.FromDollars(5), res.MinProfit)
	assert.Equal(t, money.Money(0), res.DrawLoss, "tennis has no draw branch")
}

func TestSimulateRejectsOverlap(t *testing.T) {
	legs := []Leg{
		{Outcome: outcome.New(outcome.HomeWin), Odds: 2.10, Stake: money.FromDollars(50)},
		{Outcome: outcome.WithLine(outcome.AwaySpreadCover, 1.5), Odds: 2.10, Stake: money.FromDollars(50)},
	}
	res := Simulate(legs, "icehockey_nhl", SimulationOptions{})

	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "multiple legs win")
}

func TestSimulateRejectsGap(t *testing.T) {
	legs := []Leg{
		{Outcome: outcome.WithLine(outcome.HomeSpreadCover, -1.5), Odds: 2.10, Stake: money.FromDollars(50)},
		{Outcome: outcome.New(outcome.AwayWin), Odds: 2.10, Stake: money.FromDollars(50)},
	}
	res := Simulate(legs, "icehockey_nhl", SimulationOptions{})

	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "no leg wins")
}

func TestSimulateRejectsSpreadOnBinary(t *testing.T) {
	legs := []Leg{
		{Outcome: outcome.WithLine(outcome.Over, 2.5), Odds: 2.10, Stake: money.FromDollars(50)},
		{Outcome: outcome.New(outcome.BWins), Odds: 2.10, Stake: money.FromDollars(50)},
	}
	res := Simulate(legs, "tennis_atp", SimulationOptions{})

	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "not supported")
}

func TestSimulateRejectsBadOdds(t *testing.T) {
	legs := []Leg{
		{Outcome: outcome.New(outcome.AWins), Odds: 1.0, Stake: money.FromDollars(50)},
		{Outcome: outcome.New(outcome.BWins), Odds: 2.10, Stake: money.FromDollars(50)},
	}
	res := Simulate(legs, "tennis_atp", SimulationOptions{})

	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "invalid odds")
}
