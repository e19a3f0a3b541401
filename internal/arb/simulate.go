package arb

import (
	"fmt"

	"github.com/briahnloo/arbitrage-finder/internal/money"
	"github.com/briahnloo/arbitrage-finder/internal/outcome"
	"github.com/briahnloo/arbitrage-finder/internal/scenario"
)

// Leg is one bet within a candidate: a canonical outcome, its decimal
// odds, and the stake placed on it.
type Leg struct {
	Outcome outcome.Canonical
	Odds    float64
	Stake   money.Money
}

// SimulationOptions carries the profit-spread tolerances. Zero values
// pick the defaults: 10 cents for two-way sets, 5 cents for three-way.
type SimulationOptions struct {
	TwoWaySpreadTolerance   money.Money
	ThreeWaySpreadTolerance money.Money
}

const (
	defaultTwoWayTolerance   = money.Money(10)
	defaultThreeWayTolerance = money.Money(5)
)

// ScenarioOutcome records what one simulated scenario did to the candidate.
type ScenarioOutcome struct {
	Scenario scenario.Scenario
	Winner   int // leg index, -1 when no leg wins
	Profit   money.Money
}

// SimulationResult is the full verdict of a scenario sweep.
type SimulationResult struct {
	Valid       bool
	Reason      string
	MinProfit   money.Money // over winning scenarios only
	MaxProfit   money.Money
	DrawLoss    money.Money // full-stake loss in accepted draw branches, zero if none
	PerScenario []ScenarioOutcome
}

// Simulate evaluates every scenario for the sport and proves a uniform
// guaranteed profit exists. Draw branches accepted under the two-way
// moneyline exception are tracked as full-stake losses and never blended
// into the profit range. Any scenario where more than one leg wins, or
// where nothing wins outside the accepted draw case, rejects the
// candidate outright.
func Simulate(legs []Leg, sport string, opts SimulationOptions) SimulationResult {
	if len(legs) < 2 || len(legs) > 3 {
		return SimulationResult{Reason: fmt.Sprintf("expected 2 or 3 legs, got %d", len(legs))}
	}

	outcomes := make([]outcome.Canonical, len(legs))
	for i, leg := range legs {
		if leg.Odds <= 1.0 {
			return SimulationResult{Reason: fmt.Sprintf("leg %d has invalid odds %.3f", i, leg.Odds)}
		}
		outcomes[i] = leg.Outcome
	}

	total := money.Money(0)
	for _, leg := range legs {
		total += leg.Stake
	}

	scenarios := scenario.ForSportWithLines(sport, collectLines(outcomes))
	drawOK := isMoneylinePair(outcomes) && scenario.DrawPossible(sport)

	res := SimulationResult{PerScenario: make([]ScenarioOutcome, 0, len(scenarios))}
	var (
		haveWin  bool
		minP     money.Money
		maxP     money.Money
		drawLoss money.Money
	)

	for _, s := range scenarios {
		winner := -1
		for i, o := range outcomes {
			won, err := scenario.Wins(o, s)
			if err != nil {
				return SimulationResult{Reason: fmt.Sprintf("scenario %s: %v", s, err)}
			}
			if !won {
				continue
			}
			if winner >= 0 {
				return SimulationResult{Reason: fmt.Sprintf("multiple legs win in scenario %s", s)}
			}
			winner = i
		}

		var profit money.Money
		if winner >= 0 {
			profit = legs[winner].Stake.Times(legs[winner].Odds) - total
			if !haveWin || profit < minP {
				minP = profit
			}
			if !haveWin || profit > maxP {
				maxP = profit
			}
			haveWin = true
		} else {
			if !(drawOK && s.IsDraw()) {
				return SimulationResult{Reason: fmt.Sprintf("no leg wins in non-draw scenario %s", s)}
			}
			profit = total.Neg()
			drawLoss = profit
		}

		res.PerScenario = append(res.PerScenario, ScenarioOutcome{Scenario: s, Winner: winner, Profit: profit})
	}

	if !haveWin {
		res.Reason = "no winning scenario exists"
		return res
	}

	tolerance := opts.TwoWaySpreadTolerance
	if tolerance == 0 {
		tolerance = defaultTwoWayTolerance
	}
	if len(legs) == 3 {
		tolerance = opts.ThreeWaySpreadTolerance
		if tolerance == 0 {
			tolerance = defaultThreeWayTolerance
		}
	}

	res.MinProfit = minP
	res.MaxProfit = maxP
	res.DrawLoss = drawLoss

	if spread := maxP - minP; spread > tolerance {
		res.Reason = fmt.Sprintf("profit varies %s to %s across scenarios (tolerance %s)", minP, maxP, tolerance)
		return res
	}

	res.Valid = true
	if drawLoss != 0 {
		res.Reason = fmt.Sprintf("guaranteed profit %s, draw loses %s", minP, drawLoss.Abs())
	} else {
		res.Reason = fmt.Sprintf("guaranteed profit %s in every scenario", minP)
	}
	return res
}
