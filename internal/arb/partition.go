package arb

import (
	"fmt"

	"github.com/briahnloo/arbitrage-finder/internal/outcome"
	"github.com/briahnloo/arbitrage-finder/internal/scenario"
)

// PartitionResult is the verdict of a mutual-exclusion and coverage check.
type PartitionResult struct {
	Valid   bool
	Reason  string
	Covered int
}

// ValidatePartition proves that a set of 2 or 3 canonical outcomes is
// mutually exclusive and collectively exhaustive over the sport's
// scenario set, augmented with boundary scenarios for every line in play.
//
// A pure moneyline pair on a draw-capable sport is the one sanctioned
// exception: the tie is allowed to be uncovered. It is still a real loss
// branch and the simulator prices it; the partition check merely does
// not flag it as a defect.
func ValidatePartition(outcomes []outcome.Canonical, sport string) PartitionResult {
	if len(outcomes) < 2 || len(outcomes) > 3 {
		return PartitionResult{Reason: fmt.Sprintf("expected 2 or 3 outcomes, got %d", len(outcomes))}
	}
	for _, o := range outcomes {
		if !o.Classified() {
			return PartitionResult{Reason: "unclassified outcome in set"}
		}
	}

	scenarios := scenario.ForSportWithLines(sport, collectLines(outcomes))
	drawOK := isMoneylinePair(outcomes) && scenario.DrawPossible(sport)

	covered := 0
	for _, s := range scenarios {
		wins := 0
		for _, o := range outcomes {
			won, err := scenario.Wins(o, s)
			if err != nil {
				return PartitionResult{Reason: err.Error()}
			}
			if won {
				wins++
			}
		}
		switch {
		case wins > 1:
			return PartitionResult{Reason: fmt.Sprintf("outcomes overlap in scenario %s", s)}
		case wins == 0:
			if drawOK && s.IsDraw() {
				continue
			}
			return PartitionResult{Reason: fmt.Sprintf("scenario %s covered by no outcome", s)}
		default:
			covered++
		}
	}

	return PartitionResult{
		Valid:   true,
		Reason:  fmt.Sprintf("%d scenarios covered exactly once", covered),
		Covered: covered,
	}
}

// isMoneylinePair reports whether the set is exactly a two-way moneyline
// split: home/away or A/B win, in either order, no lines.
func isMoneylinePair(outcomes []outcome.Canonical) bool {
	if len(outcomes) != 2 {
		return false
	}
	a, b := outcomes[0].Kind, outcomes[1].Kind
	if outcomes[0].Line != nil || outcomes[1].Line != nil {
		return false
	}
	straight := func(k outcome.Kind) bool {
		return k == outcome.HomeWin || k == outcome.AWins
	}
	opposite := func(k outcome.Kind) bool {
		return k == outcome.AwayWin || k == outcome.BWins
	}
	return (straight(a) && opposite(b)) || (opposite(a) && straight(b))
}

func collectLines(outcomes []outcome.Canonical) []float64 {
	var lines []float64
	for _, o := range outcomes {
		if o.Line != nil {
			lines = append(lines, *o.Line)
		}
	}
	return lines
}
