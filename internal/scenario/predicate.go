package scenario

import (
	"fmt"
	"math"

	"github.com/briahnloo/arbitrage-finder/internal/outcome"
)

// Wins evaluates an outcome's win predicate against a scenario.
//
// Spread and total comparisons use strict inequalities: a push exactly
// on the line counts as not covering. An outcome kind that cannot be
// evaluated against the scenario shape (spread on a binary result,
// an unclassified sentinel) returns an error so the caller rejects the
// whole candidate instead of miscounting.
func Wins(o outcome.Canonical, s Scenario) (bool, error) {
	if s.Binary {
		return winsBinary(o, s)
	}

	diff := float64(s.Diff())
	switch o.Kind {
	case outcome.HomeWin, outcome.AWins:
		return diff > 0, nil
	case outcome.AwayWin, outcome.BWins:
		return diff < 0, nil
	case outcome.Draw:
		return diff == 0, nil
	case outcome.HomeSpreadCover:
		line, err := requireLine(o)
		if err != nil {
			return false, err
		}
		return coversHomeSpread(diff, line), nil
	case outcome.AwaySpreadCover:
		line, err := requireLine(o)
		if err != nil {
			return false, err
		}
		return coversHomeSpread(-diff, line), nil
	case outcome.Over:
		line, err := requireLine(o)
		if err != nil {
			return false, err
		}
		return float64(s.Total()) > line, nil
	case outcome.Under:
		line, err := requireLine(o)
		if err != nil {
			return false, err
		}
		return float64(s.Total()) < line, nil
	default:
		return false, fmt.Errorf("cannot evaluate outcome %s", o.Kind)
	}
}

func winsBinary(o outcome.Canonical, s Scenario) (bool, error) {
	switch o.Kind {
	case outcome.AWins, outcome.HomeWin:
		return s.Label == LabelAWins, nil
	case outcome.BWins, outcome.AwayWin:
		return s.Label == LabelBWins, nil
	case outcome.Draw:
		return s.Label == LabelDraw, nil
	case outcome.HomeSpreadCover, outcome.AwaySpreadCover, outcome.Over, outcome.Under:
		return false, fmt.Errorf("%s not supported for binary scenario %s", o.Kind, s)
	default:
		return false, fmt.Errorf("cannot evaluate outcome %s", o.Kind)
	}
}

// coversHomeSpread checks the home side against its spread line. A
// negative line means home is favored and must win by more than |line|;
// a positive line means home may lose by less than the line.
func coversHomeSpread(diff, line float64) bool {
	threshold := math.Abs(line)
	if line < 0 {
		return diff > threshold
	}
	return diff > -threshold
}

func requireLine(o outcome.Canonical) (float64, error) {
	if o.Line == nil {
		return 0, fmt.Errorf("outcome %s is missing its line", o.Kind)
	}
	return *o.Line, nil
}
