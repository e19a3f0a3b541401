// Package scenario supplies the finite game-outcome sets that the
// partition and arbitrage validators sweep. Score scenarios cover team
// sports; binary scenarios cover combat sports and individual matches.
// All generated slices are read-only and safe for concurrent use.
package scenario

import "fmt"

// Label is a binary-result literal for sports without scorelines.
type Label string

const (
	LabelAWins Label = "A_WINS"
	LabelBWins Label = "B_WINS"
	LabelDraw  Label = "DRAW"
)

// Scenario represents one final result of an event: either a scoreline
// (Home/Away) or a binary label. Scenarios are immutable values.
type Scenario struct {
	Binary bool
	Label  Label
	Home   int
	Away   int
}

// Score builds a scoreline scenario.
func Score(home, away int) Scenario {
	return Scenario{Home: home, Away: away}
}

// Result builds a binary scenario from a literal label.
func Result(label Label) Scenario {
	return Scenario{Binary: true, Label: label}
}

// Diff returns the home-minus-away point differential.
func (s Scenario) Diff() int {
	return s.Home - s.Away
}

// Total returns the combined score.
func (s Scenario) Total() int {
	return s.Home + s.Away
}

// IsDraw reports whether the scenario is the tie case.
func (s Scenario) IsDraw() bool {
	if s.Binary {
		return s.Label == LabelDraw
	}
	return s.Home == s.Away
}

func (s Scenario) String() string {
	if s.Binary {
		return string(s.Label)
	}
	return fmt.Sprintf("%d-%d", s.Home, s.Away)
}
