// Package outcome defines the canonical outcome taxonomy shared by every
// validation stage. Raw bookmaker labels are reduced to a closed Kind
// enum plus an optional spread/total line.
package outcome

import (
	"encoding/json"
	"fmt"
	"math"
)

// Kind is the closed set of canonical outcome types.
type Kind int

const (
	Unclassified Kind = iota
	HomeWin
	AwayWin
	Draw
	HomeSpreadCover
	AwaySpreadCover
	Over
	Under
	AWins
	BWins
)

func (k Kind) String() string {
	switch k {
	case HomeWin:
		return "HOME_WIN"
	case AwayWin:
		return "AWAY_WIN"
	case Draw:
		return "DRAW"
	case HomeSpreadCover:
		return "HOME_SPREAD_COVER"
	case AwaySpreadCover:
		return "AWAY_SPREAD_COVER"
	case Over:
		return "OVER"
	case Under:
		return "UNDER"
	case AWins:
		return "A_WINS"
	case BWins:
		return "B_WINS"
	default:
		return "UNCLASSIFIED"
	}
}

var kindNames = map[string]Kind{
	"HOME_WIN":          HomeWin,
	"AWAY_WIN":          AwayWin,
	"DRAW":              Draw,
	"HOME_SPREAD_COVER": HomeSpreadCover,
	"AWAY_SPREAD_COVER": AwaySpreadCover,
	"OVER":              Over,
	"UNDER":             Under,
	"A_WINS":            AWins,
	"B_WINS":            BWins,
}

// MarshalJSON encodes the kind by name so stored and published records
// stay readable and stable across enum reordering.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*k = kindNames[name] // unknown names land on the Unclassified sentinel
	return nil
}

// NeedsLine reports whether the kind is meaningless without a numeric line.
func (k Kind) NeedsLine() bool {
	switch k {
	case HomeSpreadCover, AwaySpreadCover, Over, Under:
		return true
	default:
		return false
	}
}

// Canonical is an immutable canonical outcome descriptor. Line is set only
// for spread/total kinds; a negative spread on the favored side means the
// side must win by more than |line|.
type Canonical struct {
	Kind Kind     `json:"kind"`
	Line *float64 `json:"line,omitempty"`
}

// New builds a lineless canonical outcome.
func New(kind Kind) Canonical {
	return Canonical{Kind: kind}
}

// WithLine builds a spread/total outcome carrying its line.
func WithLine(kind Kind, line float64) Canonical {
	return Canonical{Kind: kind, Line: &line}
}

// Classified reports whether the outcome survived classification.
func (c Canonical) Classified() bool {
	return c.Kind != Unclassified
}

// Equal reports kind and line equality. Lines must match exactly.
func (c Canonical) Equal(o Canonical) bool {
	if c.Kind != o.Kind {
		return false
	}
	if (c.Line == nil) != (o.Line == nil) {
		return false
	}
	if c.Line == nil {
		return true
	}
	return *c.Line == *o.Line
}

// Key returns the canonical grouping key, e.g. HOME_WIN, HOME_SPREAD_COVER_-3.5,
// OVER_2.5. Keys are stable across bookmakers and cycles.
func (c Canonical) Key() string {
	if c.Line == nil {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s_%s", c.Kind, formatLine(*c.Line))
}

func (c Canonical) String() string {
	return c.Key()
}

func formatLine(line float64) string {
	if line == math.Trunc(line) {
		return fmt.Sprintf("%.1f", line)
	}
	return fmt.Sprintf("%g", line)
}
