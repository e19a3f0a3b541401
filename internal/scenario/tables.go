package scenario

import (
	"math"
	"strings"
)

// Family is a sport grouping that determines scenario shape.
type Family int

const (
	FamilyHockey Family = iota
	FamilySoccer
	FamilyBasketball
	FamilyTennis
	FamilyCombat
)

// Binary reports whether the family uses binary result labels.
func (f Family) Binary() bool {
	return f == FamilyTennis || f == FamilyCombat
}

// FamilyFor maps an odds-feed sport key to its scenario family. Unknown
// keys fall back to hockey, the densest low-scoring table.
func FamilyFor(sport string) Family {
	s := strings.ToLower(sport)
	switch {
	case strings.Contains(s, "hockey") || strings.Contains(s, "nhl"):
		return FamilyHockey
	case strings.Contains(s, "soccer"):
		return FamilySoccer
	case strings.Contains(s, "basket"):
		return FamilyBasketball
	case strings.Contains(s, "tennis"):
		return FamilyTennis
	case strings.Contains(s, "mma") || strings.Contains(s, "boxing"):
		return FamilyCombat
	default:
		return FamilyHockey
	}
}

// DrawPossible reports whether the sport's result space includes a tie.
// Tennis has no draws; basketball games cannot end level.
func DrawPossible(sport string) bool {
	switch FamilyFor(sport) {
	case FamilyTennis, FamilyBasketball:
		return false
	default:
		return true
	}
}

// Curated score tables. Every 0-1 goal differential near zero is present
// so spread boundaries at common lines such as +-1.5 are exercised, along
// with the exact tie for draw-capable sports and totals above and below
// typical over/under lines. The tables are a representative sample, not
// an enumeration of every mathematically possible score.
var (
	hockeyScores = scorePairs(
		0, 0, 1, 0, 0, 1, 1, 1, 2, 0, 0, 2,
		2, 1, 1, 2, 2, 2, 3, 0, 0, 3, 3, 1,
		1, 3, 3, 2, 2, 3, 4, 0, 0, 4, 4, 1,
		1, 4, 4, 2, 2, 4, 3, 3, 4, 3, 3, 4,
		5, 0, 0, 5, 5, 1, 1, 5, 5, 2, 2, 5,
		5, 3, 3, 5, 5, 4, 4, 5, 5, 5, 6, 0,
		0, 6, 6, 1, 1, 6, 6, 2, 2, 6, 6, 3,
		3, 6, 6, 4, 4, 6, 6, 5, 5, 6,
	)

	soccerScores = scorePairs(
		0, 0, 1, 0, 0, 1, 1, 1, 2, 0, 0, 2,
		2, 1, 1, 2, 2, 2, 3, 0, 0, 3, 3, 1,
		1, 3, 3, 2, 2, 3, 3, 3, 4, 0, 0, 4,
		4, 1, 1, 4, 4, 2, 2, 4, 4, 3, 3, 4,
		5, 0, 0, 5, 5, 1, 1, 5, 5, 2, 2, 5,
	)

	basketballScores = scorePairs(
		80, 75, 85, 80, 90, 88, 95, 92, 100, 98,
		105, 100, 110, 105, 115, 110, 120, 115,
		75, 80, 80, 85, 88, 90, 92, 95, 98, 100,
		100, 105, 105, 110, 110, 115, 115, 120,
	)

	tennisResults = []Scenario{Result(LabelAWins), Result(LabelBWins)}

	combatResults = []Scenario{Result(LabelAWins), Result(LabelBWins), Result(LabelDraw)}
)

func scorePairs(vals ...int) []Scenario {
	out := make([]Scenario, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		out = append(out, Score(vals[i], vals[i+1]))
	}
	return out
}

// ForSport returns the shared curated scenario set for a sport. Callers
// must treat the slice as read-only.
func ForSport(sport string) []Scenario {
	switch FamilyFor(sport) {
	case FamilySoccer:
		return soccerScores
	case FamilyBasketball:
		return basketballScores
	case FamilyTennis:
		return tennisResults
	case FamilyCombat:
		return combatResults
	default:
		return hockeyScores
	}
}

// ForSportWithLines returns the curated set augmented with boundary
// scorelines at and adjacent to every spread/total line in play, so a
// line outside the curated range is still checked exactly where its
// predicate flips. Binary families ignore lines.
func ForSportWithLines(sport string, lines []float64) []Scenario {
	base := ForSport(sport)
	fam := FamilyFor(sport)
	if fam.Binary() || len(lines) == 0 {
		return base
	}

	seen := make(map[Scenario]bool, len(base)+8*len(lines))
	out := make([]Scenario, 0, len(base)+8*len(lines))
	add := func(s Scenario) {
		if s.IsDraw() && !DrawPossible(sport) {
			return
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range base {
		add(s)
	}

	for _, line := range lines {
		lo := int(math.Floor(math.Abs(line)))
		for _, v := range []int{lo, lo + 1} {
			if v < 0 {
				continue
			}
			// Spread boundaries on both sides of the line, and total
			// boundaries just under and over it.
			add(Score(v, 0))
			add(Score(0, v))
		}
	}
	return out
}
