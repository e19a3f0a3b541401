package outcome

import "strings"

// MarketKey identifies the market a raw outcome label belongs to.
type MarketKey string

const (
	MarketH2H     MarketKey = "h2h"
	MarketSpreads MarketKey = "spreads"
	MarketTotals  MarketKey = "totals"
)

// NormalizeTeam lowercases a team or player name and strips the prefixes
// and suffixes that vary across bookmakers.
func NormalizeTeam(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	n = strings.ReplaceAll(n, "fc ", "")
	n = strings.ReplaceAll(n, " fc", "")
	n = strings.ReplaceAll(n, "team ", "")
	n = strings.ReplaceAll(n, " team", "")
	n = strings.ReplaceAll(n, "united", "utd")
	return n
}

// Classify maps a raw bookmaker outcome label to a canonical outcome for
// team sports. An unrecognized label yields the Unclassified sentinel;
// classification failure is a skip, never an error.
func Classify(label, homeTeam, awayTeam string, market MarketKey, line *float64) Canonical {
	side := identifySide(label, homeTeam, awayTeam)

	switch market {
	case MarketH2H:
		switch side {
		case sideHome:
			return New(HomeWin)
		case sideAway:
			return New(AwayWin)
		case sideDraw:
			return New(Draw)
		}
	case MarketSpreads:
		if line == nil {
			return Canonical{}
		}
		switch side {
		case sideHome:
			return WithLine(HomeSpreadCover, *line)
		case sideAway:
			return WithLine(AwaySpreadCover, *line)
		}
	case MarketTotals:
		if line == nil {
			return Canonical{}
		}
		lower := strings.ToLower(label)
		switch {
		case strings.Contains(lower, "over"):
			return WithLine(Over, *line)
		case strings.Contains(lower, "under"):
			return WithLine(Under, *line)
		}
	}
	return Canonical{}
}

// ClassifyBinary maps a raw label to A_WINS/B_WINS/DRAW for combat sports
// and individual matches, where participant A is listed first.
func ClassifyBinary(label, participantA, participantB string) Canonical {
	switch identifySide(label, participantA, participantB) {
	case sideHome:
		return New(AWins)
	case sideAway:
		return New(BWins)
	case sideDraw:
		return New(Draw)
	}
	return Canonical{}
}

type side int

const (
	sideNone side = iota
	sideHome
	sideAway
	sideDraw
)

func identifySide(label, homeTeam, awayTeam string) side {
	if label == "" {
		return sideNone
	}
	lower := strings.ToLower(label)
	home := NormalizeTeam(homeTeam)
	away := NormalizeTeam(awayTeam)
	normalized := NormalizeTeam(label)

	if strings.Contains(lower, "draw") || strings.Contains(lower, "tie") {
		return sideDraw
	}
	if home != "" && strings.Contains(normalized, home) {
		return sideHome
	}
	if strings.Contains(lower, "home") {
		return sideHome
	}
	if away != "" && strings.Contains(normalized, away) {
		return sideAway
	}
	if strings.Contains(lower, "away") || strings.Contains(lower, "road") {
		return sideAway
	}
	return sideNone
}
