package oddsapi

import "strings"

// AmericanToDecimal converts American odds (+110, -120) to decimal odds.
func AmericanToDecimal(american int) float64 {
	if american > 0 {
		return float64(american)/100 + 1
	}
	if american < 0 {
		return 100/float64(-american) + 1
	}
	return 1
}

var sportDisplayNames = map[string]string{
	"tennis_atp":                     "ATP Tennis",
	"tennis_wta":                     "WTA Tennis",
	"mma_mixed_martial_arts":         "MMA",
	"boxing_boxing":                  "Boxing",
	"soccer_epl":                     "English Premier League",
	"soccer_spain_la_liga":           "La Liga (Spain)",
	"soccer_italy_serie_a":           "Serie A (Italy)",
	"soccer_germany_bundesliga":      "Bundesliga (Germany)",
	"icehockey_nhl":                  "NHL",
	"icehockey_sweden_hockey_league": "SHL (Sweden)",
}

// SportDisplayName converts a sport key to a human-facing name.
func SportDisplayName(key string) string {
	if name, ok := sportDisplayNames[key]; ok {
		return name
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
