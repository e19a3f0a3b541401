// Package config loads runtime settings from the environment. A .env
// file in the working directory is picked up automatically when present.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/briahnloo/arbitrage-finder/internal/money"
)

// Config collects every knob the finder consumes.
type Config struct {
	// Odds feed
	APIKey  string
	BaseURL string
	Regions string
	Markets string

	// Sports to monitor; ThreeWaySports require a draw leg on h2h.
	Sports         []string
	ThreeWaySports map[string]bool
	BinarySports   map[string]bool

	// Stake and margin policy
	TotalStake    money.Money
	MinMargin     float64            // percent, global floor
	SportMargins  map[string]float64 // per-sport overrides
	MaxImpliedSum float64            // stale-odds sanity cap

	// Bookmaker trust
	TrustScores map[string]int
	MinTrust    int

	// Event timing window
	MinLeadTime time.Duration
	MaxLeadTime time.Duration

	// Duplicate suppression
	DedupTTL time.Duration

	// Scheduling
	PeakInterval    time.Duration
	OffPeakInterval time.Duration
	PeakStartHour   int
	PeakEndHour     int

	// Output
	TopCount int
}

var defaultTwoWaySports = []string{"mma_mixed_martial_arts", "boxing_boxing", "tennis_atp", "tennis_wta"}

var defaultThreeWaySports = []string{
	"soccer_epl",
	"soccer_spain_la_liga",
	"soccer_italy_serie_a",
	"soccer_germany_bundesliga",
	"icehockey_nhl",
	"icehockey_sweden_hockey_league",
}

// Trust scores on a 1-10 scale; unknown books default to 5 at lookup.
var defaultTrustScores = map[string]int{
	"FanDuel":    10,
	"DraftKings": 10,
	"BetMGM":     9,
	"Caesars":    9,
	"PointsBet":  8,
	"BetRivers":  8,
	"Unibet":     8,
	"Bovada":     7,
	"MyBookie":   6,
	"BetOnline":  6,
}

var defaultSportMargins = map[string]float64{
	"mma_mixed_martial_arts":         0.8,
	"boxing_boxing":                  0.8,
	"soccer_epl":                     1.0,
	"soccer_spain_la_liga":           1.0,
	"soccer_italy_serie_a":           1.0,
	"soccer_germany_bundesliga":      1.0,
	"icehockey_nhl":                  1.0,
	"icehockey_sweden_hockey_league": 1.0,
}

// FromEnv builds the config, loading .env first when one exists.
func FromEnv() Config {
	_ = godotenv.Load()

	twoWay := EnvList("ARB_TWO_WAY_SPORTS", defaultTwoWaySports)
	threeWay := EnvList("ARB_THREE_WAY_SPORTS", defaultThreeWaySports)

	cfg := Config{
		APIKey:  os.Getenv("ODDS_API_KEY"),
		BaseURL: EnvString("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4"),
		Regions: EnvString("ODDS_API_REGIONS", "us"),
		Markets: EnvString("ODDS_API_MARKETS", "h2h,spreads,totals"),

		Sports:         append(append([]string{}, twoWay...), threeWay...),
		ThreeWaySports: toSet(threeWay),
		BinarySports:   toSet(twoWay),

		TotalStake:    money.FromDollars(EnvFloat("ARB_TOTAL_STAKE", 100)),
		MinMargin:     EnvFloat("ARB_MIN_MARGIN_PCT", 0.5),
		SportMargins:  defaultSportMargins,
		MaxImpliedSum: EnvFloat("ARB_MAX_IMPLIED_SUM", 1.15),

		TrustScores: defaultTrustScores,
		MinTrust:    EnvInt("ARB_MIN_TRUST", 6),

		MinLeadTime: EnvDuration("ARB_MIN_LEAD_TIME", 15*time.Minute),
		MaxLeadTime: EnvDuration("ARB_MAX_LEAD_TIME", 7*24*time.Hour),

		DedupTTL: EnvDuration("ARB_DEDUP_TTL", time.Hour),

		PeakInterval:    EnvDuration("ARB_PEAK_INTERVAL", 2*time.Minute),
		OffPeakInterval: EnvDuration("ARB_OFF_PEAK_INTERVAL", 30*time.Minute),
		PeakStartHour:   EnvInt("ARB_PEAK_START_HOUR", 14),
		PeakEndHour:     EnvInt("ARB_PEAK_END_HOUR", 23),

		TopCount: EnvInt("ARB_TOP_COUNT", 5),
	}
	return cfg
}

// ThreeWay reports whether the sport's h2h market needs a draw leg.
func (c Config) ThreeWay(sport string) bool {
	return c.ThreeWaySports[sport]
}

// Binary reports whether the sport is a two-participant bout.
func (c Config) Binary(sport string) bool {
	return c.BinarySports[sport]
}

// MinMarginFor returns the per-sport margin floor, falling back to the
// global minimum.
func (c Config) MinMarginFor(sport string) float64 {
	if m, ok := c.SportMargins[sport]; ok {
		return m
	}
	return c.MinMargin
}

// TrustFor returns the trust score for a bookmaker, defaulting unknown
// books to 5.
func (c Config) TrustFor(bookmaker string) int {
	if s, ok := c.TrustScores[bookmaker]; ok {
		return s
	}
	return 5
}

// CheckInterval returns the polling interval for the given wall-clock
// time: tighter during peak betting hours.
func (c Config) CheckInterval(now time.Time) time.Duration {
	h := now.Hour()
	if h >= c.PeakStartHour && h <= c.PeakEndHour {
		return c.PeakInterval
	}
	return c.OffPeakInterval
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

// EnvString returns the env value or a fallback.
func EnvString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// EnvInt parses an int env value, keeping the fallback on parse failure.
func EnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

// EnvFloat parses a float env value, keeping the fallback on parse failure.
func EnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}

// EnvDuration parses a duration env value such as 90s or 5m.
func EnvDuration(key string, def time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return def
}

// EnvList splits a comma-separated env value, trimming blanks.
func EnvList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
