package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/briahnloo/arbitrage-finder/internal/hashutil"
	"github.com/briahnloo/arbitrage-finder/internal/money"
	"github.com/briahnloo/arbitrage-finder/internal/outcome"
)

// BetLeg is one bet within a candidate opportunity.
type BetLeg struct {
	Outcome   outcome.Canonical `json:"outcome"`
	Bookmaker string            `json:"bookmaker"`
	RawLabel  string            `json:"raw_label"`
	Odds      float64           `json:"odds"`
	OddsRank  int               `json:"odds_rank"` // 0=best available, 1=2nd, 2=3rd
	Stake     money.Money       `json:"stake"`
}

// Candidate is an ordered 2- or 3-leg arbitrage candidate. It is built
// once per polling cycle and passed immutably through the validation
// stages; only its fingerprint survives across cycles.
type Candidate struct {
	Sport      string      `json:"sport"`
	EventID    string      `json:"event_id"`
	EventName  string      `json:"event_name"`
	Market     string      `json:"market"`
	StartTime  time.Time   `json:"start_time"`
	Legs       []BetLeg    `json:"legs"`
	Margin     float64     `json:"margin_pct"`
	TotalStake money.Money `json:"total_stake"`
	Profit     money.Money `json:"guaranteed_profit"`
	DrawLoss   money.Money `json:"draw_loss,omitempty"`

	Confidence      float64 `json:"confidence"`
	ConfidenceLabel string  `json:"confidence_label"`
	Score           float64 `json:"score"`
	Note            string  `json:"note,omitempty"`
}

// Fingerprint derives the dedup key from outcome identities, bookmakers,
// and the profit margin quantized to 0.5% tiers, so a materially better
// price on the same combination alerts again while noise does not.
func (c *Candidate) Fingerprint() string {
	tier := math.Floor(c.Margin*2) / 2
	parts := make([]string, 0, 3+2*len(c.Legs))
	parts = append(parts, c.Sport, c.EventName)
	for _, leg := range c.Legs {
		parts = append(parts, leg.Outcome.Key(), leg.Bookmaker)
	}
	parts = append(parts, fmt.Sprintf("%.1f", tier))
	return hashutil.Fingerprint(parts...)
}

// Odds returns the decimal odds of every leg in order.
func (c *Candidate) Odds() []float64 {
	odds := make([]float64, len(c.Legs))
	for i, leg := range c.Legs {
		odds[i] = leg.Odds
	}
	return odds
}

// Outcomes returns the canonical outcome of every leg in order.
func (c *Candidate) Outcomes() []outcome.Canonical {
	outs := make([]outcome.Canonical, len(c.Legs))
	for i, leg := range c.Legs {
		outs[i] = leg.Outcome
	}
	return outs
}

// StakeSum adds up the allocated leg stakes.
func (c *Candidate) StakeSum() money.Money {
	var sum money.Money
	for _, leg := range c.Legs {
		sum += leg.Stake
	}
	return sum
}
