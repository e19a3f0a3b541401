package engine

import (
	"fmt"
	"time"

	"github.com/briahnloo/arbitrage-finder/internal/arb"
	"github.com/briahnloo/arbitrage-finder/internal/config"
)

// An implied probability sum far below 1.0 usually means corrupted or
// stale odds rather than a real opportunity. The upper bound comes from
// config; the lower one is fixed from observed feed noise.
const impliedSumSuspect = 0.85

// checkBusiness applies the real-world filters that separate a
// mathematically valid arb from one worth alerting on. Returns a
// human-readable rejection reason, or "" when the candidate passes.
func checkBusiness(c *Candidate, cfg *config.Config, now time.Time) string {
	for _, leg := range c.Legs {
		trust := cfg.TrustFor(leg.Bookmaker)
		if trust < cfg.MinTrust {
			return fmt.Sprintf("bookmaker %s trust %d below minimum %d", leg.Bookmaker, trust, cfg.MinTrust)
		}
	}

	lead := c.StartTime.Sub(now)
	if lead < cfg.MinLeadTime {
		return fmt.Sprintf("event starts in %s, inside %s placement window", lead.Round(time.Minute), cfg.MinLeadTime)
	}
	if lead > cfg.MaxLeadTime {
		return fmt.Sprintf("event starts in %s, beyond %s horizon", lead.Round(time.Hour), cfg.MaxLeadTime)
	}

	if floor := cfg.MinMarginFor(c.Sport); c.Margin < floor {
		return fmt.Sprintf("margin %.2f%% below %s floor %.2f%%", c.Margin, c.Sport, floor)
	}

	sum := arb.ImpliedProbabilitySum(c.Odds()...)
	if sum > cfg.MaxImpliedSum {
		return fmt.Sprintf("implied probability sum %.3f suggests stale odds", sum)
	}
	if sum < impliedSumSuspect {
		return fmt.Sprintf("implied probability sum %.3f too good to be true", sum)
	}

	if got := c.StakeSum(); got != c.TotalStake {
		return fmt.Sprintf("leg stakes %s do not sum to total %s", got, c.TotalStake)
	}

	return ""
}
