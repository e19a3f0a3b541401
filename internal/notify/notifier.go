// Package notify fans validated opportunities out to alert channels.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/briahnloo/arbitrage-finder/internal/engine"
	"github.com/briahnloo/arbitrage-finder/internal/logging"
	"github.com/briahnloo/arbitrage-finder/internal/oddsapi"
)

// Sender is one alert channel.
type Sender interface {
	Send(ctx context.Context, title, message string) error
	Name() string
}

// Notifier dispatches an alert to every configured sender. A failing
// sender logs and does not block the others.
type Notifier struct {
	senders []Sender
}

func New(senders ...Sender) *Notifier {
	return &Notifier{senders: senders}
}

// Alert formats and delivers an opportunity. Returns the names of the
// channels that accepted it.
func (n *Notifier) Alert(ctx context.Context, c *engine.Candidate) []string {
	if n == nil || len(n.senders) == 0 {
		return nil
	}
	title := fmt.Sprintf("%s arb: %s (%.2f%%)", c.ConfidenceLabel, c.EventName, c.Margin)
	message := FormatCandidate(c)

	var delivered []string
	for _, s := range n.senders {
		if err := s.Send(ctx, title, message); err != nil {
			logging.Errorf("notify: %s: %v", s.Name(), err)
			continue
		}
		delivered = append(delivered, s.Name())
	}
	return delivered
}

// FormatCandidate renders an opportunity for human eyes.
func FormatCandidate(c *engine.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s | %s\n", oddsapi.SportDisplayName(c.Sport), c.Market, c.StartTime.Format(time.RFC822))
	for _, leg := range c.Legs {
		fmt.Fprintf(&b, "  %s @ %.2f (%s): stake %s\n", leg.Outcome, leg.Odds, leg.Bookmaker, leg.Stake)
	}
	fmt.Fprintf(&b, "margin %.2f%%, stake %s, guaranteed profit %s", c.Margin, c.TotalStake, c.Profit)
	if c.Note != "" {
		fmt.Fprintf(&b, " (%s)", c.Note)
	}
	fmt.Fprintf(&b, "\nconfidence %.0f (%s)", c.Confidence, c.ConfidenceLabel)
	return b.String()
}
