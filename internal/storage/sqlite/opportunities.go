package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/briahnloo/arbitrage-finder/internal/engine"
	"github.com/briahnloo/arbitrage-finder/internal/money"
)

// InsertOpportunity stores a validated opportunity. Implements engine.Store.
func (s *Store) InsertOpportunity(ctx context.Context, c *engine.Candidate) error {
	if s == nil || s.db == nil || c == nil {
		return fmt.Errorf("sqlite store not initialized or candidate nil")
	}

	legsJSON, err := json.Marshal(c.Legs)
	if err != nil {
		return fmt.Errorf("marshal legs: %w", err)
	}

	query := `
INSERT INTO opportunities (
	fingerprint, sport, event_id, event_name, market, start_time,
	margin_pct, total_stake_cents, profit_cents, draw_loss_cents,
	confidence, confidence_label, score, legs_json, found_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err = s.db.ExecContext(
		ctx,
		query,
		c.Fingerprint(),
		c.Sport,
		c.EventID,
		c.EventName,
		c.Market,
		c.StartTime.UTC().Format(time.RFC3339),
		c.Margin,
		c.TotalStake.Cents(),
		c.Profit.Cents(),
		c.DrawLoss.Cents(),
		c.Confidence,
		c.ConfidenceLabel,
		c.Score,
		string(legsJSON),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// LogAlert records that an alert went out for a fingerprint over a channel.
func (s *Store) LogAlert(ctx context.Context, fingerprint, channel string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialized")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO alerts_sent (fingerprint, channel, sent_at) VALUES (?, ?, ?)`,
		fingerprint,
		channel,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Summary aggregates stored opportunities for reporting.
type Summary struct {
	Total       int
	AvgMargin   float64
	BestMargin  float64
	TotalProfit money.Money
	BySport     map[string]int
}

// Summarize reports aggregate stats over opportunities found since the cutoff.
func (s *Store) Summarize(ctx context.Context, since time.Time) (Summary, error) {
	sum := Summary{BySport: make(map[string]int)}
	if s == nil || s.db == nil {
		return sum, fmt.Errorf("sqlite store not initialized")
	}
	cutoff := since.UTC().Format(time.RFC3339Nano)

	row := s.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(AVG(margin_pct), 0), COALESCE(MAX(margin_pct), 0), COALESCE(SUM(profit_cents), 0)
FROM opportunities WHERE found_at >= ?`, cutoff)
	var profitCents int64
	if err := row.Scan(&sum.Total, &sum.AvgMargin, &sum.BestMargin, &profitCents); err != nil {
		return sum, fmt.Errorf("summarize: %w", err)
	}
	sum.TotalProfit = money.Money(profitCents)

	rows, err := s.db.QueryContext(ctx, `
SELECT sport, COUNT(*) FROM opportunities WHERE found_at >= ? GROUP BY sport`, cutoff)
	if err != nil {
		return sum, fmt.Errorf("summarize by sport: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sport string
		var n int
		if err := rows.Scan(&sport, &n); err != nil {
			return sum, err
		}
		sum.BySport[sport] = n
	}
	return sum, rows.Err()
}

// StoredOpportunity is a display row for reporting.
type StoredOpportunity struct {
	Fingerprint string
	Sport       string
	EventName   string
	Market      string
	Margin      float64
	Profit      money.Money
	Confidence  string
	FoundAt     time.Time
}

// Recent returns the newest n stored opportunities.
func (s *Store) Recent(ctx context.Context, n int) ([]StoredOpportunity, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialized")
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT fingerprint, sport, event_name, market, margin_pct, profit_cents, confidence_label, found_at
FROM opportunities ORDER BY found_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredOpportunity
	for rows.Next() {
		var o StoredOpportunity
		var profitCents int64
		var foundAt string
		if err := rows.Scan(&o.Fingerprint, &o.Sport, &o.EventName, &o.Market, &o.Margin, &profitCents, &o.Confidence, &foundAt); err != nil {
			return nil, err
		}
		o.Profit = money.Money(profitCents)
		o.FoundAt, _ = time.Parse(time.RFC3339Nano, foundAt)
		out = append(out, o)
	}
	return out, rows.Err()
}
