// Package oddsapi fetches per-sport odds from The Odds API v4.
package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/briahnloo/arbitrage-finder/internal/logging"
)

const defaultBaseURL = "https://api.the-odds-api.com/v4"

// Event is one upcoming match with the odds every polled bookmaker
// currently quotes on it.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	CommenceTime time.Time   `json:"commence_time"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker carries one book's markets for an event.
type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market is a priced market (h2h, spreads, totals) with its outcomes.
type Market struct {
	Key      string         `json:"key"`
	Outcomes []OutcomeQuote `json:"outcomes"`
}

// OutcomeQuote is a single priced outcome. Point is set for spreads and
// totals only.
type OutcomeQuote struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// Client polls The Odds API.
type Client struct {
	baseURL    string
	apiKey     string
	regions    string
	markets    string
	httpClient *http.Client
}

// Config controls optional overrides for the client.
type Config struct {
	BaseURL string
	APIKey  string
	Regions string
	Markets string
	Timeout time.Duration
}

// NewClient builds an odds client with sane defaults. Each request times
// out independently so one slow sport cannot stall a cycle.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	regions := cfg.Regions
	if regions == "" {
		regions = "us"
	}
	markets := cfg.Markets
	if markets == "" {
		markets = "h2h,spreads,totals"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		regions: regions,
		markets: markets,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Name() string {
	return "odds-api"
}

// FetchOdds retrieves decimal odds for every upcoming event in a sport.
func (c *Client) FetchOdds(ctx context.Context, sport string) ([]Event, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds/", c.baseURL, url.PathEscape(sport))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	q := req.URL.Query()
	q.Set("apiKey", c.apiKey)
	q.Set("regions", c.regions)
	q.Set("markets", c.markets)
	q.Set("oddsFormat", "decimal")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch odds for %s: %w", sport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("odds api returned %d for %s: %s", resp.StatusCode, sport, string(body))
	}

	if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
		logging.Debugf("[odds-api] remaining requests: %s", remaining)
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode odds for %s: %w", sport, err)
	}
	for i := range events {
		if events[i].SportKey == "" {
			events[i].SportKey = sport
		}
	}
	return events, nil
}
