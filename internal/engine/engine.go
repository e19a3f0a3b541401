package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/briahnloo/arbitrage-finder/internal/arb"
	"github.com/briahnloo/arbitrage-finder/internal/cache"
	"github.com/briahnloo/arbitrage-finder/internal/config"
	"github.com/briahnloo/arbitrage-finder/internal/logging"
	"github.com/briahnloo/arbitrage-finder/internal/oddsapi"
	"github.com/briahnloo/arbitrage-finder/internal/outcome"
)

// OddsSource supplies events with bookmaker odds for a sport.
type OddsSource interface {
	FetchOdds(ctx context.Context, sport string) ([]oddsapi.Event, error)
}

// Store persists validated opportunities. Optional.
type Store interface {
	InsertOpportunity(ctx context.Context, c *Candidate) error
}

// EmitFunc receives each opportunity that survives the full pipeline.
type EmitFunc func(ctx context.Context, c *Candidate)

// Engine runs the per-cycle pipeline: fetch odds, form candidates,
// validate the math, apply business filters, dedup, rank, emit.
type Engine struct {
	cfg    *config.Config
	source OddsSource
	seen   cache.SeenCache
	store  Store
	emit   EmitFunc

	now          func() time.Time
	sportTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore attaches a persistence layer.
func WithStore(s Store) Option { return func(e *Engine) { e.store = s } }

// WithEmit sets the opportunity callback.
func WithEmit(f EmitFunc) Option { return func(e *Engine) { e.emit = f } }

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithSportTimeout bounds how long a single sport's fetch+evaluate may run.
func WithSportTimeout(d time.Duration) Option { return func(e *Engine) { e.sportTimeout = d } }

// New builds an Engine over the given odds source and dedup cache.
func New(cfg *config.Config, source OddsSource, seen cache.SeenCache, opts ...Option) *Engine {
	e := &Engine{
		cfg:          cfg,
		source:       source,
		seen:         seen,
		now:          time.Now,
		sportTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CycleStats summarizes one polling cycle.
type CycleStats struct {
	Sports     int
	Events     int
	Candidates int
	Emitted    int
	Errors     int
}

// RunCycle evaluates every configured sport concurrently. A failing
// sport logs and is skipped; one bad feed never costs the whole cycle.
func (e *Engine) RunCycle(ctx context.Context) (CycleStats, error) {
	var (
		mu    sync.Mutex
		stats CycleStats
		found []*Candidate
	)

	var wg sync.WaitGroup
	for _, sport := range e.cfg.Sports {
		wg.Add(1)
		go func(sport string) {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, e.sportTimeout)
			defer cancel()

			cands, events, err := e.evaluateSport(sctx, sport)
			mu.Lock()
			defer mu.Unlock()
			stats.Sports++
			if err != nil {
				stats.Errors++
				logging.Errorf("engine: sport %s: %v", sport, err)
				return
			}
			stats.Events += events
			found = append(found, cands...)
		}(sport)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	stats.Candidates = len(found)

	fresh, err := e.dedup(ctx, found)
	if err != nil {
		logging.Errorf("engine: dedup: %v", err)
		fresh = found
	}

	top := rankCandidates(fresh, e.cfg.TopCount)
	for _, c := range top {
		if err := e.seen.Mark(ctx, c.Fingerprint()); err != nil {
			logging.Errorf("engine: mark seen: %v", err)
		}
		if e.store != nil {
			if err := e.store.InsertOpportunity(ctx, c); err != nil {
				logging.Errorf("engine: persist opportunity: %v", err)
			}
		}
		if e.emit != nil {
			e.emit(ctx, c)
		}
		stats.Emitted++
	}
	return stats, nil
}

func (e *Engine) dedup(ctx context.Context, cands []*Candidate) ([]*Candidate, error) {
	fresh := make([]*Candidate, 0, len(cands))
	for _, c := range cands {
		seen, err := e.seen.Seen(ctx, c.Fingerprint())
		if err != nil {
			return nil, err
		}
		if seen {
			logging.Debugf("engine: suppressing repeat %s %s", c.Sport, c.EventName)
			continue
		}
		fresh = append(fresh, c)
	}
	return fresh, nil
}

func (e *Engine) evaluateSport(ctx context.Context, sport string) ([]*Candidate, int, error) {
	events, err := e.source.FetchOdds(ctx, sport)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch odds: %w", err)
	}

	var cands []*Candidate
	for i := range events {
		cands = append(cands, e.evaluateEvent(&events[i], sport)...)
	}
	return cands, len(events), nil
}

// quote is one bookmaker's price on one canonical outcome.
type quote struct {
	canon     outcome.Canonical
	bookmaker string
	rawLabel  string
	odds      float64
	rank      int
}

const topQuotesPerOutcome = 3

// evaluateEvent classifies every posted outcome, keeps the top prices
// per canonical outcome, and forms 2- and 3-way candidate combinations.
func (e *Engine) evaluateEvent(ev *oddsapi.Event, sport string) []*Candidate {
	byMarket := e.collectQuotes(ev, sport)

	var cands []*Candidate
	for _, market := range sortedKeys(byMarket) {
		byOutcome := byMarket[market]
		for key, qs := range byOutcome {
			sort.SliceStable(qs, func(i, j int) bool { return qs[i].odds > qs[j].odds })
			if len(qs) > topQuotesPerOutcome {
				qs = qs[:topQuotesPerOutcome]
			}
			for i := range qs {
				qs[i].rank = i
			}
			byOutcome[key] = qs
		}

		switch market {
		case "h2h":
			if e.cfg.ThreeWay(sport) {
				cands = append(cands, e.formTriples(ev, sport, market, byOutcome)...)
			} else {
				cands = append(cands, e.formMoneylinePairs(ev, sport, market, byOutcome)...)
			}
		case "spreads":
			cands = append(cands, e.formSpreadPairs(ev, sport, market, byOutcome)...)
		case "totals":
			cands = append(cands, e.formTotalPairs(ev, sport, market, byOutcome)...)
		}
	}
	return cands
}

func (e *Engine) collectQuotes(ev *oddsapi.Event, sport string) map[string]map[string][]quote {
	binary := e.cfg.Binary(sport)
	byMarket := make(map[string]map[string][]quote)
	for _, bm := range ev.Bookmakers {
		for _, mkt := range bm.Markets {
			for _, oq := range mkt.Outcomes {
				var canon outcome.Canonical
				if binary {
					canon = outcome.ClassifyBinary(oq.Name, ev.HomeTeam, ev.AwayTeam)
				} else {
					canon = outcome.Classify(oq.Name, ev.HomeTeam, ev.AwayTeam, outcome.MarketKey(mkt.Key), oq.Point)
				}
				if !canon.Classified() {
					logging.Warnf("engine: unclassified outcome %q (%s, %s)", oq.Name, sport, mkt.Key)
					continue
				}
				if oq.Price <= 1.0 {
					continue
				}
				byOutcome, ok := byMarket[mkt.Key]
				if !ok {
					byOutcome = make(map[string][]quote)
					byMarket[mkt.Key] = byOutcome
				}
				byOutcome[canon.Key()] = append(byOutcome[canon.Key()], quote{
					canon:     canon,
					bookmaker: bm.Title,
					rawLabel:  oq.Name,
					odds:      oq.Price,
				})
			}
		}
	}
	return byMarket
}

// formTriples builds home/draw/away combinations for three-way sports.
// A two-way quote set on a draw-capable sport is rejected outright: the
// uncovered draw makes any "arb" an unhedged bet.
func (e *Engine) formTriples(ev *oddsapi.Event, sport, market string, byOutcome map[string][]quote) []*Candidate {
	home := byOutcome[outcome.New(outcome.HomeWin).Key()]
	draw := byOutcome[outcome.New(outcome.Draw).Key()]
	away := byOutcome[outcome.New(outcome.AwayWin).Key()]
	if len(home) == 0 || len(away) == 0 {
		return nil
	}
	if len(draw) == 0 {
		logging.Warnf("engine: %s lists only two moneyline sides for three-way sport %s", ev.ID, sport)
		return nil
	}

	var cands []*Candidate
	for _, h := range home {
		for _, d := range draw {
			for _, a := range away {
				if c := e.buildCandidate(ev, sport, market, []quote{h, d, a}); c != nil {
					cands = append(cands, c)
				}
			}
		}
	}
	return cands
}

func (e *Engine) formMoneylinePairs(ev *oddsapi.Event, sport, market string, byOutcome map[string][]quote) []*Candidate {
	sideA := byOutcome[outcome.New(outcome.HomeWin).Key()]
	sideB := byOutcome[outcome.New(outcome.AwayWin).Key()]
	if len(sideA) == 0 {
		sideA = byOutcome[outcome.New(outcome.AWins).Key()]
		sideB = byOutcome[outcome.New(outcome.BWins).Key()]
	}
	return e.formPairs(ev, sport, market, sideA, sideB)
}

// formSpreadPairs matches each home line L against the away line -L.
// Mismatched lines (home -1.5 vs away +2.5) are middles, not arbs.
func (e *Engine) formSpreadPairs(ev *oddsapi.Event, sport, market string, byOutcome map[string][]quote) []*Candidate {
	var cands []*Candidate
	for _, key := range sortedKeys(byOutcome) {
		qs := byOutcome[key]
		if len(qs) == 0 || qs[0].canon.Kind != outcome.HomeSpreadCover {
			continue
		}
		line := *qs[0].canon.Line
		counter := outcome.WithLine(outcome.AwaySpreadCover, -line)
		cands = append(cands, e.formPairs(ev, sport, market, qs, byOutcome[counter.Key()])...)
	}
	return cands
}

func (e *Engine) formTotalPairs(ev *oddsapi.Event, sport, market string, byOutcome map[string][]quote) []*Candidate {
	var cands []*Candidate
	for _, key := range sortedKeys(byOutcome) {
		qs := byOutcome[key]
		if len(qs) == 0 || qs[0].canon.Kind != outcome.Over {
			continue
		}
		under := outcome.WithLine(outcome.Under, *qs[0].canon.Line)
		cands = append(cands, e.formPairs(ev, sport, market, qs, byOutcome[under.Key()])...)
	}
	return cands
}

func (e *Engine) formPairs(ev *oddsapi.Event, sport, market string, sideA, sideB []quote) []*Candidate {
	var cands []*Candidate
	for _, a := range sideA {
		for _, b := range sideB {
			if a.bookmaker == b.bookmaker {
				continue // same book never prices its own arb
			}
			if c := e.buildCandidate(ev, sport, market, []quote{a, b}); c != nil {
				cands = append(cands, c)
			}
		}
	}
	return cands
}

// buildCandidate runs the validation pipeline over one combination:
// margin prefilter, partition check, stake balancing, scenario
// simulation, then the business filters. Returns nil on any rejection.
func (e *Engine) buildCandidate(ev *oddsapi.Event, sport, market string, qs []quote) *Candidate {
	odds := make([]float64, len(qs))
	outs := make([]outcome.Canonical, len(qs))
	ranks := make([]int, len(qs))
	for i, q := range qs {
		odds[i] = q.odds
		outs[i] = q.canon
		ranks[i] = q.rank
	}

	margin := arb.ProfitMargin(odds...)
	if margin <= 0 {
		return nil
	}

	part := arb.ValidatePartition(outs, sport)
	if !part.Valid {
		logging.Warnf("engine: %s %s: partition rejected: %s", sport, ev.ID, part.Reason)
		return nil
	}

	bal, err := arb.Balance(odds, e.cfg.TotalStake, arb.BalanceOptions{})
	if err != nil {
		logging.Warnf("engine: %s %s: balance: %v", sport, ev.ID, err)
		return nil
	}
	if !bal.Converged {
		logging.Debugf("engine: %s %s: stakes did not converge (spread %s)", sport, ev.ID, bal.PayoutSpread)
		return nil
	}

	legs := make([]BetLeg, len(qs))
	for i, q := range qs {
		legs[i] = BetLeg{
			Outcome:   q.canon,
			Bookmaker: q.bookmaker,
			RawLabel:  q.rawLabel,
			Odds:      q.odds,
			OddsRank:  q.rank,
			Stake:     bal.Stakes[i],
		}
	}

	sim := arb.Simulate(candidateLegs(legs), sport, arb.SimulationOptions{})
	if !sim.Valid {
		// Passing the algebra but failing the simulation means the
		// outcome model itself is wrong; that is a defect, not noise.
		logging.Errorf("engine: %s %s: simulation rejected validated candidate: %s", sport, ev.ID, sim.Reason)
		return nil
	}

	c := &Candidate{
		Sport:      sport,
		EventID:    ev.ID,
		EventName:  eventName(ev),
		Market:     market,
		StartTime:  ev.CommenceTime,
		Legs:       legs,
		Margin:     margin,
		TotalStake: e.cfg.TotalStake,
		Profit:     sim.MinProfit,
		DrawLoss:   sim.DrawLoss,
	}
	c.Confidence = Confidence(market, ranks...)
	c.ConfidenceLabel = ConfidenceLabel(c.Confidence)
	c.Score = scoreCandidate(c)
	if sim.DrawLoss != 0 {
		c.Note = fmt.Sprintf("draw loses %s", sim.DrawLoss.Abs())
	}

	if reason := checkBusiness(c, e.cfg, e.now()); reason != "" {
		logging.Debugf("engine: %s %s: filtered: %s", sport, ev.ID, reason)
		return nil
	}
	return c
}

func candidateLegs(legs []BetLeg) []arb.Leg {
	out := make([]arb.Leg, len(legs))
	for i, l := range legs {
		out[i] = arb.Leg{Outcome: l.Outcome, Odds: l.Odds, Stake: l.Stake}
	}
	return out
}

func eventName(ev *oddsapi.Event) string {
	return ev.HomeTeam + " vs " + ev.AwayTeam
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
