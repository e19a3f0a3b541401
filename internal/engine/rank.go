package engine

import "sort"

// Base confidence by market. Head-to-head prices are the most liquid and
// least likely to be stale; totals move fastest around injury news.
var marketConfidence = map[string]float64{
	"h2h":     90,
	"spreads": 75,
	"totals":  70,
	"cross":   80,
}

// Confidence scores how likely a candidate is to still be placeable.
// Each leg priced off the best available odds (rank > 0) discounts the
// score, since second- and third-best prices tend to be slower books.
func Confidence(market string, oddsRanks ...int) float64 {
	base, ok := marketConfidence[market]
	if !ok {
		base = marketConfidence["cross"]
	}
	for _, rank := range oddsRanks {
		switch rank {
		case 0:
		case 1:
			base *= 0.95
		default:
			base *= 0.85
		}
	}
	return base
}

// ConfidenceLabel buckets a confidence score for display and alerting.
func ConfidenceLabel(confidence float64) string {
	switch {
	case confidence >= 85:
		return "HIGH"
	case confidence >= 70:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

const profitNormCap = 50.0 // dollars; profits above this all score 1.0

// scoreCandidate combines margin, confidence, and normalized profit into
// a single ranking score. Margin dominates: a 2% arb at a slow book
// still beats a 0.3% arb at a fast one.
func scoreCandidate(c *Candidate) float64 {
	normProfit := c.Profit.Dollars() / profitNormCap
	if normProfit > 1 {
		normProfit = 1
	}
	if normProfit < 0 {
		normProfit = 0
	}
	return c.Margin*0.6 + (c.Confidence/100)*0.3 + normProfit*0.1
}

// rankCandidates sorts by score descending and returns the top n.
// Ties break on margin, then event name, so output order is stable
// across runs on identical input.
func rankCandidates(cands []*Candidate, n int) []*Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		if cands[i].Margin != cands[j].Margin {
			return cands[i].Margin > cands[j].Margin
		}
		return cands[i].EventName < cands[j].EventName
	})
	if n > 0 && len(cands) > n {
		cands = cands[:n]
	}
	return cands
}
