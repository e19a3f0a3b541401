// Package arb holds the arbitrage validation core: profit margin math,
// the outcome partition check, scenario simulation, and stake balancing.
// Everything here is pure and safe for concurrent use.
package arb

// ImpliedProbability returns 1/odds for decimal odds.
func ImpliedProbability(odds float64) float64 {
	if odds <= 0 {
		return 0
	}
	return 1 / odds
}

// ImpliedProbabilitySum sums implied probabilities across a set of legs.
func ImpliedProbabilitySum(odds ...float64) float64 {
	var sum float64
	for _, o := range odds {
		sum += ImpliedProbability(o)
	}
	return sum
}

// ProfitMargin returns the arbitrage margin as a percentage. When the
// implied probabilities sum to 1 or more there is no arbitrage and the
// margin is exactly zero.
func ProfitMargin(odds ...float64) float64 {
	sum := ImpliedProbabilitySum(odds...)
	if sum >= 1.0 {
		return 0
	}
	return (1 - sum) * 100
}
