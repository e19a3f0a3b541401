package arb

import (
	"fmt"
	"math"

	"github.com/briahnloo/arbitrage-finder/internal/money"
)

// BalanceOptions makes the refinement loop's knobs explicit. Zero values
// pick the defaults: 10 iterations, 1 cent convergence target, and the
// simulator's per-arity payout tolerances for the final verdict.
type BalanceOptions struct {
	MaxIterations   int
	PayoutTolerance money.Money // accepted max-min payout spread; 0 = by arity
}

// BalanceResult reports the stake split and whether refinement converged.
// Callers must check Converged: a non-converged split is a rejection, not
// a best-effort allocation.
type BalanceResult struct {
	Stakes       []money.Money
	Payouts      []money.Money
	PayoutSpread money.Money
	MinPayout    money.Money
	Converged    bool
	Iterations   int
}

const balanceEpsilon = 0.005 // half a cent, avoids scale oscillation

// Balance splits totalStake across legs so the stakes sum exactly to the
// total and the payouts stake[i]*odds[i] come out near-equal after
// rounding to cents.
//
// It seeds with the closed-form proportional allocation, then iterates:
// scale down any leg paying more than the mean by over half a cent,
// renormalize to the total, round every leg to the cent with the last
// leg absorbing the remainder, and stop once the payout spread is within
// a cent. Intermediate ratios use float64; every returned amount is
// fixed-point.
func Balance(odds []float64, totalStake money.Money, opts BalanceOptions) (BalanceResult, error) {
	n := len(odds)
	if n < 2 || n > 3 {
		return BalanceResult{}, fmt.Errorf("balance: expected 2 or 3 legs, got %d", n)
	}
	if totalStake <= 0 {
		return BalanceResult{}, fmt.Errorf("balance: total stake must be positive, got %s", totalStake)
	}
	for i, o := range odds {
		if o <= 1.0 {
			return BalanceResult{}, fmt.Errorf("balance: leg %d has invalid odds %.3f", i, o)
		}
	}

	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = 10
	}
	tolerance := opts.PayoutTolerance
	if tolerance == 0 {
		if n == 2 {
			tolerance = money.Money(1)
		} else {
			tolerance = money.Money(5)
		}
	}

	total := totalStake.Dollars()
	var denom float64
	for _, o := range odds {
		denom += 1 / o
	}

	stakes := make([]float64, n)
	for i, o := range odds {
		stakes[i] = total * (1 / o) / denom
	}

	res := BalanceResult{}
	rounded := make([]money.Money, n)
	payouts := make([]money.Money, n)

	for iter := 1; iter <= maxIter; iter++ {
		res.Iterations = iter

		// Scale down legs paying above the mean.
		var mean float64
		for i := range stakes {
			mean += stakes[i] * odds[i]
		}
		mean /= float64(n)
		for i := range stakes {
			if p := stakes[i] * odds[i]; p > mean+balanceEpsilon && p > 0 {
				stakes[i] *= mean / p
			}
		}

		// Renormalize so the vector sums to the target again.
		var sum float64
		for _, s := range stakes {
			sum += s
		}
		if sum > 0 {
			ratio := total / sum
			for i := range stakes {
				stakes[i] *= ratio
			}
		}

		// Round to cents; the last leg absorbs the remainder so the sum
		// stays exact.
		var allocated money.Money
		for i := 0; i < n-1; i++ {
			rounded[i] = money.FromDollars(round2(stakes[i]))
			allocated += rounded[i]
		}
		rounded[n-1] = totalStake - allocated

		spread := payoutSpread(rounded, odds, payouts)
		if spread <= money.Money(1) {
			break
		}
		for i := range stakes {
			stakes[i] = rounded[i].Dollars()
		}
	}

	res.PayoutSpread = payoutSpread(rounded, odds, payouts)
	res.Stakes = append([]money.Money(nil), rounded...)
	res.Payouts = append([]money.Money(nil), payouts...)
	res.MinPayout = payouts[0]
	for _, p := range payouts[1:] {
		if p < res.MinPayout {
			res.MinPayout = p
		}
	}
	res.Converged = res.PayoutSpread <= tolerance
	return res, nil
}

func payoutSpread(stakes []money.Money, odds []float64, payouts []money.Money) money.Money {
	minP, maxP := money.Money(math.MaxInt64), money.Money(math.MinInt64)
	for i, s := range stakes {
		p := s.Times(odds[i])
		payouts[i] = p
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}
	return maxP - minP
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
