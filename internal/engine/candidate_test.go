package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briahnloo/arbitrage-finder/internal/outcome"
)

func fingerprintCandidate(margin float64) *Candidate {
	return &Candidate{
		Sport:     "soccer_epl",
		EventName: "Arsenal vs Chelsea",
		Margin:    margin,
		Legs: []BetLeg{
			{Outcome: outcome.New(outcome.HomeWin), Bookmaker: "FanDuel"},
			{Outcome: outcome.New(outcome.AwayWin), Bookmaker: "DraftKings"},
		},
	}
}

func TestFingerprintMarginTiers(t *testing.T) {
	// Margins inside the same 0.5% tier share a fingerprint; a materially
	// better price lands in a new tier and alerts again.
	a := fingerprintCandidate(1.6)
	b := fingerprintCandidate(1.8)
	c := fingerprintCandidate(2.1)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestFingerprintDistinguishesBookmakers(t *testing.T) {
	a := fingerprintCandidate(1.6)
	b := fingerprintCandidate(1.6)
	b.Legs[1].Bookmaker = "BetMGM"
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
