// Package money provides a fixed-point dollar amount with cent precision.
// Stored amounts never touch binary floating point; conversions from
// ratios go through shopspring/decimal and round half away from zero.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a dollar amount in cents.
type Money int64

var oneHundred = decimal.NewFromInt(100)

// FromDollars converts a float dollar amount to Money, rounding to the
// nearest cent.
func FromDollars(v float64) Money {
	return FromDecimal(decimal.NewFromFloat(v))
}

// FromDecimal converts an exact decimal dollar amount to Money.
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(oneHundred).Round(0).IntPart())
}

// Cents returns the raw cent count.
func (m Money) Cents() int64 {
	return int64(m)
}

// Dollars returns a float approximation, for ratio math only.
func (m Money) Dollars() float64 {
	return float64(m) / 100
}

// Decimal returns the exact decimal dollar value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(oneHundred)
}

func (m Money) Add(o Money) Money { return m + o }
func (m Money) Sub(o Money) Money { return m - o }

// Neg returns the negated amount.
func (m Money) Neg() Money { return -m }

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// Times returns m scaled by odds, rounded to the nearest cent. Used for
// payout = stake * decimal odds.
func (m Money) Times(odds float64) Money {
	return FromDecimal(m.Decimal().Mul(decimal.NewFromFloat(odds)))
}

// Sum adds a list of amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}

// String formats as $X.YY with a leading minus for negative amounts.
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
