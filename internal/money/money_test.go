package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromDollars(t *testing.T) {
	assert.Equal(t, Money(10000), FromDollars(100))
	assert.Equal(t, Money(4940), FromDollars(49.40))
	assert.Equal(t, Money(1), FromDollars(0.005))
	assert.Equal(t, Money(-250), FromDollars(-2.50))
	assert.Equal(t, Money(0), FromDollars(0))
}

func TestTimes(t *testing.T) {
	// payout = stake * decimal odds, rounded to the cent
	assert.Equal(t, Money(10374), FromDollars(49.40).Times(2.10))
	assert.Equal(t, Money(10373), FromDollars(50.60).Times(2.05))
	assert.Equal(t, Money(10170), FromDollars(40.68).Times(2.50))
	assert.Equal(t, Money(10168), FromDollars(25.42).Times(4.00))
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, Money(150), Money(100).Add(Money(50)))
	assert.Equal(t, Money(50), Money(100).Sub(Money(50)))
	assert.Equal(t, Money(-100), Money(100).Neg())
	assert.Equal(t, Money(100), Money(-100).Abs())
	assert.Equal(t, Money(600), Sum(Money(100), Money(200), Money(300)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "$100.00", Money(10000).String())
	assert.Equal(t, "$1.68", Money(168).String())
	assert.Equal(t, "$0.05", Money(5).String())
	assert.Equal(t, "-$100.00", Money(-10000).String())
	assert.Equal(t, "-$0.01", Money(-1).String())
}

func TestDollarsRoundTrip(t *testing.T) {
	m := Money(4940)
	assert.InDelta(t, 49.40, m.Dollars(), 1e-9)
	assert.Equal(t, int64(4940), m.Cents())
	assert.True(t, m.Decimal().Equal(FromDollars(49.40).Decimal()))
}
