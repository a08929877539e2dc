// Package money implements an exact dollars-and-cents amount.
// All arithmetic is done on integer minor units or shopspring decimals,
// never on binary floating point.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount of whole dollars plus a cent component.
// The zero value is $0.00 and is what lookups return for absent items.
type Money struct {
	dollars int64
	cents   int64
}

// ParseError is returned when a money string cannot be read.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("money: cannot parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Zero is the sentinel returned for missing items and empty results.
var Zero = Money{}

// New builds a Money from its two components as given.
func New(dollars, cents int64) Money {
	return Money{dollars: dollars, cents: cents}
}

// FromMinorUnits splits a cent count into dollars and cents.
// Dollars are floor(n/100) and cents the non-negative remainder.
func FromMinorUnits(n int64) Money {
	d, c := n/100, n%100
	if c < 0 {
		d--
		c += 100
	}
	return Money{dollars: d, cents: c}
}

// ErrCents reports a cent field longer than two digits or carrying a sign.
var ErrCents = errors.New("cents must be one or two digits")

// Parse reads "<dollars>.<cents>" or "<dollars>". The cents text is read as
// an integer, so "4.5" is four dollars and five cents. A leading minus sign
// applies to the whole amount: "-1.50" is minus one dollar fifty.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	d, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Zero, &ParseError{Input: s, Err: err}
	}
	if !hasFrac || frac == "" {
		return Money{dollars: d}, nil
	}
	if len(frac) > 2 || frac[0] == '+' || frac[0] == '-' {
		return Zero, &ParseError{Input: s, Err: ErrCents}
	}
	c, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Zero, &ParseError{Input: s, Err: err}
	}
	if strings.HasPrefix(whole, "-") {
		return FromMinorUnits(d*100 - c), nil
	}
	return Money{dollars: d, cents: c}, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Dollars() int64 { return m.dollars }
func (m Money) Cents() int64   { return m.cents }

// MinorUnits returns the amount as a single cent count.
func (m Money) MinorUnits() int64 {
	return m.dollars*100 + m.cents
}

// Decimal returns the amount in dollars as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(m.MinorUnits()).Shift(-2)
}

// Compare orders by dollars, then cents.
func (m Money) Compare(o Money) int {
	switch {
	case m.dollars < o.dollars:
		return -1
	case m.dollars > o.dollars:
		return 1
	case m.cents < o.cents:
		return -1
	case m.cents > o.cents:
		return 1
	}
	return 0
}

func (m Money) Less(o Money) bool  { return m.Compare(o) < 0 }
func (m Money) Equal(o Money) bool { return m == o }
func (m Money) IsZero() bool       { return m == Zero }

func (m Money) String() string {
	if m.dollars < 0 || m.cents < 0 {
		return m.Decimal().StringFixed(2)
	}
	return fmt.Sprintf("%d.%02d", m.dollars, m.cents)
}

// HikeBy raises the amount by percent (10 means 10%), floors away any
// fractional cent and rewrites both components in place. It returns the
// net increase in dollars, exact.
func (m *Money) HikeBy(percent decimal.Decimal) decimal.Decimal {
	old := decimal.NewFromInt(m.MinorUnits())
	raised := old.Add(old.Mul(percent).Shift(-2)).Floor()
	*m = FromMinorUnits(raised.IntPart())
	return raised.Sub(old).Shift(-2)
}
