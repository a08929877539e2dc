package money

import (
	"errors"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		dollars int64
		cents   int64
	}{
		{"9.99", 9, 99},
		{"5.00", 5, 0},
		{"12", 12, 0},
		{"0.07", 0, 7},
		{" 3.50 ", 3, 50},
		{"4.5", 4, 5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.dollars, m.Dollars())
			assert.Equal(t, tt.cents, m.Cents())
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{"", "abc", "1.x", "x.10"} {
		_, err := Parse(in)
		require.Error(t, err, in)

		var pe *ParseError
		require.True(t, errors.As(err, &pe), in)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	}
}

func TestParse_RejectsBadCents(t *testing.T) {
	for _, in := range []string{"1.150", "1.2.3", "1.-5", "1.+5"} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrCents, in)

		var pe *ParseError
		require.True(t, errors.As(err, &pe), in)
		assert.Equal(t, in, pe.Input)
	}
}

func TestParse_NegativeRoundTrips(t *testing.T) {
	tests := []struct {
		in    string
		minor int64
	}{
		{"-1.50", -150},
		{"-0.50", -50},
		{"-3", -300},
		{"-2.05", -205},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m := MustParse(tt.in)
			assert.Equal(t, tt.minor, m.MinorUnits())
			assert.Equal(t, m, MustParse(m.String()))
		})
	}
	assert.Equal(t, "-1.50", MustParse("-1.50").String())
	assert.Equal(t, "-3.00", MustParse("-3").String())
}

func TestCompare(t *testing.T) {
	a := MustParse("5.00")
	b := MustParse("5.01")
	c := MustParse("6.00")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, c.Compare(b))
	assert.Equal(t, 0, a.Compare(New(5, 0)))
	assert.True(t, a.Less(c))
	assert.True(t, a.Equal(New(5, 0)))
	assert.True(t, Zero.IsZero())
}

func TestString(t *testing.T) {
	assert.Equal(t, "0.00", Zero.String())
	assert.Equal(t, "10.05", New(10, 5).String())
	assert.Equal(t, "13.31", MustParse("13.31").String())
	assert.Equal(t, "-1.25", FromMinorUnits(-125).String())
}

func TestFromMinorUnits(t *testing.T) {
	m := FromMinorUnits(1098)
	assert.Equal(t, int64(10), m.Dollars())
	assert.Equal(t, int64(98), m.Cents())
	assert.Equal(t, int64(1098), m.MinorUnits())

	neg := FromMinorUnits(-1)
	assert.Equal(t, int64(-1), neg.Dollars())
	assert.Equal(t, int64(99), neg.Cents())
}

func TestHikeBy(t *testing.T) {
	tests := []struct {
		name  string
		price string
		rate  string
		want  string
		net   string
	}{
		{"even", "10.00", "10", "11.00", "1"},
		{"floors fractional cent", "10.01", "33", "13.31", "3.3"},
		{"floors half cent", "9.99", "10", "10.98", "0.99"},
		{"zero rate", "7.77", "0", "7.77", "0"},
		{"fractional rate", "100.00", "0.5", "100.50", "0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MustParse(tt.price)
			net := m.HikeBy(decimal.RequireFromString(tt.rate))
			assert.Equal(t, tt.want, m.String())
			assert.True(t, net.Equal(decimal.RequireFromString(tt.net)), "net %s", net)
		})
	}
}

func TestHikeBy_NoDriftAcrossManyHikes(t *testing.T) {
	total := decimal.Zero
	var want int64
	for i := 0; i < 500; i++ {
		m := MustParse("10.01")
		total = total.Add(m.HikeBy(decimal.NewFromInt(33)))
		want += 330
	}
	assert.True(t, total.Equal(decimal.NewFromInt(want).Shift(-2)), "total %s", total)
}
