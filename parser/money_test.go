package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoneyTokenDecimal(t *testing.T) {
	v, ok := ParseMoneyToken("1,234.50")
	assert.True(t, ok)
	assert.Equal(t, 1234.50, v)

	v, ok = ParseMoneyToken("40.5")
	assert.True(t, ok)
	assert.Equal(t, 40.5, v)
}

func TestParseMoneyTokenBareDigitsLostDecimal(t *testing.T) {
	v, ok := ParseMoneyToken("10000")
	assert.True(t, ok)
	assert.Equal(t, 100.00, v)

	v, ok = ParseMoneyToken("123")
	assert.True(t, ok)
	assert.Equal(t, 1.23, v)
}

func TestParseMoneyTokenSplitDecimal(t *testing.T) {
	v, ok := ParseMoneyToken("40 00")
	assert.True(t, ok)
	assert.Equal(t, 40.00, v)

	v, ok = ParseMoneyToken("1,070 00")
	assert.True(t, ok)
	assert.Equal(t, 1070.00, v)
}

func TestParseMoneyTokenPlainInt(t *testing.T) {
	v, ok := ParseMoneyToken("42")
	assert.True(t, ok)
	assert.Equal(t, 42.0, v)

	v, ok = ParseMoneyToken("7")
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)
}

func TestParseMoneyTokenCurrencySymbols(t *testing.T) {
	v, ok := ParseMoneyToken("$1,234.50")
	assert.True(t, ok)
	assert.Equal(t, 1234.50, v)

	v, ok = ParseMoneyToken("฿100.00")
	assert.True(t, ok)
	assert.Equal(t, 100.00, v)
}

func TestParseMoneyTokenNegative(t *testing.T) {
	v, ok := ParseMoneyToken("-50.00")
	assert.True(t, ok)
	assert.Equal(t, -50.00, v)

	v, ok = ParseMoneyToken("-1,070 00")
	assert.True(t, ok)
	assert.Equal(t, -1070.00, v)

	v, ok = ParseMoneyToken("- 25")
	assert.True(t, ok)
	assert.Equal(t, -25.0, v)
}

func TestParseMoneyTokenAbsent(t *testing.T) {
	for _, raw := range []string{"", "N/A", "-", "..", "abc"} {
		_, ok := ParseMoneyToken(raw)
		assert.False(t, ok, "input: %q", raw)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1,234.50", FormatMoney(1234.5))
	assert.Equal(t, "0.00", FormatMoney(0))
	assert.Equal(t, "1,000,000.00", FormatMoney(1000000))
	assert.Equal(t, "7.00", FormatMoney(7))
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, v := range []float64{0.5, 1.23, 42, 999.99, 1234.5, 10000, 123456.78} {
		back, ok := ParseMoneyToken(FormatMoney(v))
		assert.True(t, ok, "value: %v", v)
		assert.InDelta(t, v, back, 0.01, "value: %v", v)
	}
}

func TestNewMoneyField(t *testing.T) {
	f := NewMoneyField("1,234.50")
	assert.NotNil(t, f)
	assert.Equal(t, "1,234.50", f.Raw)
	assert.Equal(t, 1234.50, *f.Value)
	assert.Equal(t, "1,234.50", f.Text)

	f = NewMoneyField("N/A")
	assert.NotNil(t, f)
	assert.Equal(t, "N/A", f.Raw)
	assert.Nil(t, f.Value)

	assert.Nil(t, NewMoneyField("  "))
}

func TestApproxEqual(t *testing.T) {
	assert.True(t, ApproxEqual(100, 100.04))
	assert.True(t, ApproxEqual(100, 101.5))
	assert.False(t, ApproxEqual(100, 103))
	assert.True(t, ApproxEqual(1.00, 1.04))
	assert.False(t, ApproxEqual(1.00, 1.10))
	assert.True(t, ApproxEqual(0, 0))
}

func TestApproxEqualMatchesItemTolerance(t *testing.T) {
	// the acceptance bound is max(abs, rel*amount)
	amount := 50.0
	limit := math.Max(AmountAbsTolerance, AmountRelTolerance*amount)
	assert.True(t, ApproxEqual(amount, amount+limit))
	assert.False(t, ApproxEqual(amount, amount+limit+0.1))
}
