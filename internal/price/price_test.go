package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Money
		ok       bool
	}{
		{name: "dollar sign", input: "$49.99", expected: 4999, ok: true},
		{name: "no dollar sign", input: "49.99", expected: 4999, ok: true},
		{name: "thousands separator", input: "$1,299.00", expected: 129900, ok: true},
		{name: "whole dollars", input: "$20", expected: 2000, ok: true},
		{name: "surrounding spaces", input: "  $5.10 ", expected: 510, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "only dollar sign", input: "$", ok: false},
		{name: "garbage suffix", input: "$49.99abc", ok: false},
		{name: "text", input: "See price in store", ok: false},
		{name: "nan", input: "NaN", ok: false},
		{name: "exponent", input: "1e2", ok: false},
		{name: "hex float", input: "0x1p4", ok: false},
		{name: "negative", input: "-5", ok: false},
		{name: "explicit plus", input: "+5", ok: false},
		{name: "trailing dot", input: "$5.", ok: false},
		{name: "infinity", input: "Inf", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ParseCurrency(tt.input)

			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, m)
			}
		})
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Percent
		ok       bool
	}{
		{name: "with sign", input: "40%", expected: 40, ok: true},
		{name: "without sign", input: "50", expected: 50, ok: true},
		{name: "fraction", input: "12.5%", expected: 12.5, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "only sign", input: "%", ok: false},
		{name: "malformed", input: "forty%", ok: false},
		{name: "exponent", input: "5e1%", ok: false},
		{name: "negative", input: "-40%", ok: false},
		{name: "hex float", input: "0x1p4", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := ParsePercent(tt.input)

			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, p)
			}
		})
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	for cents := Money(0); cents < 100000; cents += 7 {
		parsed, ok := ParseCurrency(FormatCurrency(cents))

		require.True(t, ok)
		require.Equal(t, cents, parsed)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$49.99", Money(4999).String())
	assert.Equal(t, "$0.05", Money(5).String())
	assert.Equal(t, "-$1.50", Money(-150).String())
	assert.Equal(t, "40%", Percent(40.2).String())
	assert.Equal(t, "13%", FormatPercent(12.5))
}

func TestSavingsPercent(t *testing.T) {
	assert.Equal(t, Percent(60), SavingsPercent(10000, 4000))
	assert.Equal(t, Percent(0), SavingsPercent(0, 0))
	assert.Equal(t, Money(6000), Savings(10000, 4000))
}
