// Package price holds the numeric value types behind the currency and percentage
// strings shown to users. Parsing happens once at the boundary; comparisons work
// on the numeric values.
package price

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimal is the only numeric shape accepted: digits with an optional fraction.
// Signs, exponents and hex floats are rejected.
var decimal = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// Money is a currency amount in cents.
type Money int64

// Percent is a percentage value, 40 means 40%.
type Percent float64

// ParseCurrency parses strings like "$49.99", "49.99" or "$1,299.00".
// Empty and malformed input yields ok == false.
func ParseCurrency(s string) (Money, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if !decimal.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return Money(math.Round(f * 100)), true
}

// ParsePercent parses strings like "40%", "40" or "12.5%".
func ParsePercent(s string) (Percent, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if !decimal.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}

	return Percent(f), true
}

func FromDollars(d float64) Money {
	return Money(math.Round(d * 100))
}

func (m Money) Dollars() float64 {
	return float64(m) / 100
}

// String formats the amount as "$49.99".
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s$%d.%02d", sign, m/100, m%100)
}

// String formats the percentage rounded to a whole number, "40%".
func (p Percent) String() string {
	return fmt.Sprintf("%d%%", int64(math.Round(float64(p))))
}

// FormatCurrency is the inverse of ParseCurrency.
func FormatCurrency(m Money) string {
	return m.String()
}

func FormatPercent(p Percent) string {
	return p.String()
}

// Savings returns original - clearance.
func Savings(original, clearance Money) Money {
	return original - clearance
}

// SavingsPercent returns the discount of clearance relative to original.
// A non-positive original price has no meaningful discount and yields 0.
func SavingsPercent(original, clearance Money) Percent {
	if original <= 0 {
		return 0
	}
	return Percent(float64(original-clearance) / float64(original) * 100)
}
