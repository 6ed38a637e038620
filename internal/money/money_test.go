package money

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFromFloat(t *testing.T) {
	assert.True(t, FromFloat(math.NaN()).IsZero())
	assert.True(t, FromFloat(math.Inf(1)).IsZero())
	assert.True(t, FromFloat(math.Inf(-1)).IsZero())
	assert.True(t, FromFloat(12.5).Equal(dec("12.5")))
}

func TestBounded(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.56", "1234.56"},
		{"1e30", "1e30"},
		{"1e-30", "1e-30"},
		{"1e31", "0"},
		{"1e100000000", "0"},
		{"-1e2000000000", "0"},
		{"1e-100000000", "0"},
		{strings.Repeat("9", 60), "0"},
	}
	for _, tt := range tests {
		got := Bounded(dec(tt.in))
		assert.True(t, got.Equal(dec(tt.want)), "Bounded(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"-1.005", "-1.01"},
		{"33.333333", "33.33"},
		{"66.666666", "66.67"},
		{"0", "0"},
	}
	for _, tt := range tests {
		got := Round2(dec(tt.in))
		assert.True(t, got.Equal(dec(tt.want)), "Round2(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(dec("600"), dec("1000")).Equal(dec("60")))
	assert.True(t, Percent(dec("1"), dec("3")).Equal(dec("33.33")))
	assert.True(t, Percent(dec("-50"), dec("200")).Equal(dec("-25")))
	assert.True(t, Percent(dec("10"), decimal.Zero).IsZero())
	assert.True(t, Percent(dec("10"), dec("-5")).IsZero())
}

func TestMax(t *testing.T) {
	assert.True(t, Max(dec("-3"), decimal.Zero).IsZero())
	assert.True(t, Max(dec("7"), decimal.Zero).Equal(dec("7")))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"0", "INR", "₹0"},
		{"999", "INR", "₹999"},
		{"1000", "INR", "₹1,000"},
		{"100000", "INR", "₹1,00,000"},
		{"1234567", "INR", "₹12,34,567"},
		{"1234567.49", "", "₹12,34,567"},
		{"1500.5", "INR", "₹1,501"},
		{"-1500.5", "INR", "-₹1,501"},
		{"250", "inr", "₹250"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(dec(tt.amount), tt.code), "FormatCurrency(%s, %q)", tt.amount, tt.code)
	}
}

func TestGroupIndian(t *testing.T) {
	assert.Equal(t, "1", groupIndian("1"))
	assert.Equal(t, "12,345", groupIndian("12345"))
	assert.Equal(t, "1,23,45,678", groupIndian("12345678"))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "60.0%", FormatPercentage(dec("60"), 1))
	assert.Equal(t, "12.35%", FormatPercentage(dec("12.345"), 2))
	assert.Equal(t, "0.0%", FormatPercentage(decimal.Zero, DefaultPercentDecimals))
	assert.Equal(t, "-4.3%", FormatPercentage(dec("-4.25"), -1))
	assert.Equal(t, "33%", FormatPercentage(dec("33.3"), 0))
}
