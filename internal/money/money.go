// Package money holds the rounding and display helpers shared by the
// statement, reconciliation and report code.
package money

import (
	"errors"
	"math"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = "INR"

// DefaultPercentDecimals is the precision FormatPercentage uses by default.
const DefaultPercentDecimals = 1

var hundred = decimal.NewFromInt(100)

// Amounts read from input must fit these bounds; see Bounded.
const (
	MaxExponent        = 30
	MaxCoefficientBits = 128
)

// Bounded returns d, or zero when its exponent lies outside ±MaxExponent or
// its coefficient needs more than MaxCoefficientBits bits. Arithmetic on such
// values rescales through arbitrarily large integers.
func Bounded(d decimal.Decimal) decimal.Decimal {
	if !InBounds(d) {
		return decimal.Zero
	}
	return d
}

// ErrOutOfRange is returned by ParseAmount for amounts outside the bounds.
var ErrOutOfRange = errors.New("amount out of range")

// ParseAmount parses s and rejects values Bounded would zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !InBounds(d) {
		return decimal.Zero, ErrOutOfRange
	}
	return d, nil
}

// InBounds reports whether d fits the bounds Bounded enforces.
func InBounds(d decimal.Decimal) bool {
	e := d.Exponent()
	if e > MaxExponent || e < -MaxExponent {
		return false
	}
	return d.Coefficient().BitLen() <= MaxCoefficientBits
}

// FromFloat converts f to a decimal. NaN and infinities become zero.
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Round2 rounds d to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent returns num/den*100 rounded to two places, or zero when den <= 0.
func Percent(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return Round2(num.Div(den).Mul(hundred))
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// FormatCurrency renders amount with Indian digit grouping and no decimals,
// e.g. 1234567 INR -> "₹12,34,567". An empty code means DefaultCurrency.
func FormatCurrency(amount decimal.Decimal, code string) string {
	if code == "" {
		code = DefaultCurrency
	}
	cur := gomoney.New(0, strings.ToUpper(code)).Currency()

	whole := amount.Round(0)
	digits := groupIndian(whole.Abs().StringFixed(0))

	tmpl := cur.Template
	if tmpl == "" {
		tmpl = "$1"
	}
	out := strings.NewReplacer("1", digits, "$", cur.Grapheme).Replace(tmpl)
	if whole.IsNegative() {
		return "-" + out
	}
	return out
}

// groupIndian inserts separators after the last three digits and then
// every two digits: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}

// FormatPercentage renders value with the given number of decimals and a
// trailing percent sign. Negative decimals fall back to the default.
func FormatPercentage(value decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = DefaultPercentDecimals
	}
	return value.StringFixed(int32(decimals)) + "%"
}
