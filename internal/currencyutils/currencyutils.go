// Package currencyutils locates currency-marked amounts in free text and
// formats amounts for replies.
package currencyutils

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency prefix used in replies.
const DefaultSymbol = "Rs."

// markerPattern matches a case-insensitive "Rs" or "Rs." immediately
// followed by digits, as in "Rs.200" or "rs500".
var markerPattern = regexp.MustCompile(`(?i)\brs\.?(\d+)`)

// ParseAmount converts a run of digits captured by a rule into an amount.
// Values that do not fit in an int64 are rejected.
func ParseAmount(digits string) (int64, error) {
	return strconv.ParseInt(digits, 10, 64)
}

// FindMarkedAmount returns the first currency-marked amount in text.
// The boolean is false when there is no marker or the digits overflow.
func FindMarkedAmount(text string) (int64, bool) {
	m := markerPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	amount, err := ParseAmount(m[1])
	if err != nil {
		return 0, false
	}
	return amount, true
}

// ContainsMarker reports whether text holds a usable currency-marked
// amount. Digits that overflow do not count, matching FindMarkedAmount.
func ContainsMarker(text string) bool {
	_, ok := FindMarkedAmount(text)
	return ok
}

// StripMarkers removes every currency-marked amount from text.
func StripMarkers(text string) string {
	return markerPattern.ReplaceAllString(text, "")
}

// Format renders an integer amount with the currency symbol, e.g. "Rs.500"
// or "Rs.-400". An empty symbol falls back to DefaultSymbol.
func Format(symbol string, amount int64) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return symbol + strconv.FormatInt(amount, 10)
}

// FormatDecimal renders a decimal amount with the currency symbol. Whole
// numbers print without a fractional part.
func FormatDecimal(symbol string, amount decimal.Decimal) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return symbol + amount.String()
}
