package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyPrefix is printed before amounts. The PDF core fonts have no rupee glyph.
const CurrencyPrefix = "Rs."

// FormatAmount renders d with two decimals and Indian digit grouping,
// e.g. 1234567.5 becomes "12,34,567.50".
func FormatAmount(d decimal.Decimal) string {
	d = d.Round(2)
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	s := groupIndian(whole) + "." + frac
	if d.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatMoney is FormatAmount with the currency prefix.
func FormatMoney(d decimal.Decimal) string {
	return CurrencyPrefix + " " + FormatAmount(d)
}

// groupIndian separates the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(append(groups, tail), ",")
}
