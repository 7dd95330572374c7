package invoice

import (
	"errors"
	"strings"
)

var ErrNegativeAmount = errors.New("amount must not be negative")

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords spells a whole rupee amount using the Indian numbering system,
// e.g. 123456 is "One Lakh Twenty Three Thousand Four Hundred Fifty Six Rupees Only".
func AmountInWords(n int64) (string, error) {
	if n < 0 {
		return "", ErrNegativeAmount
	}
	if n == 0 {
		return "Zero Rupees Only", nil
	}
	return spell(n) + " Rupees Only", nil
}

// spell handles n > 0. Crore counts above 99 are grouped again.
func spell(n int64) string {
	var parts []string
	if crore := n / 10_000_000; crore > 0 {
		parts = append(parts, spell(crore)+" Crore")
	}
	if lakh := n / 100_000 % 100; lakh > 0 {
		parts = append(parts, belowHundred(lakh)+" Lakh")
	}
	if thousand := n / 1000 % 100; thousand > 0 {
		parts = append(parts, belowHundred(thousand)+" Thousand")
	}
	if hundred := n / 100 % 10; hundred > 0 {
		parts = append(parts, ones[hundred]+" Hundred")
	}
	if rest := n % 100; rest > 0 {
		parts = append(parts, belowHundred(rest))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
