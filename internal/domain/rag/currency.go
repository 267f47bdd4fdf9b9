package rag

import (
	"math"
	"strconv"
	"strings"
)

// Currency holds the fixed output currency and the static rate used to
// convert recognizable alternate-currency (dollar) amounts. The rate is a
// configuration value, not an authoritative exchange rate.
type Currency struct {
	Symbol         string  // e.g. "₹"
	ConversionRate float64 // alternate units per one fixed unit, e.g. 83
}

// DefaultCurrency matches the platform's deployment: Indian Rupees at an
// approximate 1 USD = 83 INR.
func DefaultCurrency() Currency {
	return Currency{Symbol: "₹", ConversionRate: 83}
}

// Normalize returns an amount string in the fixed currency. Amounts already
// in the fixed currency keep their digits verbatim; alternate-currency
// amounts are converted with the configured rate, rounded to the nearest
// whole unit, and regrouped in the Indian digit convention.
func (c Currency) Normalize(digits string, alternate bool) string {
	digits = strings.TrimSuffix(strings.TrimSpace(digits), ".")
	if !alternate {
		return c.Symbol + digits
	}
	value, ok := parseAmount(digits)
	if !ok {
		return c.Symbol + digits
	}
	converted := int64(math.Round(value * c.ConversionRate))
	return c.Symbol + groupIndian(converted)
}

// parseAmount parses a plain or comma-grouped decimal amount.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// groupIndian formats n with Indian digit grouping: the last three digits
// form one group, every preceding pair forms another (1234567 → 12,34,567).
func groupIndian(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(append(groups, tail), ",")
	}
	if neg {
		return "-" + s
	}
	return s
}
