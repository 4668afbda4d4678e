// Package currencyutils provides amount parsing and base-currency settlement
// used throughout the import pipeline.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency tokens and grouping characters stripped before parsing. Statements
// mix "1 234,56", "1'234.56" and trailing currency markers like "тг" or "KZT".
var currencyTokenRe = regexp.MustCompile(`(?i)(kzt|usd|eur|rub|тг|тенге|₸|€|\$)`)

// ParseAmount parses a statement amount string into a decimal. Empty input
// parses to zero; that lets callers treat absent debit/credit cells uniformly.
func ParseAmount(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	s := StandardizeAmount(raw)
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", raw, err)
	}
	return amount, nil
}

// StandardizeAmount converts the observed amount spellings to a plain decimal
// string: currency tokens removed, spaces and apostrophes dropped as grouping
// separators, comma accepted as the decimal separator.
func StandardizeAmount(raw string) string {
	s := currencyTokenRe.ReplaceAllString(raw, "")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "'", "")

	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			// European ordering: dot groups, comma decimals.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	} else if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts[len(parts)-1]) <= 2 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}

// Settle converts a foreign-currency amount to the base currency at the given
// rate, rounded half-to-even to the smallest currency unit.
func Settle(amountOriginal, exchangeRate decimal.Decimal) decimal.Decimal {
	return amountOriginal.Mul(exchangeRate).RoundBank(2)
}
