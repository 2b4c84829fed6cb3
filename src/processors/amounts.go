// backend/src/processors/amounts.go
package processors

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// moneyRe matches a two-decimal-place number with optional thousands
// separators, the shape statement amounts and balances take in free text.
var moneyRe = regexp.MustCompile(`\d{1,3}(?:,\d{2,3})*\.\d{2}|\d+\.\d{2}`)

// currencyNoiseRe strips currency symbols and codes that banks prefix to
// numeric cells.
var currencyNoiseRe = regexp.MustCompile(`(?i)[₹$€£]|\b(?:inr|usd|eur|gbp|rs)\b|\.?\s*rs\.`)

// parseDecimal interprets one raw cell or substring as a decimal value.
// It tolerates surrounding quotes, currency symbols, thousands commas and
// accounting-style parentheses for negatives. The boolean reports whether
// a value was actually present.
func parseDecimal(s string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.Trim(cleaned, `"'`)
	if cleaned == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	cleaned = currencyNoiseRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	// European exports use the comma as decimal separator; everything
	// else uses it for thousands grouping. A single comma followed by
	// exactly two digits is the decimal case.
	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		if idx := strings.LastIndex(cleaned, ","); len(cleaned)-idx-1 == 2 && strings.Count(cleaned, ",") == 1 {
			cleaned = cleaned[:idx] + "." + cleaned[idx+1:]
		}
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero, false
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		value = value.Neg()
	}
	return value, true
}

// firstMoneyValue extracts the first two-decimal-place number found in a
// line of text, used by the balance resolver once a label pattern matched.
func firstMoneyValue(line string) (decimal.Decimal, bool) {
	match := moneyRe.FindString(line)
	if match == "" {
		return decimal.Zero, false
	}
	return parseDecimal(match)
}
