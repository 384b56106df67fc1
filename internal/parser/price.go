package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Currency markers stripped before numeric parsing. Codes are matched
	// as words so item names like "Gudang" keep their letters.
	currencyCodeRe = regexp.MustCompile(`(?i)(\b(idr|usd|sgd|myr|aud|eur|gbp|jpy|thb)\b|rp\.?)`)
	currencySymbols = strings.NewReplacer(
		"$", "", "€", "", "£", "", "¥", "", "₹", "", "฿", "",
		" ", " ",
	)

	nonAmountRe = regexp.MustCompile(`[^0-9.,-]`)
)

// ParsePrice converts one numeric/currency substring into a signed value.
// It strips currency markers, honors "-" and parenthesized negation, and
// resolves the decimal-vs-thousands separator ambiguity:
//
//   - a trailing separator followed by exactly two digits is the decimal
//     point when a different separator appears earlier as grouping
//     ("15.000,50" and "15,000.50" both yield 15000.50)
//   - otherwise a single repeated separator type is thousands grouping and
//     is stripped outright ("15.000" yields 15000)
//
// Empty or unparseable input yields 0, never an error.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(FixOCRDigits(s))
	if s == "" {
		return 0
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	s = currencyCodeRe.ReplaceAllString(s, "")
	s = currencySymbols.Replace(s)
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "-") {
		neg = true
	}
	s = nonAmountRe.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	if s == "" {
		return 0
	}

	intPart, fracPart := splitDecimal(s)
	intPart = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, intPart)
	if intPart == "" && fracPart == "" {
		return 0
	}
	if intPart == "" {
		intPart = "0"
	}

	whole, err := strconv.ParseFloat(intPart, 64)
	if err != nil {
		return 0
	}
	value := whole
	if fracPart != "" {
		frac, err := strconv.ParseFloat(fracPart, 64)
		if err != nil {
			return 0
		}
		value += frac / 100
	}
	if neg {
		value = -value
	}
	return value
}

// splitDecimal decides which separator, if any, is the decimal point and
// returns the integer part (grouping separators still embedded) and a
// two-digit fractional part ("" when the value is integral).
func splitDecimal(s string) (string, string) {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	if lastDot < 0 || lastComma < 0 {
		// Single separator type: thousands grouping, integer result.
		return s, ""
	}

	sep := lastDot
	if lastComma > lastDot {
		sep = lastComma
	}
	tail := s[sep+1:]
	if len(tail) == 2 && isDigits(tail) {
		return s[:sep], tail
	}
	return s, ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
