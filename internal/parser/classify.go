package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// LineClass is the ranked label for one raw receipt line. Keyword matches
// are not mutually exclusive, so Classify applies the classes in a fixed
// priority order; the first matching class wins.
type LineClass int

const (
	LineContent LineClass = iota
	LineSeparator
	LineGarbage
	LineTax
	LineServiceCharge
	LineDiscount
	LinePayment
	LineFooter
)

var lineClassNames = map[LineClass]string{
	LineContent:       "content",
	LineSeparator:     "separator",
	LineGarbage:       "garbage",
	LineTax:           "tax",
	LineServiceCharge: "service-charge",
	LineDiscount:      "discount",
	LinePayment:       "payment",
	LineFooter:        "footer",
}

func (c LineClass) String() string {
	if n, ok := lineClassNames[c]; ok {
		return n
	}
	return "unknown"
}

// Classify labels a line with exactly one class. Priority:
// separator > garbage > tax > service > discount > payment > footer,
// falling through to content.
func Classify(line string) LineClass {
	lower := strings.ToLower(strings.TrimSpace(line))
	switch {
	case isSeparatorLine(lower):
		return LineSeparator
	case containsAny(lower, keywords.Garbage):
		return LineGarbage
	case containsAny(lower, keywords.Tax):
		return LineTax
	case containsAny(lower, keywords.Service):
		return LineServiceCharge
	case containsAny(lower, keywords.Discount):
		return LineDiscount
	case containsAny(lower, keywords.Payment):
		return LinePayment
	case containsAny(lower, keywords.Footer):
		return LineFooter
	default:
		return LineContent
	}
}

// isSeparatorLine reports layout rules like "-----" or "================":
// three or more repeated separator characters once whitespace is removed.
func isSeparatorLine(line string) bool {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	if len(stripped) < 3 {
		return false
	}
	for _, r := range stripped {
		switch r {
		case '-', '=', '*', '.', '~', '_':
		default:
			return false
		}
	}
	return true
}

// isNumericNoise reports lines that carry no letters at all (postal codes,
// phone numbers, ids). In the items zone these are discarded before they
// can pollute the pending-name buffer.
func isNumericNoise(line string) bool {
	hasContent := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsSpace(r) {
			hasContent = true
		}
	}
	return hasContent
}

var itemCountRe = regexp.MustCompile(`(?i)^\s*\d+\s+items?\b`)

// isTotalsTrigger reports whether a line flips parsing from the items zone
// into the totals zone. "total" alone only counts once an item exists;
// an explicit grand-total line always forces the transition.
func isTotalsTrigger(line string, itemCount int) bool {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "grand total"), strings.Contains(lower, "amount due"):
		return true
	case containsAny(lower, keywords.Subtotal):
		return true
	case containsAny(lower, keywords.Total) && itemCount > 0:
		return true
	case Classify(line) == LinePayment:
		return true
	case itemCountRe.MatchString(line):
		return true
	default:
		return false
	}
}

func containsAny(line string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(line, needle) {
			return true
		}
	}
	return false
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
