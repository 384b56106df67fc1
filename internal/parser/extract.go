package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Quantity markers, tried in order. The Unicode multiply sign shows up
	// when OCR reads thermal-printer glyphs.
	qtyTimesRe = regexp.MustCompile(`(?i)(?:^|\s)(\d+)\s*[x×](?:\s|$)`)
	timesQtyRe = regexp.MustCompile(`(?i)(?:^|\s)[x×]\s*(\d+)(?:\s|$)`)
	qtyAtRe    = regexp.MustCompile(`(?:^|\s)(\d+)\s*@`)

	// Thousands-grouped amounts, the preferred price shape: digit groups of
	// three with an optional two-digit decimal tail ("15.000", "15.000,50").
	groupedPriceRe = regexp.MustCompile(`\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{2})?`)

	// Bare digit runs, the fallback when no grouped amount is present.
	barePriceRe = regexp.MustCompile(`\d{4,}`)
)

// ExtractQty pulls a quantity multiplier out of a line: "2 x", "x 2" or
// "2 @", first match under 100 wins. The default quantity is 1. The matched
// token is returned so the caller can strip it from the item name.
func ExtractQty(line string) (int, string) {
	for _, re := range []*regexp.Regexp{qtyTimesRe, timesQtyRe, qtyAtRe} {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 || n >= 100 {
			continue
		}
		return n, strings.TrimSpace(m[0])
	}
	return 1, ""
}

// ExtractPrices returns the price-like tokens on a line, in order.
// Thousands-grouped tokens win outright; only when none exist does the
// scan fall back to bare runs of four or more digits, skipping plausible
// years (2000-2099) and implausibly long runs (barcodes, ids).
func ExtractPrices(line string) []string {
	if tokens := groupedPriceRe.FindAllString(line, -1); len(tokens) > 0 {
		return tokens
	}

	var tokens []string
	for _, tok := range barePriceRe.FindAllString(line, -1) {
		if len(tok) > 7 {
			continue
		}
		if len(tok) == 4 {
			if y, err := strconv.Atoi(tok); err == nil && y >= 2000 && y <= 2099 {
				continue
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
