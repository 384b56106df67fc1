package parser

import "strings"

// OCR letter/digit confusions corrected by FixOCRDigits.
var confusedDigits = map[rune]rune{
	'O': '0',
	'l': '1',
	'I': '1',
	'S': '5',
}

func isNumericRun(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if r == '.' || r == ',' {
		return true
	}
	_, ok := confusedDigits[r]
	return ok
}

// FixOCRDigits repairs digit-like misreads (O->0, l/I->1, S->5) inside
// numeric spans. A confusable character is only corrected when it sits in a
// run of digits/separators that contains at least one real digit, so purely
// alphabetic words ("Sale", "Iced") are never corrupted.
//
//	FixOCRDigits("2O.OOO") == "20.000"
//	FixOCRDigits("1l5")    == "115"
func FixOCRDigits(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		if !isNumericRun(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		hasDigit := false
		for j < len(runes) && isNumericRun(runes[j]) {
			if runes[j] >= '0' && runes[j] <= '9' {
				hasDigit = true
			}
			j++
		}
		for _, r := range runes[i:j] {
			if d, ok := confusedDigits[r]; ok && hasDigit {
				b.WriteRune(d)
			} else {
				b.WriteRune(r)
			}
		}
		i = j
	}
	return b.String()
}
