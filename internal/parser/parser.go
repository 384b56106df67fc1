// Package parser turns noisy multi-line OCR output of a purchase receipt
// into a structured, validated record of line items and totals.
//
// Parsing is a single forward pass: each line is digit-corrected, classified,
// and routed by a three-zone state machine (header, items, totals). Item
// names spanning several lines are stitched together by a bounded
// pending-fragment buffer; totals-zone lines feed the subtotal, tax, service
// charge, discount and grand-total accumulators. A final reconciliation pass
// fills anything the receipt never printed. The parser holds no state across
// invocations and never fails: unreadable numbers become zero, unreadable
// names become "Unknown Item".
package parser

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/pradiptarana/patungan/internal/models"
)

const (
	// UnknownItemName is emitted when no usable name fragment survives.
	UnknownItemName = "Unknown Item"

	// maxPendingFragments bounds the name buffer; an all-text receipt
	// drops its oldest fragments instead of growing without bound.
	maxPendingFragments = 6

	// taxInclusiveEpsilon tolerates OCR rounding when deciding whether a
	// receipt's totals already embed tax/service (about 100 minor
	// currency units).
	taxInclusiveEpsilon = 100.0
)

type zone int

const (
	zoneHeader zone = iota
	zoneItems
	zoneTotals
)

// parseContext threads all mutable parsing state through the line loop:
// current zone, the pending name fragments, the index of the last emitted
// item, and the receipt being built.
type parseContext struct {
	zone    zone
	pending []string
	lastIdx int
	receipt *models.ParsedReceipt
}

// Parse scans one receipt's OCR text and returns the structured receipt.
// It always returns a usable value; see the package comment for the error
// policy.
func Parse(text string) *models.ParsedReceipt {
	lines := splitLines(text)

	ctx := &parseContext{
		zone:    zoneItems,
		lastIdx: -1,
		receipt: &models.ParsedReceipt{Items: []models.ReceiptItem{}},
	}
	// Compact thermal-printer receipts often have no separator at all;
	// only documents that do have one get a header zone.
	for _, line := range lines {
		if Classify(line) == LineSeparator {
			ctx.zone = zoneHeader
			break
		}
	}

	for _, raw := range lines {
		line := FixOCRDigits(raw)
		class := Classify(line)

		switch class {
		case LineGarbage:
			continue
		case LineSeparator:
			if ctx.zone == zoneHeader {
				ctx.zone = zoneItems
			}
			continue
		}

		switch ctx.zone {
		case zoneHeader:
			// Nothing in the header is item or totals material.

		case zoneItems:
			switch class {
			case LineTax, LineServiceCharge, LineDiscount:
				// Charges sometimes print inside the item block.
				ctx.resolveTotalsLine(line)
				continue
			case LineFooter:
				continue
			}
			if isTotalsTrigger(line, len(ctx.receipt.Items)) {
				ctx.zone = zoneTotals
				ctx.resolveTotalsLine(line)
				continue
			}
			if isNumericNoise(line) {
				continue
			}
			ctx.consumeItemLine(line)

		case zoneTotals:
			if class == LineFooter {
				continue
			}
			ctx.resolveTotalsLine(line)
		}
	}

	reconcile(ctx.receipt)
	return ctx.receipt
}

// consumeItemLine handles one items-zone line: non-priced lines feed the
// pending-name buffer (or attach to the last item as a modifier), priced
// lines emit an item and drain the buffer.
func (ctx *parseContext) consumeItemLine(line string) {
	prices := ExtractPrices(line)
	if len(prices) == 0 {
		if !containsLetter(line) {
			return
		}
		fragment := cleanFragment(line)
		if fragment == "" {
			return
		}
		if isModifierLine(line) && len(ctx.pending) == 0 && ctx.lastIdx >= 0 {
			item := &ctx.receipt.Items[ctx.lastIdx]
			item.Name = truncateName(item.Name + " " + fragment)
			return
		}
		ctx.pushPending(fragment)
		return
	}

	qty, qtyToken := ExtractQty(line)

	residual := line
	for _, tok := range prices {
		residual = strings.Replace(residual, tok, "", 1)
	}
	if qtyToken != "" {
		residual = strings.Replace(residual, qtyToken, "", 1)
	}
	residual = cleanFragment(residual)

	parts := make([]string, 0, len(ctx.pending)+1)
	parts = append(parts, ctx.pending...)
	if len(residual) > 2 && containsLetter(residual) {
		parts = append(parts, residual)
	}
	name := strings.Join(parts, " ")
	if name == "" {
		name = UnknownItemName
	}

	total := ParsePrice(prices[len(prices)-1])
	unitPrice := total
	switch {
	case len(prices) >= 2:
		// "unit price ... line total" layout.
		unitPrice = ParsePrice(prices[0])
	case qty > 1:
		unitPrice = math.Round(total / float64(qty))
	}

	ctx.receipt.Items = append(ctx.receipt.Items, models.ReceiptItem{
		ID:        uuid.New().String(),
		Name:      truncateName(name),
		Qty:       qty,
		UnitPrice: unitPrice,
		Total:     total,
	})
	ctx.lastIdx = len(ctx.receipt.Items) - 1
	ctx.pending = ctx.pending[:0]
}

// resolveTotalsLine routes a priced totals line to its accumulator.
// Priority: tax > service charge > discount > subtotal > grand total or
// payment method. Grand-total candidates keep the maximum observed value so
// a smaller change/partial figure never overwrites the true total.
func (ctx *parseContext) resolveTotalsLine(line string) {
	prices := ExtractPrices(line)
	if len(prices) == 0 {
		return
	}
	amount := math.Abs(ParsePrice(prices[len(prices)-1]))
	lower := strings.ToLower(line)

	r := ctx.receipt
	switch {
	case containsAny(lower, keywords.Tax):
		r.Tax = amount
	case containsAny(lower, keywords.Service):
		r.ServiceCharge = amount
	case containsAny(lower, keywords.Discount):
		r.Discount = amount
	case containsAny(lower, keywords.Subtotal):
		r.Subtotal = amount
	case containsAny(lower, keywords.Total), Classify(line) == LinePayment:
		if amount > r.GrandTotal {
			r.GrandTotal = amount
		}
	}
}

// reconcile fills in anything the receipt never printed and drops noise
// items. When the printed total matches the item sum with no separate tax
// or service line, the pricing is flagged tax-inclusive so the split
// calculator distributes no extra charges.
func reconcile(r *models.ParsedReceipt) {
	kept := r.Items[:0]
	for _, item := range r.Items {
		if item.Total > 0 {
			kept = append(kept, item)
		}
	}
	r.Items = kept

	var computed float64
	for _, item := range r.Items {
		computed += item.Total
	}
	if r.Subtotal == 0 {
		r.Subtotal = computed
	}
	if r.GrandTotal == 0 {
		r.GrandTotal = r.Subtotal + r.Tax + r.ServiceCharge - r.Discount
	}
	r.TaxInclusive = computed > 0 &&
		math.Abs(computed-r.GrandTotal) < taxInclusiveEpsilon &&
		r.Tax == 0 && r.ServiceCharge == 0
}

func (ctx *parseContext) pushPending(fragment string) {
	if len(ctx.pending) == maxPendingFragments {
		ctx.pending = ctx.pending[1:]
	}
	ctx.pending = append(ctx.pending, fragment)
}

// isModifierLine reports trailing modifiers like "* Less Sugar" or
// "- extra shot" that belong to the item above them.
func isModifierLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "*") {
		return true
	}
	return strings.HasPrefix(trimmed, "-") && len(trimmed) > 3
}

// cleanFragment strips decorative symbols and edge punctuation from a name
// fragment and collapses runs of whitespace.
func cleanFragment(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '*', '#', '@', '|', '>', '<', '•', '·':
			return -1
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " -.,:;_=~")
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= models.MaxItemNameLen {
		return name
	}
	return string(runes[:models.MaxItemNameLen])
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
