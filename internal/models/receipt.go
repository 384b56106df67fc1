package models

// MaxItemNameLen is the display limit for item names. Longer names are
// truncated during parsing and review edits.
const MaxItemNameLen = 60

// ReceiptItem represents a single line item read off a receipt.
type ReceiptItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the display name, stitched together from one or more OCR
	// lines and truncated to MaxItemNameLen characters. When no usable
	// name could be recovered this holds the sentinel "Unknown Item".
	Name string `json:"name"`

	// Qty is the purchased quantity. Defaults to 1 when the line carries
	// no quantity marker.
	Qty int `json:"qty"`

	// UnitPrice is the estimated per-unit price. It is derived (first
	// price token on the line, or total/qty) and should not be treated
	// as authoritative under OCR noise.
	UnitPrice float64 `json:"unitPrice"`

	// Total is the authoritative amount for the line: the actual price
	// token read from the receipt, not necessarily Qty*UnitPrice.
	Total float64 `json:"total"`
}

// ParsedReceipt is the structured result of parsing one receipt's OCR text.
// Items keep receipt order. Amounts are non-negative; Discount is stored as
// a positive magnitude and subtracted where the receipt math needs it.
type ParsedReceipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	// Empty until the receipt is persisted for a review session.
	ID string `json:"id,omitempty"`

	Items         []ReceiptItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	ServiceCharge float64       `json:"serviceCharge"`
	Discount      float64       `json:"discount"`
	GrandTotal    float64       `json:"grandTotal"`

	// TaxInclusive marks receipts whose printed totals already embed
	// tax/service, so no separate pro-rata charge should be distributed
	// when the bill is split.
	TaxInclusive bool `json:"taxInclusive"`

	// CreatedAt is the Unix timestamp set when the receipt is persisted.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// ItemByID returns the item with the given id, or nil if absent.
func (r *ParsedReceipt) ItemByID(id string) *ReceiptItem {
	for i := range r.Items {
		if r.Items[i].ID == id {
			return &r.Items[i]
		}
	}
	return nil
}
