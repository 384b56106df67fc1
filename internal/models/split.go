package models

// ItemShare attributes a fraction of one item's total to a participant.
// Share is in (0,1]; an item consumed by N people equally carries 1/N each.
type ItemShare struct {
	ItemID string  `json:"itemId"`
	Share  float64 `json:"share"`
}

// ParticipantAssignment lists the item shares claimed by one participant
// during the review step. Assignments may reference item ids that no longer
// exist on the receipt (the review UI and the editable receipt can drift);
// such shares are skipped during split calculation.
type ParticipantAssignment struct {
	ParticipantID   string      `json:"participantId"`
	ParticipantName string      `json:"participantName"`
	Items           []ItemShare `json:"items"`
}

// SplitItem is one item's apportioned amount for one participant.
type SplitItem struct {
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// SplitResultParticipant is one person's calculated share of a receipt.
type SplitResultParticipant struct {
	ParticipantID   string      `json:"participantId"`
	ParticipantName string      `json:"participantName"`
	Items           []SplitItem `json:"items"`

	// Subtotal is the sum of this person's apportioned item amounts.
	Subtotal float64 `json:"subtotal"`

	// TaxShare, ServiceShare and DiscountShare are pro-rata portions of
	// the receipt-level charges, proportional to Subtotal. TaxShare is
	// zero on tax-inclusive receipts.
	TaxShare      float64 `json:"taxShare"`
	ServiceShare  float64 `json:"serviceShare"`
	DiscountShare float64 `json:"discountShare"`

	// Total = Subtotal + TaxShare + ServiceShare - DiscountShare.
	Total float64 `json:"total"`
}

// SplitResult is the outcome of splitting one receipt across participants.
type SplitResult struct {
	Participants []SplitResultParticipant `json:"participants"`

	// UnassignedTotal is the portion of the receipt subtotal no one
	// claimed, floored at zero.
	UnassignedTotal float64 `json:"unassignedTotal"`
}
