// Package models defines the core domain models for Patungan.
//
// # Models
//
//   - ParsedReceipt / ReceiptItem: the structured output of the OCR-text
//     parser, owned by a single review session after parsing
//   - ParticipantAssignment / ItemShare: which participant consumed which
//     fraction of which item
//   - SplitResult / SplitResultParticipant: the calculated per-person totals
//
// Participants are identified by caller-supplied ids plus display names; no
// user accounts exist in this system.
//
// # Design Principles
//
//  1. **Parser output is a value**: ParsedReceipt is plain data, fully
//     JSON-serializable, with no behavior beyond lookups
//  2. **Item totals are authoritative**: ReceiptItem.Total is what the
//     receipt printed; UnitPrice is an estimate and may disagree with
//     Qty*UnitPrice under OCR noise
//  3. **Avoid circular references**: assignments point at items by ID string,
//     never by pointer, so the receipt can be edited independently
package models
