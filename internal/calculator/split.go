// Package calculator apportions a finished receipt's cost across
// participants according to which items each one consumed.
package calculator

import (
	"github.com/pradiptarana/patungan/internal/models"
)

// CalculateSplit maps a frozen receipt plus per-item participant
// assignments to per-person totals. Shared receipt-level charges (tax,
// service charge, discount) are distributed pro-rata by each participant's
// share of the item subtotal; tax-inclusive receipts distribute no extra
// tax. Assignments referencing item ids no longer on the receipt are
// skipped silently: the review UI and the editable receipt are allowed to
// drift, so the function never fails and never mutates its inputs.
func CalculateSplit(receipt *models.ParsedReceipt, assignments []models.ParticipantAssignment) *models.SplitResult {
	result := &models.SplitResult{
		Participants: make([]models.SplitResultParticipant, 0, len(assignments)),
	}

	var assignedTotal float64
	for _, assignment := range assignments {
		person := models.SplitResultParticipant{
			ParticipantID:   assignment.ParticipantID,
			ParticipantName: assignment.ParticipantName,
			Items:           []models.SplitItem{},
		}

		for _, share := range assignment.Items {
			item := receipt.ItemByID(share.ItemID)
			if item == nil {
				continue
			}
			amount := item.Total * share.Share
			person.Items = append(person.Items, models.SplitItem{
				ItemID: item.ID,
				Name:   item.Name,
				Amount: amount,
			})
			person.Subtotal += amount
			assignedTotal += amount
		}

		var ratio float64
		if receipt.Subtotal > 0 {
			ratio = person.Subtotal / receipt.Subtotal
		}
		if !receipt.TaxInclusive {
			person.TaxShare = receipt.Tax * ratio
		}
		person.ServiceShare = receipt.ServiceCharge * ratio
		person.DiscountShare = receipt.Discount * ratio
		person.Total = person.Subtotal + person.TaxShare + person.ServiceShare - person.DiscountShare

		result.Participants = append(result.Participants, person)
	}

	if unassigned := receipt.Subtotal - assignedTotal; unassigned > 0 {
		result.UnassignedTotal = unassigned
	}
	return result
}
