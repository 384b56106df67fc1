package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pradiptarana/patungan/internal/models"
)

// SaveAssignments replaces the stored assignment set for a receipt.
// Participant IDs are generated when the caller supplies only names.
func (s *SQLiteStore) SaveAssignments(ctx context.Context, receiptID string, assignments []models.ParticipantAssignment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments WHERE receipt_id = ?", receiptID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	for i := range assignments {
		assignment := &assignments[i]
		if assignment.ParticipantID == "" {
			assignment.ParticipantID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO assignments (receipt_id, participant_id, participant_name) VALUES (?, ?, ?)",
			receiptID, assignment.ParticipantID, assignment.ParticipantName,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}

		for _, share := range assignment.Items {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO assignment_items (receipt_id, participant_id, item_id, share) VALUES (?, ?, ?, ?)",
				receiptID, assignment.ParticipantID, share.ItemID, share.Share,
			)
			if err != nil {
				return fmt.Errorf("failed to insert assignment item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAssignments retrieves the stored assignment set for a receipt.
func (s *SQLiteStore) GetAssignments(ctx context.Context, receiptID string) ([]models.ParticipantAssignment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id, participant_name FROM assignments WHERE receipt_id = ? ORDER BY participant_name",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.ParticipantAssignment
	for rows.Next() {
		var assignment models.ParticipantAssignment
		if err := rows.Scan(&assignment.ParticipantID, &assignment.ParticipantName); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	for i := range assignments {
		itemRows, err := s.db.QueryContext(ctx,
			"SELECT item_id, share FROM assignment_items WHERE receipt_id = ? AND participant_id = ?",
			receiptID, assignments[i].ParticipantID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get assignment items: %w", err)
		}
		for itemRows.Next() {
			var share models.ItemShare
			if err := itemRows.Scan(&share.ItemID, &share.Share); err != nil {
				itemRows.Close()
				return nil, fmt.Errorf("failed to scan assignment item: %w", err)
			}
			assignments[i].Items = append(assignments[i].Items, share)
		}
		itemRows.Close()
		if err := itemRows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate assignment items: %w", err)
		}
	}

	return assignments, nil
}
