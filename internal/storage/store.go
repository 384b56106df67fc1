// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/pradiptarana/patungan/internal/models"
)

// Store defines the interface for review-session persistence: parsed
// receipts, their items, and the participant assignments collected during
// review. This abstraction allows swapping storage backends (SQLite,
// PostgreSQL, etc.) without changing the service layer.
type Store interface {
	// CreateReceipt persists a new receipt. Missing receipt/item IDs and
	// the CreatedAt timestamp are populated by the store.
	CreateReceipt(ctx context.Context, receipt *models.ParsedReceipt) error

	// GetReceipt retrieves a receipt by its ID, items in receipt order.
	// Returns nil and an error if the receipt is not found.
	GetReceipt(ctx context.Context, receiptID string) (*models.ParsedReceipt, error)

	// UpdateReceipt replaces an existing receipt's fields and items.
	// Returns an error if the receipt is not found.
	UpdateReceipt(ctx context.Context, receipt *models.ParsedReceipt) error

	// DeleteReceipt removes a receipt and everything attached to it.
	DeleteReceipt(ctx context.Context, receiptID string) error

	// SaveAssignments replaces the stored assignment set for a receipt.
	SaveAssignments(ctx context.Context, receiptID string, assignments []models.ParticipantAssignment) error

	// GetAssignments retrieves the stored assignment set for a receipt.
	// An empty slice is returned when none have been saved.
	GetAssignments(ctx context.Context, receiptID string) ([]models.ParticipantAssignment, error)

	// Close releases any resources held by the store.
	Close() error
}
