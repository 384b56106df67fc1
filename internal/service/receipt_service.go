// Package service exposes the parser and split calculator over a JSON HTTP
// API and owns the review-session persistence around them.
package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pradiptarana/patungan/internal/calculator"
	"github.com/pradiptarana/patungan/internal/models"
	"github.com/pradiptarana/patungan/internal/parser"
	"github.com/pradiptarana/patungan/internal/storage"
)

// ReceiptService handles the receipt review lifecycle: parse OCR text (or
// accept a manually entered receipt), let the client edit the result, and
// split the final receipt across participants.
type ReceiptService struct {
	store storage.Store
}

// NewReceiptService creates a new ReceiptService with the given storage backend.
func NewReceiptService(store storage.Store) *ReceiptService {
	return &ReceiptService{store: store}
}

// Register mounts the service's routes on the given mux.
func (s *ReceiptService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/receipts/parse", s.handleParse)
	mux.HandleFunc("POST /api/v1/receipts", s.handleCreate)
	mux.HandleFunc("GET /api/v1/receipts/{id}", s.handleGet)
	mux.HandleFunc("PUT /api/v1/receipts/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /api/v1/receipts/{id}", s.handleDelete)
	mux.HandleFunc("POST /api/v1/receipts/{id}/split", s.handleSplit)
	mux.HandleFunc("GET /api/v1/receipts/{id}/assignments", s.handleGetAssignments)
}

// ParseReceiptRequest carries the best-effort OCR text for one receipt.
type ParseReceiptRequest struct {
	Text string `json:"text"`
}

// SplitReceiptRequest carries the participant assignments for a split.
type SplitReceiptRequest struct {
	Assignments []models.ParticipantAssignment `json:"assignments"`
}

// errorResponse is the JSON body for all error statuses.
type errorResponse struct {
	Error string `json:"error"`
}

// handleParse turns OCR text into a structured receipt and persists it for
// the review session.
func (s *ReceiptService) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("text is required"))
		return
	}

	receipt := parser.Parse(req.Text)
	if err := s.store.CreateReceipt(r.Context(), receipt); err != nil {
		slog.Error("ParseReceipt: failed to persist", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	slog.Info("Receipt parsed",
		"receipt_id", receipt.ID,
		"items", len(receipt.Items),
		"subtotal", receipt.Subtotal,
		"grand_total", receipt.GrandTotal,
		"tax_inclusive", receipt.TaxInclusive,
	)
	writeJSON(w, http.StatusCreated, receipt)
}

// handleCreate accepts an already-structured receipt: the manual entry path
// used when the OCR step failed upstream.
func (s *ReceiptService) handleCreate(w http.ResponseWriter, r *http.Request) {
	var receipt models.ParsedReceipt
	if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	normalizeReceipt(&receipt)

	if err := s.store.CreateReceipt(r.Context(), &receipt); err != nil {
		slog.Error("CreateReceipt failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	slog.Info("Receipt created manually", "receipt_id", receipt.ID, "items", len(receipt.Items))
	writeJSON(w, http.StatusCreated, &receipt)
}

func (s *ReceiptService) handleGet(w http.ResponseWriter, r *http.Request) {
	receiptID := r.PathValue("id")
	receipt, err := s.store.GetReceipt(r.Context(), receiptID)
	if err != nil {
		slog.Warn("GetReceipt failed", "receipt_id", receiptID, "error", err)
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// handleUpdate saves review edits: items added, changed or removed, and
// totals overridden by the user.
func (s *ReceiptService) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var receipt models.ParsedReceipt
	if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	receipt.ID = r.PathValue("id")
	normalizeReceipt(&receipt)

	if err := s.store.UpdateReceipt(r.Context(), &receipt); err != nil {
		slog.Warn("UpdateReceipt failed", "receipt_id", receipt.ID, "error", err)
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, &receipt)
}

func (s *ReceiptService) handleDelete(w http.ResponseWriter, r *http.Request) {
	receiptID := r.PathValue("id")
	if err := s.store.DeleteReceipt(r.Context(), receiptID); err != nil {
		slog.Warn("DeleteReceipt failed", "receipt_id", receiptID, "error", err)
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSplit calculates per-person totals for a stored receipt and keeps
// the submitted assignment set for the review session.
func (s *ReceiptService) handleSplit(w http.ResponseWriter, r *http.Request) {
	receiptID := r.PathValue("id")

	var req SplitReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := validateAssignments(req.Assignments); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	receipt, err := s.store.GetReceipt(r.Context(), receiptID)
	if err != nil {
		slog.Warn("SplitReceipt: receipt not found", "receipt_id", receiptID, "error", err)
		writeError(w, http.StatusNotFound, err)
		return
	}

	result := calculator.CalculateSplit(receipt, req.Assignments)

	if err := s.store.SaveAssignments(r.Context(), receiptID, req.Assignments); err != nil {
		slog.Error("SplitReceipt: failed to save assignments", "receipt_id", receiptID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	slog.Info("Receipt split",
		"receipt_id", receiptID,
		"participants", len(result.Participants),
		"unassigned_total", result.UnassignedTotal,
	)
	writeJSON(w, http.StatusOK, result)
}

func (s *ReceiptService) handleGetAssignments(w http.ResponseWriter, r *http.Request) {
	receiptID := r.PathValue("id")
	assignments, err := s.store.GetAssignments(r.Context(), receiptID)
	if err != nil {
		slog.Error("GetAssignments failed", "receipt_id", receiptID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if assignments == nil {
		assignments = []models.ParticipantAssignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}

// validateAssignments checks that every item share is a usable fraction.
// Stale item ids are allowed; the calculator skips them.
func validateAssignments(assignments []models.ParticipantAssignment) error {
	for _, assignment := range assignments {
		if assignment.ParticipantName == "" && assignment.ParticipantID == "" {
			return fmt.Errorf("participant must have a name or id")
		}
		for _, share := range assignment.Items {
			if share.Share <= 0 || share.Share > 1 {
				return fmt.Errorf("share for item %q must be in (0,1], got %v", share.ItemID, share.Share)
			}
		}
	}
	return nil
}

// normalizeReceipt applies the parser's display rules to manually entered
// or edited receipts: quantities default to 1 and names are truncated.
func normalizeReceipt(receipt *models.ParsedReceipt) {
	for i := range receipt.Items {
		item := &receipt.Items[i]
		if item.Qty <= 0 {
			item.Qty = 1
		}
		if runes := []rune(item.Name); len(runes) > models.MaxItemNameLen {
			item.Name = string(runes[:models.MaxItemNameLen])
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
