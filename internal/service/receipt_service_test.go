package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/pradiptarana/patungan/internal/models"
	"github.com/pradiptarana/patungan/internal/storage/sqlite"
)

// setupTestServer creates a test server backed by a temp SQLite database.
func setupTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	mux := http.NewServeMux()
	NewReceiptService(store).Register(mux)
	server := httptest.NewServer(mux)

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return server, cleanup
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp
}

func TestParseEndpoint(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	var receipt models.ParsedReceipt
	resp := postJSON(t, server.URL+"/api/v1/receipts/parse", ParseReceiptRequest{
		Text: "WARUNG MAKMUR\n================\nNasi Goreng    25.000\nEs Teh          5.000\n================\nSubtotal       30.000\nPPN             3.000\nTotal          33.000",
	}, &receipt)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if receipt.ID == "" {
		t.Error("expected receipt ID to be assigned")
	}
	if len(receipt.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(receipt.Items))
	}
	if receipt.GrandTotal != 33000 {
		t.Errorf("grand total = %v, want 33000", receipt.GrandTotal)
	}

	// Parsed receipt must be retrievable afterwards
	getResp, err := http.Get(server.URL + "/api/v1/receipts/" + receipt.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Errorf("get status = %d, want %d", getResp.StatusCode, http.StatusOK)
	}
}

func TestParseEndpointRejectsEmptyText(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	resp := postJSON(t, server.URL+"/api/v1/receipts/parse", ParseReceiptRequest{Text: "   "}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestManualCreateNormalizesItems(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	var created models.ParsedReceipt
	resp := postJSON(t, server.URL+"/api/v1/receipts", models.ParsedReceipt{
		Subtotal:   15000,
		GrandTotal: 15000,
		Items: []models.ReceiptItem{
			{Name: "Ayam Bakar", Total: 15000}, // qty omitted
		},
	}, &created)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if created.Items[0].Qty != 1 {
		t.Errorf("qty = %d, want 1 (defaulted)", created.Items[0].Qty)
	}
	if created.Items[0].ID == "" {
		t.Error("expected item ID to be assigned")
	}
}

func TestUpdateAndDeleteReceipt(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	var created models.ParsedReceipt
	postJSON(t, server.URL+"/api/v1/receipts", models.ParsedReceipt{
		Subtotal:   10000,
		GrandTotal: 10000,
		Items:      []models.ReceiptItem{{Name: "Kopi", Qty: 1, Total: 10000}},
	}, &created)

	created.Subtotal = 12000
	created.GrandTotal = 12000
	created.Items[0].Total = 12000
	payload, _ := json.Marshal(created)
	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/v1/receipts/"+created.ID, bytes.NewReader(payload))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	req, _ = http.NewRequest(http.MethodDelete, server.URL+"/api/v1/receipts/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}

	getResp, err := http.Get(server.URL + "/api/v1/receipts/" + created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", getResp.StatusCode, http.StatusNotFound)
	}
}

func TestSplitFlow(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	var receipt models.ParsedReceipt
	postJSON(t, server.URL+"/api/v1/receipts", models.ParsedReceipt{
		Subtotal:   30000,
		Tax:        3000,
		GrandTotal: 33000,
		Items: []models.ReceiptItem{
			{Name: "Nasi Goreng", Qty: 1, Total: 20000},
			{Name: "Es Teh", Qty: 1, Total: 10000},
		},
	}, &receipt)

	var result models.SplitResult
	resp := postJSON(t, fmt.Sprintf("%s/api/v1/receipts/%s/split", server.URL, receipt.ID), SplitReceiptRequest{
		Assignments: []models.ParticipantAssignment{
			{ParticipantName: "Alice", Items: []models.ItemShare{{ItemID: receipt.Items[0].ID, Share: 1}}},
			{ParticipantName: "Bob", Items: []models.ItemShare{{ItemID: receipt.Items[1].ID, Share: 1}}},
		},
	}, &result)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("split status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if len(result.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(result.Participants))
	}
	alice := result.Participants[0]
	if math.Abs(alice.Total-22000) > 0.01 {
		t.Errorf("Alice total = %v, want 22000", alice.Total)
	}
	if result.UnassignedTotal != 0 {
		t.Errorf("unassigned = %v, want 0", result.UnassignedTotal)
	}

	// Assignments were saved for the review session
	var assignments []models.ParticipantAssignment
	getResp, err := http.Get(fmt.Sprintf("%s/api/v1/receipts/%s/assignments", server.URL, receipt.ID))
	if err != nil {
		t.Fatalf("get assignments failed: %v", err)
	}
	defer getResp.Body.Close()
	if err := json.NewDecoder(getResp.Body).Decode(&assignments); err != nil {
		t.Fatalf("failed to decode assignments: %v", err)
	}
	if len(assignments) != 2 {
		t.Errorf("stored assignments = %d, want 2", len(assignments))
	}
}

func TestSplitRejectsInvalidShare(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	var receipt models.ParsedReceipt
	postJSON(t, server.URL+"/api/v1/receipts", models.ParsedReceipt{
		Subtotal:   10000,
		GrandTotal: 10000,
		Items:      []models.ReceiptItem{{Name: "Kopi", Qty: 1, Total: 10000}},
	}, &receipt)

	resp := postJSON(t, fmt.Sprintf("%s/api/v1/receipts/%s/split", server.URL, receipt.ID), SplitReceiptRequest{
		Assignments: []models.ParticipantAssignment{
			{ParticipantName: "Alice", Items: []models.ItemShare{{ItemID: receipt.Items[0].ID, Share: 1.5}}},
		},
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestSplitUnknownReceipt(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	resp := postJSON(t, server.URL+"/api/v1/receipts/nonexistent/split", SplitReceiptRequest{
		Assignments: []models.ParticipantAssignment{
			{ParticipantName: "Alice"},
		},
	}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}
