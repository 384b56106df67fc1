// Command receiptparse parses one receipt's OCR text and prints the
// structured result as JSON. Reads a file path argument or stdin.
//
//	receiptparse receipt.txt
//	tesseract receipt.jpg - | receiptparse
package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/pradiptarana/patungan/internal/parser"
	"github.com/pradiptarana/patungan/pkg/logging"
)

func main() {
	logging.Setup()

	var (
		text []byte
		err  error
	)
	if len(os.Args) > 1 {
		text, err = os.ReadFile(os.Args[1])
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		slog.Error("Failed to read input", "error", err)
		os.Exit(1)
	}

	receipt := parser.Parse(string(text))
	slog.Debug("Parsed receipt",
		"items", len(receipt.Items),
		"subtotal", receipt.Subtotal,
		"grand_total", receipt.GrandTotal,
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(receipt); err != nil {
		slog.Error("Failed to encode receipt", "error", err)
		os.Exit(1)
	}
}
