// Package export writes processed transactions to delimited output.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"budgy/docproc/internal/models"
)

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []models.TransactionRecord) error {
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return nil
}

// WriteJSON writes records as an indented JSON array. An empty input
// produces an empty array, never null.
func WriteJSON(w io.Writer, records []models.TransactionRecord) error {
	if records == nil {
		records = []models.TransactionRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("error writing JSON: %w", err)
	}
	return nil
}
