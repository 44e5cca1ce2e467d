// Package common provides output helpers shared by the CLI commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/icompta-ledger/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter separates cells of the review CSV.
const DefaultDelimiter = ','

// WriteEntriesCSV writes entries as a review CSV with one header row, in the
// order given. The columns follow the csv tags of models.TransactionEntry.
func WriteEntriesCSV(w io.Writer, entries []models.TransactionEntry, delimiter rune) error {
	if entries == nil {
		entries = []models.TransactionEntry{}
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(entries, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
