package icompta

import (
	"fmt"
	"io"
	"os"

	"fjacquet/icompta-ledger/internal/models"
)

// ValidateFormat checks that filePath looks like an iCompta export: it must
// decode with opts and its first data row must carry every required column.
// An export without data rows is valid.
func ValidateFormat(filePath string, opts Options) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Errorf("error opening file for validation: %w", err)
	}
	defer file.Close()

	reader, err := NewReader(file, opts)
	if err != nil {
		return false, err
	}

	_, row, err := reader.Next()
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, nil
	}
	return len(row) >= models.RequiredColumns, nil
}
