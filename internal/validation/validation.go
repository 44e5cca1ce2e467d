// Package validation checks user-supplied conversion settings before any
// row is processed.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"fjacquet/icompta-ledger/internal/fileutils"
	"fjacquet/icompta-ledger/internal/parsererror"
)

// ValidateInputFile checks that path names a readable regular file.
func ValidateInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return &parsererror.ConfigurationError{Field: "input", Reason: "input file is required"}
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &parsererror.ConfigurationError{Field: "input", Reason: fmt.Sprintf("file does not exist: %s", path), Err: err}
	}
	if err != nil {
		return &parsererror.ConfigurationError{Field: "input", Reason: fmt.Sprintf("cannot access %s", path), Err: err}
	}
	if !info.Mode().IsRegular() {
		return &parsererror.ConfigurationError{Field: "input", Reason: fmt.Sprintf("%s is not a regular file", path)}
	}

	f, err := os.Open(path)
	if err != nil {
		return &parsererror.ConfigurationError{Field: "input", Reason: fmt.Sprintf("cannot read %s", path), Err: err}
	}
	f.Close()
	return nil
}

// ValidateAccount checks that account can be used as a ledger account name.
// Ledger separates accounts from amounts with two spaces or a tab, so those
// are rejected.
func ValidateAccount(account string) error {
	switch {
	case strings.TrimSpace(account) == "":
		return &parsererror.ConfigurationError{Field: "account", Reason: "balancing account is required"}
	case account != strings.TrimSpace(account):
		return &parsererror.ConfigurationError{Field: "account", Reason: fmt.Sprintf("account %q has surrounding spaces", account)}
	case strings.Contains(account, "\t") || strings.Contains(account, "  "):
		return &parsererror.ConfigurationError{Field: "account", Reason: fmt.Sprintf("account %q contains a tab or a double space", account)}
	}
	return nil
}

// ValidateCurrency checks that currency is a symbol ("$", "€") or a code
// ("CAD") that cannot be mistaken for part of the amount.
func ValidateCurrency(currency string) error {
	if currency == "" {
		return &parsererror.ConfigurationError{Field: "currency", Reason: "currency is required"}
	}
	for _, r := range currency {
		if unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune("-.,;\"", r) {
			return &parsererror.ConfigurationError{Field: "currency", Reason: fmt.Sprintf("invalid character %q in currency %q", r, currency)}
		}
	}
	return nil
}

// ValidateOutputPath checks that output does not overwrite input.
func ValidateOutputPath(input, output string) error {
	if strings.TrimSpace(output) == "" {
		return &parsererror.ConfigurationError{Field: "output", Reason: "output file is required"}
	}
	in, err := filepath.Abs(input)
	if err != nil {
		return &parsererror.ConfigurationError{Field: "input", Reason: "cannot resolve path", Err: err}
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return &parsererror.ConfigurationError{Field: "output", Reason: "cannot resolve path", Err: err}
	}
	if in == out {
		return &parsererror.ConfigurationError{Field: "output", Reason: "output file would overwrite the input file"}
	}
	if fileutils.DirectoryExists(out) {
		return &parsererror.ConfigurationError{Field: "output", Reason: fmt.Sprintf("%s is a directory", output)}
	}
	return nil
}
