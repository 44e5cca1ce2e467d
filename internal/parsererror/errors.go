// Package parsererror defines the error types returned while converting an
// iCompta export into a ledger file.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is wrapped by MalformedRowError when a row is too short.
var ErrMissingColumn = errors.New("missing required column")

// ErrInvalidAmount is wrapped by MalformedRowError when the amount cell
// cannot be normalized into a numeric magnitude.
var ErrInvalidAmount = errors.New("invalid amount")

// ConfigurationError represents an invalid or missing argument, detected
// before any row is processed.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration for %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// MalformedRowError represents a row that cannot be turned into an entry.
// Line is the 1-based line number in the input file, 0 when unknown.
type MalformedRowError struct {
	Line   int
	Column string
	Value  string
	Reason string
	Err    error
}

func (e *MalformedRowError) Error() string {
	where := "row"
	if e.Line > 0 {
		where = fmt.Sprintf("row %d", e.Line)
	}
	if e.Value != "" {
		return fmt.Sprintf("%s: malformed %s='%s': %s", where, e.Column, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: malformed %s: %s", where, e.Column, e.Reason)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// IOError represents a failure to open, write or close a file.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsMalformedRow reports whether err is or wraps a MalformedRowError.
func IsMalformedRow(err error) bool {
	var rowErr *MalformedRowError
	return errors.As(err, &rowErr)
}
