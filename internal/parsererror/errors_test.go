package parsererror

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigurationError
		expected string
	}{
		{
			name: "without cause",
			err: &ConfigurationError{
				Field:  "account",
				Reason: "balancing account is required",
			},
			expected: "invalid configuration for account: balancing account is required",
		},
		{
			name: "with cause",
			err: &ConfigurationError{
				Field:  "input",
				Reason: "cannot read input file",
				Err:    os.ErrNotExist,
			},
			expected: "invalid configuration for input: cannot read input file: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestConfigurationError_Unwrap(t *testing.T) {
	err := &ConfigurationError{Field: "input", Reason: "missing", Err: os.ErrNotExist}
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMalformedRowError(t *testing.T) {
	tests := []struct {
		name     string
		err      *MalformedRowError
		expected string
	}{
		{
			name: "with line and value",
			err: &MalformedRowError{
				Line:   4,
				Column: "amount",
				Value:  "abc",
				Reason: "not a number",
				Err:    ErrInvalidAmount,
			},
			expected: "row 4: malformed amount='abc': not a number",
		},
		{
			name: "unknown line",
			err: &MalformedRowError{
				Column: "comment",
				Reason: "row has 6 columns, need 11",
				Err:    ErrMissingColumn,
			},
			expected: "row: malformed comment: row has 6 columns, need 11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestMalformedRowError_Unwrap(t *testing.T) {
	err := &MalformedRowError{Column: "amount", Reason: "empty", Err: ErrInvalidAmount}
	assert.True(t, errors.Is(err, ErrInvalidAmount))
	assert.False(t, errors.Is(err, ErrMissingColumn))
}

func TestIOError(t *testing.T) {
	err := &IOError{Path: "/tmp/out.ledger", Op: "create", Err: os.ErrPermission}
	assert.Equal(t, "create /tmp/out.ledger: permission denied", err.Error())
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestIsMalformedRow(t *testing.T) {
	rowErr := &MalformedRowError{Column: "amount", Reason: "empty"}

	assert.True(t, IsMalformedRow(rowErr))
	assert.True(t, IsMalformedRow(fmt.Errorf("converting: %w", rowErr)))
	assert.False(t, IsMalformedRow(&IOError{Path: "x", Op: "write", Err: os.ErrClosed}))
	assert.False(t, IsMalformedRow(nil))
}
