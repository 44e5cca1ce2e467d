package validation_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/icompta-ledger/internal/parsererror"
	"fjacquet/icompta-ledger/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertConfigurationError(t *testing.T, err error, field string) {
	t.Helper()
	var cfgErr *parsererror.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
	assert.Equal(t, field, cfgErr.Field)
}

func TestValidateInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "export.csv")
	require.NoError(t, os.WriteFile(testFile, []byte("x"), 0600))

	assert.NoError(t, validation.ValidateInputFile(testFile))

	err := validation.ValidateInputFile(filepath.Join(tmpDir, "missing.csv"))
	assertConfigurationError(t, err, "input")
	assert.ErrorIs(t, err, os.ErrNotExist)

	assertConfigurationError(t, validation.ValidateInputFile(tmpDir), "input")
	assertConfigurationError(t, validation.ValidateInputFile(""), "input")
}

func TestValidateAccount(t *testing.T) {
	tests := []struct {
		name    string
		account string
		valid   bool
	}{
		{"simple", "Liabilities:MasterCard", true},
		{"single inner space", "Assets:Compte Joint", true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"leading space", " Assets:Banque", false},
		{"double space", "Assets:Compte  Joint", false},
		{"tab", "Assets:\tBanque", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateAccount(tt.account)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assertConfigurationError(t, err, "account")
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	for _, c := range []string{"$", "€", "CAD", "CHF", "US$"} {
		assert.NoError(t, validation.ValidateCurrency(c), c)
	}
	for _, c := range []string{"", "1$", "E UR", "-", "EUR;"} {
		assertConfigurationError(t, validation.ValidateCurrency(c), "currency")
	}
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")

	assert.NoError(t, validation.ValidateOutputPath(input, filepath.Join(dir, "export.ledger")))
	assertConfigurationError(t, validation.ValidateOutputPath(input, input), "output")
	assertConfigurationError(t, validation.ValidateOutputPath(input, dir), "output")
	assertConfigurationError(t, validation.ValidateOutputPath(input, ""), "output")
}
