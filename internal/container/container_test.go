package container

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/icompta-ledger/internal/config"
	"fjacquet/icompta-ledger/internal/logging"
	"fjacquet/icompta-ledger/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Ledger.Currency = "$"
	cfg.Ledger.SkipHeader = true
	cfg.Ledger.Header = true
	cfg.Ledger.Encoding = "utf-8"
	cfg.Ledger.Delimiter = ","
	cfg.Categories.Mode = "rooted"
	cfg.Categories.Root = "Budget"
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		errorMsg    string
		rulesCount  int
	}{
		{
			name:        "nil config",
			config:      func(t *testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:       "built-in rules",
			config:     func(t *testing.T) *config.Config { return testConfig() },
			rulesCount: 5,
		},
		{
			name: "custom rules file",
			config: func(t *testing.T) *config.Config {
				path := filepath.Join(t.TempDir(), "rules.yaml")
				require.NoError(t, os.WriteFile(path, []byte("rules:\n  - pattern: \"Loisirs:.*\"\n    replacement: \"Loisirs\"\n"), 0644))
				cfg := testConfig()
				cfg.Categories.RulesFile = path
				return cfg
			},
			rulesCount: 1,
		},
		{
			name: "missing rules file",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig()
				cfg.Categories.RulesFile = filepath.Join(t.TempDir(), "missing.yaml")
				return cfg
			},
			expectError: true,
			errorMsg:    "cannot build category rules",
		},
		{
			name: "invalid mode",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig()
				cfg.Categories.Mode = "flat"
				return cfg
			},
			expectError: true,
			errorMsg:    "invalid category mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, err := NewContainerWithLogger(tt.config(t), logging.NewMockLogger())

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, container)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, container)
			assert.NotNil(t, container.GetLogger())
			assert.NotNil(t, container.GetConfig())
			assert.NotNil(t, container.GetStore())
			assert.NotNil(t, container.GetConverter())
			assert.Len(t, container.GetNormalizer().Rules(), tt.rulesCount)
		})
	}
}

func TestNewContainer_NilConfig(t *testing.T) {
	container, err := NewContainer(nil)
	assert.Nil(t, container)
	assert.EqualError(t, err, "configuration cannot be nil")
}

func TestNewContainer_ConfigurationErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Categories.Mode = "flat"

	_, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	var cfgErr *parsererror.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "mode", cfgErr.Field)
}

func TestContainer_PrefixedMode(t *testing.T) {
	cfg := testConfig()
	cfg.Categories.Mode = "prefixed"
	cfg.Categories.Root = "Budget"

	container, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, "Budget:Frais.bancaires", container.GetNormalizer().Normalize("Frais bancaires"))
}

func TestContainer_ConverterOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Ledger.Currency = "CAD"
	cfg.Ledger.SkipHeader = false
	cfg.Ledger.Header = false
	cfg.Ledger.Encoding = "macintosh"
	cfg.Ledger.Strict = true
	cfg.Ledger.Delimiter = ";"

	container, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	opts := container.ConverterOptions("in.csv", "Assets:Cash")
	assert.Equal(t, "in.csv", opts.Input)
	assert.Equal(t, "Assets:Cash", opts.Account)
	assert.Equal(t, "CAD", opts.Currency)
	assert.False(t, opts.SkipHeader)
	assert.False(t, opts.Header)
	assert.Equal(t, "macintosh", opts.Encoding)
	assert.True(t, opts.Strict)
	assert.Equal(t, ';', opts.Delimiter)
	assert.Equal(t, "in.ledger", opts.OutputPath())
}

func TestContainer_Close(t *testing.T) {
	logger := logging.NewMockLogger()
	container, err := NewContainerWithLogger(testConfig(), logger)
	require.NoError(t, err)

	assert.NoError(t, container.Close())
	assert.True(t, logger.HasEntry("DEBUG", "Container closed"))
}
