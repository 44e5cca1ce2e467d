// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"fjacquet/icompta-ledger/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Ledger struct {
		Currency   string `mapstructure:"currency" yaml:"currency"`
		SkipHeader bool   `mapstructure:"skip_header" yaml:"skip_header"`
		Header     bool   `mapstructure:"header" yaml:"header"`
		Encoding   string `mapstructure:"encoding" yaml:"encoding"`
		Strict     bool   `mapstructure:"strict" yaml:"strict"`
		Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Categories struct {
		Mode      string `mapstructure:"mode" yaml:"mode"`
		Root      string `mapstructure:"root" yaml:"root"`
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"categories" yaml:"categories"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return initializeConfig("")
}

// InitializeConfigFromFile loads configuration from an explicit file instead
// of searching the standard locations. An empty path behaves like
// InitializeConfig.
func InitializeConfigFromFile(path string) (*Config, error) {
	return initializeConfig(path)
}

func initializeConfig(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.icompta-ledger")
		v.AddConfigPath(".icompta-ledger")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("ICL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicitly given)
	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ledger.currency", models.DefaultCurrency)
	v.SetDefault("ledger.skip_header", true)
	v.SetDefault("ledger.header", true)
	v.SetDefault("ledger.encoding", "utf-8")
	v.SetDefault("ledger.strict", false)
	v.SetDefault("ledger.delimiter", ",")

	v.SetDefault("categories.mode", "rooted")
	v.SetDefault("categories.root", "Budget")
	v.SetDefault("categories.rules_file", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.Ledger.Delimiter)) != 1 {
		return fmt.Errorf("ledger delimiter must be a single character, got: %s", config.Ledger.Delimiter)
	}

	if strings.TrimSpace(config.Ledger.Currency) == "" {
		return fmt.Errorf("ledger.currency must not be empty")
	}

	if config.Ledger.Encoding == "" {
		return fmt.Errorf("ledger.encoding must not be empty")
	}

	switch config.Categories.Mode {
	case "rooted", "prefixed":
	default:
		return fmt.Errorf("invalid categories mode: %s (must be 'rooted' or 'prefixed')", config.Categories.Mode)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r := []rune(c.Ledger.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}
