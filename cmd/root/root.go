// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/icompta-ledger/internal/config"
	"fjacquet/icompta-ledger/internal/container"
	"fjacquet/icompta-ledger/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig is the configuration loaded before any subcommand runs.
	AppConfig *config.Config

	// AppContainer is the container built by the last subcommand, if any.
	AppContainer *container.Container

	// ConfigFile, LogLevel and LogFormat back the persistent flags.
	ConfigFile string
	LogLevel   string
	LogFormat  string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "icompta-ledger",
		Short: "A CLI tool to convert iCompta CSV exports into ledger files.",
		Long: `icompta-ledger converts iCompta CSV exports into plain-text ledger files.
Each row becomes a dated entry whose category is mapped onto a ledger account
by an ordered table of substitution rules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to icompta-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			_, err := LoadConfig()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.Warnf("Failed to close container: %v", err)
				}
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Configuration file (default searches $HOME/.icompta-ledger, .icompta-ledger and .)")
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "Log format (text or json)")
}

// LoadConfig loads the configuration, applies the logging flags and
// reconfigures Log accordingly.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.InitializeConfigFromFile(ConfigFile)
	if err != nil {
		return nil, err
	}
	if LogLevel != "" {
		if _, err := logrus.ParseLevel(LogLevel); err != nil {
			return nil, fmt.Errorf("invalid log level: %s", LogLevel)
		}
		cfg.Log.Level = LogLevel
	}
	if LogFormat != "" {
		if LogFormat != "text" && LogFormat != "json" {
			return nil, fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", LogFormat)
		}
		cfg.Log.Format = LogFormat
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	AppConfig = cfg
	return cfg, nil
}

// GetConfig returns a copy of the loaded configuration, loading it on first
// use. Subcommands may change the copy without affecting other commands.
func GetConfig() (*config.Config, error) {
	if AppConfig == nil {
		if _, err := LoadConfig(); err != nil {
			return nil, err
		}
	}
	cfg := *AppConfig
	return &cfg, nil
}

// GetLogger returns Log behind the logging.Logger interface.
func GetLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// NewContainer builds the application container for cfg and records it so
// that it is closed when the command finishes.
func NewContainer(cfg *config.Config) (*container.Container, error) {
	c, err := container.NewContainerWithLogger(cfg, GetLogger())
	if err != nil {
		return nil, err
	}
	AppContainer = c
	return c, nil
}

// GetContainer returns the container built by the running command, or nil.
func GetContainer() *container.Container {
	return AppContainer
}
