// Package common contains shared functionality for command handlers
package common

import (
	"fmt"

	"fjacquet/icompta-ledger/cmd/root"
	"fjacquet/icompta-ledger/internal/config"
	"fjacquet/icompta-ledger/internal/container"
	"fjacquet/icompta-ledger/internal/converter"

	"github.com/spf13/cobra"
)

// ConversionFlags holds the flags shared by the commands that read an
// iCompta export. Flags left unset keep the configured values.
type ConversionFlags struct {
	Currency   string
	Output     string
	Verbose    bool
	Encoding   string
	SkipHeader bool
	NoHeader   bool
	Strict     bool
	RulesFile  string
	Mode       string
	Root       string
}

// Register defines the conversion flags on cmd. outputUsage describes the -o
// flag of that command; an empty usage leaves -o undefined.
func (f *ConversionFlags) Register(cmd *cobra.Command, outputUsage string) {
	flags := cmd.Flags()
	flags.StringVarP(&f.Currency, "currency", "c", "$", "Currency symbol or code")
	if outputUsage != "" {
		flags.StringVarP(&f.Output, "output", "o", "", outputUsage)
	}
	flags.BoolVarP(&f.Verbose, "verbose", "v", false, "Log every entry and the final count")
	flags.StringVar(&f.Encoding, "encoding", "utf-8", "Charset of the input file (any WHATWG label)")
	flags.BoolVar(&f.SkipHeader, "skip-header", true, "Skip the first row of the input file")
	flags.BoolVar(&f.NoHeader, "no-header", false, "Do not write the ledger header")
	flags.BoolVar(&f.Strict, "strict", false, "Abort on the first malformed row instead of skipping it")
	flags.StringVar(&f.RulesFile, "rules", "", "YAML file with the category rules")
	flags.StringVar(&f.Mode, "mode", "rooted", "Category mode (rooted or prefixed)")
	flags.StringVar(&f.Root, "root", "Budget", "Root account of the prefixed mode")
}

// ApplyToConfig copies the flags the user set on cmd into cfg.
func (f *ConversionFlags) ApplyToConfig(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("currency") {
		cfg.Ledger.Currency = f.Currency
	}
	if changed("encoding") {
		cfg.Ledger.Encoding = f.Encoding
	}
	if changed("skip-header") {
		cfg.Ledger.SkipHeader = f.SkipHeader
	}
	if changed("no-header") {
		cfg.Ledger.Header = !f.NoHeader
	}
	if changed("strict") {
		cfg.Ledger.Strict = f.Strict
	}
	if changed("rules") {
		cfg.Categories.RulesFile = f.RulesFile
	}
	if changed("mode") {
		cfg.Categories.Mode = f.Mode
	}
	if changed("root") {
		cfg.Categories.Root = f.Root
	}
}

// Setup loads the configuration, applies the flags and builds the container.
func (f *ConversionFlags) Setup(cmd *cobra.Command) (*container.Container, error) {
	cfg, err := root.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	f.ApplyToConfig(cmd, cfg)
	return root.NewContainer(cfg)
}

// Options returns the conversion options for input and account.
func (f *ConversionFlags) Options(c *container.Container, input, account string) converter.Options {
	opts := c.ConverterOptions(input, account)
	opts.Output = f.Output
	opts.Verbose = f.Verbose
	return opts
}
