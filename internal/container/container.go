// Package container provides dependency injection for the icompta-ledger
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/icompta-ledger/internal/categorizer"
	"fjacquet/icompta-ledger/internal/config"
	"fjacquet/icompta-ledger/internal/converter"
	"fjacquet/icompta-ledger/internal/logging"
	"fjacquet/icompta-ledger/internal/parsererror"
	"fjacquet/icompta-ledger/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.RuleStore
	normalizer *categorizer.Normalizer
	converter  *converter.Converter
}

// NewContainer creates and wires all application dependencies with a logger
// built from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
// A rule table that cannot be loaded or compiled is a
// *parsererror.ConfigurationError.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	mode, err := categorizer.ParseMode(cfg.Categories.Mode)
	if err != nil {
		return nil, &parsererror.ConfigurationError{Field: "mode", Reason: "invalid category mode", Err: err}
	}

	ruleStore := store.NewRuleStore(cfg.Categories.RulesFile, logger)
	normalizer, err := categorizer.NewNormalizerFromSource(mode, cfg.Categories.Root, ruleStore)
	if err != nil {
		return nil, &parsererror.ConfigurationError{Field: "rules", Reason: "cannot build category rules", Err: err}
	}

	conv := converter.NewConverter(normalizer, logger)

	logger.Debug("Container initialized successfully",
		logging.F("mode", string(normalizer.Mode())),
		logging.F("rules_count", len(normalizer.Rules())),
		logging.F(logging.FieldRulesFile, cfg.Categories.RulesFile))

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      ruleStore,
		normalizer: normalizer,
		converter:  conv,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's rule store instance.
func (c *Container) GetStore() *store.RuleStore {
	return c.store
}

// GetNormalizer returns the category normalizer shared by every conversion.
func (c *Container) GetNormalizer() *categorizer.Normalizer {
	return c.normalizer
}

// GetConverter returns the converter wired with the container's normalizer
// and logger.
func (c *Container) GetConverter() *converter.Converter {
	return c.converter
}

// ConverterOptions returns conversion options for input and account seeded
// from the configuration.
func (c *Container) ConverterOptions(input, account string) converter.Options {
	opts := converter.DefaultOptions(input, account)
	opts.Currency = c.config.Ledger.Currency
	opts.SkipHeader = c.config.Ledger.SkipHeader
	opts.Header = c.config.Ledger.Header
	opts.Encoding = c.config.Ledger.Encoding
	opts.Strict = c.config.Ledger.Strict
	opts.Delimiter = c.config.Delimiter()
	return opts
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
