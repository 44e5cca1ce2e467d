// Package store loads and saves category rule tables.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/icompta-ledger/internal/logging"
	"fjacquet/icompta-ledger/internal/models"

	"gopkg.in/yaml.v3"
)

// RuleStore manages the YAML file holding a custom category rule table.
//
// The file is either a mapping with a top-level "rules" key or a bare list:
//
//	rules:
//	  - pattern: "Équipements:.*"
//	    replacement: "Équipements"
//
// Order in the file is the order in which the rules are applied.
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a store for the given rules file. An empty file name
// means no custom table: LoadRules returns nil and the built-in rules apply.
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RuleStore{
		RulesFile: rulesFile,
		logger:    logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "icompta-ledger", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules reads the rules file. It returns nil rules when no file is
// configured, and an error when a configured file is missing or invalid.
func (s *RuleStore) LoadRules() ([]models.CategoryRule, error) {
	if s.RulesFile == "" {
		s.logger.Debug("No rules file configured, using built-in rules")
		return nil, nil
	}

	filePath, err := s.FindConfigFile(s.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("rules file not found: %s: %w", s.RulesFile, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	rules, err := parseRules(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", filePath, err)
	}

	s.logger.Debug("Loaded category rules",
		logging.F(logging.FieldRulesFile, filePath),
		logging.F(logging.FieldCount, len(rules)))
	return rules, nil
}

func parseRules(data []byte) ([]models.CategoryRule, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return []models.CategoryRule{}, nil
	}

	var rules []models.CategoryRule
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		if err := node.Content[0].Decode(&rules); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var cfg models.CategoryRulesConfig
		if err := node.Content[0].Decode(&cfg); err != nil {
			return nil, err
		}
		rules = cfg.Rules
	default:
		return nil, errors.New("expected a list of rules or a 'rules' key")
	}

	for i, r := range rules {
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule %d has an empty pattern", i+1)
		}
	}
	if rules == nil {
		rules = []models.CategoryRule{}
	}
	return rules, nil
}

// MarshalRules renders a rule table in the rules file format.
func MarshalRules(rules []models.CategoryRule) ([]byte, error) {
	data, err := yaml.Marshal(models.CategoryRulesConfig{Rules: rules})
	if err != nil {
		return nil, fmt.Errorf("error marshaling rules: %w", err)
	}
	return data, nil
}

// SaveRules writes rules to path, creating parent directories as needed.
func (s *RuleStore) SaveRules(rules []models.CategoryRule, path string) error {
	data, err := MarshalRules(rules)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, models.PermissionRulesFile); err != nil {
		return fmt.Errorf("error writing rules: %w", err)
	}

	s.logger.Debug("Saved category rules",
		logging.F(logging.FieldRulesFile, path),
		logging.F(logging.FieldCount, len(rules)))
	return nil
}
