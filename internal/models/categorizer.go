// Package models provides the data structures used throughout the application.
package models

// CategoryRule is one ordered substitution of the category normalizer.
// Pattern is a regular expression; only the matched part of the category is
// replaced by Replacement.
type CategoryRule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// CategoryRulesConfig represents the structure of a rules YAML file.
type CategoryRulesConfig struct {
	Rules []CategoryRule `yaml:"rules"`
}
