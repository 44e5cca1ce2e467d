package categorizer

import (
	"fmt"

	"fjacquet/icompta-ledger/internal/models"
)

// RuleSource provides a custom rule table. A nil table means the built-in
// rules apply.
type RuleSource interface {
	LoadRules() ([]models.CategoryRule, error)
}

// NewNormalizerFromSource builds a Normalizer from the rules of src.
func NewNormalizerFromSource(mode Mode, root string, src RuleSource) (*Normalizer, error) {
	var rules []models.CategoryRule
	if src != nil {
		var err error
		rules, err = src.LoadRules()
		if err != nil {
			return nil, fmt.Errorf("failed to load category rules: %w", err)
		}
	}
	return NewNormalizer(mode, root, rules)
}
