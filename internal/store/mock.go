package store

import "fjacquet/icompta-ledger/internal/models"

// MockRuleStore is a mock rule source for testing.
type MockRuleStore struct {
	Rules          []models.CategoryRule
	LoadRulesError error
}

// LoadRules returns the mock rules.
func (m *MockRuleStore) LoadRules() ([]models.CategoryRule, error) {
	if m.LoadRulesError != nil {
		return nil, m.LoadRulesError
	}
	return m.Rules, nil
}
