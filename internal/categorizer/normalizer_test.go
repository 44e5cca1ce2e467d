package categorizer

import (
	"testing"

	"fjacquet/icompta-ledger/internal/models"
	"fjacquet/icompta-ledger/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_DefaultRules(t *testing.T) {
	n := NewDefaultNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"equipment sub-path collapses", "Équipements:Outils", "Équipements"},
		{"furnishing sub-path collapses", "Aménagement:Cuisine:Meubles", "Aménagement"},
		{"spaced separator", "Aménagement : Cuisine", "Aménagement"},
		{"income root dropped", "Revenus:Salaire", "Salaire"},
		{"credit card renamed", "Carte de Crédit", "MasterCard"},
		{"transfer to card becomes asset", "Transfert:Carte de Crédit", "Assets:Compte Joint"},
		{"no match left untouched", "Alimentation", "Alimentation"},
		{"substring replaced only", "Remboursement Carte de Crédit", "Remboursement MasterCard"},
		{"semicolon separator", "Loisirs;Cinéma", "Loisirs:Cinéma"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_RuleOrderMatters(t *testing.T) {
	first, err := NewNormalizer(ModeRooted, "", []models.CategoryRule{
		{Pattern: `Auto:.*`, Replacement: "Auto"},
		{Pattern: `Auto`, Replacement: "Transport:Voiture"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Transport:Voiture", first.Normalize("Auto:Essence"))

	swapped, err := NewNormalizer(ModeRooted, "", []models.CategoryRule{
		{Pattern: `Auto`, Replacement: "Transport:Voiture"},
		{Pattern: `Auto:.*`, Replacement: "Auto"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Transport:Voiture:Essence", swapped.Normalize("Auto:Essence"))
}

func TestNormalizer_Deterministic(t *testing.T) {
	n := NewDefaultNormalizer()
	want := n.Normalize("Transfert:Carte de Crédit")
	for i := 0; i < 100; i++ {
		assert.Equal(t, want, n.Normalize("Transfert:Carte de Crédit"))
	}
}

func TestNormalizer_Prefixed(t *testing.T) {
	n, err := NewNormalizer(ModePrefixed, "Dépenses", []models.CategoryRule{})
	require.NoError(t, err)

	assert.Equal(t, "Dépenses:Alimentation", n.Normalize("Alimentation"))
	assert.Equal(t, "Dépenses:Frais.bancaires:Cotisation.carte", n.Normalize("Frais bancaires : Cotisation carte"))
	assert.Equal(t, "Dépenses", n.Normalize("   "))
}

func TestNormalizer_PrefixedDefaultRoot(t *testing.T) {
	n, err := NewNormalizer(ModePrefixed, "", nil)
	require.NoError(t, err)

	assert.Equal(t, "Budget:Équipements", n.Normalize("Équipements : Outils de jardin"))
	assert.Equal(t, ModePrefixed, n.Mode())
}

func TestNormalizer_ReplacementExpansion(t *testing.T) {
	n, err := NewNormalizer(ModeRooted, "", []models.CategoryRule{
		{Pattern: `^Voyages:(\w+)$`, Replacement: "Vacances:${1}"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Vacances:Italie", n.Normalize("Voyages:Italie"))
}

func TestNewNormalizer_InvalidPattern(t *testing.T) {
	_, err := NewNormalizer(ModeRooted, "", []models.CategoryRule{
		{Pattern: `Alimentation`, Replacement: "Food"},
		{Pattern: `(unclosed`, Replacement: "x"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 2")
}

func TestNewNormalizer_InvalidMode(t *testing.T) {
	_, err := NewNormalizer(Mode("flat"), "", nil)
	assert.Error(t, err)
}

func TestNormalizer_RulesCopy(t *testing.T) {
	n := NewDefaultNormalizer()
	rules := n.Rules()
	require.Equal(t, DefaultRules(), rules)

	rules[0].Replacement = "changed"
	assert.Equal(t, "Aménagement", n.Rules()[0].Replacement)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeRooted, m)

	m, err = ParseMode(" Prefixed ")
	require.NoError(t, err)
	assert.Equal(t, ModePrefixed, m)

	_, err = ParseMode("flat")
	assert.Error(t, err)
}

func TestNewNormalizerFromSource(t *testing.T) {
	n, err := NewNormalizerFromSource(ModeRooted, "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), n.Rules())

	n, err = NewNormalizerFromSource(ModeRooted, "", &store.MockRuleStore{Rules: []models.CategoryRule{{Pattern: "Alimentation", Replacement: "Food"}}})
	require.NoError(t, err)
	assert.Equal(t, "Food", n.Normalize("Alimentation"))

	_, err = NewNormalizerFromSource(ModeRooted, "", &store.MockRuleStore{LoadRulesError: assert.AnError})
	assert.ErrorIs(t, err, assert.AnError)
}
