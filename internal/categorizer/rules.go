package categorizer

import "fjacquet/icompta-ledger/internal/models"

// DefaultRules returns the built-in substitution table, in application order.
// Sub-categories of furnishing and equipment collapse onto their root label,
// the income root is dropped so postings land under Income:, and the credit
// card category and its transfer are mapped onto the ledger accounts.
func DefaultRules() []models.CategoryRule {
	return []models.CategoryRule{
		{Pattern: `Aménagement:.*`, Replacement: "Aménagement"},
		{Pattern: `Équipements:.*`, Replacement: "Équipements"},
		{Pattern: `Revenus:`, Replacement: ""},
		{Pattern: `Carte de Crédit`, Replacement: "MasterCard"},
		{Pattern: `Transfert:MasterCard`, Replacement: "Assets:Compte Joint"},
	}
}
