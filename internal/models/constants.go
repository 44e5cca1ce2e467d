package models

// iCompta export column positions (0-indexed).
const (
	ColumnDate     = 0
	ColumnCategory = 1
	ColumnPayee    = 5
	ColumnAmount   = 6
	ColumnStatus   = 8
	ColumnComment  = 10
)

// RequiredColumns is the minimum number of cells a row must carry.
const RequiredColumns = ColumnComment + 1

// Ledger layout
const (
	PostingIndent   = "    "
	AmountAlignment = 62
	ExpensesRoot    = "Expenses"
	IncomeRoot      = "Income"
	AssetsRoot      = "Assets"
	LedgerModeLine  = "; -*- ledger -*-"
	DefaultCurrency = "$"
	LedgerExtension = ".ledger"
)

// File permissions
const (
	PermissionDirectory = 0750
	PermissionRulesFile = 0644
)
