package models

import "strings"

// TransactionEntry is the logical form of one iCompta row, ready to be
// rendered as a ledger entry. It is built once and never mutated.
type TransactionEntry struct {
	Date        string `csv:"Date"`
	Payee       string `csv:"Payee"`
	RawCategory string `csv:"Raw Category"`
	Category    string `csv:"Category"`
	Amount      string `csv:"Amount"`
	Currency    string `csv:"Currency"`
	IsIncome    bool   `csv:"Income"`
	Status      string `csv:"Status"`
	Comment     string `csv:"Comment"`
	Account     string `csv:"Account"`
}

// HasComment reports whether the entry carries a comment line.
func (e TransactionEntry) HasComment() bool {
	return e.Comment != ""
}

// Target returns the account of the posting that carries the amount.
func (e TransactionEntry) Target() string {
	if e.IsIncome {
		return e.Account
	}
	return ExpensesRoot + ":" + e.Category
}

// Source returns the account of the implicit second posting of an income
// entry. Categories already rooted under Assets are transfers and keep
// their name.
func (e TransactionEntry) Source() string {
	if strings.HasPrefix(e.Category, AssetsRoot) {
		return e.Category
	}
	return IncomeRoot + ":" + e.Category
}
