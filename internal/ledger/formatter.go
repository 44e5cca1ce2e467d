// Package ledger renders iCompta rows as ledger entries.
package ledger

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/icompta-ledger/internal/categorizer"
	"fjacquet/icompta-ledger/internal/currencyutils"
	"fjacquet/icompta-ledger/internal/models"
	"fjacquet/icompta-ledger/internal/parsererror"
)

// Formatter builds and renders ledger entries. It holds no per-row state and
// may be shared.
type Formatter struct {
	normalizer *categorizer.Normalizer
	account    string
	currency   string
}

// NewFormatter returns a Formatter posting against account. A nil normalizer
// selects the built-in rules and an empty currency selects "$".
func NewFormatter(normalizer *categorizer.Normalizer, account, currency string) *Formatter {
	if normalizer == nil {
		normalizer = categorizer.NewDefaultNormalizer()
	}
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return &Formatter{
		normalizer: normalizer,
		account:    account,
		currency:   currency,
	}
}

// Header returns the directives written once at the top of a ledger file.
func Header(account string) string {
	return models.LedgerModeLine + "\n\nbucket " + account + "\n"
}

// Build extracts a TransactionEntry from row. Rows missing a required column
// or carrying an unreadable amount yield a *parsererror.MalformedRowError.
func (f *Formatter) Build(row models.RawRow) (models.TransactionEntry, error) {
	if len(row) < models.RequiredColumns {
		return models.TransactionEntry{}, &parsererror.MalformedRowError{
			Column: models.ColumnName(models.RequiredColumns - 1),
			Reason: fmt.Sprintf("row has %d columns, need %d", len(row), models.RequiredColumns),
			Err:    parsererror.ErrMissingColumn,
		}
	}

	rawAmount := row[models.ColumnAmount]
	amount, err := currencyutils.NormalizeMagnitude(rawAmount)
	if err != nil {
		return models.TransactionEntry{}, &parsererror.MalformedRowError{
			Column: models.ColumnName(models.ColumnAmount),
			Value:  rawAmount,
			Reason: err.Error(),
			Err:    fmt.Errorf("%w: %w", parsererror.ErrInvalidAmount, err),
		}
	}

	rawCategory := row[models.ColumnCategory]
	return models.TransactionEntry{
		Date:        row[models.ColumnDate],
		Payee:       row[models.ColumnPayee],
		RawCategory: rawCategory,
		Category:    f.normalizer.Normalize(rawCategory),
		Amount:      amount,
		Currency:    f.currency,
		IsIncome:    !currencyutils.IsDebit(rawAmount),
		Status:      row[models.ColumnStatus],
		Comment:     row[models.ColumnComment],
		Account:     f.account,
	}, nil
}

// Render returns the text block of an entry, starting with a blank line.
func (f *Formatter) Render(e models.TransactionEntry) string {
	target := e.Target()
	amount := currencyutils.FormatAmount(e.Amount, e.Currency)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(e.Date)
	b.WriteString(" * ")
	b.WriteString(e.Payee)
	if e.HasComment() {
		b.WriteString("\n")
		b.WriteString(models.PostingIndent)
		b.WriteString("; ")
		b.WriteString(e.Comment)
	}
	b.WriteString("\n")

	b.WriteString(models.PostingIndent)
	b.WriteString(target)
	b.WriteString(strings.Repeat(" ", Padding(target, amount)))
	b.WriteString(amount)
	b.WriteString("\n")

	if e.IsIncome {
		b.WriteString(models.PostingIndent)
		b.WriteString(e.Source())
		b.WriteString("\n")
	}
	return b.String()
}

// Format builds and renders row in one step. On error nothing is returned.
func (f *Formatter) Format(row models.RawRow) (string, error) {
	e, err := f.Build(row)
	if err != nil {
		return "", err
	}
	return f.Render(e), nil
}

// Padding returns the number of spaces between an account and its amount so
// that the amount ends at models.AmountAlignment. It never returns less than
// one.
func Padding(account, amount string) int {
	used := utf8.RuneCountInString(models.PostingIndent+account) + utf8.RuneCountInString(amount)
	if spacing := models.AmountAlignment - used; spacing > 0 {
		return spacing
	}
	return 1
}
