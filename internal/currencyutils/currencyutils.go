// Package currencyutils normalizes iCompta amount cells into the numeric
// convention used by the ledger output.
package currencyutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const (
	nbsp       = '\u00a0'
	narrowNbsp = '\u202f'
)

var (
	// ErrEmptyAmount is returned when the amount cell holds no digits.
	ErrEmptyAmount = errors.New("empty amount")

	plainNumber   = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)
	groupedNumber = regexp.MustCompile(`^\d{1,3}(,\d{3})+\.\d*$`)
	currencyCode  = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// IsDebit reports whether a raw amount cell denotes money going out.
// iCompta marks debits with a minus sign anywhere in the cell.
func IsDebit(raw string) bool {
	return strings.Contains(raw, "-")
}

// ParseMagnitude parses the absolute value of a raw amount cell.
// It handles the iCompta convention ("1 234,56" where the space is U+00A0)
// as well as already normalized text ("1,234.56"). When both separators
// appear, commas are only accepted as three-digit groups before the dot.
func ParseMagnitude(raw string) (decimal.Decimal, error) {
	amount, _, err := parseMagnitude(raw)
	return amount, err
}

// parseMagnitude also reports whether the cell grouped its thousands.
func parseMagnitude(raw string) (decimal.Decimal, bool, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "-", ""))
	grouped := false
	s = strings.Map(func(r rune) rune {
		switch r {
		case nbsp, narrowNbsp, ' ':
			grouped = true
			return -1
		}
		return r
	}, s)

	if s == "" {
		return decimal.Zero, false, ErrEmptyAmount
	}

	switch {
	case strings.Contains(s, ".") && strings.Contains(s, ","):
		if !groupedNumber.MatchString(s) {
			return decimal.Zero, false, fmt.Errorf("failed to parse amount '%s'", raw)
		}
		s = strings.ReplaceAll(s, ",", "")
		grouped = true
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", ".")
	}

	if !plainNumber.MatchString(s) {
		return decimal.Zero, false, fmt.Errorf("failed to parse amount '%s'", raw)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to parse amount '%s': %w", raw, err)
	}
	return amount.Abs(), grouped, nil
}

// NormalizeMagnitude turns a raw amount cell into a dot-separated magnitude
// with at least two decimals. Digits below the cent are kept, and thousands
// are grouped with commas only when the cell grouped them. The sign is
// dropped. NormalizeMagnitude is idempotent on its own output.
func NormalizeMagnitude(raw string) (string, error) {
	amount, grouped, err := parseMagnitude(raw)
	if err != nil {
		return "", err
	}
	fixed := amount.StringFixed(decimalPlaces(amount))
	if grouped {
		return GroupThousands(fixed), nil
	}
	return fixed, nil
}

// decimalPlaces is the smallest scale, not below two, that represents d
// exactly.
func decimalPlaces(d decimal.Decimal) int32 {
	places := int32(2)
	for !d.Equal(d.Round(places)) {
		places++
	}
	return places
}

// GroupThousands inserts a comma every three digits of the integer part of
// a plain decimal string.
func GroupThousands(fixed string) string {
	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")
	if len(intPart) <= 3 {
		return fixed
	}

	var b strings.Builder
	b.Grow(len(fixed) + len(intPart)/3)
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// IsCurrencyCode reports whether currency is an alphabetic code such as
// "CAD" rather than a symbol such as "$".
func IsCurrencyCode(currency string) bool {
	return currencyCode.MatchString(currency)
}

// IsKnownCurrencyCode reports whether code is an ISO 4217 code. Lookup is
// case-insensitive.
func IsKnownCurrencyCode(code string) bool {
	return IsCurrencyCode(code) && money.GetCurrency(strings.ToUpper(code)) != nil
}

// FormatAmount attaches the currency to a normalized magnitude: codes are
// suffixed ("12.00 CAD"), symbols are prefixed ("$ 12.00").
func FormatAmount(magnitude, currency string) string {
	if currency == "" {
		return magnitude
	}
	if IsCurrencyCode(currency) {
		return magnitude + " " + currency
	}
	return currency + " " + magnitude
}
