// Package converter turns an iCompta export into a ledger file. It drives the
// row reader, the entry formatter and the output file, and applies the
// malformed-row policy.
package converter

import (
	"fjacquet/icompta-ledger/internal/fileutils"
	"fjacquet/icompta-ledger/internal/icompta"
	"fjacquet/icompta-ledger/internal/models"
	"fjacquet/icompta-ledger/internal/parsererror"
	"fjacquet/icompta-ledger/internal/validation"
)

// Options describes one conversion run.
type Options struct {
	Input    string
	Output   string
	Account  string
	Currency string
	Verbose  bool
	// SkipHeader drops the first record of the input.
	SkipHeader bool
	// Header writes the ledger mode line and bucket directive first.
	Header   bool
	Encoding string
	// Strict aborts the run on the first malformed row instead of skipping it.
	Strict    bool
	Delimiter rune
}

// DefaultOptions returns the options of a plain "convert <input> <account>"
// invocation.
func DefaultOptions(input, account string) Options {
	return Options{
		Input:      input,
		Account:    account,
		Currency:   models.DefaultCurrency,
		SkipHeader: true,
		Header:     true,
		Encoding:   icompta.DefaultEncoding,
	}
}

// DefaultOutputPath returns input with its extension replaced by ".ledger".
func DefaultOutputPath(input string) string {
	return fileutils.ReplaceExtension(input, models.LedgerExtension)
}

// OutputPath returns the configured output path or the default one.
func (o Options) OutputPath() string {
	if o.Output != "" {
		return o.Output
	}
	return DefaultOutputPath(o.Input)
}

// Validate checks the options before any file is opened for writing. Every
// failure is a *parsererror.ConfigurationError.
func (o Options) Validate() error {
	if err := o.ValidateSource(); err != nil {
		return err
	}
	return validation.ValidateOutputPath(o.Input, o.OutputPath())
}

// ValidateSource checks everything Validate does except the output path.
func (o Options) ValidateSource() error {
	if err := validation.ValidateInputFile(o.Input); err != nil {
		return err
	}
	if err := validation.ValidateAccount(o.Account); err != nil {
		return err
	}
	if err := validation.ValidateCurrency(o.currency()); err != nil {
		return err
	}
	if err := icompta.ValidEncoding(o.Encoding); err != nil {
		return &parsererror.ConfigurationError{Field: "encoding", Reason: "unknown charset", Err: err}
	}
	return nil
}

func (o Options) currency() string {
	if o.Currency == "" {
		return models.DefaultCurrency
	}
	return o.Currency
}

func (o Options) readerOptions() icompta.Options {
	return icompta.Options{
		Encoding:   o.Encoding,
		SkipHeader: o.SkipHeader,
		Delimiter:  o.Delimiter,
	}
}
