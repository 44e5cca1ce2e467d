package converter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"fjacquet/icompta-ledger/internal/categorizer"
	"fjacquet/icompta-ledger/internal/currencyutils"
	"fjacquet/icompta-ledger/internal/fileutils"
	"fjacquet/icompta-ledger/internal/icompta"
	"fjacquet/icompta-ledger/internal/ledger"
	"fjacquet/icompta-ledger/internal/logging"
	"fjacquet/icompta-ledger/internal/models"
	"fjacquet/icompta-ledger/internal/parsererror"
)

// Result summarizes a conversion run.
type Result struct {
	Output  string
	Entries int
	Skipped int
}

// Converter converts iCompta exports using one category normalizer.
type Converter struct {
	normalizer *categorizer.Normalizer
	logger     logging.Logger
}

// NewConverter returns a Converter. A nil normalizer selects the built-in
// rules; a nil logger selects an info-level text logger.
func NewConverter(normalizer *categorizer.Normalizer, logger logging.Logger) *Converter {
	if normalizer == nil {
		normalizer = categorizer.NewDefaultNormalizer()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Converter{normalizer: normalizer, logger: logger}
}

// Convert reads opts.Input and writes the ledger file. The output only
// appears once every row has been processed; on error nothing is written.
func (c *Converter) Convert(opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	output := opts.OutputPath()

	c.logger.Info("Converting iCompta export",
		logging.F(logging.FieldInputFile, opts.Input),
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldAccount, opts.Account))

	in, err := os.Open(opts.Input)
	if err != nil {
		return Result{}, &parsererror.ConfigurationError{Field: "input", Reason: fmt.Sprintf("cannot read %s", opts.Input), Err: err}
	}
	defer in.Close()

	out, err := fileutils.CreateAtomic(output)
	if err != nil {
		return Result{}, &parsererror.IOError{Path: output, Op: "create", Err: err}
	}
	defer out.Abort()

	res, err := c.ConvertStream(in, out, opts)
	if err != nil {
		return Result{}, err
	}
	if err := out.Commit(); err != nil {
		return Result{}, &parsererror.IOError{Path: output, Op: "write", Err: err}
	}

	res.Output = output
	return res, nil
}

// ConvertStream converts the export read from r and writes ledger text to w.
func (c *Converter) ConvertStream(r io.Reader, w io.Writer, opts Options) (Result, error) {
	reader, err := icompta.NewReader(r, opts.readerOptions())
	if err != nil {
		return Result{}, &parsererror.ConfigurationError{Field: "encoding", Reason: "unknown charset", Err: err}
	}
	c.checkCurrency(opts.currency())
	formatter := ledger.NewFormatter(c.normalizer, opts.Account, opts.currency())
	bw := bufio.NewWriter(w)

	if opts.Header {
		if _, err := bw.WriteString(ledger.Header(opts.Account)); err != nil {
			return Result{}, &parsererror.IOError{Path: opts.OutputPath(), Op: "write", Err: err}
		}
	}

	var res Result
	err = c.eachRow(reader, opts, &res, func(line int, row models.RawRow) error {
		entry, err := formatter.Build(row)
		if err != nil {
			return err
		}
		c.logProgress(opts, line, entry)
		if _, err := bw.WriteString(formatter.Render(entry)); err != nil {
			return &parsererror.IOError{Path: opts.OutputPath(), Op: "write", Err: err}
		}
		res.Entries++
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if err := bw.Flush(); err != nil {
		return Result{}, &parsererror.IOError{Path: opts.OutputPath(), Op: "write", Err: err}
	}

	c.logSummary(opts, res)
	return res, nil
}

// CollectEntries reads opts.Input and returns the entries it would render,
// applying the same malformed-row policy as Convert.
func (c *Converter) CollectEntries(opts Options) ([]models.TransactionEntry, Result, error) {
	if err := opts.ValidateSource(); err != nil {
		return nil, Result{}, err
	}

	in, err := os.Open(opts.Input)
	if err != nil {
		return nil, Result{}, &parsererror.ConfigurationError{Field: "input", Reason: fmt.Sprintf("cannot read %s", opts.Input), Err: err}
	}
	defer in.Close()

	reader, err := icompta.NewReader(in, opts.readerOptions())
	if err != nil {
		return nil, Result{}, &parsererror.ConfigurationError{Field: "encoding", Reason: "unknown charset", Err: err}
	}
	formatter := ledger.NewFormatter(c.normalizer, opts.Account, opts.currency())

	var (
		entries []models.TransactionEntry
		res     Result
	)
	err = c.eachRow(reader, opts, &res, func(line int, row models.RawRow) error {
		entry, err := formatter.Build(row)
		if err != nil {
			return err
		}
		c.logProgress(opts, line, entry)
		entries = append(entries, entry)
		res.Entries++
		return nil
	})
	if err != nil {
		return nil, Result{}, err
	}

	c.logSummary(opts, res)
	return entries, res, nil
}

// eachRow calls fn for every row of reader. Malformed rows, whether reported
// by the reader or by fn, are skipped and counted unless opts.Strict is set.
func (c *Converter) eachRow(reader *icompta.Reader, opts Options, res *Result, fn func(int, models.RawRow) error) error {
	for {
		line, row, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err == nil {
			err = fn(line, row)
		}
		if err == nil {
			continue
		}

		var rowErr *parsererror.MalformedRowError
		if !errors.As(err, &rowErr) {
			var ioErr *parsererror.IOError
			if errors.As(err, &ioErr) {
				return err
			}
			return &parsererror.IOError{Path: opts.Input, Op: "read", Err: err}
		}
		if rowErr.Line == 0 {
			rowErr.Line = line
		}
		if opts.Strict {
			return fmt.Errorf("conversion aborted: %w", rowErr)
		}

		res.Skipped++
		c.logger.WithError(rowErr).Warn("Skipping malformed row",
			logging.F(logging.FieldLine, rowErr.Line),
			logging.F(logging.FieldReason, rowErr.Reason))
	}
}

func (c *Converter) logProgress(opts Options, line int, entry models.TransactionEntry) {
	msg := entry.Date + " " + entry.Payee
	fields := []logging.Field{
		logging.F(logging.FieldLine, line),
		logging.F(logging.FieldCategory, entry.Category),
	}
	if opts.Verbose {
		c.logger.Info(msg, fields...)
		return
	}
	c.logger.Debug(msg, fields...)
}

func (c *Converter) logSummary(opts Options, res Result) {
	msg := fmt.Sprintf("Posts found: %d", res.Entries)
	fields := []logging.Field{
		logging.F(logging.FieldCount, res.Entries),
		logging.F(logging.FieldSkipped, res.Skipped),
	}
	if opts.Verbose {
		c.logger.Info(msg, fields...)
	} else {
		c.logger.Debug(msg, fields...)
	}
	if res.Skipped > 0 {
		c.logger.Warn("Some rows were skipped", fields...)
	}
}

// checkCurrency warns about alphabetic currencies that are not ISO 4217
// codes. They are still rendered as given.
func (c *Converter) checkCurrency(currency string) {
	if currencyutils.IsCurrencyCode(currency) && !currencyutils.IsKnownCurrencyCode(currency) {
		c.logger.Warn("Unknown ISO 4217 currency code", logging.F(logging.FieldCurrency, currency))
	}
}
