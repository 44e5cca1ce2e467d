// Package icompta reads iCompta CSV exports. It is the decoding boundary of
// the converter: bytes are decoded into UTF-8, cells are NFC-normalized, and
// everything downstream works on decoded text only.
package icompta

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/icompta-ledger/internal/models"
	"fjacquet/icompta-ledger/internal/parsererror"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultEncoding is the charset of iCompta exports.
const DefaultEncoding = "utf-8"

// Options controls how an export is decoded.
type Options struct {
	// Encoding is a WHATWG charset label such as "utf-8", "windows-1252" or
	// "macintosh". Empty means UTF-8.
	Encoding string
	// SkipHeader drops the first record, which iCompta fills with column
	// titles.
	SkipHeader bool
	// Delimiter separates cells. Zero means ','.
	Delimiter rune
}

// NewDecodingReader wraps r so that it yields UTF-8 text. A UTF-8 byte order
// mark is removed.
func NewDecodingReader(r io.Reader, encoding string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// ValidEncoding reports whether encoding is a label NewDecodingReader accepts.
func ValidEncoding(encoding string) error {
	_, err := NewDecodingReader(strings.NewReader(""), encoding)
	return err
}

// Reader yields the decoded rows of an export, in file order.
type Reader struct {
	csv        *csv.Reader
	skipHeader bool
	started    bool
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	decoded, err := NewDecodingReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	return &Reader{csv: cr, skipHeader: opts.SkipHeader}, nil
}

// Next returns the next row and the line it starts on. It returns io.EOF
// after the last row. A record that is not valid CSV is reported as a
// *parsererror.MalformedRowError; reading may continue after it.
func (r *Reader) Next() (int, models.RawRow, error) {
	if !r.started {
		r.started = true
		if r.skipHeader {
			if _, _, err := r.read(); err != nil {
				return 0, nil, err
			}
		}
	}
	return r.read()
}

func (r *Reader) read() (int, models.RawRow, error) {
	record, err := r.csv.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return pe.StartLine, nil, &parsererror.MalformedRowError{
				Line:   pe.StartLine,
				Column: "record",
				Reason: pe.Err.Error(),
				Err:    err,
			}
		}
		return 0, nil, err
	}

	line, _ := r.csv.FieldPos(0)
	row := make(models.RawRow, len(record))
	for i, cell := range record {
		row[i] = norm.NFC.String(cell)
	}
	return line, row, nil
}

// ReadAll returns every remaining row. It stops at the first error.
func (r *Reader) ReadAll() ([]models.RawRow, error) {
	var rows []models.RawRow
	for {
		_, row, err := r.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}
