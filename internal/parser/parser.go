// Package parser turns bank statement exports into normalized transactions.
//
// Each supported statement layout has its own Parser. Parsers emit rows with
// source-specific fields already resolved (date, signed amount, description);
// the shared finalize step then stamps the source tag, derives the expense
// flag and computes the duplicate-detection fingerprint, so individual
// adapters cannot diverge on either convention.
package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a normalized statement row. It is produced by a Parser,
// stamped with an import batch by the import service, and only then persisted.
type Transaction struct {
	Date                time.Time `json:"date"`
	Amount              float64   `json:"amount"`
	Description         string    `json:"description"`
	OriginalDescription string    `json:"original_description"`
	Source              string    `json:"source"`
	SourceID            string    `json:"source_id"`
	ImportID            string    `json:"import_id"`
	IsExpense           bool      `json:"is_expense"`
	HashID              string    `json:"hash_id"`
}

// Parser converts one statement layout into normalized transactions.
type Parser interface {
	// SourceName identifies the institution/layout, e.g. "RBC" or "Generic CSV".
	// It is used both for stamping transactions and for scoping mapping rules.
	SourceName() string
	Parse(r io.Reader) ([]Transaction, error)
}

// ErrMissingColumns reports a strict layout whose required columns are absent.
var ErrMissingColumns = errors.New("missing required columns")

// finalize applies the shared post-processing every adapter must run: it
// stamps the source tag, derives IsExpense from the amount sign and computes
// the content fingerprint.
func finalize(source string, txs []Transaction) []Transaction {
	for i := range txs {
		txs[i].Source = source
		txs[i].IsExpense = txs[i].Amount < 0
		txs[i].HashID = Fingerprint(txs[i].Date, txs[i].Amount, txs[i].Description, source)
	}
	return txs
}

// table holds a header-indexed view over CSV records.
type table struct {
	headers []string
	rows    []map[string]string
}

func (t *table) hasColumn(name string) bool {
	for _, h := range t.headers {
		if h == name {
			return true
		}
	}
	return false
}

// readTable reads a delimited file whose first record is the header row.
// Short rows are padded so lookups by header never fail outright; a missing
// value surfaces as an empty string, matching the permissive/strict split
// each adapter applies afterwards.
func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err == io.EOF {
		return &table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	t := &table{headers: headers}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// requireColumns errors when a strict layout is missing any of its columns.
func (t *table) requireColumns(names ...string) error {
	var missing []string
	for _, n := range names {
		if !t.hasColumn(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// parseAmount converts a statement amount string to a signed float. Currency
// symbols and thousands separators are stripped; the decimal library carries
// the parse so "1,234.56" style inputs round-trip exactly.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	f, _ := d.Float64()
	return f, nil
}

// parseDate tries each layout in order and returns the first match.
func parseDate(s string, layouts ...string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", s)
}
