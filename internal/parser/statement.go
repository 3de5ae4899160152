package parser

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// document is the extracted content of a rendered statement: the raw text
// used for source sniffing plus row-major cell grids, one per page or sheet.
type document struct {
	text   string
	tables [][][]string
}

type extractFunc func(data []byte) (document, error)

// StatementParser handles table-structured statements extracted from rendered
// documents (PDF pages, spreadsheet sheets). Unlike the CSV adapters it is
// permissive: a row that cannot be parsed is skipped, never fatal, because
// table extraction routinely produces headers, footers and blank cells mixed
// in with transaction rows.
type StatementParser struct {
	source  string
	extract extractFunc
}

// NewPDFParser returns a statement parser backed by PDF text extraction.
func NewPDFParser() *StatementParser {
	return &StatementParser{source: "Unknown", extract: extractPDF}
}

// NewXLSXParser returns a statement parser backed by spreadsheet extraction.
func NewXLSXParser() *StatementParser {
	return &StatementParser{source: "Unknown", extract: extractXLSX}
}

// newStatementParser wires a custom extractor; used by tests.
func newStatementParser(extract extractFunc) *StatementParser {
	return &StatementParser{source: "Unknown", extract: extract}
}

// SourceName reports the bank detected during the last Parse call.
func (p *StatementParser) SourceName() string { return p.source }

func (p *StatementParser) Parse(r io.Reader) ([]Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}
	doc, err := p.extract(data)
	if err != nil {
		return nil, fmt.Errorf("extract statement: %w", err)
	}

	p.source = detectStatementSource(doc.text)
	switch {
	case strings.Contains(p.source, "CIBC"):
		return finalize(p.source, p.parseFixedColumns(doc.tables)), nil
	case strings.Contains(p.source, "RBC"):
		return finalize(p.source, p.parseSniffedColumns(doc.tables)), nil
	default:
		return nil, fmt.Errorf("%w: statement source %q", ErrUnknownSource, p.source)
	}
}

// detectStatementSource scans extractable text for bank name markers.
func detectStatementSource(text string) string {
	switch {
	case strings.Contains(text, "CIBC"):
		return "CIBC"
	case strings.Contains(text, "RBC") || strings.Contains(text, "Royal Bank"):
		return "RBC"
	case strings.Contains(text, "AMEX") || strings.Contains(text, "American Express"):
		return "AMEX"
	default:
		return "Unknown"
	}
}

// statement date formats: month-day pairs get the current year filled in.
var statementDateLayouts = []string{"Jan 2", "2 Jan", "2006/01/02", "2006-01-02"}

func parseStatementDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range statementDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = t.AddDate(time.Now().Year(), 0, 0)
		}
		return t, true
	}
	return time.Time{}, false
}

// parseSignedCell resolves an amount cell under the suffix-marker convention:
// a trailing CR marks a credit, a trailing DR a debit, otherwise the value's
// own sign stands.
func parseSignedCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	sign := 1.0
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "CR"):
		s = strings.TrimSpace(s[:len(s)-2])
	case strings.HasSuffix(upper, "DR"):
		s = strings.TrimSpace(s[:len(s)-2])
		sign = -1
	}
	v, err := parseAmount(s)
	if err != nil {
		return 0, false
	}
	return sign * v, true
}

// parseFixedColumns handles layouts with known header names (CIBC): Date,
// Description and one of Amount, or Withdrawal/Deposit pairs.
func (p *StatementParser) parseFixedColumns(tables [][][]string) []Transaction {
	var txs []Transaction
	for _, tbl := range tables {
		header, start := findHeaderRow(tbl, func(cell string) bool { return cell == "Date" })
		if header == nil || len(header) < 3 {
			continue
		}
		dateIdx := indexOf(header, "Date")
		descIdx := indexOf(header, "Description")
		amountIdx := indexOf(header, "Amount")
		withdrawalIdx := indexOf(header, "Withdrawal")
		depositIdx := indexOf(header, "Deposit")
		if dateIdx < 0 || descIdx < 0 {
			continue
		}
		for _, row := range tbl[start:] {
			date, ok := parseStatementDate(cellAt(row, dateIdx))
			if !ok {
				continue
			}
			desc := cellAt(row, descIdx)
			if desc == "" {
				continue
			}
			var amount float64
			switch {
			case withdrawalIdx >= 0 && cellAt(row, withdrawalIdx) != "":
				v, ok := parseSignedCell(cellAt(row, withdrawalIdx))
				if !ok {
					continue
				}
				amount = -v
			case depositIdx >= 0 && cellAt(row, depositIdx) != "":
				v, ok := parseSignedCell(cellAt(row, depositIdx))
				if !ok {
					continue
				}
				amount = v
			case amountIdx >= 0:
				v, ok := parseSignedCell(cellAt(row, amountIdx))
				if !ok {
					continue
				}
				amount = v
			default:
				continue
			}
			txs = append(txs, Transaction{
				Date:                date,
				Amount:              amount,
				Description:         desc,
				OriginalDescription: desc,
			})
		}
	}
	return txs
}

// parseSniffedColumns handles layouts whose header names vary (RBC): columns
// are located by substring match on the header text.
func (p *StatementParser) parseSniffedColumns(tables [][][]string) []Transaction {
	var txs []Transaction
	for _, tbl := range tables {
		header, start := findHeaderRow(tbl, func(cell string) bool {
			return strings.Contains(strings.ToLower(cell), "date")
		})
		if header == nil || len(header) < 3 {
			continue
		}
		dateIdx, amountIdx, descIdx := -1, -1, -1
		for i, h := range header {
			lower := strings.ToLower(h)
			switch {
			case strings.Contains(lower, "date"):
				if dateIdx < 0 {
					dateIdx = i
				}
			case strings.Contains(lower, "amount") || strings.Contains(lower, "total"):
				if amountIdx < 0 {
					amountIdx = i
				}
			case strings.Contains(lower, "description") || strings.Contains(lower, "detail"):
				if descIdx < 0 {
					descIdx = i
				}
			}
		}
		if dateIdx < 0 || amountIdx < 0 {
			continue
		}
		for _, row := range tbl[start:] {
			date, ok := parseStatementDate(cellAt(row, dateIdx))
			if !ok {
				continue
			}
			desc := cellAt(row, descIdx)
			if desc == "" {
				// fall back to the first non-date, non-amount cell
				for i := range row {
					if i != dateIdx && i != amountIdx && cellAt(row, i) != "" {
						desc = cellAt(row, i)
						break
					}
				}
			}
			if desc == "" {
				continue
			}
			amount, ok := parseSignedCell(cellAt(row, amountIdx))
			if !ok {
				continue
			}
			txs = append(txs, Transaction{
				Date:                date,
				Amount:              amount,
				Description:         desc,
				OriginalDescription: desc,
			})
		}
	}
	return txs
}

// findHeaderRow returns the first row with a cell matching the predicate,
// along with the index of the row after it.
func findHeaderRow(tbl [][]string, match func(string) bool) ([]string, int) {
	for i, row := range tbl {
		for _, cell := range row {
			if match(strings.TrimSpace(cell)) {
				return row, i + 1
			}
		}
	}
	return nil, 0
}

func indexOf(row []string, name string) int {
	for i, cell := range row {
		if strings.TrimSpace(cell) == name {
			return i
		}
	}
	return -1
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
