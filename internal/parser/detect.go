package parser

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat reports a file extension no adapter handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrUnknownSource reports content no adapter recognized.
var ErrUnknownSource = errors.New("could not determine statement source")

// sniffLines is how many leading lines of a delimited file are scanned for
// bank name markers before falling back to trial parsing.
const sniffLines = 5

// Detect inspects a statement file and returns the adapter responsible for
// it. Dispatch is by extension first; delimited files then go through content
// sniffing and, failing that, trial parsing.
func Detect(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return detectCSV(path)
	case ".pdf":
		return NewPDFParser(), nil
	// legacy binary .xls is not readable by the spreadsheet extractor and
	// is rejected up front
	case ".xlsx":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// trial pairs a candidate adapter with its acceptance predicate. Acceptance
// means the adapter parsed the file without error and produced at least one
// record; an empty result is treated as "not this layout", not success.
type trial struct {
	parser Parser
	accept func([]Transaction, error) bool
}

func acceptNonEmpty(txs []Transaction, err error) bool {
	return err == nil && len(txs) > 0
}

// detectCSV picks a delimited-text adapter. Bank exports rarely self-identify
// reliably, so detection degrades from cheap marker sniffing to trial parsing
// in a fixed preference order, and fails closed naming the file when nothing
// recognizes the content.
func detectCSV(path string) (Parser, error) {
	head, err := readLeadingLines(path, sniffLines)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.Contains(head, "RBC") || strings.Contains(head, "Royal Bank"):
		return NewRBCParser(), nil
	case strings.Contains(head, "CIBC") || strings.Contains(head, "Canadian Imperial Bank of Commerce"):
		return NewCIBCParser(), nil
	}

	trials := []trial{
		{NewRBCParser(), acceptNonEmpty},
		{NewCIBCParser(), acceptNonEmpty},
		{NewGenericCSVParser(), acceptNonEmpty},
	}
	for _, tr := range trials {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		txs, parseErr := tr.parser.Parse(f)
		f.Close()
		if tr.accept(txs, parseErr) {
			return tr.parser, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSource, filepath.Base(path))
}

func readLeadingLines(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	sc := bufio.NewScanner(f)
	for i := 0; i < n && sc.Scan(); i++ {
		b.WriteString(sc.Text())
		b.WriteByte('\n')
	}
	return b.String(), sc.Err()
}
