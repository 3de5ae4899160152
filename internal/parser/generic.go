package parser

import (
	"fmt"
	"io"
)

// GenericCSVParser handles plain Date,Description,Amount exports. It is the
// strictest adapter: the three columns are required and a row with an
// unparseable date fails the whole file rather than being skipped.
type GenericCSVParser struct{}

func NewGenericCSVParser() *GenericCSVParser { return &GenericCSVParser{} }

func (p *GenericCSVParser) SourceName() string { return "Generic CSV" }

func (p *GenericCSVParser) Parse(r io.Reader) ([]Transaction, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns("Date", "Description", "Amount"); err != nil {
		return nil, err
	}
	var txs []Transaction
	for i, row := range t.rows {
		date, err := parseDate(row["Date"], "2006-01-02", "01/02/2006")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		amount, err := parseAmount(row["Amount"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, Transaction{
			Date:                date,
			Amount:              amount,
			Description:         row["Description"],
			OriginalDescription: row["Description"],
			SourceID:            row["Date"] + "_" + row["Description"] + "_" + row["Amount"],
		})
	}
	return finalize(p.SourceName(), txs), nil
}
