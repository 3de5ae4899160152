package parser

import (
	"fmt"
	"io"
)

// RBCParser handles RBC credit card and chequing account CSV exports.
type RBCParser struct{}

func NewRBCParser() *RBCParser { return &RBCParser{} }

func (p *RBCParser) SourceName() string { return "RBC" }

const rbcDateLayout = "01/02/2006"

func (p *RBCParser) Parse(r io.Reader) ([]Transaction, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	// Credit card exports carry both Account Type and Card Number columns;
	// chequing exports carry neither.
	if t.hasColumn("Account Type") && t.hasColumn("Card Number") {
		return p.parseCreditCard(t)
	}
	return p.parseBankAccount(t)
}

// Credit card columns: Transaction Date, Posting Date, Card Number,
// Description, Category, Debit, Credit. Debit is money out.
func (p *RBCParser) parseCreditCard(t *table) ([]Transaction, error) {
	if err := t.requireColumns("Transaction Date", "Description"); err != nil {
		return nil, err
	}
	var txs []Transaction
	for i, row := range t.rows {
		date, err := parseDate(row["Transaction Date"], rbcDateLayout)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		var amount float64
		switch {
		case row["Debit"] != "":
			v, err := parseAmount(row["Debit"])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
			amount = -v
		case row["Credit"] != "":
			v, err := parseAmount(row["Credit"])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
			amount = v
		}
		txs = append(txs, Transaction{
			Date:                date,
			Amount:              amount,
			Description:         row["Description"],
			OriginalDescription: row["Description"],
			SourceID:            row["Card Number"] + "_" + row["Transaction Date"] + "_" + row["Description"],
		})
	}
	return finalize(p.SourceName(), txs), nil
}

// Bank account columns: Date, Transaction, Name, Memo, Amount. Amount is
// already signed under the universal convention.
func (p *RBCParser) parseBankAccount(t *table) ([]Transaction, error) {
	if err := t.requireColumns("Date", "Name", "Amount"); err != nil {
		return nil, err
	}
	var txs []Transaction
	for i, row := range t.rows {
		date, err := parseDate(row["Date"], rbcDateLayout)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		amount, err := parseAmount(row["Amount"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		desc := row["Name"]
		if row["Memo"] != "" {
			desc += " - " + row["Memo"]
		}
		txs = append(txs, Transaction{
			Date:                date,
			Amount:              amount,
			Description:         desc,
			OriginalDescription: desc,
			SourceID:            row["Date"] + "_" + row["Transaction"] + "_" + row["Name"],
		})
	}
	return finalize(p.SourceName(), txs), nil
}
