package parser

import (
	"fmt"
	"io"
)

// CIBCParser handles CIBC credit card and bank account CSV exports.
type CIBCParser struct{}

func NewCIBCParser() *CIBCParser { return &CIBCParser{} }

func (p *CIBCParser) SourceName() string { return "CIBC" }

const cibcDateLayout = "2006/01/02"

func (p *CIBCParser) Parse(r io.Reader) ([]Transaction, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if t.hasColumn("Card Number") || t.hasColumn("Transaction Type") {
		return p.parseCreditCard(t)
	}
	return p.parseBankAccount(t)
}

// Credit card columns: Date, Card Number, Description, Amount. CIBC already
// reports expenses as negative amounts.
func (p *CIBCParser) parseCreditCard(t *table) ([]Transaction, error) {
	if err := t.requireColumns("Date", "Description", "Amount"); err != nil {
		return nil, err
	}
	var txs []Transaction
	for i, row := range t.rows {
		date, err := parseDate(row["Date"], cibcDateLayout)
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
			SourceID:            row["Card Number"] + "_" + row["Date"] + "_" + row["Description"],
		})
	}
	return finalize(p.SourceName(), txs), nil
}

// Bank account columns: Date, Description, Withdrawal, Deposit, Balance.
// Withdrawals become negative, deposits positive.
func (p *CIBCParser) parseBankAccount(t *table) ([]Transaction, error) {
	if err := t.requireColumns("Date", "Description"); err != nil {
		return nil, err
	}
	var txs []Transaction
	for i, row := range t.rows {
		date, err := parseDate(row["Date"], cibcDateLayout)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		var amount float64
		switch {
		case row["Withdrawal"] != "":
			v, err := parseAmount(row["Withdrawal"])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
			amount = -v
		case row["Deposit"] != "":
			v, err := parseAmount(row["Deposit"])
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
			SourceID:            row["Date"] + "_" + row["Description"],
		})
	}
	return finalize(p.SourceName(), txs), nil
}
