package parser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedExtractor(doc document) extractFunc {
	return func([]byte) (document, error) { return doc, nil }
}

func TestStatementCIBCFixedColumns(t *testing.T) {
	t.Parallel()

	doc := document{
		text: "CIBC Account Statement\nFor the period ending Jan 31",
		tables: [][][]string{{
			{"Date", "Description", "Withdrawal", "Deposit"},
			{"Jan 5", "GROCERY STORE", "54.10", ""},
			{"Jan 6", "PAYROLL DEPOSIT", "", "1500.00"},
			{"Opening balance", "", "", ""},
		}},
	}

	p := newStatementParser(fixedExtractor(doc))
	txs, err := p.Parse(strings.NewReader("unused"))
	require.NoError(t, err)
	require.Equal(t, "CIBC", p.SourceName())
	require.Len(t, txs, 2)

	require.Equal(t, -54.10, txs[0].Amount)
	require.True(t, txs[0].IsExpense)
	require.Equal(t, 1500.00, txs[1].Amount)
	require.Equal(t, time.Now().Year(), txs[0].Date.Year())
	require.Equal(t, "CIBC", txs[0].Source)
}

func TestStatementRBCSniffedColumns(t *testing.T) {
	t.Parallel()

	doc := document{
		text: "Royal Bank of Canada - RBC Visa Statement",
		tables: [][][]string{{
			{"Transaction Date", "Activity Details", "Total Amount"},
			{"2024/01/05", "UBER TRIP HELP.UBER.COM", "12.40 DR"},
			{"2024/01/06", "REFUND - ONLINE STORE", "5.00 CR"},
			{"", "continued on next page", ""},
		}},
	}

	p := newStatementParser(fixedExtractor(doc))
	txs, err := p.Parse(strings.NewReader("unused"))
	require.NoError(t, err)
	require.Equal(t, "RBC", p.SourceName())
	require.Len(t, txs, 2)

	require.Equal(t, -12.40, txs[0].Amount)
	require.True(t, txs[0].IsExpense)
	require.Equal(t, "UBER TRIP HELP.UBER.COM", txs[0].Description)
	require.Equal(t, 5.00, txs[1].Amount)
	require.False(t, txs[1].IsExpense)
}

func TestStatementSignedAmountColumn(t *testing.T) {
	t.Parallel()

	doc := document{
		text: "CIBC",
		tables: [][][]string{{
			{"Date", "Description", "Amount"},
			{"2024/01/05", "COFFEE", "-4.50"},
			{"2024/01/06", "PAYCHECK", "2000.00"},
		}},
	}

	txs, err := newStatementParser(fixedExtractor(doc)).Parse(strings.NewReader("unused"))
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Equal(t, -4.50, txs[0].Amount)
	require.Equal(t, 2000.00, txs[1].Amount)
}

func TestStatementSkipsMalformedRows(t *testing.T) {
	t.Parallel()

	doc := document{
		text: "CIBC",
		tables: [][][]string{{
			{"Date", "Description", "Amount"},
			{"not a date", "GARBAGE", "1.00"},
			{"2024/01/05", "", "1.00"},
			{"2024/01/06", "REAL ROW", "not-an-amount"},
			{"2024/01/07", "KEPT", "-9.99"},
		}},
	}

	txs, err := newStatementParser(fixedExtractor(doc)).Parse(strings.NewReader("unused"))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "KEPT", txs[0].Description)
}

func TestStatementUnknownSource(t *testing.T) {
	t.Parallel()

	doc := document{text: "Some Credit Union Statement"}
	_, err := newStatementParser(fixedExtractor(doc)).Parse(strings.NewReader("unused"))
	require.ErrorIs(t, err, ErrUnknownSource)
}

func TestStatementExtractionErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt file")
	p := newStatementParser(func([]byte) (document, error) { return document{}, boom })
	_, err := p.Parse(strings.NewReader("unused"))
	require.ErrorIs(t, err, boom)
}
