package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCIBCCreditCardLayout(t *testing.T) {
	t.Parallel()

	data := "Date,Card Number,Description,Amount\n" +
		"2024/01/15,4500********9876,NETFLIX.COM,-16.49\n" +
		"2024/01/18,4500********9876,PAYMENT THANK YOU,$120.00\n"

	txs, err := NewCIBCParser().Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	require.Equal(t, -16.49, txs[0].Amount)
	require.True(t, txs[0].IsExpense)
	require.Equal(t, 120.00, txs[1].Amount)
	require.False(t, txs[1].IsExpense)

	require.Equal(t, "CIBC", txs[0].Source)
	require.Contains(t, txs[0].SourceID, "4500********9876")
	require.Equal(t, "2024-01-15", txs[0].Date.Format("2006-01-02"))
}

func TestCIBCBankAccountLayout(t *testing.T) {
	t.Parallel()

	data := "Date,Description,Withdrawal,Deposit,Balance\n" +
		"2024/01/05,GROCERY STORE,54.10,,945.90\n" +
		"2024/01/06,PAYROLL DEPOSIT,,1500.00,2445.90\n"

	txs, err := NewCIBCParser().Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	require.Equal(t, -54.10, txs[0].Amount)
	require.True(t, txs[0].IsExpense)
	require.Equal(t, 1500.00, txs[1].Amount)
	require.False(t, txs[1].IsExpense)
}

func TestCIBCSignConventionMatchesExpenseFlag(t *testing.T) {
	t.Parallel()

	data := "Date,Description,Withdrawal,Deposit,Balance\n" +
		"2024/01/05,RENT,1200.00,,0\n" +
		"2024/01/06,TRANSFER IN,,300.00,0\n"

	txs, err := NewCIBCParser().Parse(strings.NewReader(data))
	require.NoError(t, err)
	for _, tx := range txs {
		require.Equal(t, tx.Amount < 0, tx.IsExpense)
	}
}
