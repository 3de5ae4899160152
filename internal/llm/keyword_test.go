package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeywordProviderPicksObviousCategory(t *testing.T) {
	t.Parallel()

	p := NewKeywordProvider()
	cats := []string{"Food & Dining", "Shopping", "Transportation", "Income"}

	got, err := p.Categorize(context.Background(), Request{
		Description: "STARBUCKS COFFEE #123", Amount: 4.50, Categories: cats,
	})
	require.NoError(t, err)
	require.Equal(t, "Food & Dining", got)

	got, err = p.Categorize(context.Background(), Request{
		Description: "UBER TRIP TORONTO", Amount: 12.40, Categories: cats,
	})
	require.NoError(t, err)
	require.Equal(t, "Transportation", got)
}

func TestKeywordProviderNoOpinion(t *testing.T) {
	t.Parallel()

	p := NewKeywordProvider()
	_, err := p.Categorize(context.Background(), Request{
		Description: "ZZQX 0001", Amount: 1, Categories: []string{"Food & Dining"},
	})
	require.ErrorIs(t, err, ErrNoMatch)
}
