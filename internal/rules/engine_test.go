package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubstringMatchIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	e := NewEngine([]Rule{
		{Pattern: "STARBUCKS", Priority: 3, CategoryID: "food"},
	})

	cat, ok := e.Match("Starbucks Coffee #123", "RBC")
	require.True(t, ok)
	require.Equal(t, "food", cat)

	_, ok = e.Match("Local Diner", "RBC")
	require.False(t, ok)
}

func TestRegexMatchSearchesAnywhere(t *testing.T) {
	t.Parallel()

	e := NewEngine([]Rule{
		{Pattern: `uber(?:\s+eats)?`, IsRegex: true, Priority: 3, CategoryID: "transport"},
	})

	cat, ok := e.Match("TRIP WITH UBER HELP.UBER.COM", "CIBC")
	require.True(t, ok)
	require.Equal(t, "transport", cat)
}

func TestInvalidRegexIsInert(t *testing.T) {
	t.Parallel()

	e := NewEngine([]Rule{
		{Pattern: "(", IsRegex: true, Priority: 10, CategoryID: "broken"},
		{Pattern: "coffee", Priority: 1, CategoryID: "food"},
	})

	// The unbalanced pattern never matches and never panics; the next rule
	// still gets its turn.
	cat, ok := e.Match("COFFEE SHOP", "RBC")
	require.True(t, ok)
	require.Equal(t, "food", cat)

	_, ok = e.Match("(", "RBC")
	require.False(t, ok)
}

func TestSourceScopedRulesBeatGenericPriority(t *testing.T) {
	t.Parallel()

	e := NewEngine([]Rule{
		{Pattern: "STARBUCKS", Priority: 5, CategoryID: "generic-cat"},
		{Pattern: "STARBUCKS", Source: "RBC", Priority: 1, CategoryID: "rbc-cat"},
	})

	cat, ok := e.Match("STARBUCKS COFFEE", "RBC")
	require.True(t, ok)
	require.Equal(t, "rbc-cat", cat)

	// Transactions from other sources only see the generic rule.
	cat, ok = e.Match("STARBUCKS COFFEE", "CIBC")
	require.True(t, ok)
	require.Equal(t, "generic-cat", cat)
}

func TestPriorityOrdersWithinScope(t *testing.T) {
	t.Parallel()

	e := NewEngine([]Rule{
		{Pattern: "UBER", Priority: 2, CategoryID: "transport"},
		{Pattern: "UBER EATS", Priority: 3, CategoryID: "food"},
	})

	cat, ok := e.Match("UBER EATS TORONTO", "")
	require.True(t, ok)
	require.Equal(t, "food", cat)

	cat, ok = e.Match("UBER TRIP", "")
	require.True(t, ok)
	require.Equal(t, "transport", cat)
}

func TestRuleScopedToOtherSourceIgnored(t *testing.T) {
	t.Parallel()

	e := NewEngine([]Rule{
		{Pattern: "NETFLIX", Source: "CIBC", Priority: 3, CategoryID: "bills"},
	})

	_, ok := e.Match("NETFLIX.COM", "RBC")
	require.False(t, ok)
}

func TestValid(t *testing.T) {
	t.Parallel()

	require.True(t, Valid("anything at all", false))
	require.True(t, Valid(`^TIM\s+HORTONS`, true))
	require.False(t, Valid("(", true))
}
