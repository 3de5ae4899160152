// Package llm abstracts the external text-classification capability used as
// the categorizer's last resort before the default bucket.
package llm

import "context"

// Request carries everything a classifier gets to see: the transaction's
// description, its absolute amount, and the closed list of category names to
// choose from.
type Request struct {
	Description string
	Amount      float64
	Categories  []string
}

// Provider returns exactly one category name for a request, or an error. The
// categorizer treats any error as "no answer" and falls through; providers
// should not try to recover beyond their own retries.
type Provider interface {
	Categorize(ctx context.Context, req Request) (string, error)
}
