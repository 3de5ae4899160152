package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrNoMatch is returned when the heuristic scorer has no opinion at all.
var ErrNoMatch = errors.New("no category scored above zero")

// KeywordProvider is an offline classifier used when no API key is
// configured. It scores each candidate category against the description with
// keyword hits, token overlap and edit distance, and answers with the best
// scoring name. It keeps the rest of the pipeline exercisable without network
// access.
type KeywordProvider struct{}

func NewKeywordProvider() *KeywordProvider { return &KeywordProvider{} }

func (p *KeywordProvider) Categorize(_ context.Context, req Request) (string, error) {
	desc := strings.ToLower(req.Description)
	bestCat, bestScore := "", 0.0
	for _, cat := range req.Categories {
		if score := keywordScore(desc, strings.ToLower(cat)); score > bestScore {
			bestScore, bestCat = score, cat
		}
	}
	if bestCat == "" {
		return "", ErrNoMatch
	}
	return bestCat, nil
}

func keywordScore(desc, cat string) float64 {
	if strings.Contains(desc, cat) {
		return 0.9
	}
	switch {
	case containsAny(desc, "uber", "lyft", "transit", "parking", "gas "):
		if strings.Contains(cat, "transport") {
			return 0.85
		}
	case containsAny(desc, "restaurant", "cafe", "coffee", "grocery", "pizza", "mcdonald", "starbucks"):
		if strings.Contains(cat, "food") || strings.Contains(cat, "dining") {
			return 0.85
		}
	case containsAny(desc, "amazon", "walmart", "target", "ebay"):
		if strings.Contains(cat, "shopping") {
			return 0.8
		}
	case containsAny(desc, "netflix", "spotify", "phone", "internet", "utility", "hydro"):
		if strings.Contains(cat, "bills") || strings.Contains(cat, "utilities") {
			return 0.8
		}
	case containsAny(desc, "salary", "payroll", "paycheck"):
		if strings.Contains(cat, "income") {
			return 0.85
		}
	case containsAny(desc, "transfer", "e-transfer", "interac"):
		if strings.Contains(cat, "transfer") {
			return 0.85
		}
	}
	return tokenCloseness(desc, cat)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// tokenCloseness scores the best per-token edit-distance match between the
// description and the category name, in [0,1).
func tokenCloseness(desc, cat string) float64 {
	best := 0.0
	for _, dt := range strings.Fields(desc) {
		for _, ct := range strings.Fields(cat) {
			if len(dt) < 4 || len(ct) < 4 {
				continue
			}
			d := levenshtein.ComputeDistance(dt, ct)
			if d > 2 {
				continue
			}
			score := 0.7 / float64(1+d)
			if score > best {
				best = score
			}
		}
	}
	return best
}
