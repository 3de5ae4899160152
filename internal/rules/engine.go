// Package rules matches transaction descriptions against stored mapping
// rules. The engine is pure and in-memory; callers load rules from storage
// and construct a fresh engine per evaluation batch.
package rules

import (
	"regexp"
	"sort"
	"strings"
)

// Rule is one pattern-to-category mapping. A rule with an empty Source
// applies to all sources; a non-empty Source scopes it to one adapter.
type Rule struct {
	Pattern    string
	IsRegex    bool
	Source     string
	Priority   int
	CategoryID string
}

// Engine evaluates rules in precedence order.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine over the given rules. Ordering within a scope is
// by priority, highest first; the incoming order breaks ties.
func NewEngine(rs []Rule) *Engine {
	sorted := make([]Rule, len(rs))
	copy(sorted, rs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &Engine{rules: sorted}
}

// Match returns the category of the first matching rule. All rules scoped to
// the transaction's source are evaluated before any generic rule, so source
// scoping beats raw priority across scopes.
func (e *Engine) Match(description, source string) (string, bool) {
	for _, r := range e.rules {
		if r.Source == source && r.Source != "" && matches(r, description) {
			return r.CategoryID, true
		}
	}
	for _, r := range e.rules {
		if r.Source == "" && matches(r, description) {
			return r.CategoryID, true
		}
	}
	return "", false
}

// matches checks one rule. An invalid regex pattern is inert: it matches
// nothing and never surfaces an error at match time.
func matches(r Rule, description string) bool {
	if r.IsRegex {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return false
		}
		return re.MatchString(description)
	}
	return strings.Contains(strings.ToLower(description), strings.ToLower(r.Pattern))
}

// Valid reports whether a pattern is usable for the given rule kind. Plain
// substring patterns are always valid; regex patterns must compile.
func Valid(pattern string, isRegex bool) bool {
	if !isRegex {
		return true
	}
	_, err := regexp.Compile("(?i)" + pattern)
	return err == nil
}
