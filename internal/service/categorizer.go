package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coinflow-dev/coinflow/internal/database/repository"
	"github.com/coinflow-dev/coinflow/internal/llm"
	"github.com/coinflow-dev/coinflow/internal/rules"
)

// Categorizer resolves a category for each transaction, trying cheaper
// strategies before the LLM: explicit assignment, mapping rules, the session
// cache, then the provider, then the default category.
type Categorizer struct {
	Transactions *repository.TransactionRepo
	Categories   *repository.CategoryRepo
	Rules        *repository.RuleRepo
	Provider     llm.Provider
	Log          zerolog.Logger

	// cache maps description to category ID for the lifetime of this
	// instance, so repeated merchants within a batch hit the LLM once.
	cache map[string]string
}

func NewCategorizer(txs *repository.TransactionRepo, cats *repository.CategoryRepo, ruleRepo *repository.RuleRepo, provider llm.Provider, log zerolog.Logger) *Categorizer {
	return &Categorizer{
		Transactions: txs,
		Categories:   cats,
		Rules:        ruleRepo,
		Provider:     provider,
		Log:          log,
		cache:        make(map[string]string),
	}
}

// Resolve returns the category ID for a transaction, or nil when nothing
// applies and no default category exists. It never fails on provider errors;
// those are logged and the fallback chain continues.
func (s *Categorizer) Resolve(ctx context.Context, tx repository.Transaction) (*string, error) {
	engine, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, engine, tx)
}

func (s *Categorizer) resolve(ctx context.Context, engine *rules.Engine, tx repository.Transaction) (*string, error) {
	if tx.CategoryID != nil {
		return tx.CategoryID, nil
	}

	if catID, ok := engine.Match(tx.Description, tx.Source); ok {
		s.cache[tx.Description] = catID
		return &catID, nil
	}

	if catID, ok := s.cache[tx.Description]; ok {
		return &catID, nil
	}

	cats, err := s.Categories.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.Provider != nil {
		// providers see magnitudes only; the sign is already captured
		// by IsExpense
		name, err := s.Provider.Categorize(ctx, llm.Request{
			Description: tx.Description,
			Amount:      math.Abs(tx.Amount),
			Categories:  categoryNames(cats),
		})
		if err != nil {
			s.Log.Warn().Err(err).Str("description", tx.Description).Msg("llm categorization failed")
		} else if cat := matchCategoryName(name, cats); cat != nil {
			s.cache[tx.Description] = cat.ID
			return &cat.ID, nil
		} else {
			s.Log.Debug().Str("suggestion", name).Str("description", tx.Description).Msg("llm suggested unknown category")
		}
	}

	def, err := s.Categories.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, nil
	}
	return &def.ID, nil
}

// CategorizeBatch resolves and persists categories for the given
// transactions, returning how many were updated.
func (s *Categorizer) CategorizeBatch(ctx context.Context, txs []repository.Transaction) (int, error) {
	engine, err := s.engine(ctx)
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, tx := range txs {
		if tx.CategoryID != nil {
			continue
		}
		catID, err := s.resolve(ctx, engine, tx)
		if err != nil {
			return updated, err
		}
		if catID == nil {
			continue
		}
		if err := s.Transactions.UpdateCategory(ctx, tx.ID, catID); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// CategorizeAll runs the batch over every uncategorized stored transaction.
func (s *Categorizer) CategorizeAll(ctx context.Context) (int, error) {
	txs, err := s.Transactions.Uncategorized(ctx)
	if err != nil {
		return 0, err
	}
	return s.CategorizeBatch(ctx, txs)
}

func (s *Categorizer) engine(ctx context.Context) (*rules.Engine, error) {
	stored, err := s.Rules.List(ctx)
	if err != nil {
		return nil, err
	}
	rs := make([]rules.Rule, 0, len(stored))
	for _, m := range stored {
		source := ""
		if m.Source != nil {
			source = *m.Source
		}
		rs = append(rs, rules.Rule{
			Pattern:    m.Pattern,
			IsRegex:    m.IsRegex,
			Source:     source,
			Priority:   m.Priority,
			CategoryID: m.CategoryID,
		})
	}
	return rules.NewEngine(rs), nil
}

func categoryNames(cats []repository.Category) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Name)
	}
	return out
}

// matchCategoryName maps a provider suggestion to a known category, tolerating
// case differences and partial names in either direction.
func matchCategoryName(name string, cats []repository.Category) *repository.Category {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	for i := range cats {
		if strings.ToLower(cats[i].Name) == lower {
			return &cats[i]
		}
	}
	for i := range cats {
		catLower := strings.ToLower(cats[i].Name)
		if strings.Contains(catLower, lower) || strings.Contains(lower, catLower) {
			return &cats[i]
		}
	}
	return nil
}
