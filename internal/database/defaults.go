package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/coinflow-dev/coinflow/internal/database/repository"
)

const defaultCategoryName = "Uncategorized"

type seedCategory struct {
	name        string
	description string
}

var seedCategories = []seedCategory{
	{"Food & Dining", "Restaurants, grocery stores, etc."},
	{"Shopping", "Retail stores, online shopping, etc."},
	{"Housing", "Rent, mortgage, etc."},
	{"Transportation", "Public transit, gas, etc."},
	{"Entertainment", "Movies, games, etc."},
	{"Health & Fitness", "Medical, gym, etc."},
	{"Personal Care", "Hair, cosmetics, etc."},
	{"Education", "Tuition, books, etc."},
	{"Gifts & Donations", "Charity, presents, etc."},
	{"Bills & Utilities", "Phone, internet, etc."},
	{"Travel", "Flights, hotels, etc."},
	{"Income", "Salary, freelance, etc."},
	{"Transfer", "Moving money between accounts"},
	{defaultCategoryName, "Default for transactions without a category"},
}

type seedRule struct {
	pattern  string
	category string
	isRegex  bool
	priority int
}

var seedRules = []seedRule{
	{"RESTAURANT", "Food & Dining", false, 2},
	{"CAFE", "Food & Dining", false, 2},
	{"GROCERY", "Food & Dining", false, 2},
	{"MCDONALD", "Food & Dining", false, 3},
	{"STARBUCKS", "Food & Dining", false, 3},
	{"UBER EATS", "Food & Dining", false, 3},
	{"AMAZON", "Shopping", false, 3},
	{"WALMART", "Shopping", false, 3},
	{"TARGET", "Shopping", false, 3},
	{"CLOTHING", "Shopping", false, 2},
	{"UBER", "Transportation", false, 2},
	{"LYFT", "Transportation", false, 3},
	{"GAS", "Transportation", false, 2},
	{"TRANSIT", "Transportation", false, 2},
	{"PARKING", "Transportation", false, 2},
	{"PHONE", "Bills & Utilities", false, 2},
	{"INTERNET", "Bills & Utilities", false, 2},
	{"CABLE", "Bills & Utilities", false, 2},
	{"UTILITY", "Bills & Utilities", false, 2},
	{"NETFLIX", "Bills & Utilities", false, 3},
	{"SPOTIFY", "Bills & Utilities", false, 3},
	{"CINEMA", "Entertainment", false, 2},
	{"MOVIE", "Entertainment", false, 2},
	{"THEATRE", "Entertainment", false, 2},
	{"CONCERT", "Entertainment", false, 2},
	{"SALARY", "Income", false, 2},
	{"PAYROLL", "Income", false, 2},
	{"DEPOSIT", "Income", false, 1},
	{"TRANSFER", "Transfer", false, 2},
	{"E-TRANSFER", "Transfer", false, 3},
	{"INTERAC", "Transfer", false, 3},
}

// SeedDefaults ensures baseline categories and mapping rules exist for new
// databases. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	catRepo := repository.NewCategoryRepo(db)
	ruleRepo := repository.NewRuleRepo(db)

	catIDs := make(map[string]string, len(seedCategories))
	for _, sc := range seedCategories {
		existing, err := catRepo.GetByName(ctx, sc.name)
		if err != nil {
			return err
		}
		if existing != nil {
			catIDs[sc.name] = existing.ID
			continue
		}
		desc := sc.description
		cat := repository.Category{
			ID:          uuid.NewString(),
			Name:        sc.name,
			Description: &desc,
			IsDefault:   sc.name == defaultCategoryName,
		}
		if err := catRepo.Create(ctx, cat); err != nil {
			return err
		}
		catIDs[sc.name] = cat.ID
	}

	existing, err := ruleRepo.List(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, m := range existing {
		have[m.Pattern+"|"+m.CategoryID] = true
	}
	for _, sr := range seedRules {
		catID, ok := catIDs[sr.category]
		if !ok {
			continue
		}
		if have[sr.pattern+"|"+catID] {
			continue
		}
		rule := repository.MappingRule{
			ID:         uuid.NewString(),
			Pattern:    sr.pattern,
			CategoryID: catID,
			IsRegex:    sr.isRegex,
			Priority:   sr.priority,
		}
		if err := ruleRepo.Create(ctx, rule); err != nil {
			return err
		}
	}
	return nil
}
