package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinflow-dev/coinflow/internal/database"
	"github.com/coinflow-dev/coinflow/internal/database/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedDefaults(context.Background(), db))
	return db
}

type repos struct {
	txs   *repository.TransactionRepo
	cats  *repository.CategoryRepo
	rules *repository.RuleRepo
}

func newRepos(db *sql.DB) repos {
	return repos{
		txs:   repository.NewTransactionRepo(db),
		cats:  repository.NewCategoryRepo(db),
		rules: repository.NewRuleRepo(db),
	}
}

func categoryID(t *testing.T, r repos, name string) string {
	t.Helper()
	cat, err := r.cats.GetByName(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, cat, "category %s should be seeded", name)
	return cat.ID
}
