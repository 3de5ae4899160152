package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/coinflow-dev/coinflow/internal/config"
	"github.com/coinflow-dev/coinflow/internal/database"
	"github.com/coinflow-dev/coinflow/internal/database/repository"
	"github.com/coinflow-dev/coinflow/internal/llm"
	"github.com/coinflow-dev/coinflow/internal/logger"
	"github.com/coinflow-dev/coinflow/internal/service"
)

// app holds everything a command needs after startup.
type app struct {
	Config       config.Config
	DB           *sql.DB
	Log          zerolog.Logger
	Transactions *repository.TransactionRepo
	Categories   *repository.CategoryRepo
	Rules        *repository.RuleRepo
	Categorizer  *service.Categorizer
	Importer     *service.Importer
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log := logger.New()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding defaults: %w", err)
	}

	txs := repository.NewTransactionRepo(db)
	cats := repository.NewCategoryRepo(db)
	ruleRepo := repository.NewRuleRepo(db)

	provider := newProvider(cfg, log)
	categorizer := service.NewCategorizer(txs, cats, ruleRepo, provider, log)
	importer := service.NewImporter(txs, categorizer, log)

	return &app{
		Config:       cfg,
		DB:           db,
		Log:          log,
		Transactions: txs,
		Categories:   cats,
		Rules:        ruleRepo,
		Categorizer:  categorizer,
		Importer:     importer,
	}, nil
}

func (a *app) Close() {
	_ = a.DB.Close()
}

func newProvider(cfg config.Config, log zerolog.Logger) llm.Provider {
	switch cfg.LLM.Provider {
	case "gemini":
		key := cfg.ResolveAPIKey()
		if key == "" {
			log.Warn().Msg("gemini selected but no API key configured, using keyword matching")
			return llm.NewKeywordProvider()
		}
		return llm.NewGeminiProvider(key, cfg.LLM.Model)
	case "none":
		return nil
	default:
		return llm.NewKeywordProvider()
	}
}
