package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/coinflow-dev/coinflow/internal/config"
	"github.com/coinflow-dev/coinflow/internal/database/repository"
	"github.com/coinflow-dev/coinflow/internal/service"
)

// Server wires the HTTP surface over the repositories and services.
type Server struct {
	Transactions *repository.TransactionRepo
	Categories   *repository.CategoryRepo
	Rules        *repository.RuleRepo
	Importer     *service.Importer
	Categorizer  *service.Categorizer
	UI           config.UIConfig
	Log          zerolog.Logger
}

func NewServer(txs *repository.TransactionRepo, cats *repository.CategoryRepo, ruleRepo *repository.RuleRepo, importer *service.Importer, categorizer *service.Categorizer, log zerolog.Logger) *Server {
	return &Server{
		Transactions: txs,
		Categories:   cats,
		Rules:        ruleRepo,
		Importer:     importer,
		Categorizer:  categorizer,
		Log:          log,
	}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(s.requestLogger())

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	api := app.Group("/api")

	api.Get("/transactions", s.listTransactions)
	api.Get("/transactions/:id", s.getTransaction)
	api.Patch("/transactions/:id/category", s.setTransactionCategory)
	api.Delete("/transactions/:id", s.deleteTransaction)

	api.Get("/categories", s.listCategories)
	api.Post("/categories", s.createCategory)
	api.Get("/categories/:id", s.getCategory)
	api.Put("/categories/:id", s.updateCategory)
	api.Delete("/categories/:id", s.deleteCategory)

	api.Get("/rules", s.listRules)
	api.Post("/rules", s.createRule)
	api.Put("/rules/:id", s.updateRule)
	api.Delete("/rules/:id", s.deleteRule)

	api.Post("/imports/preview", s.previewImport)
	api.Post("/imports", s.commitImport)
	api.Post("/categorize", s.categorizeAll)

	api.Get("/summary/categories", s.categorySummary)
	api.Get("/summary/trend", s.monthlyTrend)

	return app
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		s.Log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
