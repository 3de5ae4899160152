package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/coinflow-dev/coinflow/internal/database/repository"
)

func (s *Server) listTransactions(c *fiber.Ctx) error {
	f := repository.TransactionFilters{
		CategoryID: c.Query("category_id"),
		Source:     c.Query("source"),
		ImportID:   c.Query("import_id"),
		Search:     c.Query("search"),
		Limit:      c.QueryInt("limit"),
		Offset:     c.QueryInt("offset"),
	}
	if m := c.Query("month"); m != "" {
		month, err := time.Parse("2006-01", m)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
		f.Month = month
	}

	items, err := s.Transactions.List(c.UserContext(), f)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transactions")
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

func (s *Server) getTransaction(c *fiber.Ctx) error {
	tx, err := s.Transactions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transaction")
	}
	if tx == nil {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	return c.JSON(tx)
}

func (s *Server) setTransactionCategory(c *fiber.Ctx) error {
	var body struct {
		CategoryID *string `json:"category_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	ctx := c.UserContext()
	tx, err := s.Transactions.Get(ctx, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transaction")
	}
	if tx == nil {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	if body.CategoryID != nil {
		cat, err := s.Categories.Get(ctx, *body.CategoryID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load category")
		}
		if cat == nil {
			return fiber.NewError(fiber.StatusBadRequest, "unknown category")
		}
	}
	if err := s.Transactions.UpdateCategory(ctx, tx.ID, body.CategoryID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update transaction")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteTransaction(c *fiber.Ctx) error {
	if err := s.Transactions.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete transaction")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
