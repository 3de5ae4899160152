package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// location resolves the configured display timezone, falling back to UTC on
// an empty or unknown name.
func (s *Server) location() *time.Location {
	if s.UI.Timezone != "" {
		if loc, err := time.LoadLocation(s.UI.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

func (s *Server) categorySummary(c *fiber.Ctx) error {
	month := time.Now().In(s.location())
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
		month = parsed
	}

	totals, err := s.Transactions.SumByCategoryForMonth(c.UserContext(), month)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute summary")
	}
	return c.JSON(fiber.Map{
		"month":           month.Format("2006-01"),
		"currency_symbol": s.UI.CurrencySymbol,
		"items":           totals,
	})
}

func (s *Server) monthlyTrend(c *fiber.Ctx) error {
	months := c.QueryInt("months", 6)
	if months < 1 || months > 60 {
		return fiber.NewError(fiber.StatusBadRequest, "months must be between 1 and 60")
	}

	trend, err := s.Transactions.MonthlyTrend(c.UserContext(), months)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute trend")
	}
	return c.JSON(fiber.Map{
		"currency_symbol": s.UI.CurrencySymbol,
		"items":           trend,
	})
}
