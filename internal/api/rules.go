package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/coinflow-dev/coinflow/internal/database/repository"
	"github.com/coinflow-dev/coinflow/internal/rules"
)

type ruleBody struct {
	Pattern    string  `json:"pattern"`
	CategoryID string  `json:"category_id"`
	Source     *string `json:"source"`
	IsRegex    bool    `json:"is_regex"`
	Priority   int     `json:"priority"`
}

func (b *ruleBody) validate(s *Server, c *fiber.Ctx) error {
	b.Pattern = strings.TrimSpace(b.Pattern)
	if b.Pattern == "" {
		return fiber.NewError(fiber.StatusBadRequest, "pattern is required")
	}
	if !rules.Valid(b.Pattern, b.IsRegex) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid regex pattern")
	}
	cat, err := s.Categories.Get(c.UserContext(), b.CategoryID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load category")
	}
	if cat == nil {
		return fiber.NewError(fiber.StatusBadRequest, "unknown category")
	}
	if b.Source != nil && strings.TrimSpace(*b.Source) == "" {
		b.Source = nil
	}
	return nil
}

func (s *Server) listRules(c *fiber.Ctx) error {
	items, err := s.Rules.List(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load rules")
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

func (s *Server) createRule(c *fiber.Ctx) error {
	var body ruleBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := body.validate(s, c); err != nil {
		return err
	}

	rule := repository.MappingRule{
		ID:         uuid.NewString(),
		Pattern:    body.Pattern,
		CategoryID: body.CategoryID,
		Source:     body.Source,
		IsRegex:    body.IsRegex,
		Priority:   body.Priority,
	}
	if err := s.Rules.Create(c.UserContext(), rule); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create rule")
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}

func (s *Server) updateRule(c *fiber.Ctx) error {
	var body ruleBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := body.validate(s, c); err != nil {
		return err
	}

	ctx := c.UserContext()
	rule, err := s.Rules.Get(ctx, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load rule")
	}
	if rule == nil {
		return fiber.NewError(fiber.StatusNotFound, "rule not found")
	}

	rule.Pattern = body.Pattern
	rule.CategoryID = body.CategoryID
	rule.Source = body.Source
	rule.IsRegex = body.IsRegex
	rule.Priority = body.Priority
	if err := s.Rules.Update(ctx, *rule); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update rule")
	}
	return c.JSON(rule)
}

func (s *Server) deleteRule(c *fiber.Ctx) error {
	if err := s.Rules.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete rule")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
