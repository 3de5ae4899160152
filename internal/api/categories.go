package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/coinflow-dev/coinflow/internal/database/repository"
)

type categoryBody struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsDefault   bool    `json:"is_default"`
}

func (s *Server) listCategories(c *fiber.Ctx) error {
	cats, err := s.Categories.List(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load categories")
	}
	return c.JSON(fiber.Map{"items": cats, "count": len(cats)})
}

func (s *Server) createCategory(c *fiber.Ctx) error {
	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	ctx := c.UserContext()
	existing, err := s.Categories.GetByName(ctx, body.Name)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to check category")
	}
	if existing != nil {
		return fiber.NewError(fiber.StatusConflict, "category already exists")
	}

	cat := repository.Category{
		ID:          uuid.NewString(),
		Name:        body.Name,
		Description: body.Description,
		IsDefault:   body.IsDefault,
	}
	if err := s.Categories.Create(ctx, cat); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create category")
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (s *Server) getCategory(c *fiber.Ctx) error {
	cat, err := s.Categories.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load category")
	}
	if cat == nil {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	return c.JSON(cat)
}

func (s *Server) updateCategory(c *fiber.Ctx) error {
	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	ctx := c.UserContext()
	cat, err := s.Categories.Get(ctx, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load category")
	}
	if cat == nil {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}

	if cat.IsDefault && !body.IsDefault {
		return fiber.NewError(fiber.StatusConflict, "cannot demote the default category")
	}

	cat.Name = body.Name
	cat.Description = body.Description
	cat.IsDefault = body.IsDefault
	if err := s.Categories.Update(ctx, *cat); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update category")
	}
	return c.JSON(cat)
}

// deleteCategory removes a category. Its transactions move to the category
// named by ?reassign_to, or become uncategorized when the parameter is
// absent. The default category cannot be deleted.
func (s *Server) deleteCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	cat, err := s.Categories.Get(ctx, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load category")
	}
	if cat == nil {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	if cat.IsDefault {
		return fiber.NewError(fiber.StatusConflict, "cannot delete the default category")
	}

	var target *string
	if to := c.Query("reassign_to"); to != "" {
		dest, err := s.Categories.Get(ctx, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load category")
		}
		if dest == nil {
			return fiber.NewError(fiber.StatusBadRequest, "unknown reassign target")
		}
		target = &dest.ID
	}

	if err := s.Transactions.ReassignCategory(ctx, cat.ID, target); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reassign transactions")
	}
	if err := s.Categories.Delete(ctx, cat.ID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
