package api

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// stageUpload writes the multipart upload to a temp file, preserving the
// original filename so format detection can use its extension.
func (s *Server) stageUpload(c *fiber.Ctx) (string, func(), error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	dir, err := os.MkdirTemp("", "coinflow-upload-")
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusInternalServerError, "failed to stage upload")
	}
	path := filepath.Join(dir, filepath.Base(file.Filename))
	if err := c.SaveFile(file, path); err != nil {
		os.RemoveAll(dir)
		return "", nil, fiber.NewError(fiber.StatusInternalServerError, "failed to stage upload")
	}
	return path, func() { os.RemoveAll(dir) }, nil
}

func (s *Server) previewImport(c *fiber.Ctx) error {
	path, cleanup, err := s.stageUpload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := s.Importer.Preview(c.UserContext(), path)
	if err != nil {
		s.Log.Error().Err(err).Msg("preview failed")
		return fiber.NewError(fiber.StatusUnprocessableEntity, "could not parse statement: "+err.Error())
	}
	return c.JSON(res)
}

func (s *Server) commitImport(c *fiber.Ctx) error {
	path, cleanup, err := s.stageUpload(c)
	if err != nil {
		return err
	}
	defer cleanup()

	autoCategorize := c.QueryBool("auto_categorize", true)
	res, err := s.Importer.ImportFile(c.UserContext(), path, autoCategorize)
	if err != nil {
		s.Log.Error().Err(err).Msg("import failed")
		return fiber.NewError(fiber.StatusUnprocessableEntity, "could not import statement: "+err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (s *Server) categorizeAll(c *fiber.Ctx) error {
	n, err := s.Categorizer.CategorizeAll(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to categorize transactions")
	}
	return c.JSON(fiber.Map{"categorized": n})
}
