package handlers

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"floorplan-editor/internal/editor/importer"
	"floorplan-editor/internal/editor/models"
	"floorplan-editor/internal/editor/repository"
)

// ============================================================
// Import Handler
// ============================================================

// ImportSVG загружает SVG план в проект: распознанные элементы
// добавляются к фигурам проекта.
func (h *ProjectHandler) ImportSVG(c fiber.Ctx) error {
	log.Printf("[IMPORT] Received request")
	log.Printf("[IMPORT] Content-Type: %s", c.Get("Content-Type"))

	p, err := h.loadProject(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required in multipart/form-data"})
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".svg" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "only svg allowed"})
	}

	log.Printf("[IMPORT] File received: %s, size: %d", fileHeader.Filename, fileHeader.Size)

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer file.Close()

	scale := 0.0
	if raw := c.Query("scale"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			scale = v
		}
	}

	shapes, err := importer.ParseSVG(file, scale)
	if err != nil {
		log.Printf("[IMPORT] parse error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid svg"})
	}
	if len(shapes) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "no recognizable elements in svg"})
	}

	merged := append(append([]models.Shape{}, p.Shapes...), shapes...)
	updated, err := h.repo.Update(context.Background(), p.ID, repository.UpdateParams{Shapes: &merged})
	if err != nil {
		log.Printf("[IMPORT] update error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save imported shapes"})
	}

	log.Printf("[IMPORT] Imported %d shapes", len(shapes))
	return c.JSON(updated)
}
