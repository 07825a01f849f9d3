package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"floorplan-editor/internal/editor/export"
	"floorplan-editor/internal/editor/models"
	"floorplan-editor/internal/editor/session"
)

// ============================================================
// Export Handler
// ============================================================

// ExportProject генерирует PNG или PDF листа и отдает файл.
// Осиротевшие двери (стена удалена) в экспорт не попадают.
func (h *ProjectHandler) ExportProject(c fiber.Ctx) error {
	log.Printf("[EXPORT] Received request")
	log.Printf("[EXPORT] Content-Length: %d", len(c.Body()))

	p, err := h.loadProject(c)
	if err != nil {
		return err
	}

	opts := models.ExportOptions{Format: models.FormatPNG, DPI: 300}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &opts); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
	}

	if err := export.Validate(opts); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	state := session.State{Shapes: p.Shapes, Doors: p.Doors, View: p.View}
	doors := state.ValidDoors()

	switch opts.Format {
	case models.FormatPDF:
		if err := h.storage.EnsureDir(p.ID); err != nil {
			log.Printf("[EXPORT] prepare dir error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to prepare export dir"})
		}
		path := h.storage.PDFPath(p.ID)
		if err := export.RenderPDF(path, p.Shapes, doors, opts); err != nil {
			log.Printf("[EXPORT] pdf error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to render pdf"})
		}
		c.Set("Content-Type", "application/pdf")
		return c.SendFile(path)

	default:
		data, err := export.RenderPNG(p.Shapes, doors, opts)
		if err != nil {
			log.Printf("[EXPORT] png error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to render png"})
		}
		path := h.storage.PNGPath(p.ID, opts.DPI)
		if err := h.storage.SaveFile(p.ID, path, data); err != nil {
			log.Printf("[EXPORT] save png error: %v", err)
		}
		c.Set("Content-Type", "image/png")
		return c.Send(data)
	}
}

// ExportLayout отдает экспортную геометрию как JSON: размеры страницы,
// линии сетки и подписи размеров для внешнего рендерера.
func (h *ProjectHandler) ExportLayout(c fiber.Ctx) error {
	p, err := h.loadProject(c)
	if err != nil {
		return err
	}

	opts := models.ExportOptions{
		Format:              models.FormatPNG,
		DPI:                 fiber.Query(c, "dpi", 300),
		IncludeGrid:         fiber.Query(c, "grid", true),
		IncludeMeasurements: fiber.Query(c, "measurements", true),
	}

	layout, err := export.Layout(p.Shapes, opts)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(layout)
}
