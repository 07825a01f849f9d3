package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"floorplan-editor/internal/editor/models"
	"floorplan-editor/internal/editor/repository"
	"floorplan-editor/internal/editor/roof"
	"floorplan-editor/internal/editor/session"
	"floorplan-editor/internal/editor/walls"
)

// ============================================================
// Geometry Handlers
// ============================================================

type placeDoorRequest struct {
	Type  models.DoorType `json:"type"`
	Point models.Point    `json:"point"` // мировые координаты
}

// PlaceDoor ставит дверь на ближайшую стену проекта. Точка вне
// допуска — 422 без изменения проекта: это локально восстановимый
// отказ, не ошибка сервера.
func (h *ProjectHandler) PlaceDoor(c fiber.Ctx) error {
	p, err := h.loadProject(c)
	if err != nil {
		return err
	}

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}
	var req placeDoorRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Type == "" {
		req.Type = models.DoorSingle
	}

	door, err := walls.PlaceDoor(p.Shapes, req.Type, req.Point)
	if err != nil {
		if errors.Is(err, walls.ErrInvalidPlacement) {
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": "no wall near point"})
		}
		log.Printf("[DOORS] place error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to place door"})
	}

	doors := append(append([]models.Door{}, p.Doors...), door)
	if _, err := h.repo.Update(context.Background(), p.ID, repository.UpdateParams{Doors: &doors}); err != nil {
		log.Printf("[DOORS] update error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save door"})
	}

	h.autosave.Schedule(p.ID)
	return c.Status(http.StatusCreated).JSON(door)
}

// DeleteDoor удаляет дверь проекта.
func (h *ProjectHandler) DeleteDoor(c fiber.Ctx) error {
	p, err := h.loadProject(c)
	if err != nil {
		return err
	}

	doorID := c.Params("doorId")
	state := session.State{Shapes: p.Shapes, Doors: p.Doors}
	next := state.DeleteDoor(doorID)
	if len(next.Doors) == len(p.Doors) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "door not found"})
	}

	if _, err := h.repo.Update(context.Background(), p.ID, repository.UpdateParams{Doors: &next.Doors}); err != nil {
		log.Printf("[DOORS] delete error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete door"})
	}
	return c.SendStatus(http.StatusNoContent)
}

// RoofSections отдает производные секции крыши по фигурам дома.
// Ничего не персистит: геометрия пересчитывается от текущих вершин.
func (h *ProjectHandler) RoofSections(c fiber.Ctx) error {
	p, err := h.loadProject(c)
	if err != nil {
		return err
	}

	out := map[string][]models.RoofSection{}
	for _, s := range p.Shapes {
		if !s.Layer.RoofEligible() {
			continue
		}
		if sections := roof.DetectRoofSections(s); len(sections) > 0 {
			out[s.ID] = sections
		}
	}
	return c.JSON(out)
}
