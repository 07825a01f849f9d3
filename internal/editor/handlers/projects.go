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
	"floorplan-editor/internal/editor/service"
)

// ============================================================
// Project Handler
// ============================================================

type ProjectHandler struct {
	repo     *repository.Repository
	storage  *service.FileStorage
	autosave *service.Autosave
}

func NewProjectHandler(repo *repository.Repository, storage *service.FileStorage, autosave *service.Autosave) *ProjectHandler {
	return &ProjectHandler{
		repo:     repo,
		storage:  storage,
		autosave: autosave,
	}
}

type createProjectRequest struct {
	Name string `json:"name"`
}

// CreateProject создает пустой проект.
func (h *ProjectHandler) CreateProject(c fiber.Ctx) error {
	log.Printf("[PROJECTS] Create request")

	var req createProjectRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
	}
	if req.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name required"})
	}

	p := &models.Project{Name: req.Name}
	if err := h.repo.Create(context.Background(), p); err != nil {
		log.Printf("[PROJECTS] create error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create project"})
	}

	return c.Status(http.StatusCreated).JSON(p)
}

// ListProjects возвращает все проекты.
func (h *ProjectHandler) ListProjects(c fiber.Ctx) error {
	projects, err := h.repo.List(context.Background())
	if err != nil {
		log.Printf("[PROJECTS] list error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list projects"})
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return c.JSON(projects)
}

// GetProject отдает проект по id.
func (h *ProjectHandler) GetProject(c fiber.Ctx) error {
	p, err := h.loadProject(c)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

type updateProjectRequest struct {
	Name        *string               `json:"name"`
	CurrentStep *int                  `json:"currentStep"`
	Shapes      *[]models.Shape       `json:"shapes"`
	Doors       *[]models.Door        `json:"doors"`
	View        *models.ViewTransform `json:"viewTransform"`
}

// UpdateProject накладывает частичное обновление. Валидация ссылок
// дверей не блокирует запись: осиротевшие двери отфильтрует чтение.
func (h *ProjectHandler) UpdateProject(c fiber.Ctx) error {
	projectID := c.Params("id")
	if projectID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "id required"})
	}

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	var req updateProjectRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	if req.Shapes != nil {
		for _, s := range *req.Shapes {
			if len(s.Vertices) == 0 {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "shape must have at least one vertex"})
			}
		}
	}

	p, err := h.repo.Update(context.Background(), projectID, repository.UpdateParams{
		Name:        req.Name,
		CurrentStep: req.CurrentStep,
		Shapes:      req.Shapes,
		Doors:       req.Doors,
		View:        req.View,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
		}
		log.Printf("[PROJECTS] update error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update project"})
	}

	h.autosave.Schedule(projectID)
	return c.JSON(p)
}

// DeleteProject удаляет проект и снимает его отложенные сохранения.
func (h *ProjectHandler) DeleteProject(c fiber.Ctx) error {
	projectID := c.Params("id")
	if projectID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "id required"})
	}

	if err := h.repo.Delete(context.Background(), projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
		}
		log.Printf("[PROJECTS] delete error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete project"})
	}

	h.autosave.Cancel(projectID)
	return c.SendStatus(http.StatusNoContent)
}

// loadProject — общая загрузка проекта из :id с маппингом ошибок.
func (h *ProjectHandler) loadProject(c fiber.Ctx) (*models.Project, error) {
	projectID := c.Params("id")
	if projectID == "" {
		return nil, c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "id required"})
	}

	p, err := h.repo.GetByID(context.Background(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "project not found"})
		}
		log.Printf("[PROJECTS] get error: %v", err)
		return nil, c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load project"})
	}
	return p, nil
}
