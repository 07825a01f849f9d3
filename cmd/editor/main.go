package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"floorplan-editor/internal/common/config"
	"floorplan-editor/internal/common/middleware"
	"floorplan-editor/internal/editor/handlers"
	"floorplan-editor/internal/editor/repository"
	"floorplan-editor/internal/editor/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Editor Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), cfg.MigrationsDir); err != nil {
		log.Fatalf("init db: %v", err)
	}

	fileStorage := service.NewFileStorage(cfg.ExportRoot)

	// Отложенное сохранение: таймер на проект, поздняя запись побеждает.
	// Геометрию хендлеры пишут синхронно, flush фиксирует момент паузы
	// в редактировании через updated_at.
	autosave := service.NewAutosave(time.Duration(cfg.AutosaveMs)*time.Millisecond, func(projectID string) {
		if _, err := repo.Update(context.Background(), projectID, repository.UpdateParams{}); err != nil {
			log.Printf("[AUTOSAVE] flush %s error: %v", projectID, err)
			return
		}
		log.Printf("[AUTOSAVE] flush %s", projectID)
	})

	projectHandler := handlers.NewProjectHandler(repo, fileStorage, autosave)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Editor Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Project Routes
	// ============================================================

	app.Post("/projects", projectHandler.CreateProject)
	app.Get("/projects", projectHandler.ListProjects)
	app.Get("/projects/:id", projectHandler.GetProject)
	app.Patch("/projects/:id", projectHandler.UpdateProject)
	app.Delete("/projects/:id", projectHandler.DeleteProject)

	// ============================================================
	// Geometry & Export Routes
	// ============================================================

	app.Post("/projects/:id/doors", projectHandler.PlaceDoor)
	app.Delete("/projects/:id/doors/:doorId", projectHandler.DeleteDoor)
	app.Get("/projects/:id/roof", projectHandler.RoofSections)
	app.Post("/projects/:id/export", projectHandler.ExportProject)
	app.Get("/projects/:id/export/layout", projectHandler.ExportLayout)
	app.Post("/projects/:id/import", projectHandler.ImportSVG)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Editor Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
