package main

import (
	"fmt"
	"log"
	"time"

	"floorplan-editor/internal/common/config"
	"floorplan-editor/internal/common/middleware"
	"floorplan-editor/internal/gateway/handlers"
	"floorplan-editor/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
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

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe)
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Floorplan Editor API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Editor Service Routes (Proxy)
	// ============================================================

	editorURL := cfg.EditorURL

	api.Get("/projects", proxy.ProxyTo(editorURL+"/projects"))
	api.Post("/projects", proxy.ProxyTo(editorURL+"/projects"))
	api.Get("/projects/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/projects/%s", editorURL, c.Params("id")))
	})
	api.Patch("/projects/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/projects/%s", editorURL, c.Params("id")))
	})
	api.Delete("/projects/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/projects/%s", editorURL, c.Params("id")))
	})
	api.Post("/projects/:id/doors", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/projects/%s/doors", editorURL, c.Params("id")))
	})
	api.Delete("/projects/:id/doors/:doorId", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/projects/%s/doors/%s", editorURL, c.Params("id"), c.Params("doorId")))
	})
	api.Get("/projects/:id/roof", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/projects/%s/roof", editorURL, c.Params("id")))
	})
	api.Post("/projects/:id/export", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/projects/%s/export", editorURL, c.Params("id")))
	})
	api.Get("/projects/:id/export/layout", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/projects/%s/export/layout?%s", editorURL, c.Params("id"), c.Request().URI().QueryString()))
	})
	api.Post("/projects/:id/import", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/projects/%s/import?%s", editorURL, c.Params("id"), c.Request().URI().QueryString()))
	})

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /api/v1/projects to %s", cfg.EditorURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
