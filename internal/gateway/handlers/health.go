package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe проверяет, что gateway работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe проверяет готовность обрабатывать запросы
func ReadinessProbe(c fiber.Ctx) error {
	// Сюда можно добавить проверку доступности editor-сервиса.
	return c.JSON(fiber.Map{
		"status": "ready",
	})
}

// StartupProbe проверяет, что gateway успешно запустился
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
