package handlers

import (
	"log"

	"animart/internal/models"
	"animart/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles the back-office store settings endpoints.
type SettingsHandler struct {
	repo     repositories.SettingsRepository
	validate *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(repo repositories.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{
		repo:     repo,
		validate: validator.New(),
	}
}

// RegisterAdminRoutes registers the settings routes with the Fiber app.
func (h *SettingsHandler) RegisterAdminRoutes(router fiber.Router) {
	settingsRoutes := router.Group("/settings")
	settingsRoutes.Get("/", h.HandleGetSettings)
	settingsRoutes.Put("/", h.HandleUpdateSettings)
}

// HandleGetSettings returns the active store settings.
func (h *SettingsHandler) HandleGetSettings(c *fiber.Ctx) error {
	settings, err := h.repo.Get()
	if err != nil {
		log.Printf("Error getting store settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve store settings",
			"error":   err.Error(),
		})
	}
	return c.JSON(settings)
}

// HandleUpdateSettings replaces the store settings. New values apply to
// pricing from the next quote onward; placed orders keep their snapshot.
func (h *SettingsHandler) HandleUpdateSettings(c *fiber.Ctx) error {
	var settings models.StoreSettings
	if err := c.BodyParser(&settings); err != nil {
		log.Printf("Error parsing settings request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.repo.Update(&settings); err != nil {
		log.Printf("Error updating store settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update store settings",
			"error":   err.Error(),
		})
	}
	return c.JSON(settings)
}
