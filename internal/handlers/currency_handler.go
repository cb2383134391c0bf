package handlers

import (
	"animart/internal/currency"

	"github.com/gofiber/fiber/v2"
)

// CurrencyHandler exposes the supported currency set and conversion.
type CurrencyHandler struct {
	registry *currency.Registry
}

// NewCurrencyHandler creates a new CurrencyHandler.
func NewCurrencyHandler(registry *currency.Registry) *CurrencyHandler {
	return &CurrencyHandler{
		registry: registry,
	}
}

// RegisterRoutes registers the currency routes with the Fiber app.
func (h *CurrencyHandler) RegisterRoutes(router fiber.Router) {
	currencyRoutes := router.Group("/currencies")
	currencyRoutes.Get("/", h.HandleListCurrencies)
	currencyRoutes.Get("/convert", h.HandleConvert)
}

// HandleListCurrencies returns the supported currency set.
func (h *CurrencyHandler) HandleListCurrencies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"default":    h.registry.Default(),
		"currencies": h.registry.List(),
	})
}

// HandleConvert converts an amount from the default currency for display.
func (h *CurrencyHandler) HandleConvert(c *fiber.Ctx) error {
	code := c.Query("code")
	amount := c.QueryFloat("amount")

	converted, err := h.registry.Convert(amount, code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not convert amount",
			"error":   err.Error(),
		})
	}
	formatted, err := h.registry.Format(converted, code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not format amount",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"code":      code,
		"amount":    converted,
		"formatted": formatted,
	})
}
