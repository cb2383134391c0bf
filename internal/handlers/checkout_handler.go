package handlers

import (
	"log"
	"strings"

	"animart/internal/models"
	"animart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for the checkout wizard.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Get("/", h.HandleGetCheckout)
	checkoutRoutes.Post("/shipping", h.HandleSubmitShipping)
	checkoutRoutes.Post("/payment-method", h.HandleSelectPaymentMethod)
	checkoutRoutes.Post("/back", h.HandleBack)
	checkoutRoutes.Post("/confirm", h.HandleConfirm)
	checkoutRoutes.Post("/verify-payment", h.HandleVerifyPayment)
}

// HandleGetCheckout returns the wizard state plus the pricing quote the
// review step displays.
func (h *CheckoutHandler) HandleGetCheckout(c *fiber.Ctx) error {
	userID := requestUserID(c)
	quote, err := h.service.Quote(userID)
	if err != nil {
		log.Printf("Error quoting checkout for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not compute pricing",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"flow":    h.service.FlowFor(userID).Snapshot(),
		"pricing": quote,
	})
}

// HandleSubmitShipping validates the shipping step and advances the flow.
// Validation failures surface as a field-level error map and the flow
// stays on the shipping step.
func (h *CheckoutHandler) HandleSubmitShipping(c *fiber.Ctx) error {
	var addr models.ShippingAddress
	if err := c.BodyParser(&addr); err != nil {
		log.Printf("Error parsing shipping request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID := requestUserID(c)
	if err := h.service.SubmitShipping(userID, addr); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  validationErrorMap(err),
			})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Could not submit shipping details",
			"error":   err.Error(),
		})
	}
	return c.JSON(h.service.FlowFor(userID).Snapshot())
}

// SelectPaymentMethodRequest carries the chosen payment method.
type SelectPaymentMethodRequest struct {
	Method string `json:"method" validate:"required"`
}

// HandleSelectPaymentMethod records the payment method and advances to
// the review step.
func (h *CheckoutHandler) HandleSelectPaymentMethod(c *fiber.Ctx) error {
	var req SelectPaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing payment method request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	userID := requestUserID(c)
	if err := h.service.SelectPaymentMethod(userID, req.Method); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not select payment method",
			"error":   err.Error(),
		})
	}
	return c.JSON(h.service.FlowFor(userID).Snapshot())
}

// HandleBack moves the wizard one step earlier, preserving entered data.
func (h *CheckoutHandler) HandleBack(c *fiber.Ctx) error {
	userID := requestUserID(c)
	if err := h.service.Back(userID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Could not go back",
			"error":   err.Error(),
		})
	}
	return c.JSON(h.service.FlowFor(userID).Snapshot())
}

// HandleConfirm submits the order from the review step.
func (h *CheckoutHandler) HandleConfirm(c *fiber.Ctx) error {
	userID := requestUserID(c)
	result, err := h.service.Confirm(userID)
	if err != nil {
		log.Printf("Error confirming checkout for user %s: %v", userID, err)
		if strings.Contains(err.Error(), "empty cart") || strings.Contains(err.Error(), "cannot confirm") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Could not place order",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place order",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// VerifyPaymentRequest carries the hosted widget's completion tokens.
type VerifyPaymentRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// HandleVerifyPayment forwards the payment widget callback tokens for
// verification. Failure returns the flow to the payment step.
func (h *CheckoutHandler) HandleVerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verify payment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	userID := requestUserID(c)
	order, err := h.service.VerifyPayment(userID, req.PaymentID, req.Signature)
	if err != nil {
		log.Printf("Payment verification failed for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Payment verification failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Payment verified",
		"order":   order,
	})
}
