package handlers

import (
	"log"
	"strings"

	"animart/internal/models"
	"animart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/eligibility/:orderId", h.HandleCheckEligibility)
	reviewRoutes.Post("/", h.HandleCreateReview)
}

// HandleCheckEligibility runs the review eligibility guard for an order,
// returning the order snapshot the review form references when eligible.
func (h *ReviewHandler) HandleCheckEligibility(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	productID := c.Query("product_id")

	order, err := h.service.CheckEligibility(requestUserID(c), orderID, productID)
	if err != nil {
		log.Printf("Review eligibility check failed for order %s: %v", orderID, err)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"eligible": false,
			"message":  "Review not allowed for this order",
			"error":    err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"eligible": true,
		"order":    order,
	})
}

// HandleCreateReview creates a review. The eligibility guard runs again
// server-side before anything is persisted.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		log.Printf("Error parsing create review request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	review.UserID = requestUserID(c)

	if err := h.validate.Struct(review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.CreateReview(&review); err != nil {
		log.Printf("Error creating review for order %s: %v", review.OrderID, err)
		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Review already exists",
				"error":   err.Error(),
			})
		}
		if strings.Contains(err.Error(), "not found") ||
			strings.Contains(err.Error(), "does not belong") ||
			strings.Contains(err.Error(), "not delivered") ||
			strings.Contains(err.Error(), "does not contain") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Review not allowed for this order",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create review",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}
