package handlers

import (
	"log"
	"strings"

	"animart/internal/services"
	"animart/internal/wishlist"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the shopper's wishlist.
type WishlistHandler struct {
	service  *services.WishlistService
	validate *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/toggle", h.HandleToggle)
	wishlistRoutes.Delete("/:productId", h.HandleRemove)
	wishlistRoutes.Post("/clear", h.HandleClear)
}

type wishlistView struct {
	Items     []wishlist.Item `json:"items"`
	ItemCount int             `json:"item_count"`
}

func wishlistViewOf(store *wishlist.Store) wishlistView {
	return wishlistView{
		Items:     store.Items(),
		ItemCount: store.ItemCount(),
	}
}

// HandleGetWishlist returns the wishlist contents.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	store := h.service.WishlistFor(requestUserID(c))
	return c.JSON(wishlistViewOf(store))
}

// ToggleWishlistRequest identifies the product to toggle.
type ToggleWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// HandleToggle flips wishlist membership for a product.
func (h *WishlistHandler) HandleToggle(c *fiber.Ctx) error {
	var req ToggleWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing wishlist toggle request body: %v", err)
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

	added, err := h.service.Toggle(requestUserID(c), req.ProductID)
	if err != nil {
		log.Printf("Error toggling wishlist product %s: %v", req.ProductID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update wishlist",
			"error":   err.Error(),
		})
	}

	store := h.service.WishlistFor(requestUserID(c))
	return c.JSON(fiber.Map{
		"added":    added,
		"wishlist": wishlistViewOf(store),
	})
}

// HandleRemove deletes a product from the wishlist.
func (h *WishlistHandler) HandleRemove(c *fiber.Ctx) error {
	store := h.service.WishlistFor(requestUserID(c))
	store.Remove(c.Params("productId"))
	return c.JSON(wishlistViewOf(store))
}

// HandleClear empties the wishlist.
func (h *WishlistHandler) HandleClear(c *fiber.Ctx) error {
	store := h.service.WishlistFor(requestUserID(c))
	store.Clear()
	return c.JSON(wishlistViewOf(store))
}
