package handlers

import (
	"log"
	"strings"

	"animart/internal/cart"
	"animart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopper's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/quantity", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items", h.HandleRemoveItem)
	cartRoutes.Post("/clear", h.HandleClear)
	cartRoutes.Post("/open", h.HandleSetOpen)
}

// AddCartItemRequest is the add-to-cart payload.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// CartLineRequest identifies one cart line by its variant identity.
type CartLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// cartView is the JSON shape the storefront renders the cart drawer from.
type cartView struct {
	Items          []cart.Item `json:"items"`
	TotalItemCount int         `json:"total_item_count"`
	TotalAmount    float64     `json:"total_amount"`
	Open           bool        `json:"open"`
}

func viewOf(store *cart.Store) cartView {
	return cartView{
		Items:          store.Items(),
		TotalItemCount: store.TotalItemCount(),
		TotalAmount:    store.TotalAmount(),
		Open:           store.Open(),
	}
}

// HandleGetCart returns the current cart contents and derived totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	store := h.service.CartFor(requestUserID(c))
	return c.JSON(viewOf(store))
}

// HandleAddItem adds a product (with its chosen variant) to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
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
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	store, err := h.service.AddToCart(requestUserID(c), req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(viewOf(store))
}

// HandleUpdateQuantity sets the quantity on a cart line. Out-of-range
// values are clamped into [1, max], matching the store semantics.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req CartLineRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-quantity request body: %v", err)
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

	store := h.service.CartFor(requestUserID(c))
	store.UpdateQuantity(req.ProductID, req.Quantity, req.Size, req.Color)
	return c.JSON(viewOf(store))
}

// HandleRemoveItem deletes a cart line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	var req CartLineRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing remove-item request body: %v", err)
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

	store := h.service.CartFor(requestUserID(c))
	store.RemoveItem(req.ProductID, req.Size, req.Color)
	return c.JSON(viewOf(store))
}

// HandleClear empties the cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	store := h.service.CartFor(requestUserID(c))
	store.Clear()
	return c.JSON(viewOf(store))
}

// SetOpenRequest controls the cart drawer visibility flag. When Open is
// omitted the flag toggles.
type SetOpenRequest struct {
	Open *bool `json:"open"`
}

// HandleSetOpen sets or toggles the cart drawer visibility flag.
func (h *CartHandler) HandleSetOpen(c *fiber.Ctx) error {
	var req SetOpenRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing set-open request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	store := h.service.CartFor(requestUserID(c))
	if req.Open != nil {
		store.SetOpen(*req.Open)
	} else {
		store.ToggleOpen()
	}
	return c.JSON(viewOf(store))
}

// requestUserID returns the authenticated user id stored by the JWT
// middleware.
func requestUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
