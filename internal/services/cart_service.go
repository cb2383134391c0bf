package services

import (
	"fmt"
	"sync"

	"animart/internal/cart"
	"animart/internal/repositories"
)

// CartService keeps one cart store per user. Carts are session state, not
// server-authoritative until checkout; last write wins across sessions.
type CartService struct {
	productRepo repositories.ProductRepository

	mu    sync.Mutex
	carts map[string]*cart.Store
}

// NewCartService creates a new CartService.
func NewCartService(productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		productRepo: productRepo,
		carts:       make(map[string]*cart.Store),
	}
}

// CartFor returns the user's cart, creating an empty one on first use.
func (s *CartService) CartFor(userID string) *cart.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.carts[userID]
	if !ok {
		store = cart.NewStore()
		s.carts[userID] = store
	}
	return store
}

// AddToCart snapshots the product into the user's cart. The price and
// max-quantity constraint are captured at add time and not re-fetched.
func (s *CartService) AddToCart(userID, productID, size, color string, quantity int) (*cart.Store, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("product %s not found: %w", productID, err)
	}
	if product.Stock <= 0 {
		return nil, fmt.Errorf("product %s is out of stock", product.Name)
	}
	if size != "" && !contains(product.Sizes, size) {
		return nil, fmt.Errorf("product %s has no size %s", product.Name, size)
	}
	if color != "" && !contains(product.Colors, color) {
		return nil, fmt.Errorf("product %s has no color %s", product.Name, color)
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	store := s.CartFor(userID)
	store.AddItem(cart.Item{
		ProductID:     product.ID,
		Name:          product.Name,
		UnitPrice:     product.Price,
		Image:         image,
		SelectedSize:  size,
		SelectedColor: color,
		MaxQuantity:   product.MaxOrderQuantity,
	}, quantity)
	return store, nil
}

func contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
