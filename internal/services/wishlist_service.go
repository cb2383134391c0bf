package services

import (
	"fmt"
	"sync"

	"animart/internal/repositories"
	"animart/internal/wishlist"
)

// WishlistService keeps one wishlist store per user.
type WishlistService struct {
	productRepo repositories.ProductRepository

	mu        sync.Mutex
	wishlists map[string]*wishlist.Store
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{
		productRepo: productRepo,
		wishlists:   make(map[string]*wishlist.Store),
	}
}

// WishlistFor returns the user's wishlist, creating an empty one on first use.
func (s *WishlistService) WishlistFor(userID string) *wishlist.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.wishlists[userID]
	if !ok {
		store = wishlist.NewStore()
		s.wishlists[userID] = store
	}
	return store
}

// Toggle flips wishlist membership for the product, snapshotting catalog
// details on add. Returns true when the product ended up in the wishlist.
func (s *WishlistService) Toggle(userID, productID string) (bool, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false, fmt.Errorf("product %s not found: %w", productID, err)
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	store := s.WishlistFor(userID)
	added := store.Toggle(wishlist.Item{
		ProductID:   product.ID,
		Name:        product.Name,
		UnitPrice:   product.Price,
		Image:       image,
		Category:    product.Category,
		SubCategory: product.SubCategory,
	})
	return added, nil
}
