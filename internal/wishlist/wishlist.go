package wishlist

import "sync"

// Item is a product saved to a wishlist. No quantity concept; membership
// only.
type Item struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	SubCategory string  `json:"sub_category,omitempty"`
}

// Store is one shopper's wishlist. ProductID is unique within the
// collection.
type Store struct {
	mu    sync.RWMutex
	items map[string]Item
	order []string
}

// NewStore creates an empty wishlist.
func NewStore() *Store {
	return &Store{items: make(map[string]Item)}
}

// Add inserts the item. No-op if the product is already present.
func (s *Store) Add(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(item)
}

// Remove deletes the item for a product id. No-op if absent.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(productID)
}

// Toggle flips membership: adds the item if absent, removes it if present.
// Returns true when the item ended up in the wishlist.
func (s *Store) Toggle(item Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ProductID]; ok {
		s.remove(item.ProductID)
		return false
	}
	s.add(item)
	return true
}

// Contains reports whether a product is in the wishlist.
func (s *Store) Contains(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[productID]
	return ok
}

// Clear empties the wishlist.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]Item)
	s.order = nil
}

// Items returns the wishlist contents in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.items[id])
	}
	return list
}

// ItemCount is the number of saved products.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) add(item Item) {
	if _, ok := s.items[item.ProductID]; ok {
		return
	}
	s.items[item.ProductID] = item
	s.order = append(s.order, item.ProductID)
}

func (s *Store) remove(productID string) {
	if _, ok := s.items[productID]; !ok {
		return
	}
	delete(s.items, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
