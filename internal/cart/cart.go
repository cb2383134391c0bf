package cart

import "sync"

// Item is one cart line. Two entries with the same product but different
// size/color selections are distinct lines; identity is
// (ProductID, SelectedSize, SelectedColor).
type Item struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	UnitPrice     float64 `json:"unit_price"`
	Image         string  `json:"image,omitempty"`
	Quantity      int     `json:"quantity"`
	SelectedSize  string  `json:"selected_size,omitempty"`
	SelectedColor string  `json:"selected_color,omitempty"`
	MaxQuantity   int     `json:"max_quantity"`
}

type lineKey struct {
	productID string
	size      string
	color     string
}

// Store is one shopper's cart. Totals are derived from the line items on
// every mutation and never drift independently of them.
type Store struct {
	mu             sync.RWMutex
	items          map[lineKey]*Item
	order          []lineKey // insertion order, so listings are stable
	totalItemCount int
	totalAmount    float64
	open           bool
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{items: make(map[lineKey]*Item)}
}

func clampQuantity(qty, max int) int {
	if qty < 1 {
		return 1
	}
	if max > 0 && qty > max {
		return max
	}
	return qty
}

// AddItem merges the item into an existing line with the same
// (product, size, color) identity, or appends a new line. Quantities are
// capped at the line's MaxQuantity; out-of-range requests are clamped,
// never rejected.
func (s *Store) AddItem(item Item, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.MaxQuantity <= 0 {
		item.MaxQuantity = 99
	}
	key := lineKey{item.ProductID, item.SelectedSize, item.SelectedColor}
	if existing, ok := s.items[key]; ok {
		existing.Quantity = clampQuantity(existing.Quantity+quantity, existing.MaxQuantity)
	} else {
		item.Quantity = clampQuantity(quantity, item.MaxQuantity)
		s.items[key] = &item
		s.order = append(s.order, key)
	}
	s.recompute()
}

// RemoveItem deletes the matching line. No-op if the line does not exist.
func (s *Store) RemoveItem(productID, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := lineKey{productID, size, color}
	if _, ok := s.items[key]; !ok {
		return
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.recompute()
}

// UpdateQuantity sets the quantity on a line, clamped into
// [1, MaxQuantity]. No-op if no matching line exists.
func (s *Store) UpdateQuantity(productID string, quantity int, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[lineKey{productID, size, color}]
	if !ok {
		return
	}
	item.Quantity = clampQuantity(quantity, item.MaxQuantity)
	s.recompute()
}

// Clear empties the cart and zeroes totals. Invoked after a confirmed order.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[lineKey]*Item)
	s.order = nil
	s.recompute()
}

// Items returns the current lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Item, 0, len(s.order))
	for _, key := range s.order {
		list = append(list, *s.items[key])
	}
	return list
}

// TotalItemCount is the sum of quantities across all lines.
func (s *Store) TotalItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalItemCount
}

// TotalAmount is the sum of unit price times quantity across all lines.
func (s *Store) TotalAmount() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalAmount
}

// SetOpen sets the cart drawer visibility flag. UI state, not business state.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

// ToggleOpen flips the cart drawer visibility flag.
func (s *Store) ToggleOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
}

// Open reports the cart drawer visibility flag.
func (s *Store) Open() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

// recompute rebuilds the derived totals from the line items.
// Callers must hold the write lock.
func (s *Store) recompute() {
	count := 0
	amount := 0.0
	for _, item := range s.items {
		count += item.Quantity
		amount += item.UnitPrice * float64(item.Quantity)
	}
	s.totalItemCount = count
	s.totalAmount = amount
}
