package store

import (
	"slices"
	"sync"
)

// WishlistItem is a favorited product.
type WishlistItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Size      string  `json:"size,omitempty"`
}

// WishlistStore holds the session-local wishlist. Add appends, SetItems
// replaces wholesale when hydrating from an external source. The wishlist
// performs no I/O and therefore has no failure modes.
type WishlistStore struct {
	mu        sync.Mutex
	items     []WishlistItem
	listeners []func([]WishlistItem)
}

func NewWishlistStore() *WishlistStore {
	return &WishlistStore{}
}

// Add appends item. Uniqueness by ID is not enforced.
func (s *WishlistStore) Add(item WishlistItem) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	s.publish()
}

// SetItems replaces the wishlist wholesale.
func (s *WishlistStore) SetItems(items []WishlistItem) {
	s.mu.Lock()
	s.items = slices.Clone(items)
	s.mu.Unlock()
	s.publish()
}

// Items returns a copy of the current wishlist.
func (s *WishlistStore) Items() []WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Subscribe registers fn to run after every change. fn receives a copy and
// must not block.
func (s *WishlistStore) Subscribe(fn func([]WishlistItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *WishlistStore) publish() {
	s.mu.Lock()
	items := slices.Clone(s.items)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(items)
	}
}
