package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/abgdnv/storefront/internal/notify"
	"github.com/abgdnv/storefront/pkg/api"
	"github.com/abgdnv/storefront/pkg/storage"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

// DefaultDebounceWindow is the coalescing window for quantity updates and
// removals.
const DefaultDebounceWindow = 300 * time.Millisecond

// Placeholders substituted when a cart record's catalog entry is gone.
const (
	placeholderName  = "Unknown Product"
	placeholderImage = "/placeholder.svg"
)

// CartItem mirrors one line of the server-side cart.
type CartItem struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Image         string  `json:"image"`
	Size          string  `json:"size,omitempty"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	InStock       bool    `json:"inStock"`
}

// CartSnapshot is a point-in-time copy of the cart state.
type CartSnapshot struct {
	Items   []CartItem
	Loading bool
}

// AddItem describes the product being added; the server assigns the line ID.
// ProductID must be a 24-character hex identifier, the catalog's addressing
// scheme.
type AddItem struct {
	ProductID     string `validate:"required,mongodb"`
	Name          string
	Price         float64 `validate:"gte=0"`
	Quantity      int
	Image         string
	Size          string
	OriginalPrice float64
	InStock       bool
}

// CartStore mirrors the user's server-side cart and keeps it consistent
// despite network failure. All mutation goes through Fetch, Add,
// UpdateQuantity and Remove; readers use Snapshot or Subscribe. Quantity
// updates and removals apply locally first and roll back to the
// pre-mutation snapshot when the server write fails, followed by a
// reconciling fetch.
type CartStore struct {
	api      *api.Client
	creds    *storage.Store
	notifier notify.Notifier
	logger   *slog.Logger
	validate *validator.Validate
	window   time.Duration

	mu        sync.Mutex
	items     []CartItem
	loading   bool
	listeners []func(CartSnapshot)
	writes    map[string]*debouncer

	fetches singleflight.Group
}

// NewCartStore creates an empty cart store. A non-positive window falls
// back to DefaultDebounceWindow.
func NewCartStore(apiClient *api.Client, creds *storage.Store, notifier notify.Notifier, window time.Duration, log *slog.Logger) *CartStore {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &CartStore{
		api:      apiClient,
		creds:    creds,
		notifier: notifier,
		logger:   log.With("component", "cart"),
		validate: validator.New(),
		window:   window,
		writes:   make(map[string]*debouncer),
	}
}

// Snapshot returns a copy of the current cart state.
func (s *CartStore) Snapshot() CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartSnapshot{Items: slices.Clone(s.items), Loading: s.loading}
}

// Subscribe registers fn to run after every state change. fn receives a
// copy and must not block.
func (s *CartStore) Subscribe(fn func(CartSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// cartRecord is the GET /cart/get-cart wire format. Product may be absent
// when the catalog entry was deleted after the line was added.
type cartRecord struct {
	ID        string        `json:"_id"`
	ProductID string        `json:"product_id"`
	Quantity  int           `json:"quantity"`
	Product   *productEmbed `json:"product"`
}

type productEmbed struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Images        []string `json:"images"`
	Size          string   `json:"size"`
	OriginalPrice float64  `json:"originalPrice"`
	Stock         int      `json:"stock"`
}

func (r cartRecord) toItem() CartItem {
	item := CartItem{
		ID:        r.ID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Name:      placeholderName,
		Image:     placeholderImage,
	}
	if p := r.Product; p != nil {
		if p.Name != "" {
			item.Name = p.Name
		}
		if len(p.Images) > 0 && p.Images[0] != "" {
			item.Image = p.Images[0]
		}
		item.Price = p.Price
		item.Size = p.Size
		item.OriginalPrice = p.OriginalPrice
		item.InStock = p.Stock > 0
	}
	return item
}

// Fetch replaces the cart wholesale with the authoritative server copy.
// Concurrent calls share a single request; each caller still observes an
// authoritative refresh. On failure the local state is left untouched.
func (s *CartStore) Fetch(ctx context.Context) error {
	_, err, _ := s.fetches.Do("fetch", func() (any, error) {
		return nil, s.fetch(ctx)
	})
	return err
}

func (s *CartStore) fetch(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false) // reset on every exit path

	var records []cartRecord
	if err := s.api.Get(ctx, "/cart/get-cart", &records); err != nil {
		s.logger.Error("cart fetch failed", "error", err)
		s.notifier.Error(errorMessage(err, "Failed to load cart"))
		return fmt.Errorf("fetch cart: %w", err)
	}

	items := make([]CartItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toItem())
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.publish()
	return nil
}

type addPayload struct {
	UserID        string  `json:"user_id"`
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	Size          string  `json:"size,omitempty"`
	OriginalPrice float64 `json:"originalPrice"`
	InStock       bool    `json:"inStock"`
}

// Add creates a cart line for the product and resynchronizes from the
// server. There is no optimistic insert: the server assigns the line ID, so
// correctness wins over latency here. Preconditions (a local session and a
// well-formed product reference) are checked before any network call.
func (s *CartStore) Add(ctx context.Context, item AddItem) error {
	userID, ok := s.creds.Get(storage.KeyUserID)
	if !ok || userID == "" {
		s.notifier.Error("User ID not found. Please log in.")
		return ErrNoSession
	}
	if err := s.validate.Struct(item); err != nil {
		s.notifier.Error("Invalid product ID or request data")
		return fmt.Errorf("%w: %v", ErrInvalidProductID, err)
	}

	payload := addPayload{
		UserID:        userID,
		ProductID:     item.ProductID,
		Name:          item.Name,
		Price:         item.Price,
		Image:         item.Image,
		Quantity:      max(1, item.Quantity),
		Size:          item.Size,
		OriginalPrice: item.OriginalPrice,
		InStock:       item.InStock,
	}
	if payload.Image == "" {
		payload.Image = placeholderImage
	}
	if payload.OriginalPrice == 0 {
		payload.OriginalPrice = item.Price
	}

	if err := s.api.Post(ctx, "/cart/", payload, nil); err != nil {
		s.notifyAddFailure(err)
		return fmt.Errorf("add to cart: %w", err)
	}

	// The line now exists server-side; a failed resync must not suppress
	// the success notification. The fetch surfaces its own error and the
	// mirror catches up on the next read.
	if err := s.Fetch(ctx); err != nil {
		s.logger.Warn("post-add resync failed", "error", err)
	}
	s.notifier.Success("Item added to cart")
	return nil
}

func (s *CartStore) notifyAddFailure(err error) {
	switch api.StatusOf(err) {
	case http.StatusUnauthorized:
		s.notifier.Error("Please log in to add items to cart")
	case http.StatusNotFound:
		s.notifier.Error(errorMessage(err, "Product not found"))
	case http.StatusUnprocessableEntity:
		s.notifier.Error(errorMessage(err, "Invalid product ID or request data"))
		// keep the full validation payload for diagnostics
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			s.logger.Warn("add to cart rejected", "status", apiErr.Status, "body", string(apiErr.Body))
		}
	default:
		s.notifier.Error(errorMessage(err, "Failed to add to cart"))
	}
}

type updatePayload struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity optimistically rewrites the quantity for productID and
// schedules the server write. Rapid calls for the same product within the
// debounce window coalesce into one request carrying the last quantity;
// only the network write is coalesced, local state updates per call.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if !validTarget(productID) {
		s.notifier.Error("Failed to update cart")
		return fmt.Errorf("%w: %q", ErrInvalidProductID, productID)
	}

	s.mu.Lock()
	snapshot := slices.Clone(s.items)
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
		}
	}
	s.mu.Unlock()
	s.publish()

	s.schedule("update:"+productID, func() {
		s.pushUpdate(ctx, productID, quantity, snapshot)
	})
	return nil
}

func (s *CartStore) pushUpdate(ctx context.Context, productID string, quantity int, snapshot []CartItem) {
	err := s.api.Put(ctx, "/cart/update-cart/"+productID, updatePayload{Quantity: quantity}, nil)
	if err == nil {
		s.notifier.Success("Cart updated")
		return
	}

	s.rollback(snapshot)
	switch api.StatusOf(err) {
	case http.StatusUnauthorized:
		s.notifier.Error("Please log in to update cart")
	case http.StatusNotFound:
		s.notifier.Error(errorMessage(err, "Cart item not found"))
	default:
		s.notifier.Error(errorMessage(err, "Failed to update cart"))
	}
	s.reconcile(ctx)
}

// Remove optimistically drops the product's line and schedules the server
// delete. A product absent from local state still triggers the request:
// another tab may hold the line, and the delete is idempotent server-side.
func (s *CartStore) Remove(ctx context.Context, productID string) error {
	if !validTarget(productID) {
		s.notifier.Error("Failed to remove from cart")
		return fmt.Errorf("%w: %q", ErrInvalidProductID, productID)
	}

	s.mu.Lock()
	snapshot := slices.Clone(s.items)
	s.items = slices.DeleteFunc(s.items, func(it CartItem) bool {
		return it.ProductID == productID
	})
	s.mu.Unlock()
	s.publish()

	s.schedule("remove:"+productID, func() {
		s.pushRemove(ctx, productID, snapshot)
	})
	return nil
}

func (s *CartStore) pushRemove(ctx context.Context, productID string, snapshot []CartItem) {
	err := s.api.Delete(ctx, "/cart/remove-from-cart/"+productID, nil)
	if err == nil {
		s.notifier.Success("Item removed")
		return
	}

	s.rollback(snapshot)
	if api.StatusOf(err) == http.StatusUnauthorized {
		s.notifier.Error("Please log in to remove items from cart")
	} else {
		s.notifier.Error(errorMessage(err, "Failed to remove from cart"))
	}
	s.reconcile(ctx)
}

// rollback restores the pre-mutation snapshot exactly.
func (s *CartStore) rollback(snapshot []CartItem) {
	s.mu.Lock()
	s.items = snapshot
	s.mu.Unlock()
	s.publish()
}

// reconcile re-reads the server after a rollback. Rollback alone can still
// drift from server truth when another client mutated the cart
// concurrently.
func (s *CartStore) reconcile(ctx context.Context) {
	if err := s.Fetch(ctx); err != nil {
		s.logger.Error("reconciliation fetch failed", "error", err)
	}
}

// schedule coalesces server writes per operation+product key.
func (s *CartStore) schedule(key string, fn func()) {
	s.mu.Lock()
	d, ok := s.writes[key]
	if !ok {
		d = newDebouncer(s.window)
		s.writes[key] = d
	}
	s.mu.Unlock()
	d.Call(fn)
}

func (s *CartStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.publish()
}

func (s *CartStore) publish() {
	s.mu.Lock()
	snap := CartSnapshot{Items: slices.Clone(s.items), Loading: s.loading}
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

// validTarget rejects an empty id and the "undefined" sentinel a web UI
// produces for an unbound identifier.
func validTarget(productID string) bool {
	return productID != "" && productID != "undefined"
}

// errorMessage prefers the server-supplied detail over the fallback text.
func errorMessage(err error, fallback string) string {
	if detail := api.DetailOf(err); detail != "" {
		return detail
	}
	return fallback
}
