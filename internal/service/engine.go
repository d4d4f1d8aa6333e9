package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nobih83-prog/Nashwa01/internal/domain"
	"github.com/nobih83-prog/Nashwa01/internal/storage"
	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
)

// Per-session storage keys.
const (
	CartKey           = "nashwa_cart"
	WishlistKey       = "wishlist"
	RecentlyViewedKey = "nashwa_recent_views"
	AuthKey           = "nashwa_auth"
	RoleKey           = "nashwa_role"
)

// JustAddedWindow is how long JustAdded stays true after an Add.
const JustAddedWindow = 500 * time.Millisecond

// Engine holds one shopper's cart, wishlist and recently viewed list. Every
// mutation is written back to its KV before returning.
type Engine struct {
	mu  sync.Mutex
	kv  storage.KV
	now func() time.Time

	cart           domain.Cart
	wishlist       domain.Wishlist
	recent         domain.RecentlyViewed
	justAddedUntil time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the time source used for the just-added signal.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an empty engine bound to kv. Call Load to rehydrate.
func NewEngine(kv storage.KV, opts ...EngineOption) *Engine {
	e := &Engine{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the in-memory state with the persisted snapshot. Absent keys
// mean empty collections.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		items    []domain.CartItem
		wishlist []string
		recent   []domain.Product
	)
	if _, err := e.kv.Load(ctx, CartKey, &items); err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if _, err := e.kv.Load(ctx, WishlistKey, &wishlist); err != nil {
		return fmt.Errorf("load wishlist: %w", err)
	}
	if _, err := e.kv.Load(ctx, RecentlyViewedKey, &recent); err != nil {
		return fmt.Errorf("load recently viewed: %w", err)
	}

	e.cart = domain.Cart{Items: items}
	e.wishlist = domain.Wishlist{IDs: wishlist}
	e.recent = domain.RecentlyViewed{Products: recent}
	return nil
}

// Add puts quantity units of product with the selected options in the cart.
// A zero quantity adds one unit.
func (e *Engine) Add(ctx context.Context, product domain.Product, quantity int, selected domain.SelectedOptions) error {
	if quantity < 0 {
		return apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity == 0 {
		quantity = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.cart.Add(product, quantity, selected)
	e.justAddedUntil = e.now().Add(JustAddedWindow)
	cartMutationsTotal.WithLabelValues("add").Inc()
	return e.saveCart(ctx)
}

// Remove deletes the line matching productID and selected. Missing lines are
// ignored.
func (e *Engine) Remove(ctx context.Context, productID string, selected domain.SelectedOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cart.Remove(productID, selected)
	cartMutationsTotal.WithLabelValues("remove").Inc()
	return e.saveCart(ctx)
}

// UpdateQuantity shifts the matching line by delta, keeping at least one unit.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, delta int, selected domain.SelectedOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cart.UpdateQuantity(productID, delta, selected)
	cartMutationsTotal.WithLabelValues("update_quantity").Inc()
	return e.saveCart(ctx)
}

// Clear empties the cart.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cart.Clear()
	cartMutationsTotal.WithLabelValues("clear").Inc()
	return e.saveCart(ctx)
}

// DeductOrdered rereads the stored cart and removes the ordered lines from it,
// keeping anything other requests added after ordered was taken.
func (e *Engine) DeductOrdered(ctx context.Context, ordered []domain.CartItem) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var items []domain.CartItem
	if _, err := e.kv.Load(ctx, CartKey, &items); err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	e.cart = domain.Cart{Items: items}
	e.cart.Deduct(ordered)
	cartMutationsTotal.WithLabelValues("checkout").Inc()
	return e.saveCart(ctx)
}

// ToggleWishlist flips membership of productID and returns the new state.
func (e *Engine) ToggleWishlist(ctx context.Context, productID string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	in := e.wishlist.Toggle(productID)
	cartMutationsTotal.WithLabelValues("toggle_wishlist").Inc()
	if err := e.kv.Save(ctx, WishlistKey, nonNilSlice(e.wishlist.IDs)); err != nil {
		return in, fmt.Errorf("save wishlist: %w", err)
	}
	return in, nil
}

// AddToRecentlyViewed records a product view.
func (e *Engine) AddToRecentlyViewed(ctx context.Context, product domain.Product) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.recent.Push(product)
	cartMutationsTotal.WithLabelValues("view").Inc()
	return e.saveRecent(ctx)
}

// ClearRecentlyViewed empties the viewing history.
func (e *Engine) ClearRecentlyViewed(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.recent.Clear()
	cartMutationsTotal.WithLabelValues("clear_history").Inc()
	return e.saveRecent(ctx)
}

// CartView is a point-in-time copy of the cart with its derived totals.
type CartView struct {
	Items     []domain.CartItem `json:"items"`
	JustAdded bool              `json:"just_added"`
	domain.Totals
}

// Cart returns a copy of the cart and its totals.
func (e *Engine) Cart() CartView {
	e.mu.Lock()
	defer e.mu.Unlock()

	return CartView{
		Items:     e.cart.Snapshot(),
		JustAdded: e.justAddedLocked(),
		Totals:    e.cart.Totals(),
	}
}

// Wishlist returns the wishlisted ids in insertion order.
func (e *Engine) Wishlist() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return nonNilSlice(slices.Clone(e.wishlist.IDs))
}

// InWishlist reports whether productID is wishlisted.
func (e *Engine) InWishlist(productID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wishlist.Contains(productID)
}

// RecentlyViewed returns the viewing history, most recent first.
func (e *Engine) RecentlyViewed() []domain.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return nonNilSlice(slices.Clone(e.recent.Products))
}

// JustAdded reports whether an Add happened within JustAddedWindow.
func (e *Engine) JustAdded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.justAddedLocked()
}

func (e *Engine) justAddedLocked() bool {
	return e.now().Before(e.justAddedUntil)
}

func (e *Engine) saveCart(ctx context.Context) error {
	if err := e.kv.Save(ctx, CartKey, nonNilSlice(e.cart.Items)); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (e *Engine) saveRecent(ctx context.Context) error {
	if err := e.kv.Save(ctx, RecentlyViewedKey, nonNilSlice(e.recent.Products)); err != nil {
		return fmt.Errorf("save recently viewed: %w", err)
	}
	return nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
