// Package cart owns the authoritative client view of a user's cart:
// line items, the checkout selection, and the derived totals.
package cart

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/nashvel/convenience-store-sub000/internal/metrics"
	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// ErrUnauthenticated means the action needs a session that is absent.
// Call sites show it as a blocking toast; no network call was made.
var ErrUnauthenticated = errors.New("sign in to manage your cart")

// API is the slice of the gateway the engine mutates the cart through.
type API interface {
	FetchCart(ctx context.Context) ([]models.CartItem, error)
	AddItem(ctx context.Context, req models.AddCartItemRequest) error
	UpdateItem(ctx context.Context, cartItemID string, quantity int) error
	RemoveItem(ctx context.Context, cartItemID string) error
	ClearCart(ctx context.Context) error
}

// AuthSource answers whether a session exists. session.Store satisfies it.
type AuthSource interface {
	Authenticated() bool
}

// Engine maintains cart state. Mutations go to the server first, then
// a full re-sync replaces local state with server truth; there is no
// optimistic merge.
type Engine struct {
	api  API
	auth AuthSource

	mu       sync.RWMutex
	items    []models.CartItem
	selected map[string]struct{}

	// OnChange, when set, runs after every state change, outside the
	// engine's lock.
	OnChange func()
}

// NewEngine builds an empty cart engine.
func NewEngine(api API, auth AuthSource) *Engine {
	return &Engine{
		api:      api,
		auth:     auth,
		selected: make(map[string]struct{}),
	}
}

// Refresh replaces local line items with the server's current cart and
// clears the selection; the selection is session-local and does not
// survive a fresh fetch. On failure local state is left untouched.
func (e *Engine) Refresh(ctx context.Context) error {
	return e.fetch(ctx, false)
}

func (e *Engine) fetch(ctx context.Context, keepSelection bool) error {
	items, err := e.api.FetchCart(ctx)
	if err != nil {
		metrics.CartOpsTotal.WithLabelValues("refresh", "error").Inc()
		return err
	}

	e.mu.Lock()
	e.items = items
	if keepSelection {
		// Mid-session re-syncs keep the user's selection for ids that
		// survived, so adjusting a quantity does not uncheck the row.
		next := make(map[string]struct{}, len(e.selected))
		for _, ci := range items {
			if _, ok := e.selected[ci.CartItemID]; ok {
				next[ci.CartItemID] = struct{}{}
			}
		}
		e.selected = next
	} else {
		e.selected = make(map[string]struct{})
	}
	e.mu.Unlock()

	metrics.CartOpsTotal.WithLabelValues("refresh", "ok").Inc()
	e.notify()
	return nil
}

// AddToCart adds quantity of a product (optionally a variant) to the
// cart. It requires a session; without one it fails before any network
// call. On success the whole cart is re-synced from the server.
func (e *Engine) AddToCart(ctx context.Context, productID, variantID string, quantity int) error {
	if !e.auth.Authenticated() {
		metrics.CartOpsTotal.WithLabelValues("add", "unauthenticated").Inc()
		return ErrUnauthenticated
	}
	if quantity < 1 {
		quantity = 1
	}

	err := e.api.AddItem(ctx, models.AddCartItemRequest{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
	})
	if err != nil {
		metrics.CartOpsTotal.WithLabelValues("add", "error").Inc()
		return err
	}

	metrics.CartOpsTotal.WithLabelValues("add", "ok").Inc()
	e.resync(ctx)
	return nil
}

// UpdateQuantity sets a line item's quantity. A quantity of zero or
// below removes the item instead; the cart never holds a zero-quantity
// row.
func (e *Engine) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) error {
	if quantity <= 0 {
		return e.RemoveFromCart(ctx, cartItemID)
	}

	if err := e.api.UpdateItem(ctx, cartItemID, quantity); err != nil {
		metrics.CartOpsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.CartOpsTotal.WithLabelValues("update", "ok").Inc()
	e.resync(ctx)
	return nil
}

// RemoveFromCart deletes a line item and re-syncs.
func (e *Engine) RemoveFromCart(ctx context.Context, cartItemID string) error {
	if err := e.api.RemoveItem(ctx, cartItemID); err != nil {
		metrics.CartOpsTotal.WithLabelValues("remove", "error").Inc()
		return err
	}

	e.mu.Lock()
	delete(e.selected, cartItemID)
	e.mu.Unlock()

	metrics.CartOpsTotal.WithLabelValues("remove", "ok").Inc()
	e.resync(ctx)
	return nil
}

// Clear empties the cart server-side, then resets local state directly.
// The resulting state is known, so no re-fetch is needed.
func (e *Engine) Clear(ctx context.Context) error {
	if err := e.api.ClearCart(ctx); err != nil {
		metrics.CartOpsTotal.WithLabelValues("clear", "error").Inc()
		return err
	}

	e.mu.Lock()
	e.items = nil
	e.selected = make(map[string]struct{})
	e.mu.Unlock()

	metrics.CartOpsTotal.WithLabelValues("clear", "ok").Inc()
	e.notify()
	return nil
}

// Reset drops local state without a server call. Used after checkout,
// when the server has already cleared the cart.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.items = nil
	e.selected = make(map[string]struct{})
	e.mu.Unlock()
	e.notify()
}

// ToggleSelection flips a line item's checkout inclusion. Unknown ids
// are ignored; the selection is always a subset of current item ids.
func (e *Engine) ToggleSelection(cartItemID string) {
	e.mu.Lock()
	if !e.hasItem(cartItemID) {
		e.mu.Unlock()
		return
	}
	if _, ok := e.selected[cartItemID]; ok {
		delete(e.selected, cartItemID)
	} else {
		e.selected[cartItemID] = struct{}{}
	}
	e.mu.Unlock()
	e.notify()
}

// ToggleSelectAll selects every line item, unless all are already
// selected, in which case it deselects everything.
func (e *Engine) ToggleSelectAll() {
	e.mu.Lock()
	if len(e.items) > 0 && len(e.selected) == len(e.items) {
		e.selected = make(map[string]struct{})
	} else {
		e.selected = make(map[string]struct{}, len(e.items))
		for _, ci := range e.items {
			e.selected[ci.CartItemID] = struct{}{}
		}
	}
	e.mu.Unlock()
	e.notify()
}

// Items returns a copy of the current line items.
func (e *Engine) Items() []models.CartItem {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.CartItem, len(e.items))
	copy(out, e.items)
	return out
}

// SelectedItems returns copies of the line items marked for checkout.
func (e *Engine) SelectedItems() []models.CartItem {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.CartItem, 0, len(e.selected))
	for _, ci := range e.items {
		if _, ok := e.selected[ci.CartItemID]; ok {
			out = append(out, ci)
		}
	}
	return out
}

// IsSelected reports whether a line item is marked for checkout.
func (e *Engine) IsSelected(cartItemID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.selected[cartItemID]
	return ok
}

// SelectedCount returns the number of line items marked for checkout.
func (e *Engine) SelectedCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.selected)
}

// TotalItems sums quantities across every line item, selected or not.
// The cart badge reflects the whole cart; money reflects the selection.
func (e *Engine) TotalItems() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	total := 0
	for _, ci := range e.items {
		total += ci.Quantity
	}
	return total
}

func (e *Engine) hasItem(cartItemID string) bool {
	for _, ci := range e.items {
		if ci.CartItemID == cartItemID {
			return true
		}
	}
	return false
}

// resync re-fetches after a successful mutation. The mutation itself
// succeeded, so a failed re-sync is logged and retried on the next
// operation rather than surfaced.
func (e *Engine) resync(ctx context.Context) {
	if err := e.fetch(ctx, true); err != nil {
		log.Warn("Cart re-sync failed, keeping previous view: ", err)
	}
}

func (e *Engine) notify() {
	if e.OnChange != nil {
		e.OnChange()
	}
}
