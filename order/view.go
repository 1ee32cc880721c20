package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// View is the read-only projection of a single order the tracking page
// renders. Once it has loaded successfully it never goes blank:
// refresh failures keep the last good snapshot visible.
type View struct {
	svc     *Service
	orderID string

	mu     sync.RWMutex
	order  models.Order
	loaded bool
}

// NewView builds an unloaded projection for one order.
func NewView(svc *Service, orderID string) *View {
	return &View{svc: svc, orderID: orderID}
}

// Load performs the first fetch. A failure here is the page-level
// error state; later refresh failures are the tracker's business.
func (v *View) Load(ctx context.Context) error {
	o, err := v.svc.Track(ctx, v.orderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", v.orderID, err)
	}
	v.mu.Lock()
	v.order = *o
	v.loaded = true
	v.mu.Unlock()
	return nil
}

// Refresh replaces the projection with the server's current view.
func (v *View) Refresh(ctx context.Context) error {
	o, err := v.svc.Track(ctx, v.orderID)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.order = *o
	v.loaded = true
	v.mu.Unlock()
	return nil
}

// Order returns the current snapshot. ok is false before the first
// successful load.
func (v *View) Order() (o models.Order, ok bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.order, v.loaded
}

// Steps projects the current status onto the tracking milestones.
func (v *View) Steps() []Step {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Steps(v.order.Status)
}

// CanCancel reports whether the cancel control should be offered.
func (v *View) CanCancel() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded && CanCancel(v.order.Status)
}

// Cancel cancels the order. It is refused locally, before any network
// call, unless the last known status is pending. On success the local
// status flips to cancelled without a re-fetch.
func (v *View) Cancel(ctx context.Context) error {
	v.mu.RLock()
	eligible := v.loaded && CanCancel(v.order.Status)
	v.mu.RUnlock()
	if !eligible {
		return ErrNotCancellable
	}

	if err := v.svc.api.CancelOrder(ctx, v.orderID); err != nil {
		return fmt.Errorf("cancel order %s: %w", v.orderID, err)
	}

	v.mu.Lock()
	v.order.Status = models.OrderStatusCancelled
	v.mu.Unlock()
	return nil
}
