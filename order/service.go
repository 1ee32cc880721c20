// Package order places orders and follows their lifecycle through the
// tracking timeline.
package order

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/nashvel/convenience-store-sub000/cart"
	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// ErrNotCancellable means the order has left the pending stage; the
// cancel affordance should not even be offered.
var ErrNotCancellable = errors.New("order can no longer be cancelled")

// API is the slice of the gateway the order service talks through.
type API interface {
	PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error)
	FetchOrders(ctx context.Context, userID string) ([]models.Order, error)
	FetchOrder(ctx context.Context, orderID string) (*models.Order, error)
	TrackOrder(ctx context.Context, orderID string) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID string) error
}

// CartSource is the slice of the cart engine checkout needs: the
// selection snapshot, its totals, and a local reset once the server
// has cleared the cart.
type CartSource interface {
	SelectedItems() []models.CartItem
	Totals() cart.Totals
	Reset()
}

// Service runs order operations.
type Service struct {
	api API
}

// NewService builds an order service.
func NewService(api API) *Service {
	return &Service{api: api}
}

// Place submits the selected cart items as a new order. The server
// snapshots items and clears the cart atomically; on success the local
// cart is reset to match.
func (s *Service) Place(ctx context.Context, userID string, src CartSource, shipping models.ShippingInfo) (*models.Order, error) {
	items := src.SelectedItems()
	if len(items) == 0 {
		return nil, errors.New("no items selected for checkout")
	}
	totals := src.Totals()

	placed, err := s.api.PlaceOrder(ctx, models.PlaceOrderRequest{
		UserID:       userID,
		CartItems:    items,
		ShippingInfo: shipping,
		Subtotal:     totals.Subtotal,
		Tax:          totals.Tax,
		Total:        totals.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	src.Reset()

	log.WithFields(log.Fields{
		"order_id": placed.ID,
		"items":    len(placed.Items),
		"total":    placed.Total,
	}).Info("Order placed")
	return placed, nil
}

// List fetches a user's orders.
func (s *Service) List(ctx context.Context, userID string) ([]models.Order, error) {
	return s.api.FetchOrders(ctx, userID)
}

// Get fetches one order.
func (s *Service) Get(ctx context.Context, orderID string) (*models.Order, error) {
	return s.api.FetchOrder(ctx, orderID)
}

// Track fetches one order's tracking projection, delivery metadata
// included.
func (s *Service) Track(ctx context.Context, orderID string) (*models.Order, error) {
	return s.api.TrackOrder(ctx, orderID)
}
