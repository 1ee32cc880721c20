package order

import (
	"context"
	"errors"
	"net/url"

	"github.com/nashvel/convenience-store-sub000/internal/gateway"
	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// HTTPAPI is the gateway-backed order API.
type HTTPAPI struct {
	gw *gateway.Client
}

// NewHTTPAPI wraps a gateway client.
func NewHTTPAPI(gw *gateway.Client) *HTTPAPI {
	return &HTTPAPI{gw: gw}
}

func (a *HTTPAPI) PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error) {
	var resp models.PlaceOrderResponse
	if err := a.gw.Post(ctx, "/orders", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Order == nil {
		return nil, errors.New(orDefault(resp.Message, "order was not created"))
	}
	return resp.Order, nil
}

func (a *HTTPAPI) FetchOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var resp models.OrdersResponse
	if err := a.gw.Get(ctx, "/orders?userId="+url.QueryEscape(userID), &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (a *HTTPAPI) FetchOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var resp models.OrderResponse
	if err := a.gw.Get(ctx, "/orders/"+orderID, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil {
		return nil, errors.New(orDefault(resp.Message, "order not found"))
	}
	return resp.Order, nil
}

func (a *HTTPAPI) TrackOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var resp models.OrderResponse
	if err := a.gw.Get(ctx, "/orders/track/"+orderID, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil {
		return nil, errors.New(orDefault(resp.Message, "order not found"))
	}
	return resp.Order, nil
}

func (a *HTTPAPI) CancelOrder(ctx context.Context, orderID string) error {
	return a.gw.Put(ctx, "/orders/cancel/"+orderID, nil, nil)
}

func orDefault(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
