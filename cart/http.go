package cart

import (
	"context"

	"github.com/nashvel/convenience-store-sub000/internal/gateway"
	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// HTTPAPI is the gateway-backed cart API.
type HTTPAPI struct {
	gw *gateway.Client
}

// NewHTTPAPI wraps a gateway client.
func NewHTTPAPI(gw *gateway.Client) *HTTPAPI {
	return &HTTPAPI{gw: gw}
}

func (a *HTTPAPI) FetchCart(ctx context.Context) ([]models.CartItem, error) {
	var resp models.CartResponse
	if err := a.gw.Get(ctx, "/cart", &resp); err != nil {
		return nil, err
	}
	return resp.CartItems, nil
}

func (a *HTTPAPI) AddItem(ctx context.Context, req models.AddCartItemRequest) error {
	return a.gw.Post(ctx, "/cart", req, nil)
}

func (a *HTTPAPI) UpdateItem(ctx context.Context, cartItemID string, quantity int) error {
	return a.gw.Put(ctx, "/cart/items/"+cartItemID, models.UpdateCartItemRequest{Quantity: quantity}, nil)
}

func (a *HTTPAPI) RemoveItem(ctx context.Context, cartItemID string) error {
	return a.gw.Delete(ctx, "/cart/items/"+cartItemID, nil)
}

func (a *HTTPAPI) ClearCart(ctx context.Context) error {
	return a.gw.Delete(ctx, "/cart", nil)
}
