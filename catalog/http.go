package catalog

import (
	"context"

	"github.com/nashvel/convenience-store-sub000/internal/gateway"
	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// HTTPAPI is the gateway-backed catalog API.
type HTTPAPI struct {
	gw *gateway.Client
}

// NewHTTPAPI wraps a gateway client.
func NewHTTPAPI(gw *gateway.Client) *HTTPAPI {
	return &HTTPAPI{gw: gw}
}

func (a *HTTPAPI) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var resp models.ProductsResponse
	if err := a.gw.Get(ctx, "/products", &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (a *HTTPAPI) FetchStores(ctx context.Context) ([]models.Store, error) {
	var resp models.StoresResponse
	if err := a.gw.Get(ctx, "/stores", &resp); err != nil {
		return nil, err
	}
	return resp.Stores, nil
}

func (a *HTTPAPI) FetchCategories(ctx context.Context) ([]models.Category, error) {
	var resp models.CategoriesResponse
	if err := a.gw.Get(ctx, "/categories", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}
