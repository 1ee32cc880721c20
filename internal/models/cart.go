package models

// CartItem is one line in a user's cart as the API returns it.
// The id is server-assigned and unique within the cart.
type CartItem struct {
	CartItemID string  `json:"cartItemId"`
	ProductID  string  `json:"product_id"`
	VariantID  string  `json:"variant_id,omitempty"`
	StoreID    string  `json:"store_id"`
	Name       string  `json:"name"`
	Image      string  `json:"image,omitempty"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Discount   float64 `json:"discount,omitempty"` // percentage, 0-100
}

// EffectivePrice is the unit price after the line discount.
func (ci CartItem) EffectivePrice() float64 {
	if ci.Discount > 0 {
		return ci.Price * (1 - ci.Discount/100)
	}
	return ci.Price
}

// AddCartItemRequest is the body for POST /cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemRequest is the body for PUT /cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// CartResponse is the envelope for GET /cart.
type CartResponse struct {
	CartItems []CartItem `json:"cart_items"`
}
