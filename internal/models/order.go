package models

import "time"

// OrderItem is a snapshot of a product at purchase time. Catalog price
// changes after checkout do not touch it.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Rider carries the delivery rider's last known position.
type Rider struct {
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// GeoPoint is a plain coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Order is a placed order as the API returns it.
type Order struct {
	ID                    string      `json:"id"`
	UserID                string      `json:"user_id"`
	Items                 []OrderItem `json:"items"`
	Subtotal              float64     `json:"subtotal"`
	Tax                   float64     `json:"tax"`
	Total                 float64     `json:"total"`
	Status                string      `json:"status"`
	CreatedAt             time.Time   `json:"created_at"`
	EstimatedDeliveryTime *time.Time  `json:"estimated_delivery_time,omitempty"`
	Rider                 *Rider      `json:"rider,omitempty"`
	StoreLocation         *GeoPoint   `json:"store_location,omitempty"`
	CustomerLocation      *GeoPoint   `json:"customer_location,omitempty"`
}

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusRejected  = "rejected"
)

// ShippingInfo is the delivery address block sent at checkout.
type ShippingInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

// PlaceOrderRequest is the body for POST /orders.
type PlaceOrderRequest struct {
	UserID       string       `json:"userId" binding:"required"`
	CartItems    []CartItem   `json:"cartItems" binding:"required,dive"`
	ShippingInfo ShippingInfo `json:"shippingInfo"`
	Subtotal     float64      `json:"subtotal"`
	Tax          float64      `json:"tax"`
	Total        float64      `json:"total"`
}

// PlaceOrderResponse is the envelope for POST /orders.
type PlaceOrderResponse struct {
	Success bool   `json:"success"`
	Order   *Order `json:"order,omitempty"`
	Message string `json:"message,omitempty"`
}

// OrdersResponse is the envelope for GET /orders.
type OrdersResponse struct {
	Success bool    `json:"success"`
	Orders  []Order `json:"orders"`
}

// OrderResponse is the envelope for single-order reads.
type OrderResponse struct {
	Success bool   `json:"success"`
	Order   *Order `json:"order,omitempty"`
	Message string `json:"message,omitempty"`
}

// UpdateOrderStatusRequest is the body for PUT /orders/status/:id.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
