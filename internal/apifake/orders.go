package apifake

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nashvel/convenience-store-sub000/internal/models"
	"github.com/nashvel/convenience-store-sub000/order"
)

func (s *Server) placeOrder(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.PlaceOrderResponse{
			Message: "Invalid request: " + err.Error(),
		})
		return
	}
	if req.UserID != userID {
		c.JSON(http.StatusForbidden, models.PlaceOrderResponse{
			Message: "Cannot place an order for another user",
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Snapshot the submitted lines; catalog changes after this point
	// do not touch the order.
	items := make([]models.OrderItem, 0, len(req.CartItems))
	for _, ci := range req.CartItems {
		items = append(items, models.OrderItem{
			ProductID: ci.ProductID,
			Name:      ci.Name,
			Image:     ci.Image,
			Quantity:  ci.Quantity,
			Price:     ci.EffectivePrice(),
		})
	}

	o := &models.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     items,
		Subtotal:  req.Subtotal,
		Tax:       req.Tax,
		Total:     req.Total,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
	}
	s.orders[o.ID] = o

	// Checkout consumes the cart atomically with order creation.
	delete(s.carts, userID)

	s.pushNotification(c, userID, "Order placed", "Your order is waiting for the seller to accept it.")

	c.JSON(http.StatusOK, models.PlaceOrderResponse{Success: true, Order: o})
}

func (s *Server) listOrders(c *gin.Context) {
	if _, ok := s.currentUser(c); !ok {
		unauthorized(c)
		return
	}

	userID := c.Query("userId")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0)
	for _, o := range s.orders {
		if userID == "" || o.UserID == userID {
			out = append(out, *o)
		}
	}
	c.JSON(http.StatusOK, models.OrdersResponse{Success: true, Orders: out})
}

func (s *Server) getOrder(c *gin.Context) {
	if _, ok := s.currentUser(c); !ok {
		unauthorized(c)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, models.OrderResponse{Message: "Order not found"})
		return
	}
	snapshot := *o
	c.JSON(http.StatusOK, models.OrderResponse{Success: true, Order: &snapshot})
}

// getOrderSub serves GET /orders/track/:id, which cannot be its own
// route next to GET /orders/:id.
func (s *Server) getOrderSub(c *gin.Context) {
	if c.Param("id") != "track" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if _, ok := s.currentUser(c); !ok {
		unauthorized(c)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[c.Param("sub")]
	if !ok {
		c.JSON(http.StatusNotFound, models.OrderResponse{Message: "Order not found"})
		return
	}
	snapshot := *o
	c.JSON(http.StatusOK, models.OrderResponse{Success: true, Order: &snapshot})
}

// orderAction serves PUT /orders/cancel/:id and PUT /orders/status/:id.
func (s *Server) orderAction(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	switch c.Param("action") {
	case "cancel":
		s.cancelOrder(c, userID)
	case "status":
		s.updateOrderStatus(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	}
}

func (s *Server) cancelOrder(c *gin.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, models.SuccessResponse{Message: "Order not found"})
		return
	}
	if o.UserID != userID {
		c.JSON(http.StatusForbidden, models.SuccessResponse{Message: "Not your order"})
		return
	}
	if !order.CanCancel(o.Status) {
		c.JSON(http.StatusConflict, models.SuccessResponse{
			Message: "Order can no longer be cancelled",
		})
		return
	}

	o.Status = models.OrderStatusCancelled
	s.pushNotification(c, o.UserID, "Order cancelled", "Your order was cancelled.")
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, models.SuccessResponse{Message: "Order not found"})
		return
	}
	if !order.CanTransition(o.Status, req.Status) {
		c.JSON(http.StatusConflict, models.SuccessResponse{
			Message: "Cannot move order from " + o.Status + " to " + req.Status,
		})
		return
	}

	o.Status = req.Status
	s.pushNotification(c, o.UserID, "Order update", "Your order is now "+req.Status+".")
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
