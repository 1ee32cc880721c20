package apifake

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nashvel/convenience-store-sub000/internal/models"
)

func (s *Server) getCart(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	if items == nil {
		items = []models.CartItem{}
	}
	c.JSON(http.StatusOK, models.CartResponse{CartItems: items})
}

func (s *Server) addCartItem(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var product *models.Product
	for i := range s.products {
		if s.products[i].ID == req.ProductID {
			product = &s.products[i]
			break
		}
	}
	if product == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
		return
	}

	// Adding the same product again grows the existing line.
	items := s.carts[userID]
	for i := range items {
		if items[i].ProductID == req.ProductID && items[i].VariantID == req.VariantID {
			items[i].Quantity += req.Quantity
			c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
			return
		}
	}

	s.carts[userID] = append(items, models.CartItem{
		CartItemID: uuid.NewString(),
		ProductID:  product.ID,
		VariantID:  req.VariantID,
		StoreID:    product.StoreID,
		Name:       product.Name,
		Image:      product.Image,
		Quantity:   req.Quantity,
		Price:      product.Price,
		Discount:   product.Discount,
	})
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true})
}

func (s *Server) updateCartItem(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	itemID := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i := range items {
		if items[i].CartItemID == itemID {
			items[i].Quantity = req.Quantity
			c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
}

func (s *Server) removeCartItem(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	itemID := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i := range items {
		if items[i].CartItemID == itemID {
			s.carts[userID] = append(items[:i:i], items[i+1:]...)
			c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
}

func (s *Server) clearCart(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
