// Package apifake is an in-memory implementation of the storefront
// REST contract. Integration tests drive the real gateway against it,
// and cmd/fakeapi runs it standalone for local development. State
// lives in mutex-guarded maps; nothing persists.
package apifake

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nashvel/convenience-store-sub000/internal/metrics"
	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// NotificationHeader mirrors the gateway constant; the fake sets it on
// responses whose handling raised a notification.
const NotificationHeader = "X-Notification-Event"

// Server holds the fake backend state.
type Server struct {
	mu            sync.Mutex
	tokens        map[string]string // bearer token -> user id
	products      []models.Product
	stores        []models.Store
	categories    []models.Category
	carts         map[string][]models.CartItem // user id -> line items
	orders        map[string]*models.Order
	notifications map[string][]models.Notification // user id -> feed

	router *gin.Engine
}

// New builds an empty fake with its routes registered.
func New() *Server {
	s := &Server{
		tokens:        make(map[string]string),
		carts:         make(map[string][]models.CartItem),
		orders:        make(map[string]*models.Order),
		notifications: make(map[string][]models.Notification),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(metrics.GinMiddleware("fakeapi"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.GET("/products", s.listProducts)
	router.GET("/stores", s.listStores)
	router.GET("/categories", s.listCategories)

	router.GET("/cart", s.getCart)
	router.POST("/cart", s.addCartItem)
	router.PUT("/cart/items/:id", s.updateCartItem)
	router.DELETE("/cart/items/:id", s.removeCartItem)
	router.DELETE("/cart", s.clearCart)

	// gin's tree rejects a static segment next to a wildcard, so the
	// order subresources (track/cancel/status) dispatch on the first
	// path segment instead of registering their own routes.
	router.POST("/orders", s.placeOrder)
	router.GET("/orders", s.listOrders)
	router.GET("/orders/:id", s.getOrder)
	router.GET("/orders/:id/:sub", s.getOrderSub)
	router.PUT("/orders/:action/:id", s.orderAction)

	router.GET("/notifications", s.listNotifications)
	router.PUT("/notifications/mark-read/:id", s.markNotificationRead)
	router.PUT("/notifications/mark-all-read", s.markAllNotificationsRead)

	s.router = router
	return s
}

// Router returns the underlying handler, for httptest or Run.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// SeedUser registers a bearer token for a user id.
func (s *Server) SeedUser(token, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
}

// SeedProducts replaces the product list.
func (s *Server) SeedProducts(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// SeedStores replaces the store list.
func (s *Server) SeedStores(stores []models.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores = stores
}

// SeedCategories replaces the category list.
func (s *Server) SeedCategories(categories []models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
}

// SetOrderStatus forces an order's status, bypassing the transition
// rules. Tests use it to stage lifecycle scenarios.
func (s *Server) SetOrderStatus(orderID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[orderID]; ok {
		o.Status = status
	}
}

// currentUser resolves the bearer token. Call it before taking s.mu;
// it locks internally.
func (s *Server) currentUser(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[strings.TrimPrefix(auth, "Bearer ")]
	return userID, ok
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

// pushNotification appends to a user's feed and marks the in-flight
// response with the notification header, the same side channel the
// real backend uses. Caller must hold s.mu.
func (s *Server) pushNotification(c *gin.Context, userID, title, message string) {
	s.notifications[userID] = append([]models.Notification{{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}}, s.notifications[userID]...)
	c.Header(NotificationHeader, "newNotification")
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, models.ProductsResponse{Products: s.products})
}

func (s *Server) listStores(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, models.StoresResponse{Stores: s.stores})
}

func (s *Server) listCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, models.CategoriesResponse{Categories: s.categories})
}
