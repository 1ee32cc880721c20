package apifake

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nashvel/convenience-store-sub000/internal/models"
)

func (s *Server) listNotifications(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}
	if q := c.Query("userId"); q != "" {
		userID = q
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.notifications[userID]
	if items == nil {
		items = []models.Notification{}
	}
	c.JSON(http.StatusOK, models.NotificationsResponse{Success: true, Notifications: items})
}

func (s *Server) markNotificationRead(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications[userID] {
		if s.notifications[userID][i].ID == id {
			s.notifications[userID][i].IsRead = true
			c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
			return
		}
	}
	c.JSON(http.StatusNotFound, models.SuccessResponse{Message: "Notification not found"})
}

func (s *Server) markAllNotificationsRead(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications[userID] {
		s.notifications[userID][i].IsRead = true
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
