package notify

import (
	"context"
	"net/url"

	"github.com/nashvel/convenience-store-sub000/internal/gateway"
	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// HTTPAPI is the gateway-backed notification API.
type HTTPAPI struct {
	gw *gateway.Client
}

// NewHTTPAPI wraps a gateway client.
func NewHTTPAPI(gw *gateway.Client) *HTTPAPI {
	return &HTTPAPI{gw: gw}
}

func (a *HTTPAPI) FetchNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	var resp models.NotificationsResponse
	if err := a.gw.Get(ctx, "/notifications?userId="+url.QueryEscape(userID), &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

func (a *HTTPAPI) MarkRead(ctx context.Context, notificationID string) error {
	return a.gw.Put(ctx, "/notifications/mark-read/"+notificationID, nil, nil)
}

func (a *HTTPAPI) MarkAllRead(ctx context.Context, userID string) error {
	return a.gw.Put(ctx, "/notifications/mark-all-read", map[string]string{"userId": userID}, nil)
}
