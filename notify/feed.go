// Package notify maintains the notification feed and its unread
// counter. It never discovers events itself; the gateway publishes a
// bus signal whenever a response carries the notification marker, and
// the feed re-fetches in response.
package notify

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/nashvel/convenience-store-sub000/internal/events"
	"github.com/nashvel/convenience-store-sub000/internal/metrics"
	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// API is the slice of the gateway the feed reads through.
type API interface {
	FetchNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

// UserSource supplies the current user id, if signed in.
// session.Store satisfies it via Current; see NewFeed.
type UserSource func() (userID string, ok bool)

// Feed holds the notification list and unread count for the signed-in
// user.
type Feed struct {
	api  API
	user UserSource

	mu     sync.RWMutex
	items  []models.Notification
	unread int
	userID string // owner of the current items, for the unread gauge
}

// NewFeed builds a feed. When bus is non-nil the feed re-fetches on
// every newNotification signal; Close the returned unsubscribe when
// tearing down.
func NewFeed(api API, user UserSource, bus *events.Bus) (*Feed, func()) {
	f := &Feed{api: api, user: user}

	unsubscribe := func() {}
	if bus != nil {
		unsubscribe = bus.Subscribe(events.TopicNewNotification, func(any) {
			if err := f.Refresh(context.Background()); err != nil {
				log.Warn("Notification refresh failed: ", err)
			}
		})
	}
	return f, unsubscribe
}

// Refresh replaces the feed with the server's current list. Without a
// session the feed is emptied instead of fetched.
func (f *Feed) Refresh(ctx context.Context) error {
	userID, ok := f.user()
	if !ok {
		f.mu.Lock()
		last := f.userID
		f.items = nil
		f.unread = 0
		f.userID = ""
		f.mu.Unlock()
		if last != "" {
			metrics.NotificationsUnread.WithLabelValues(last).Set(0)
		}
		return nil
	}

	items, err := f.api.FetchNotifications(ctx, userID)
	if err != nil {
		metrics.PollFailuresTotal.WithLabelValues("notifications").Inc()
		return err
	}

	unread := 0
	for _, n := range items {
		if !n.IsRead {
			unread++
		}
	}

	f.mu.Lock()
	f.items = items
	f.unread = unread
	f.userID = userID
	f.mu.Unlock()
	metrics.NotificationsUnread.WithLabelValues(userID).Set(float64(unread))
	return nil
}

// MarkRead marks one notification read, optimistically updating the
// local copy.
func (f *Feed) MarkRead(ctx context.Context, notificationID string) error {
	if err := f.api.MarkRead(ctx, notificationID); err != nil {
		return err
	}

	f.mu.Lock()
	for i := range f.items {
		if f.items[i].ID == notificationID && !f.items[i].IsRead {
			f.items[i].IsRead = true
			f.unread--
		}
	}
	unread, userID := f.unread, f.userID
	f.mu.Unlock()
	if userID != "" {
		metrics.NotificationsUnread.WithLabelValues(userID).Set(float64(unread))
	}
	return nil
}

// MarkAllRead marks everything read. On failure the feed re-fetches to
// get back in step with the server.
func (f *Feed) MarkAllRead(ctx context.Context) error {
	f.mu.RLock()
	unread := f.unread
	f.mu.RUnlock()
	if unread == 0 {
		return nil
	}

	userID, ok := f.user()
	if !ok {
		return nil
	}

	if err := f.api.MarkAllRead(ctx, userID); err != nil {
		if refreshErr := f.Refresh(ctx); refreshErr != nil {
			log.Warn("Notification refresh after failed mark-all-read also failed: ", refreshErr)
		}
		return err
	}

	f.mu.Lock()
	for i := range f.items {
		f.items[i].IsRead = true
	}
	f.unread = 0
	f.mu.Unlock()
	metrics.NotificationsUnread.WithLabelValues(userID).Set(0)
	return nil
}

// Notifications returns a copy of the feed.
func (f *Feed) Notifications() []models.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]models.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Unread returns the unread count.
func (f *Feed) Unread() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.unread
}
