package order

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nashvel/convenience-store-sub000/internal/metrics"
	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// DefaultPollInterval is the tracking refresh cadence.
const DefaultPollInterval = 10 * time.Second

// maxPollBackoff caps the retry delay after consecutive failures.
const maxPollBackoff = time.Minute

// Tracker polls a View on an interval. Polls run one at a time on a
// single goroutine, so a slow response delays the next poll instead of
// overlapping it. Consecutive failures back the interval off
// exponentially until the next success.
type Tracker struct {
	view     *View
	interval time.Duration
}

// NewTracker builds a tracker over a view. A non-positive interval
// falls back to DefaultPollInterval.
func NewTracker(view *View, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{view: view, interval: interval}
}

// Start loads the view, then polls until ctx is cancelled, sending
// each snapshot on the returned channel. A first-load failure is
// returned immediately and nothing is started; refresh failures after
// that are logged and retried with backoff, keeping stale data
// visible over blank.
func (t *Tracker) Start(ctx context.Context) (<-chan models.Order, error) {
	if err := t.view.Load(ctx); err != nil {
		return nil, err
	}

	updates := make(chan models.Order, 1)
	if o, ok := t.view.Order(); ok {
		updates <- o
	}

	go t.run(ctx, updates)
	return updates, nil
}

func (t *Tracker) run(ctx context.Context, updates chan<- models.Order) {
	defer close(updates)

	delay := t.interval
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		if err := t.view.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			metrics.PollFailuresTotal.WithLabelValues("order_tracking").Inc()
			delay *= 2
			if delay > maxPollBackoff {
				delay = maxPollBackoff
			}
			log.WithFields(log.Fields{
				"order_id":   t.view.orderID,
				"next_retry": delay,
			}).Warn("Order tracking refresh failed, keeping last snapshot: ", err)
			continue
		}

		delay = t.interval
		if o, ok := t.view.Order(); ok {
			select {
			case updates <- o:
			case <-ctx.Done():
				return
			}

			if isTerminal(o.Status) {
				log.WithField("order_id", o.ID).Info("Order reached terminal status, stopping tracker")
				return
			}
		}
	}
}

func isTerminal(status string) bool {
	switch status {
	case models.OrderStatusDelivered, models.OrderStatusCancelled, models.OrderStatusRejected:
		return true
	}
	return false
}
