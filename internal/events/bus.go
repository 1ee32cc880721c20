// Package events provides the process-wide publish/subscribe bus that
// relays out-of-band signals (notification markers, session expiry)
// between the gateway and the stores that react to them.
package events

import "sync"

// Topics published by the gateway and consumed by the stores.
const (
	TopicNewNotification = "newNotification"
	TopicSessionExpired  = "sessionExpired"
)

// Handler receives the payload published on a topic.
type Handler func(payload any)

// Bus is a topic-keyed handler registry. Delivery is synchronous and
// in subscription order, so a handler's work delays the publisher;
// subscribers doing slow work own the decision to go async.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]subscription
	next int
}

type subscription struct {
	id int
	fn Handler
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers a handler for a topic and returns its
// unsubscribe function. Unsubscribing twice is a no-op.
func (b *Bus) Subscribe(topic string, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[topic]
		for i, s := range subs {
			if s.id == id {
				b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers payload to every handler subscribed to topic.
// Handlers registered or removed during delivery take effect on the
// next publish.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(payload)
	}
}
