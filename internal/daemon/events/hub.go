// Package events fans out daemon notifications to connected UIs.
package events

import (
	"sync"

	"github.com/hazzzi/maenggu-run/internal/geometry"
)

// Type identifies a notification.
type Type string

// Notification types.
const (
	SnackUpdate  Type = "snack_update"
	Summon       Type = "summon"
	BoundsUpdate Type = "bounds_update"
)

// Event is a single notification. Snacks is set for SnackUpdate, Bounds for
// BoundsUpdate (nil when no bounds are available).
type Event struct {
	Type   Type
	Snacks uint32
	Bounds *geometry.Rect
}

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 64

// Hub delivers events to every subscriber without blocking the publisher.
// A subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]subscriber
	nextID uint64
	closed bool
}

type subscriber struct {
	ch chan Event
	// internal subscribers live inside the daemon and are not counted as
	// connected UIs.
	internal bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]subscriber)}
}

// Subscribe registers a subscriber. The returned cancel func unregisters
// it and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	return h.add(buffer, false)
}

// Listen is Subscribe for consumers inside the daemon process. Listeners
// receive every event but are left out of Subscribers.
func (h *Hub) Listen(buffer int) (<-chan Event, func()) {
	return h.add(buffer, true)
}

func (h *Hub) add(buffer int, internal bool) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = subscriber{ch: ch, internal: internal}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub.ch)
			}
		})
	}
}

// Publish sends e to all subscribers.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		select {
		case sub.ch <- e:
		default:
		}
	}
}

// SnackUpdated implements snack.Notifier.
func (h *Hub) SnackUpdated(total uint32) {
	h.Publish(Event{Type: SnackUpdate, Snacks: total})
}

// Summon asks the UI to bring the pet back into view.
func (h *Hub) Summon() {
	h.Publish(Event{Type: Summon})
}

// BoundsChanged publishes new overlay bounds.
func (h *Hub) BoundsChanged(r geometry.Rect, ok bool) {
	e := Event{Type: BoundsUpdate}
	if ok {
		e.Bounds = &r
	}
	h.Publish(e)
}

// Subscribers returns the number of active subscribers, not counting
// listeners.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, sub := range h.subs {
		if !sub.internal {
			n++
		}
	}
	return n
}

// Close closes every subscriber channel. Later subscriptions receive a
// closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.ch)
	}
}
