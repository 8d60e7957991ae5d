// Package events is a fire-and-forget broadcast bus for placement
// lifecycle notifications.
package events

import (
	"sync"
	"time"
)

// Kind classifies a lifecycle event.
type Kind string

const (
	// PlacementCompiled fires when a pod was successfully placed on an
	// offer.
	PlacementCompiled Kind = "placement_compiled"
	// PlacementRejected fires when an offer could not satisfy a pod.
	PlacementRejected Kind = "placement_rejected"
)

// Event is one lifecycle notification.
type Event struct {
	Kind       Kind      `json:"kind"`
	PodID      string    `json:"pod_id"`
	OfferID    string    `json:"offer_id"`
	InstanceID string    `json:"instance_id,omitempty"`
	At         time.Time `json:"at"`
}

// Bus broadcasts events to all current subscribers. Publishing never
// blocks: a subscriber whose buffer is full misses the event.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: map[int]chan Event{}}
}

// Subscribe registers a subscriber and returns its channel plus a
// cancel function. The channel is closed on cancel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish broadcasts an event to every subscriber without blocking.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
