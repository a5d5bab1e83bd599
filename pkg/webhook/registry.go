package webhook

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription identifies one registered handler so it can be removed.
type Subscription struct {
	id    uuid.UUID
	event EventType
}

type subscriber struct {
	id uuid.UUID
	fn func(Event)
}

// registry fans events out to subscribers, synchronously and in
// subscription order.
type registry struct {
	mu   sync.Mutex
	subs map[EventType][]subscriber
}

func newRegistry() *registry {
	return &registry{subs: make(map[EventType][]subscriber)}
}

func (r *registry) subscribe(event EventType, fn func(Event)) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := subscriber{id: uuid.New(), fn: fn}
	r.subs[event] = append(r.subs[event], sub)
	return Subscription{id: sub.id, event: event}
}

func (r *registry) unsubscribe(sub Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.subs[sub.event]
	for i, s := range list {
		if s.id == sub.id {
			r.subs[sub.event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// snapshot returns the current subscriber list for an event. Publishing
// iterates a snapshot so handlers may unsubscribe (or subscribe) while a
// dispatch is in flight.
func (r *registry) snapshot(event EventType) []subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.subs[event]
	out := make([]subscriber, len(list))
	copy(out, list)
	return out
}
