package realtime

import (
	"encoding/json"
	"sync"
)

// Handler receives the raw payload of one event occurrence.
type Handler func(data json.RawMessage)

// Subscription identifies one registered handler for removal via Off.
type Subscription struct {
	event string
	id    uint64
}

// registry maps event names to subscriber sets. Every registration is
// kept; there is no overwrite-by-key.
type registry struct {
	mu   sync.RWMutex
	next uint64
	subs map[string]map[uint64]Handler
}

func newRegistry() *registry {
	return &registry{subs: make(map[string]map[uint64]Handler)}
}

func (r *registry) on(event string, h Handler) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	if r.subs[event] == nil {
		r.subs[event] = make(map[uint64]Handler)
	}
	r.subs[event][r.next] = h

	return Subscription{event: event, id: r.next}
}

func (r *registry) off(sub Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.subs[sub.event]; ok {
		delete(set, sub.id)
		if len(set) == 0 {
			delete(r.subs, sub.event)
		}
	}
}

// dispatch invokes every handler registered for the event. Handlers run
// synchronously on the reader goroutine, so registration order is the only
// ordering that exists.
func (r *registry) dispatch(event string, data json.RawMessage) int {
	r.mu.RLock()
	handlers := make([]Handler, 0, len(r.subs[event]))
	for _, h := range r.subs[event] {
		handlers = append(handlers, h)
	}
	r.mu.RUnlock()

	for _, h := range handlers {
		h(data)
	}
	return len(handlers)
}
