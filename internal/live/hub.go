package live

import "sync"

// Hub fans out change notifications per collection. A notification carries no
// payload: subscribers re-query the full current result set and render it
// whole, never merging deltas.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe registers a listener on a collection. The returned cancel func
// must be called when the listener goes away.
func (h *Hub) Subscribe(collection string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[chan struct{}]struct{})
	}
	h.subs[collection][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs[collection], ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// Notify wakes every subscriber of a collection. Notifications coalesce: a
// subscriber that has not drained its pending signal gets no duplicate, which
// is fine because each signal triggers a full re-query anyway.
func (h *Hub) Notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
