package live

import (
	"context"
	"encoding/json"
	"net/http"
)

const (
	CollectionBookings = "bookings"
	CollectionUsers    = "users"
)

// Snapshot produces the full current result set for one subscriber. It is
// re-invoked on every change notification; the result must already be
// filtered and sorted for the caller's role.
type Snapshot func(ctx context.Context) (any, error)

// ServeSnapshots streams snapshots over server-sent events. The client gets
// the complete current state immediately and again after every mutation of
// the collection; deltas are never sent.
func ServeSnapshots(w http.ResponseWriter, r *http.Request, hub *Hub, collection string, fetch Snapshot) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := hub.Subscribe(collection)
	defer cancel()

	send := func() bool {
		snap, err := fetch(r.Context())
		if err != nil {
			return false
		}
		b, err := json.Marshal(snap)
		if err != nil {
			return false
		}
		if _, err := w.Write([]byte("event: snapshot\ndata: ")); err != nil {
			return false
		}
		if _, err := w.Write(b); err != nil {
			return false
		}
		if _, err := w.Write([]byte("\n\n")); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send() {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			if !send() {
				return
			}
		}
	}
}
