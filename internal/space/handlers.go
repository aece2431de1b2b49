package space

import (
	"encoding/json"
	"net/http"
)

type Handlers struct{}

// List serves the static catalog. Open to every role, spaces-info is a public
// screen.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": All()})
}
