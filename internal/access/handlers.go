package access

import (
	"encoding/json"
	"net/http"

	"bookingportal/internal/api"
)

// Views tells the frontend which screens to render in the navigation for the
// current session. The backend still checks every operation; this only shapes
// the menu.
func Views(w http.ResponseWriter, r *http.Request) {
	p := api.PrincipalFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"role":  p.Role,
		"views": ReachableViews(p.Role),
	})
}
