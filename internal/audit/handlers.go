package audit

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"bookingportal/internal/api"
)

type Handlers struct {
	Repo *Repository
	Log  zerolog.Logger
}

// List serves the trail to the admin panel, newest first.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid limit")
			return
		}
		limit = n
	}

	items, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		h.Log.Error().Err(err).Msg("list audit trail")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}
	if items == nil {
		items = []Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}
