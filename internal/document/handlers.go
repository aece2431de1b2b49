package document

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"bookingportal/internal/api"
	"bookingportal/internal/booking"
	"bookingportal/internal/live"
	"bookingportal/internal/user"
	"bookingportal/pkg/config"
)

const (
	KindIdentity = "identity"
	KindPoster   = "poster"
)

type Handlers struct {
	Docs     *Repository
	Users    *user.Repository
	Bookings *booking.Repository
	Store    Store
	Live     *live.Hub
	Cfg      config.Config
	Log      zerolog.Logger
}

func normalizeKind(k string) string {
	switch strings.TrimSpace(strings.ToLower(k)) {
	case KindPoster:
		return KindPoster
	default:
		return KindIdentity
	}
}

// Upload accepts a multipart document and records it for the caller. An
// identity document replaces the one on the caller's profile; a poster with a
// bookingId attaches to that request.
func (h Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	p := api.PrincipalFromContext(r.Context())
	if p.User == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Errore: ID utente non disponibile. Riprova ad accedere.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadBytes); err != nil {
		api.WriteError(w, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE", "Il file supera la dimensione massima consentita.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "file is required")
		return
	}
	defer file.Close()

	kind := normalizeKind(r.FormValue("kind"))

	storedName, err := h.Store.Save(file, header.Filename)
	if err != nil {
		h.Log.Error().Err(err).Msg("store upload")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	rec, err := h.Docs.Insert(r.Context(), p.User.ID, kind, header.Filename, storedName, "")
	if err != nil {
		h.Log.Error().Err(err).Msg("insert document record")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}
	rec.URL = "/v1/documents/" + rec.ID

	switch kind {
	case KindIdentity:
		if err := h.Users.SetDocumentURL(r.Context(), p.User.ID, rec.URL); err != nil {
			h.Log.Error().Err(err).Msg("attach identity document")
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
			return
		}
		h.Live.Notify(live.CollectionUsers)
	case KindPoster:
		bookingID := strings.TrimSpace(r.FormValue("bookingId"))
		if bookingID != "" {
			target, err := h.Bookings.GetByID(r.Context(), bookingID)
			if err != nil {
				api.WriteError(w, http.StatusNotFound, "NOT_FOUND", api.MsgNotFound)
				return
			}
			if err := h.Bookings.SetPosterURL(r.Context(), target.ID, rec.URL); err != nil {
				h.Log.Error().Err(err).Msg("attach poster")
				api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
				return
			}
			h.Live.Notify(live.CollectionBookings)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(rec)
}

// List returns the caller's own uploads.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	p := api.PrincipalFromContext(r.Context())
	if p.User == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Errore: ID utente non disponibile. Riprova ad accedere.")
		return
	}

	items, err := h.Docs.ListByOwner(r.Context(), p.User.ID)
	if err != nil {
		h.Log.Error().Err(err).Msg("list documents")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}
	if items == nil {
		items = []Document{}
	}
	for i := range items {
		items[i].URL = "/v1/documents/" + items[i].ID
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

// Serve streams a stored blob. Posters are public on the calendar; identity
// documents are only readable by their owner and by staff reviewing accounts.
func (h Handlers) Serve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.Docs.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", api.MsgNotFound)
		return
	}

	if rec.Kind == KindIdentity {
		p := api.PrincipalFromContext(r.Context())
		owner := p.User != nil && p.User.ID == rec.OwnerID
		staff := p.Role == user.RoleOperatore || p.Role == user.RoleAdmin || p.Role == user.RoleSuperuser
		if !owner && !staff {
			api.WriteAccessDenied(w, "")
			return
		}
	}

	w.Header().Set("Content-Disposition", `inline; filename="`+rec.FileName+`"`)
	http.ServeFile(w, r, h.Store.Path(rec.StoredName))
}
