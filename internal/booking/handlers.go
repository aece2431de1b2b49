package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"bookingportal/internal/access"
	"bookingportal/internal/api"
	"bookingportal/internal/audit"
	"bookingportal/internal/live"
	"bookingportal/pkg/db"
)

type Handlers struct {
	DB       *pgxpool.Pool
	Requests *Repository
	Audit    *audit.Repository
	Live     *live.Hub
	Log      zerolog.Logger

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (h Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Submit validates the booking form and creates a pending request. Requests
// never conflict-check against existing bookings for the same space and
// window; staff resolve overlaps manually.
func (h Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	p := api.PrincipalFromContext(r.Context())
	if !access.Allowed(p.Role, access.ActionSubmitBooking) {
		api.WriteAccessDenied(w, api.MsgBookingDenied)
		return
	}
	if p.User == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Errore: ID utente non disponibile. Riprova ad accedere.")
		return
	}

	var form SubmitForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		api.WriteValidationError(w, errs)
		return
	}

	req, err := h.Requests.Insert(r.Context(), p.User.ID, form)
	if err != nil {
		h.Log.Error().Err(err).Msg("insert booking request")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	h.Live.Notify(live.CollectionBookings)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"request":               req,
		"estimatedContribution": EstimateContribution(form.Spaces).StringFixed(2),
		"message":               "La tua richiesta è stata inviata con successo e ora è in attesa di approvazione.",
	})
}

// List serves the calendar month window. Defaults to the current month when
// year/month are absent. Generic visitors never see pending or rejected
// requests.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	p := api.PrincipalFromContext(r.Context())

	now := h.now()
	year := now.Year()
	month := now.Month()
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid year")
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid month")
			return
		}
		month = time.Month(n)
	}

	items, err := h.Requests.ListMonth(r.Context(), year, month, access.HidesUnreviewed(p.Role))
	if err != nil {
		h.Log.Error().Err(err).Msg("list booking requests")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}
	if items == nil {
		items = []Request{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

func (h Handlers) setStatus(w http.ResponseWriter, r *http.Request, next Status) {
	p := api.PrincipalFromContext(r.Context())
	if !access.Allowed(p.Role, access.ActionReviewBooking) {
		api.WriteAccessDenied(w, "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	action := audit.ActionBookingApproved
	if next == StatusRejected {
		action = audit.ActionBookingRejected
	}

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		if _, err := GetForUpdate(r.Context(), tx, id); err != nil {
			return err
		}
		// Unconditional write: re-approving an approved request is a no-op in
		// effect, and there is no check that the request was still pending.
		if err := UpdateStatus(r.Context(), tx, id, next); err != nil {
			return err
		}
		return audit.Insert(r.Context(), tx, action, p.ID, id, nil)
	})
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", api.MsgNotFound)
		return
	}

	h.Live.Notify(live.CollectionBookings)
	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) Approve(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, StatusApproved)
}

func (h Handlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, StatusRejected)
}

type DeleteRequest struct {
	Confirm bool `json:"confirm"`
}

// Delete removes a request entirely, from any status. The confirm flag is the
// API analog of the interactive confirmation prompt.
func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	p := api.PrincipalFromContext(r.Context())
	if !access.Allowed(p.Role, access.ActionReviewBooking) {
		api.WriteAccessDenied(w, "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Confirm {
		api.WriteError(w, http.StatusBadRequest, "CONFIRMATION_REQUIRED", "deletion requires confirm=true")
		return
	}

	if _, err := h.Requests.GetByID(r.Context(), id); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", api.MsgNotFound)
		return
	}
	if err := h.Requests.Delete(r.Context(), id); err != nil {
		h.Log.Error().Err(err).Str("request_id", id).Msg("delete booking request")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	if err := h.Audit.Record(r.Context(), audit.ActionBookingDeleted, p.ID, id, nil); err != nil {
		h.Log.Warn().Err(err).Msg("audit record")
	}

	h.Live.Notify(live.CollectionBookings)
	w.WriteHeader(http.StatusNoContent)
}

// errResponded aborts a transaction whose handler already wrote the response.
var errResponded = errors.New("response already written")

type FeedbackRequest struct {
	Rating int    `json:"rating"`
	Notes  string `json:"notes"`
}

// Feedback attaches a post-event rating. Only once per request, only by
// staff, and only after the event's end date has passed.
func (h Handlers) Feedback(w http.ResponseWriter, r *http.Request) {
	p := api.PrincipalFromContext(r.Context())
	if !access.Allowed(p.Role, access.ActionAttachFeedback) {
		api.WriteAccessDenied(w, "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if req.Rating < 1 || req.Rating > 5 || strings.TrimSpace(req.Notes) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Per favore, seleziona una valutazione e inserisci le note.")
		return
	}

	now := h.now()
	today := now.Format(dateLayout)

	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		target, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if target.EndDate >= today {
			api.WriteError(w, http.StatusConflict, "EVENT_NOT_ENDED", "feedback is only allowed after the event has ended")
			return errResponded
		}
		if target.Feedback != nil {
			api.WriteError(w, http.StatusConflict, "FEEDBACK_EXISTS", "feedback already recorded")
			return errResponded
		}
		if err := AttachFeedback(r.Context(), tx, id, req.Rating, strings.TrimSpace(req.Notes), p.ID, now); err != nil {
			return err
		}
		return audit.Insert(r.Context(), tx, audit.ActionFeedbackAttached, p.ID, id, map[string]any{"rating": req.Rating})
	})
	if err != nil {
		if errors.Is(err, errResponded) {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", api.MsgNotFound)
		return
	}

	h.Live.Notify(live.CollectionBookings)
	w.WriteHeader(http.StatusNoContent)
}

// Stream serves the live booking feed: a full re-sorted snapshot of the
// current month on every mutation, filtered for the caller's role.
func (h Handlers) Stream(w http.ResponseWriter, r *http.Request) {
	p := api.PrincipalFromContext(r.Context())
	hide := access.HidesUnreviewed(p.Role)

	live.ServeSnapshots(w, r, h.Live, live.CollectionBookings, func(ctx context.Context) (any, error) {
		now := h.now()
		items, err := h.Requests.ListMonth(ctx, now.Year(), now.Month(), hide)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []Request{}
		}
		return map[string]any{"items": items}, nil
	})
}
