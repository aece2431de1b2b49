package user

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"bookingportal/internal/access"
	"bookingportal/internal/api"
	"bookingportal/internal/audit"
	"bookingportal/internal/live"
)

// Handlers implements the superuser admin panel: user review, role
// reassignment and profile deletion.
type Handlers struct {
	Repo  *Repository
	Audit *audit.Repository
	Live  *live.Hub
	Log   zerolog.Logger
}

// Trail writes never fail the mutation they describe.
func (h Handlers) record(r *http.Request, action audit.Action, targetID string, metadata any) {
	actor := api.PrincipalFromContext(r.Context()).ID
	if err := h.Audit.Record(r.Context(), action, actor, targetID, metadata); err != nil {
		h.Log.Warn().Err(err).Str("action", string(action)).Msg("audit record")
	}
}

func (h Handlers) requireManage(w http.ResponseWriter, r *http.Request) bool {
	p := api.PrincipalFromContext(r.Context())
	if !access.Allowed(p.Role, access.ActionManageUsers) {
		api.WriteAccessDenied(w, "")
		return false
	}
	return true
}

// List returns every profile partitioned into pending and approved, newest
// first within each partition.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	if !h.requireManage(w, r) {
		return
	}

	users, err := h.Repo.List(r.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list users")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	pending := []User{}
	approved := []User{}
	for _, u := range users {
		if u.Approved {
			approved = append(approved, u)
		} else {
			pending = append(pending, u)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"pending":  pending,
		"approved": approved,
	})
}

func (h Handlers) setApproved(w http.ResponseWriter, r *http.Request, approved bool) {
	if !h.requireManage(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}
	if _, err := h.Repo.GetByID(r.Context(), id); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", api.MsgNotFound)
		return
	}

	if err := h.Repo.SetApproved(r.Context(), id, approved); err != nil {
		h.Log.Error().Err(err).Str("user_id", id).Msg("set approved")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	action := audit.ActionUserApproved
	if !approved {
		action = audit.ActionUserRejected
	}
	h.record(r, action, id, nil)

	h.Live.Notify(live.CollectionUsers)
	w.WriteHeader(http.StatusNoContent)
}

func (h Handlers) Approve(w http.ResponseWriter, r *http.Request) {
	h.setApproved(w, r, true)
}

// Reject clears the approved flag. The profile record stays; only an explicit
// delete removes it.
func (h Handlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.setApproved(w, r, false)
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

func (h Handlers) SetRole(w http.ResponseWriter, r *http.Request) {
	if !h.requireManage(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	role, err := ParseAssignableRole(req.Role)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid role")
		return
	}

	target, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", api.MsgNotFound)
		return
	}
	if target.Role == RoleSuperuser {
		api.WriteError(w, http.StatusConflict, "ROLE_LOCKED", "superuser role cannot be reassigned")
		return
	}

	if err := h.Repo.SetRole(r.Context(), id, role); err != nil {
		h.Log.Error().Err(err).Str("user_id", id).Msg("set role")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	h.record(r, audit.ActionUserRoleChanged, id, map[string]any{"from": target.Role, "to": role})

	h.Live.Notify(live.CollectionUsers)
	w.WriteHeader(http.StatusNoContent)
}

type DeleteRequest struct {
	Confirm bool `json:"confirm"`
}

// Delete removes the profile record after an explicit confirmation. The auth
// principal is left in place; the account can no longer reach anything beyond
// the generic screens but still exists in the identity store.
func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireManage(w, r) {
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

	target, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", api.MsgNotFound)
		return
	}
	if target.Role == RoleSuperuser {
		api.WriteError(w, http.StatusConflict, "ROLE_LOCKED", "superuser cannot be deleted")
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		h.Log.Error().Err(err).Str("user_id", id).Msg("delete user")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	h.Log.Info().Str("user_id", id).Str("email", target.Email).Msg("profile deleted, principal retained")
	h.record(r, audit.ActionUserDeleted, id, map[string]any{"email": target.Email})
	h.Live.Notify(live.CollectionUsers)
	w.WriteHeader(http.StatusNoContent)
}

// Stream pushes the full pending/approved partition to the admin panel on
// every profile mutation, so the review lists update without polling.
func (h Handlers) Stream(w http.ResponseWriter, r *http.Request) {
	if !h.requireManage(w, r) {
		return
	}

	live.ServeSnapshots(w, r, h.Live, live.CollectionUsers, func(ctx context.Context) (any, error) {
		users, err := h.Repo.List(ctx)
		if err != nil {
			return nil, err
		}
		pending := []User{}
		approved := []User{}
		for _, u := range users {
			if u.Approved {
				approved = append(approved, u)
			} else {
				pending = append(pending, u)
			}
		}
		return map[string]any{"pending": pending, "approved": approved}, nil
	})
}
