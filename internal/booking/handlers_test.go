package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"bookingportal/internal/api"
	"bookingportal/internal/user"
)

func withURLParam(ctx context.Context, key, value string) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}

func TestSubmitDeniedForGeneric(t *testing.T) {
	h := Handlers{}

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var env api.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.Error.Message != api.MsgBookingDenied {
		t.Fatalf("expected the registered-user denial message, got %q", env.Error.Message)
	}
}

func TestSubmitDeniedForPending(t *testing.T) {
	h := Handlers{}

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{}`))
	ctx := api.WithPrincipal(req.Context(), &api.Principal{ID: "p1", Role: user.RolePending})
	rec := httptest.NewRecorder()
	h.Submit(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a pending account, got %d", rec.Code)
	}
}

func TestListRejectsBadMonth(t *testing.T) {
	h := Handlers{}

	for _, q := range []string{"month=13", "month=0", "month=abc", "year=abc"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/bookings?"+q, nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", q, rec.Code)
		}
	}
}

func TestReviewDeniedBelowAdmin(t *testing.T) {
	h := Handlers{}

	for _, role := range []user.Role{user.RoleGeneric, user.RolePending, user.RoleUtente, user.RoleOperatore} {
		req := httptest.NewRequest(http.MethodPost, "/v1/bookings/abc/approve", nil)
		ctx := api.WithPrincipal(req.Context(), &api.Principal{ID: "p1", Role: role})
		rec := httptest.NewRecorder()
		h.Approve(rec, req.WithContext(ctx))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("role %s: expected 403, got %d", role, rec.Code)
		}
	}
}

func TestFeedbackValidation(t *testing.T) {
	h := Handlers{}

	cases := []string{
		`{"rating":0,"notes":"ok"}`,
		`{"rating":6,"notes":"ok"}`,
		`{"rating":3,"notes":"   "}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/v1/bookings/abc/feedback", strings.NewReader(body))
		ctx := api.WithPrincipal(req.Context(), &api.Principal{ID: "p1", Role: user.RoleOperatore})
		ctx = withURLParam(ctx, "id", "abc")
		rec := httptest.NewRecorder()
		h.Feedback(rec, req.WithContext(ctx))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}
