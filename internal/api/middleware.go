package api

import (
	"net/http"
	"strings"
	"time"

	"bookingportal/internal/user"
	"bookingportal/pkg/config"
	"bookingportal/pkg/session"
)

// SessionAuth resolves the caller to a Principal on every request.
//
// Contract:
// - A valid `Authorization: Bearer <JWT>` maps the token subject to a profile
//   record and its role.
// - A missing or invalid token does NOT reject the request: the caller
//   proceeds as a generic visitor. Role checks happen per handler through the
//   access policy, so public screens stay reachable without a session.
// - An authenticated principal without a profile record is also generic.
func SessionAuth(cfg config.Config, users *user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := &Principal{Role: user.RoleGeneric}

			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token := strings.TrimSpace(authz[7:])
				if vs, err := session.Verify(token, cfg.SessionSecret, time.Now()); err == nil {
					p.ID = vs.PrincipalID
					if u, err := users.FindByPrincipal(r.Context(), vs.PrincipalID); err == nil {
						p.Role = u.Role
						p.User = u
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireView blocks roles that cannot open the given screen with the fixed
// denial panel.
func RequireView(check func(user.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if !check(p.Role) {
				WriteAccessDenied(w, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
