package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"bookingportal/internal/access"
	"bookingportal/internal/api"
	"bookingportal/internal/audit"
	"bookingportal/internal/auth"
	"bookingportal/internal/booking"
	"bookingportal/internal/document"
	"bookingportal/internal/live"
	"bookingportal/internal/space"
	"bookingportal/internal/user"
	"bookingportal/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
	Log zerolog.Logger
	Hub *live.Hub
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	usersRepo := user.NewRepository(deps.DB)
	principalsRepo := auth.NewRepository(deps.DB)
	bookingsRepo := booking.NewRepository(deps.DB)
	docsRepo := document.NewRepository(deps.DB)
	auditRepo := audit.NewRepository(deps.DB)

	authHandlers := auth.Handlers{
		DB:         deps.DB,
		Principals: principalsRepo,
		Users:      usersRepo,
		Cfg:        deps.Cfg,
		Log:        deps.Log,
	}
	userHandlers := user.Handlers{
		Repo:  usersRepo,
		Audit: auditRepo,
		Live:  deps.Hub,
		Log:   deps.Log,
	}
	bookingHandlers := booking.Handlers{
		DB:       deps.DB,
		Requests: bookingsRepo,
		Audit:    auditRepo,
		Live:     deps.Hub,
		Log:      deps.Log,
	}
	auditHandlers := audit.Handlers{Repo: auditRepo, Log: deps.Log}
	documentHandlers := document.Handlers{
		Docs:     docsRepo,
		Users:    usersRepo,
		Bookings: bookingsRepo,
		Store:    document.Store{Dir: deps.Cfg.UploadDir},
		Live:     deps.Hub,
		Cfg:      deps.Cfg,
		Log:      deps.Log,
	}
	spaceHandlers := space.Handlers{}

	r.Route("/v1", func(r chi.Router) {
		// The portal frontend lives on its own origin. Only allow CORS for
		// explicitly configured origins.
		r.Use(api.CORSMiddleware(api.CORSOptions{
			AllowedOrigins: deps.Cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAgeSeconds:  600,
		}))

		// Every request resolves to a principal; anonymous callers proceed as
		// generic visitors and get blocked per handler by the access policy.
		r.Use(api.SessionAuth(deps.Cfg, usersRepo))

		r.Post("/auth/register", authHandlers.Register)
		r.Post("/auth/login", authHandlers.Login)
		r.Post("/auth/password-reset", authHandlers.PasswordReset)
		r.Post("/auth/password-reset/confirm", authHandlers.PasswordResetConfirm)

		r.Get("/views", access.Views)
		r.Get("/spaces", spaceHandlers.List)

		r.Get("/bookings", bookingHandlers.List)
		r.Post("/bookings", bookingHandlers.Submit)
		r.Post("/bookings/{id}/approve", bookingHandlers.Approve)
		r.Post("/bookings/{id}/reject", bookingHandlers.Reject)
		r.Post("/bookings/{id}/feedback", bookingHandlers.Feedback)
		r.Delete("/bookings/{id}", bookingHandlers.Delete)

		r.Post("/documents", documentHandlers.Upload)
		r.Get("/documents", documentHandlers.List)
		r.Get("/documents/{id}", documentHandlers.Serve)

		r.Route("/admin", func(r chi.Router) {
			r.Use(api.RequireView(func(role user.Role) bool {
				return access.CanView(role, access.ViewAdminPanel)
			}))

			r.Get("/users", userHandlers.List)
			r.Post("/users/{id}/approve", userHandlers.Approve)
			r.Post("/users/{id}/reject", userHandlers.Reject)
			r.Post("/users/{id}/role", userHandlers.SetRole)
			r.Delete("/users/{id}", userHandlers.Delete)

			r.Get("/audit", auditHandlers.List)
		})

		r.Route("/live", func(r chi.Router) {
			r.Get("/bookings", bookingHandlers.Stream)
			r.Get("/users", userHandlers.Stream)
		})
	})

	return r
}
