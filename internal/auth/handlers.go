package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"bookingportal/internal/api"
	"bookingportal/internal/user"
	"bookingportal/pkg/config"
	"bookingportal/pkg/db"
	"bookingportal/pkg/session"
)

const (
	minPasswordLen = 6
	resetTokenTTL  = time.Hour
)

type Handlers struct {
	DB         *pgxpool.Pool
	Principals *Repository
	Users      *user.Repository
	Cfg        config.Config
	Log        zerolog.Logger

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (h Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h Handlers) sessionTTL() time.Duration {
	return time.Duration(h.Cfg.SessionTTLHours) * time.Hour
}

// RegisterForm carries the registration form as the frontend posts it.
type RegisterForm struct {
	Nome       string `json:"nome"`
	Cognome    string `json:"cognome"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	FiscalCode string `json:"fiscalCode"`
	Address    string `json:"address"`
	Qualifica  string `json:"qualifica"`
	EntityName string `json:"entityName"`
	Notes      string `json:"notes"`
}

func (f RegisterForm) Validate() []api.FieldError {
	var errs []api.FieldError
	if strings.TrimSpace(f.Nome) == "" {
		errs = append(errs, api.FieldError{Field: "nome", Message: "Il Nome è richiesto."})
	}
	if strings.TrimSpace(f.Cognome) == "" {
		errs = append(errs, api.FieldError{Field: "cognome", Message: "Il Cognome è richiesto."})
	}
	if !strings.Contains(f.Email, "@") {
		errs = append(errs, api.FieldError{Field: "email", Message: "L'indirizzo email non è valido."})
	}
	if len(f.Password) < minPasswordLen {
		errs = append(errs, api.FieldError{Field: "password", Message: api.MsgWeakPassword})
	}
	return errs
}

// Register creates the auth principal and its profile in one transaction. The
// new account starts as a pending profile and is signed in immediately; until
// an admin approves it, only the pending screens are reachable.
func (h Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var form RegisterForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		api.WriteValidationError(w, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error().Err(err).Msg("hash password")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))

	var principal *Principal
	var profile *user.User
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		var err error
		principal, err = InsertPrincipal(r.Context(), tx, email, string(hash))
		if err != nil {
			return err
		}
		profile, err = user.InsertTx(r.Context(), tx, user.NewProfile{
			PrincipalID: principal.ID,
			Nome:        strings.TrimSpace(form.Nome),
			Cognome:     strings.TrimSpace(form.Cognome),
			Email:       email,
			Phone:       strings.TrimSpace(form.Phone),
			FiscalCode:  strings.TrimSpace(form.FiscalCode),
			Address:     strings.TrimSpace(form.Address),
			Qualifica:   strings.TrimSpace(form.Qualifica),
			EntityName:  strings.TrimSpace(form.EntityName),
			Notes:       strings.TrimSpace(form.Notes),
		})
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			api.WriteError(w, http.StatusConflict, "EMAIL_IN_USE", api.MsgEmailInUse)
			return
		}
		h.Log.Error().Err(err).Msg("register")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	now := h.now()
	token, err := session.Issue(principal.ID, h.Cfg.SessionSecret, h.sessionTTL(), now)
	if err != nil {
		h.Log.Error().Err(err).Msg("issue session token")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	h.Log.Info().Str("principal_id", principal.ID).Msg("account registered")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"token":     token,
		"expiresAt": now.Add(h.sessionTTL()),
		"user":      profile,
		"message":   "Registrazione completata! Il tuo account è in attesa di approvazione.",
	})
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the credentials and issues a session token. Wrong email and
// wrong password are indistinguishable to the caller.
func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	principal, err := h.Principals.FindByEmail(r.Context(), strings.TrimSpace(form.Email))
	if err != nil {
		api.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", api.MsgInvalidCredentials)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(form.Password)) != nil {
		api.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", api.MsgInvalidCredentials)
		return
	}

	now := h.now()
	token, err := session.Issue(principal.ID, h.Cfg.SessionSecret, h.sessionTTL(), now)
	if err != nil {
		h.Log.Error().Err(err).Msg("issue session token")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	resp := map[string]any{
		"token":     token,
		"expiresAt": now.Add(h.sessionTTL()),
	}
	// A principal whose profile was deleted still signs in, but carries no
	// profile and therefore browses as a generic visitor.
	if profile, err := h.Users.FindByPrincipal(r.Context(), principal.ID); err == nil {
		resp["user"] = profile
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

type PasswordResetForm struct {
	Email string `json:"email"`
}

// PasswordReset issues a single-use reset token. The response is identical
// whether or not the email is registered; delivery of the reset link happens
// out of band.
func (h Handlers) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var form PasswordResetForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	if principal, err := h.Principals.FindByEmail(r.Context(), strings.TrimSpace(form.Email)); err == nil {
		token := uuid.NewString()
		if err := h.Principals.InsertResetToken(r.Context(), token, principal.ID, h.now().Add(resetTokenTTL)); err != nil {
			h.Log.Error().Err(err).Msg("insert reset token")
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
			return
		}
		h.Log.Info().Str("principal_id", principal.ID).Msg("password reset requested")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": "Se l'indirizzo è registrato, riceverai un'email con le istruzioni per reimpostare la password.",
	})
}

type PasswordResetConfirmForm struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// PasswordResetConfirm redeems a reset token and sets the new password.
func (h Handlers) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var form PasswordResetConfirmForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if len(form.Password) < minPasswordLen {
		api.WriteValidationError(w, []api.FieldError{{Field: "password", Message: api.MsgWeakPassword}})
		return
	}

	principalID, err := h.Principals.ConsumeResetToken(r.Context(), form.Token, h.now())
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "RESET_TOKEN_INVALID", "Il link di reimpostazione non è valido o è scaduto.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error().Err(err).Msg("hash password")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}
	if err := h.Principals.UpdatePassword(r.Context(), principalID, string(hash)); err != nil {
		h.Log.Error().Err(err).Msg("update password")
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", api.MsgInternal)
		return
	}

	h.Log.Info().Str("principal_id", principalID).Msg("password reset completed")
	w.WriteHeader(http.StatusNoContent)
}
