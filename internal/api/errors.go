package api

import (
	"encoding/json"
	"net/http"
)

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Error: APIError{Code: code, Message: message},
	})
}

// Fixed user-facing messages. Raw backend error text is never surfaced;
// callers pick one of these or fall back to MsgInternal.
const (
	MsgAccessDenied       = "Non hai i permessi per accedere a questa sezione."
	MsgBookingDenied      = "Devi essere un utente registrato per richiedere uno spazio."
	MsgInvalidCredentials = "Email o password non corretti."
	MsgEmailInUse         = "L'indirizzo email è già in uso. Prova ad accedere o a usare un'altra email."
	MsgWeakPassword       = "La password è troppo debole. Deve essere di almeno 6 caratteri."
	MsgTooManyAttempts    = "Troppi tentativi di accesso falliti. Riprova più tardi."
	MsgNotFound           = "Elemento non trovato."
	MsgInternal           = "Si è verificato un errore di connessione. Riprova."
)

// WriteAccessDenied renders the fixed denial panel. It is a deliberate
// user-visible behavior, not a redirect.
func WriteAccessDenied(w http.ResponseWriter, message string) {
	if message == "" {
		message = MsgAccessDenied
	}
	WriteError(w, http.StatusForbidden, "ACCESS_DENIED", message)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationEnvelope struct {
	Error  APIError     `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// WriteValidationError reports client-side validation failures with the
// offending fields, without attempting the operation.
func WriteValidationError(w http.ResponseWriter, fields []FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	_ = json.NewEncoder(w).Encode(ValidationEnvelope{
		Error:  APIError{Code: "VALIDATION_FAILED", Message: "Per favore, correggi gli errori nel modulo."},
		Fields: fields,
	})
}
