package user

import (
	"fmt"
	"time"
)

// Role gates feature visibility. Generic is the unauthenticated visitor and is
// never stored; every registered profile starts as Pending.
type Role string

const (
	RoleGeneric   Role = "generic"
	RolePending   Role = "pending"
	RoleUtente    Role = "utente"
	RoleOperatore Role = "operatore"
	RoleAdmin     Role = "admin"
	RoleSuperuser Role = "superuser"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePending, RoleUtente, RoleOperatore, RoleAdmin, RoleSuperuser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %s", s)
	}
}

// ParseAssignableRole accepts only the roles the admin panel may hand out.
// Superuser is deliberately not assignable through the exposed workflow.
func ParseAssignableRole(s string) (Role, error) {
	switch Role(s) {
	case RolePending, RoleUtente, RoleOperatore, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("role not assignable: %s", s)
	}
}

type User struct {
	ID          string    `json:"id"`
	PrincipalID string    `json:"principalId"`
	Nome        string    `json:"nome"`
	Cognome     string    `json:"cognome"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	FiscalCode  string    `json:"fiscalCode,omitempty"`
	Address     string    `json:"address,omitempty"`
	Qualifica   string    `json:"qualifica,omitempty"`
	EntityName  string    `json:"entityName,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Role        Role      `json:"role"`
	Approved    bool      `json:"approved"`
	DocumentURL string    `json:"documentUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
