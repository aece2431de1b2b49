package api

import (
	"context"

	"bookingportal/internal/user"
)

// Principal is the resolved caller identity for one request. Visitors without
// a valid session (or without a profile record) carry the generic role.
type Principal struct {
	ID   string // auth principal id; empty for anonymous visitors
	Role user.Role
	User *user.User // nil for generic
}

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext never returns nil: missing context means generic.
func PrincipalFromContext(ctx context.Context) *Principal {
	v := ctx.Value(ctxKeyPrincipal)
	if v == nil {
		return &Principal{Role: user.RoleGeneric}
	}
	p, ok := v.(*Principal)
	if !ok || p == nil {
		return &Principal{Role: user.RoleGeneric}
	}
	return p
}
