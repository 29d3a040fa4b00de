// File: internal/common/principal.go
package common

import (
	"github.com/google/uuid"
)

// Roles recognized by the authorization gate.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is an authenticated caller's resolved identity and role.
// It is derived from a presented credential per request and never persisted.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// RequireRole is the single capability check applied at the entry of every
// role-restricted operation. A zero principal fails as unauthenticated.
func RequireRole(p Principal, role string) error {
	if p.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if p.Role != role {
		return ErrForbidden.WithDetails("This operation requires the '" + role + "' role.")
	}
	return nil
}

// RequireOwner ensures the principal is acting on its own resources.
// Admins do not bypass ownership here; moderation has its own operations.
func RequireOwner(p Principal, ownerID uuid.UUID) error {
	if p.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if p.UserID != ownerID {
		return ErrForbidden.WithDetails("You may only manage your own resources.")
	}
	return nil
}
