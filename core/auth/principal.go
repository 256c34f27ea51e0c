package auth

import (
	"context"

	"github.com/labstack/echo/v4"
)

// Role is a coarse access level carried by every authenticated request.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleStaff      Role = "STAFF"
	RoleViewer     Role = "VIEWER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleStaff, RoleViewer:
		return true
	}
	return false
}

// Principal is the acting user for a single service call.
type Principal struct {
	ID             uint
	Role           Role
	OrganizationID uint
}

func (p Principal) IsSuperAdmin() bool { return p.Role == RoleSuperAdmin }

// CanWrite is false for the read-only viewer role.
func (p Principal) CanWrite() bool { return p.Role != RoleViewer }

// CanAccessOrganization reports whether p may read or write data of orgID.
func (p Principal) CanAccessOrganization(orgID uint) bool {
	return p.IsSuperAdmin() || p.OrganizationID == orgID
}

const principalKey = "principal"

type principalCtxKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext extracts the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}

// SetPrincipal attaches p to both the echo context and the request context.
func SetPrincipal(c echo.Context, p Principal) {
	c.Set(principalKey, p)
	c.SetRequest(c.Request().WithContext(WithPrincipal(c.Request().Context(), p)))
}

// PrincipalFrom returns the principal resolved by Middleware.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}
