package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Role grants access to a class of operations.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// CanWrite reports whether r may create, update or delete records.
func (r Role) CanWrite() bool {
	return r == RoleEditor || r == RoleAdmin
}

// RequireWriter rejects principals whose role cannot mutate records. It
// must run after Handle.
func RequireWriter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if !principal.Role.CanWrite() {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}
