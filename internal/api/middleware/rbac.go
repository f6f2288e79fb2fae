package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/commerce-api/internal/api/response"
	"github.com/storefront/commerce-api/internal/core/domain"
)

const (
	reasonNotAuthenticated        = "User not authenticated"
	reasonInsufficientPermissions = "Insufficient permissions"
)

// Authorize enforces role-based access control. It must run after
// Authenticate.
func Authorize(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return response.Unauthorized(reasonNotAuthenticated)
			}
			if !identity.HasRole(allowedRoles...) {
				return response.Forbidden(reasonInsufficientPermissions)
			}
			return next(c)
		}
	}
}
