package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sports-facility-reservation/internal/handler"
)

// RequireRole returns a middleware that enforces that the authenticated
// user holds one of the given roles.  The values must match the "role"
// claim JWTAuth stored in the context; requests with a missing or
// disallowed role are rejected with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, handler.Fail("forbidden"))
			}
			return next(c)
		}
	}
}
