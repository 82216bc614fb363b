package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// RequireRole returns a middleware that only lets callers through whose
// verified role is in the given set. It assumes JWTAuth ran first; a
// request without an identity is treated as unauthenticated rather than
// forbidden. The response body never says more than that permission was
// insufficient.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := CurrentIdentity(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			if !allowed[ident.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "you don't have enough permission"})
			}
			return next(c)
		}
	}
}
