package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/utils"
)

// identityKey is the context key under which JWTAuth stores the verified
// caller identity. The value is written once by the middleware and only
// read afterwards.
const identityKey = "identity"

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and attaches the verified identity to the request context. A
// missing or unparseable credential is rejected with 401; role checks
// happen separately in RequireRole so that an authenticated caller with
// the wrong role gets a distinct 403.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			ident, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity stored by JWTAuth, and false when
// the request was not authenticated.
func CurrentIdentity(c echo.Context) (utils.Identity, bool) {
	ident, ok := c.Get(identityKey).(utils.Identity)
	return ident, ok
}
