package handler // handler defines http handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// dbTimeout bounds every database-backed request.
const dbTimeout = 5 * time.Second

// requestCtx derives a bounded context from the request.
func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// identity extracts the verified caller set by the JWT middleware.
func identity(c echo.Context) (utils.Identity, error) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return utils.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return ident, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

// queryInt parses an optional non-negative integer query parameter,
// falling back to def when absent or malformed.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// Health is a simple liveness endpoint for load balancers and
// monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
