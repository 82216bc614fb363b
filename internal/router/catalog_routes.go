package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/model"
)

// RegisterCatalog registers the editor-facing catalog mutations. Editors
// maintain movies and names; the admin can additionally correct movie
// entries.
func RegisterCatalog(e *echo.Echo, m *handler.MovieHandler, n *handler.NameHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.POST("/movies", m.Create, middleware.RequireRole(model.RoleEditor))
	g.PUT("/movies/:id", m.Update, middleware.RequireRole(model.RoleEditor, model.RoleAdmin))

	g.POST("/names", n.Create, middleware.RequireRole(model.RoleEditor))
	g.PUT("/names/:id", n.Update, middleware.RequireRole(model.RoleEditor))
}
