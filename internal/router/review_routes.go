package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/model"
)

// RegisterReviews registers the review and rating mutations. Regular
// users write and edit their own entries; review deletion extends to
// moderators, and standalone rating deletion is a staff-only cleanup
// tool.
func RegisterReviews(e *echo.Echo, rv *handler.ReviewHandler, rt *handler.RatingHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.POST("/reviews", rv.Create, middleware.RequireRole(model.RoleUser))
	g.PUT("/reviews/:id", rv.Update, middleware.RequireRole(model.RoleUser))
	g.DELETE("/reviews/:id", rv.Delete, middleware.RequireRole(model.RoleUser, model.RoleModerator))

	g.POST("/ratings", rt.Create, middleware.RequireRole(model.RoleUser))
	g.PUT("/ratings/:id", rt.Update, middleware.RequireRole(model.RoleUser))
	g.DELETE("/ratings/:id", rt.Delete, middleware.RequireRole(model.RoleModerator, model.RoleAdmin))
}
