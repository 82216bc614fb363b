// Package router wires HTTP routes to handlers and access policy. Each
// Register function covers one slice of the API; public browse routes
// carry no middleware, protected groups stack JWTAuth plus RequireRole.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/handler"
)

// RegisterRoutes registers routes that require no authentication: the
// health check and the public browse surface of the catalog.
func RegisterRoutes(e *echo.Echo, movies *handler.MovieHandler, names *handler.NameHandler, reviews *handler.ReviewHandler, search *handler.SearchHandler) {
	e.GET("/healthz", handler.Health)

	// Guests can browse movies, people and reviews without a token.
	e.GET("/v1/movies", movies.List)
	e.GET("/v1/movies/:id", movies.Get)
	e.GET("/v1/names/:id", names.Get)
	e.GET("/v1/reviews", reviews.List)
	e.GET("/v1/search", search.Search)
}
