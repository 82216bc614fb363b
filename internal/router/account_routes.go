package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/model"
)

// RegisterAccount registers signup/login plus the self-service profile
// endpoints and the staff user-management endpoints.
func RegisterAccount(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/signup", a.SignUp)
	g.POST("/login", a.Login)

	// Profile self-service belongs to regular accounts; staff accounts
	// are managed through /v1/users.
	profile := e.Group("/v1/profile", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleUser))
	profile.PUT("", a.UpdateProfile)
	profile.DELETE("", a.DeleteProfile)

	// Only the admin hires editors and moderators; only moderators
	// remove accounts, and the admin account itself is untouchable.
	users := e.Group("/v1/users", middleware.JWTAuth(jwtSecret))
	users.POST("", u.CreateInternalMember, middleware.RequireRole(model.RoleAdmin))
	users.DELETE("/:id", u.DeleteUser, middleware.RequireRole(model.RoleModerator))
}
