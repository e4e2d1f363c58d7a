package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/infrastructure/permission"
	"github.com/sismaterial/helpdesk/internal/interfaces/http/handlers"
	"github.com/sismaterial/helpdesk/internal/interfaces/http/middleware"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
)

// UserRouteConfig holds dependencies for user management routes.
type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupUserRoutes configures user management routes. Only support staff reach them.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth(), authorization.RequireSupport())
	{
		users.POST("",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceUser, permission.ActionCreate),
			cfg.UserHandler.CreateUser)
		users.GET("",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceUser, permission.ActionRead),
			cfg.UserHandler.ListUsers)
	}
}
