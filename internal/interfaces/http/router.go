package http

import (
	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/interfaces/http/middleware"
	"github.com/sismaterial/helpdesk/internal/interfaces/http/routes"
	"github.com/sismaterial/helpdesk/internal/shared/constants"
)

// maxMultipartMemory bounds the part of an upload gin keeps in memory; the
// rest spills to temp files.
const maxMultipartMemory = 32 << 20

// SetupRoutes configures middleware and every HTTP route.
func (c *Container) SetupRoutes() {
	engine := c.engine
	engine.MaxMultipartMemory = maxMultipartMemory

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(c.log.Named("http")))
	engine.Use(middleware.Recovery(c.log.Named("http.recovery")))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.Metrics(c.metrics))
	engine.Use(middleware.CSRF())

	engine.GET("/health", c.hdlrs.userHandler.HealthCheck)
	engine.GET("/metrics", gin.WrapH(c.metrics.Handler()))

	api := engine.Group(constants.APIVersionPrefix)

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.loginRateLimiter,
	})

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:          c.hdlrs.userHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        c.hdlrs.ticketHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupWebRoutes(engine, &routes.WebRouteConfig{
		WebHandler:     c.hdlrs.webHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.loginRateLimiter,
	})
}
