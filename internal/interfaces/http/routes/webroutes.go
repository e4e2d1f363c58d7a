package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	webhandlers "github.com/sismaterial/helpdesk/internal/interfaces/http/handlers/web"
	"github.com/sismaterial/helpdesk/internal/interfaces/http/middleware"
)

// LoginPath is where unauthenticated page requests are redirected.
const LoginPath = "/login"

// WebRouteConfig holds dependencies for the server-rendered pages.
type WebRouteConfig struct {
	WebHandler     *webhandlers.WebHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupWebRoutes configures the HTML pages. Role checks for status changes
// happen in the use case so the page can show the error inline.
func SetupWebRoutes(engine *gin.Engine, cfg *WebRouteConfig) {
	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/tickets")
	})
	engine.GET(LoginPath, cfg.AuthMiddleware.OptionalAuth(), cfg.WebHandler.LoginPage)
	engine.POST(LoginPath, cfg.RateLimiter.Limit(), cfg.WebHandler.Login)

	pages := engine.Group("")
	pages.Use(cfg.AuthMiddleware.RequirePage(LoginPath))
	{
		pages.POST("/logout", cfg.WebHandler.Logout)
		pages.GET("/tickets", cfg.WebHandler.TicketsPage)
		pages.POST("/tickets", cfg.WebHandler.CreateTicket)
		pages.GET("/tickets/:number", cfg.WebHandler.TicketPage)
		pages.POST("/tickets/:number/status", cfg.WebHandler.ChangeStatus)
		pages.POST("/tickets/:number/messages", cfg.WebHandler.AddMessage)
	}
}
