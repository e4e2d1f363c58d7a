package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/infrastructure/permission"
	tickethandlers "github.com/sismaterial/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/sismaterial/helpdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	perm := config.PermissionMiddleware

	api.GET("/meta/options", config.TicketHandler.Options)

	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		tickets.POST("",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionCreate),
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.ListTickets)

		tickets.PATCH("/:number/status",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionChangeStatus),
			config.TicketHandler.ChangeStatus)
		tickets.POST("/:number/messages",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionMessage),
			config.TicketHandler.AddMessage)
		tickets.GET("/:number/attachments/:filename",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.DownloadAttachment)

		tickets.GET("/:number",
			perm.RequirePermission(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.GetTicket)
	}
}
