package http

import (
	"github.com/sismaterial/helpdesk/internal/interfaces/http/handlers"
	tickethandlers "github.com/sismaterial/helpdesk/internal/interfaces/http/handlers/ticket"
	webhandlers "github.com/sismaterial/helpdesk/internal/interfaces/http/handlers/web"
	"github.com/sismaterial/helpdesk/internal/interfaces/http/middleware"
)

// loginRateLimitedOutcome is recorded when a login is rejected before the credentials are checked.
const loginRateLimitedOutcome = "rate_limited"

// allHandlers holds the HTTP handlers.
type allHandlers struct {
	authHandler   *handlers.AuthHandler
	userHandler   *handlers.UserHandler
	ticketHandler *tickethandlers.TicketHandler
	webHandler    *webhandlers.WebHandler
}

func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs
	cookieCfg := c.cfg.Auth.Cookie

	authHandler := handlers.NewAuthHandler(ucs.authenticateUC, c.revoked, c.metrics, log.Named("handler.auth"), cookieCfg)

	c.hdlrs = &allHandlers{
		authHandler: authHandler,
		userHandler: handlers.NewUserHandler(ucs.registerUserUC, ucs.listUsersUC, log.Named("handler.user")),
		ticketHandler: tickethandlers.NewTicketHandler(
			ucs.createTicketUC,
			ucs.listTicketsUC,
			ucs.getTicketUC,
			ucs.changeStatusUC,
			ucs.addMessageUC,
			ucs.downloadAttachmentUC,
			log.Named("handler.ticket"),
		),
		webHandler: webhandlers.NewWebHandler(
			authHandler,
			ucs.createTicketUC,
			ucs.listTicketsUC,
			ucs.getTicketUC,
			ucs.changeStatusUC,
			ucs.addMessageUC,
			c.renderer,
			cookieCfg,
			log.Named("handler.web"),
		),
	}
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.revoked, c.repos.userRepo, c.enforcer, c.log.Named("middleware.auth"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log.Named("middleware.permission"))
	c.loginRateLimiter = middleware.NewRateLimiter(c.newLoginLimiter(), "login", func() {
		c.metrics.LoginAttempt(loginRateLimitedOutcome)
	}, c.log.Named("middleware.ratelimit"))
}
