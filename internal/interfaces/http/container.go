package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sismaterial/helpdesk/internal/domain/shared/events"
	"github.com/sismaterial/helpdesk/internal/infrastructure/auth"
	"github.com/sismaterial/helpdesk/internal/infrastructure/cache"
	"github.com/sismaterial/helpdesk/internal/infrastructure/config"
	"github.com/sismaterial/helpdesk/internal/infrastructure/metrics"
	"github.com/sismaterial/helpdesk/internal/infrastructure/permission"
	"github.com/sismaterial/helpdesk/internal/interfaces/http/middleware"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
	"github.com/sismaterial/helpdesk/internal/shared/services/markdown"
)

// Container holds the infrastructure components, repositories, use cases and
// handlers of the HTTP server and wires them together. Shutdown releases what
// the container opened itself.
type Container struct {
	// Core infrastructure
	engine     *gin.Engine
	db         *gorm.DB
	cfg        *config.Config
	log        logger.Interface
	redis      *redis.Client
	dispatcher events.EventDispatcher

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	loginRateLimiter     *middleware.RateLimiter

	// Shared services
	jwtSvc   *auth.JWTService
	hasher   *auth.BcryptPasswordHasher
	enforcer *permission.Enforcer
	revoked  cache.RevokedSessions
	metrics  *metrics.Metrics
	renderer markdown.Renderer
}

// NewContainer builds the full dependency graph. db is nil for the JSON
// storage driver. The dispatcher must be started by the caller.
func NewContainer(db *gorm.DB, dispatcher events.EventDispatcher, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:     gin.New(),
		db:         db,
		cfg:        cfg,
		log:        log,
		dispatcher: dispatcher,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	if err := c.initAuthorization(); err != nil {
		return nil, err
	}
	if err := c.initNotifications(); err != nil {
		return nil, err
	}
	c.initUseCases()
	c.initHandlers()
	c.initMiddlewares()

	return c, nil
}

// Engine returns the configured gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown closes the redis client. The database and dispatcher belong to the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
	c.log.Infow("container shut down")
}
