package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/infrastructure/ratelimit"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
	"github.com/sismaterial/helpdesk/internal/shared/utils"
)

// RateLimiter throttles a route per client IP.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	scope   string
	onLimit func()
	logger  logger.Interface
}

// NewRateLimiter keys counters by scope and client IP; onLimit may be nil.
func NewRateLimiter(limiter ratelimit.RateLimiter, scope string, onLimit func(), logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		onLimit: onLimit,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the rate limit per client IP.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.scope + ":" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// If the backend is unavailable, allow the request to avoid blocking all traffic
			rl.logger.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			if rl.onLimit != nil {
				rl.onLimit()
			}
			rl.logger.Warnw("rate limit exceeded", "scope", rl.scope, "client_ip", c.ClientIP())
			utils.ErrorResponseWithError(c, errors.NewRateLimitedError())
			c.Abort()
			return
		}

		c.Next()
	}
}
