package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
	"github.com/sismaterial/helpdesk/internal/shared/utils"
)

// PermissionChecker decides whether a caller may perform action on resource.
type PermissionChecker interface {
	Authorize(id authorization.Identity, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	checker PermissionChecker
	logger  logger.Interface
}

func NewPermissionMiddleware(checker PermissionChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		checker: checker,
		logger:  logger,
	}
}

// RequirePermission must run after the auth middleware.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authorization.IdentityFrom(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("login required"))
			c.Abort()
			return
		}

		allowed, err := m.checker.Authorize(id, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "email", id.Email, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewInternalError("permission check failed"))
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "email", id.Email, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("insufficient permissions"))
			c.Abort()
			return
		}

		c.Next()
	}
}
