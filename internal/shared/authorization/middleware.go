package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/utils"
)

// RequireSupport aborts unless the authenticated caller has the support role.
// Must run after the auth middleware.
func RequireSupport() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("login required"))
			c.Abort()
			return
		}
		if !id.IsSupport() {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("support role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
