package authorization

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/shared/constants"
)

// Identity is the authenticated caller of a single request.
type Identity struct {
	Email string
	Name  string
	Role  UserRole
}

func (i Identity) IsSupport() bool {
	return i.Role.IsSupport()
}

// SetIdentity stores the caller on the gin context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(constants.ContextKeyIdentity, id)
}

// IdentityFrom returns the caller stored by the auth middleware.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(constants.ContextKeyIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// Session identifies the token a request authenticated with.
type Session struct {
	ID        string
	ExpiresAt time.Time
}

func SetSession(c *gin.Context, s Session) {
	c.Set(constants.ContextKeySession, s)
}

func SessionFrom(c *gin.Context) (Session, bool) {
	v, ok := c.Get(constants.ContextKeySession)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
