package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/infrastructure/auth"
	"github.com/sismaterial/helpdesk/internal/infrastructure/cache"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
	"github.com/sismaterial/helpdesk/internal/shared/utils"
)

// UserLookup reloads the session owner so role changes reach live sessions.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// RoleAssigner mirrors a stored role into the permission policy.
type RoleAssigner interface {
	AssignRole(ctx context.Context, email string, role authorization.UserRole) error
}

type AuthMiddleware struct {
	jwtService *auth.JWTService
	revoked    cache.RevokedSessions
	users      UserLookup
	roles      RoleAssigner
	logger     logger.Interface
}

func NewAuthMiddleware(
	jwtService *auth.JWTService,
	revoked cache.RevokedSessions,
	users UserLookup,
	roles RoleAssigner,
	logger logger.Interface,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		revoked:    revoked,
		users:      users,
		roles:      roles,
		logger:     logger,
	}
}

// authenticate resolves the session token of c and stores the caller on it.
func (m *AuthMiddleware) authenticate(c *gin.Context) error {
	token := utils.SessionToken(c)
	if token == "" {
		return errors.NewSessionInvalidError("missing session token")
	}

	claims, err := m.jwtService.Parse(token)
	if err != nil {
		m.logger.Debugw("failed to verify token", "error", err)
		return errors.NewSessionInvalidError()
	}

	if m.revoked != nil && claims.ID != "" {
		revoked, err := m.revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// fail open: the signature and expiry were already checked
			m.logger.Warnw("failed to check session revocation", "error", err)
		} else if revoked {
			return errors.NewSessionInvalidError("session ended")
		}
	}

	id, err := m.currentIdentity(c.Request.Context(), claims.Identity())
	if err != nil {
		return err
	}

	authorization.SetIdentity(c, id)
	session := authorization.Session{ID: claims.ID}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	authorization.SetSession(c, session)
	return nil
}

// currentIdentity replaces the name and role from the token with the stored ones.
func (m *AuthMiddleware) currentIdentity(ctx context.Context, fromToken authorization.Identity) (authorization.Identity, error) {
	if m.users == nil {
		return fromToken, nil
	}

	stored, err := m.users.GetByEmail(ctx, fromToken.Email)
	if err != nil {
		m.logger.Errorw("failed to load session user", "error", err, "email", fromToken.Email)
		return authorization.Identity{}, errors.NewInternalError("failed to load session user")
	}
	if stored == nil {
		return authorization.Identity{}, errors.NewSessionInvalidError("user no longer exists")
	}

	id := stored.Identity()
	if id.Role != fromToken.Role && m.roles != nil {
		if err := m.roles.AssignRole(ctx, id.Email, id.Role); err != nil {
			m.logger.Errorw("failed to sync changed role", "error", err, "email", id.Email, "role", id.Role)
			return authorization.Identity{}, errors.NewInternalError("failed to sync user role")
		}
	}
	return id, nil
}

// RequireAuth answers 401 JSON when the request has no valid session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.authenticate(c); err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePage redirects browsers without a valid session to loginPath,
// remembering where they were going.
func (m *AuthMiddleware) RequirePage(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.authenticate(c); err != nil {
			if appErr := errors.GetAppError(err); appErr != nil && appErr.Type == errors.ErrorTypeInternal {
				utils.ErrorResponseWithError(c, err)
				c.Abort()
				return
			}
			target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth sets the caller when a valid session is present.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = m.authenticate(c)
		c.Next()
	}
}
