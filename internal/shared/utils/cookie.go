package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sismaterial/helpdesk/internal/shared/config"
	"github.com/sismaterial/helpdesk/internal/shared/constants"
)

const SessionCookie = "helpdesk_session"

// SetSessionCookie stores the signed session token as an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, cookieConfig config.CookieConfig, token string, maxAge int) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		SessionCookie,
		token,
		maxAge,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		SessionCookie,
		"",
		-1,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		true,
	)
}

// SessionToken returns the session token from the cookie, falling back to
// an "Authorization: Bearer" header for API clients.
func SessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}

	header := c.GetHeader(constants.HeaderAuthorization)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

const (
	CSRFTokenCookie = "helpdesk_csrf"
	// CSRFFormField carries the token in HTML form posts.
	CSRFFormField = "csrf_token"
)

// EnsureCSRFCookie returns the current CSRF token, issuing a new cookie when
// the request has none. The cookie is readable by scripts (double submit).
func EnsureCSRFCookie(c *gin.Context, cookieConfig config.CookieConfig) string {
	if token, err := c.Cookie(CSRFTokenCookie); err == nil && token != "" {
		return token
	}
	token := uuid.NewString()
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		CSRFTokenCookie,
		token,
		0,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		false,
	)
	return token
}
