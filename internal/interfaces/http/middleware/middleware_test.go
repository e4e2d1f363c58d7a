package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sismaterial/helpdesk/internal/domain/user"
	"github.com/sismaterial/helpdesk/internal/infrastructure/auth"
	"github.com/sismaterial/helpdesk/internal/infrastructure/cache"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/constants"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
	"github.com/sismaterial/helpdesk/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var ana = authorization.Identity{Email: "ana@empresa.com", Name: "Ana", Role: authorization.RoleUser}

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService, cache.RevokedSessions) {
	t.Helper()
	jwtService := auth.NewJWTService("test-secret", 60)
	revoked := cache.NewMemoryRevokedSessions()
	m := NewAuthMiddleware(jwtService, revoked, nil, nil, logger.Nop())

	r := gin.New()
	r.GET("/api/me", m.RequireAuth(), func(c *gin.Context) {
		id, _ := authorization.IdentityFrom(c)
		session, _ := authorization.SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": id.Email, "session": session.ID})
	})
	r.GET("/tickets", m.RequirePage("/login"), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/login", m.OptionalAuth(), func(c *gin.Context) {
		_, ok := authorization.IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"logged_in": ok})
	})
	return r, jwtService, revoked
}

func TestRequireAuth(t *testing.T) {
	r, jwtService, revoked := newAuthRouter(t)
	token, _, err := jwtService.Issue(ana)
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set(constants.HeaderAuthorization, "Bearer not-a-jwt")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cookie token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.AddCookie(&http.Cookie{Name: utils.SessionCookie, Value: token})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), ana.Email)
	})

	t.Run("revoked token", func(t *testing.T) {
		claims, err := jwtService.Parse(token)
		require.NoError(t, err)
		require.NoError(t, revoked.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type stubUsers struct {
	users map[string]*user.User
	err   error
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return s.users[email], s.err
}

type stubRoles struct {
	assigned map[string]authorization.UserRole
}

func (s *stubRoles) AssignRole(_ context.Context, email string, role authorization.UserRole) error {
	s.assigned[email] = role
	return nil
}

func TestRequireAuth_UsesStoredRole(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 60)
	bia := authorization.Identity{Email: "bia@empresa.com", Name: "Bia", Role: authorization.RoleSupport}
	users := &stubUsers{users: map[string]*user.User{
		bia.Email: user.ReconstructUser(bia.Email, "Bia", "hash", authorization.RoleSupport.String()),
	}}
	roles := &stubRoles{assigned: map[string]authorization.UserRole{}}
	m := NewAuthMiddleware(jwtService, nil, users, roles, logger.Nop())

	r := gin.New()
	r.GET("/api/me", m.RequireAuth(), func(c *gin.Context) {
		id, _ := authorization.IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"support": id.IsSupport()})
	})
	r.GET("/tickets", m.RequirePage("/login"), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	token, _, err := jwtService.Issue(bia)
	require.NoError(t, err)
	call := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
		r.ServeHTTP(w, req)
		return w
	}

	w := call("/api/me")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"support":true}`, w.Body.String())
	assert.Empty(t, roles.assigned)

	// demoted while the token is still valid
	users.users[bia.Email] = user.ReconstructUser(bia.Email, "Bia", "hash", authorization.RoleUser.String())
	w = call("/api/me")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"support":false}`, w.Body.String())
	assert.Equal(t, authorization.RoleUser, roles.assigned[bia.Email])

	delete(users.users, bia.Email)
	assert.Equal(t, http.StatusUnauthorized, call("/api/me").Code)
	assert.Equal(t, http.StatusSeeOther, call("/tickets").Code)

	users.err = errors.New("users file is corrupt")
	assert.Equal(t, http.StatusInternalServerError, call("/api/me").Code)
	assert.Equal(t, http.StatusInternalServerError, call("/tickets").Code)
}

func TestRequirePage_RedirectsToLogin(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tickets", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?next=%2Ftickets", w.Header().Get("Location"))
}

func TestOptionalAuth(t *testing.T) {
	r, jwtService, _ := newAuthRouter(t)
	token, _, err := jwtService.Issue(ana)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.JSONEq(t, `{"logged_in":false}`, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookie, Value: token})
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"logged_in":true}`, w.Body.String())
}

func newCSRFRouter() *gin.Engine {
	r := gin.New()
	r.Use(CSRF())
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r.POST(constants.APIVersionPrefix+"/auth/login", ok)
	r.POST("/tickets", ok)
	r.GET("/tickets", ok)
	return r
}

func TestCSRF(t *testing.T) {
	r := newCSRFRouter()

	tests := []struct {
		name    string
		method  string
		path    string
		cookies map[string]string
		header  string
		form    string
		want    int
	}{
		{"safe method", http.MethodGet, "/tickets", map[string]string{utils.SessionCookie: "s"}, "", "", http.StatusNoContent},
		{"exempt login", http.MethodPost, constants.APIVersionPrefix + "/auth/login", map[string]string{utils.SessionCookie: "s"}, "", "", http.StatusNoContent},
		{"bearer client without cookie", http.MethodPost, "/tickets", nil, "", "", http.StatusNoContent},
		{"missing csrf cookie", http.MethodPost, "/tickets", map[string]string{utils.SessionCookie: "s"}, "tok", "", http.StatusForbidden},
		{"missing token", http.MethodPost, "/tickets", map[string]string{utils.SessionCookie: "s", utils.CSRFTokenCookie: "tok"}, "", "", http.StatusForbidden},
		{"mismatch", http.MethodPost, "/tickets", map[string]string{utils.SessionCookie: "s", utils.CSRFTokenCookie: "tok"}, "other", "", http.StatusForbidden},
		{"header match", http.MethodPost, "/tickets", map[string]string{utils.SessionCookie: "s", utils.CSRFTokenCookie: "tok"}, "tok", "", http.StatusNoContent},
		{"form field match", http.MethodPost, "/tickets", map[string]string{utils.SessionCookie: "s", utils.CSRFTokenCookie: "tok"}, "", "tok", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.form != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(utils.CSRFFormField+"="+tt.form))
				req.Header.Set(constants.HeaderContentType, "application/x-www-form-urlencoded")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			for name, value := range tt.cookies {
				req.AddCookie(&http.Cookie{Name: name, Value: value})
			}
			if tt.header != "" {
				req.Header.Set(constants.HeaderCSRFToken, tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

type stubChecker struct {
	allowed bool
	err     error
}

func (s stubChecker) Authorize(authorization.Identity, string, string) (bool, error) {
	return s.allowed, s.err
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name    string
		id      *authorization.Identity
		checker stubChecker
		want    int
	}{
		{"anonymous", nil, stubChecker{allowed: true}, http.StatusUnauthorized},
		{"denied", &ana, stubChecker{allowed: false}, http.StatusForbidden},
		{"checker error", &ana, stubChecker{err: errors.New("adapter down")}, http.StatusInternalServerError},
		{"allowed", &ana, stubChecker{allowed: true}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPermissionMiddleware(tt.checker, logger.Nop())
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.id != nil {
					authorization.SetIdentity(c, *tt.id)
				}
			})
			r.PATCH("/status", m.RequirePermission("ticket", "change_status"), func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/status", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

type countingLimiter struct {
	limit int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.seen[key]++
	return l.seen[key] <= l.limit, nil
}

func (l *countingLimiter) Reset(_ context.Context, key string) error {
	delete(l.seen, key)
	return nil
}

func TestRateLimiter(t *testing.T) {
	limiter := &countingLimiter{limit: 2, seen: map[string]int{}}
	hits := 0
	rl := NewRateLimiter(limiter, "login", func() { hits++ }, logger.Nop())

	r := gin.New()
	r.POST("/login", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, hits)
	assert.Len(t, limiter.seen, 1)
	for key := range limiter.seen {
		assert.True(t, strings.HasPrefix(key, "login:"))
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rl := NewRateLimiter(&countingLimiter{err: errors.New("redis down")}, "login", nil, logger.Nop())

	r := gin.New()
	r.POST("/login", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(constants.HeaderXRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderXRequestID))
}

type recordingObserver struct {
	route  string
	status int
}

func (o *recordingObserver) ObserveRequest(_ string, route string, status int, _ float64) {
	o.route = route
	o.status = status
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	obs := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/tickets/:number", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tickets/0001", nil))

	assert.Equal(t, "/tickets/:number", obs.route)
	assert.Equal(t, http.StatusOK, obs.status)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.Nop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:8080"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:8080", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
