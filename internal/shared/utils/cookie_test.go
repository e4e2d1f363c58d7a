package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sismaterial/helpdesk/internal/shared/config"
	"github.com/sismaterial/helpdesk/internal/shared/constants"
)

func TestEnsureCSRFCookie(t *testing.T) {
	cfg := config.CookieConfig{Path: "/", SameSite: "Lax"}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/login", nil)

	token := EnsureCSRFCookie(c, cfg)
	assert.NotEmpty(t, token)
	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, CSRFTokenCookie, cookies[0].Name)
		assert.Equal(t, token, cookies[0].Value)
		assert.False(t, cookies[0].HttpOnly)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/login", nil)
	c.Request.AddCookie(&http.Cookie{Name: CSRFTokenCookie, Value: "existing"})

	assert.Equal(t, "existing", EnsureCSRFCookie(c, cfg))
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionToken(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(r *http.Request)
		want    string
	}{
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"}) }, "from-cookie"},
		{"bearer", func(r *http.Request) { r.Header.Set(constants.HeaderAuthorization, "Bearer from-header") }, "from-header"},
		{"cookie wins", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
			r.Header.Set(constants.HeaderAuthorization, "Bearer from-header")
		}, "from-cookie"},
		{"basic ignored", func(r *http.Request) { r.Header.Set(constants.HeaderAuthorization, "Basic abc") }, ""},
		{"none", func(r *http.Request) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(c.Request)

			assert.Equal(t, tt.want, SessionToken(c))
		})
	}
}
