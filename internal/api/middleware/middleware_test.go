// Package middleware_test provides behavior tests for the API middleware package.
package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/api/middleware"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/ratelimit"
	"github.com/jroosing/dyndns/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth map[string]database.User

func (f fakeAuth) Authenticate(_ context.Context, key string) (database.User, error) {
	if key == "broken" {
		return database.User{}, errors.New("database is locked")
	}
	u, ok := f[key]
	if !ok {
		return database.User{}, records.Errorf(records.ErrInvalidCredential, "Invalid API key")
	}
	return u, nil
}

var users = fakeAuth{
	"user-token":  {ID: 7, Username: "alice", Role: "User"},
	"admin-token": {ID: 1, Username: "root", Role: database.RoleSuperAdmin},
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/test", func(c *gin.Context) {
		user, _ := middleware.UserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"actor": middleware.ActorFromContext(c), "user_id": user.ID})
	})
	return router
}

func get(r http.Handler, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ============================================================================
// RequireAdmin Middleware Tests
// ============================================================================

func TestRequireAdmin_ValidKey(t *testing.T) {
	w := get(newRouter(middleware.RequireAdmin("test-secret", users)), map[string]string{"X-Api-Key": "test-secret"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"actor":"api-key"`)
}

func TestRequireAdmin_InvalidKey(t *testing.T) {
	w := get(newRouter(middleware.RequireAdmin("correct-key", users)), map[string]string{"X-Api-Key": "wrong-key"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
}

func TestRequireAdmin_NoCredentials(t *testing.T) {
	w := get(newRouter(middleware.RequireAdmin("secret", users)), nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_EmptyExpectedStaysClosed(t *testing.T) {
	router := newRouter(middleware.RequireAdmin("", users))

	assert.Equal(t, http.StatusUnauthorized, get(router, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, map[string]string{"X-Api-Key": "anything"}).Code)
}

func TestRequireAdmin_SuperAdminBearer(t *testing.T) {
	w := get(newRouter(middleware.RequireAdmin("", users)), map[string]string{"Authorization": "Bearer admin-token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"actor":"root"`)
}

func TestRequireAdmin_RegularUserForbidden(t *testing.T) {
	w := get(newRouter(middleware.RequireAdmin("secret", users)), map[string]string{"Authorization": "Bearer user-token"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ============================================================================
// RequireUser Middleware Tests
// ============================================================================

func TestRequireUser_ValidToken(t *testing.T) {
	w := get(newRouter(middleware.RequireUser(users)), map[string]string{"Authorization": "Bearer user-token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"actor":"alice","user_id":7}`, w.Body.String())
}

func TestRequireUser_UnknownToken(t *testing.T) {
	w := get(newRouter(middleware.RequireUser(users)), map[string]string{"Authorization": "Bearer nope"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser_MissingScheme(t *testing.T) {
	w := get(newRouter(middleware.RequireUser(users)), map[string]string{"Authorization": "user-token"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser_StoreFailure(t *testing.T) {
	w := get(newRouter(middleware.RequireUser(users)), map[string]string{"Authorization": "Bearer broken"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ============================================================================
// Client Address Tests
// ============================================================================

func TestClientAddr(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		trust   bool
		want    string
	}{
		{"remote addr", "203.0.113.9:5555", nil, false, "203.0.113.9"},
		{"headers ignored without trust", "203.0.113.9:5555", map[string]string{"X-Forwarded-For": "198.51.100.1"}, false, "203.0.113.9"},
		{"first forwarded entry", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.2"}, true, "198.51.100.1"},
		{"real ip fallback", "10.0.0.1:80", map[string]string{"X-Real-IP": "2001:db8::5"}, true, "2001:db8::5"},
		{"garbage forwarded falls through", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "unknown"}, true, "10.0.0.1"},
		{"mapped v4 unmapped", "[::ffff:192.0.2.7]:80", nil, false, "192.0.2.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, netip.MustParseAddr(tt.want), middleware.ClientAddr(req, tt.trust))
		})
	}
}

func TestClientAddr_Unparseable(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "pipe"
	assert.False(t, middleware.ClientAddr(req, false).IsValid())
}

// ============================================================================
// RateLimit Middleware Tests
// ============================================================================

func TestRateLimit_RejectsOverBudget(t *testing.T) {
	limiter := ratelimit.New(ratelimit.Settings{IPRate: 1, IPBurst: 2}, nil)
	router := newRouter(middleware.RateLimit(limiter, false))

	assert.Equal(t, http.StatusOK, get(router, nil).Code)
	assert.Equal(t, http.StatusOK, get(router, nil).Code)

	w := get(router, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "KO\nToo many requests", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimit_NilLimiter(t *testing.T) {
	router := newRouter(middleware.RateLimit(nil, false))
	for range 5 {
		assert.Equal(t, http.StatusOK, get(router, nil).Code)
	}
}

// ============================================================================
// SlogRequestLogger Middleware Tests
// ============================================================================

func TestSlogRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	router := gin.New()
	router.Use(middleware.SlogRequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("disk full"))
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)
	req = httptest.NewRequest(http.MethodGet, "/fail", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=\"api request\" method=GET path=/ok status=204")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "disk full")
}

func TestSlogRequestLogger_NilLogger(t *testing.T) {
	router := gin.New()
	router.Use(middleware.SlogRequestLogger(nil))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
