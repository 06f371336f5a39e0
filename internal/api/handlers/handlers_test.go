// Package handlers_test provides behavior tests for the API handlers package.
package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/accounts"
	"github.com/jroosing/dyndns/internal/advanced"
	"github.com/jroosing/dyndns/internal/api/handlers"
	"github.com/jroosing/dyndns/internal/api/middleware"
	"github.com/jroosing/dyndns/internal/api/models"
	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/clock"
	"github.com/jroosing/dyndns/internal/config"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/lookup"
	"github.com/jroosing/dyndns/internal/update"
	"github.com/jroosing/dyndns/internal/zones"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminKey   = "admin-secret"
	userToken  = "token-alice"
	rootToken  = "token-root"
	otherToken = "token-bob"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	db     *database.DB
	zones  *zones.Directory
	user   database.User
}

// newTestEnv builds every service over a fresh store. With setup the base
// domain example.com exists and alice owns home.example.com.
func newTestEnv(t *testing.T, setup bool) *testEnv {
	t.Helper()
	clk := clock.NewFixed(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	db, err := database.Open(filepath.Join(t.TempDir(), "api.db"), database.WithClock(clk))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	c := cache.NewService(cache.Options{Clock: clk})
	dir := zones.NewDirectory(db, c, clk, nil)

	cfg := config.Default()
	cfg.API.APIKey = adminKey

	h := handlers.New(handlers.Deps{
		Config:   cfg,
		DB:       db,
		Zones:    dir,
		Advanced: advanced.NewManager(db, dir, c, nil),
		Updates:  update.NewEngine(db, dir, c, nil),
		Lookup:   lookup.NewResolver(db, dir, c, nil),
		Accounts: accounts.NewService(db, dir, c, nil),
	})

	alice, err := db.CreateUser(ctx, "alice", "User", userToken)
	require.NoError(t, err)
	_, err = db.CreateUser(ctx, "root", database.RoleSuperAdmin, rootToken)
	require.NoError(t, err)
	_, err = db.CreateUser(ctx, "bob", "User", otherToken)
	require.NoError(t, err)

	if setup {
		require.NoError(t, dir.SetupBaseDomain(ctx, "example.com", []string{"ns1.example.com"}))
		_, err = db.InsertDomain(ctx, "home.example.com", alice.ID, false)
		require.NoError(t, err)
	}

	return &testEnv{router: newRouter(h, cfg), db: db, zones: dir, user: alice}
}

func newRouter(h *handlers.Handler, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.GET("/pdns/lookup/*params", h.Lookup)
	r.GET("/pdns/getAllDomains", h.GetAllDomains)
	r.GET("/pdns/getAllDomainMetadata/:name", h.GetAllDomainMetadata)
	r.GET("/update", h.Update)
	r.GET("/update/*params", h.Update)
	r.GET("/health", h.Health)

	admin := r.Group("/admin", middleware.RequireAdmin(cfg.API.APIKey, h.Accounts()))
	admin.GET("/stats", h.Stats)
	admin.GET("/zones", h.ListZones)
	admin.POST("/setup", h.SetupBaseDomain)
	admin.POST("/zones", h.CreateZone)
	admin.DELETE("/zones/:name", h.DeleteZone)
	admin.GET("/flag", h.GetDeleteZoneEnabled)
	admin.PUT("/flag", h.SetDeleteZoneEnabled)
	admin.GET("/advanced/:zone", h.ListAdvanced)
	admin.POST("/advanced", h.AddAdvanced)
	admin.DELETE("/advanced", h.DeleteAdvanced)
	admin.GET("/logs", h.AdminLogs)

	user := r.Group("/domains", middleware.RequireUser(h.Accounts()))
	user.GET("", h.ListDomains)
	user.POST("", h.CreateDomain)
	user.DELETE("/:name", h.DeleteDomain)
	return r
}

func performRequest(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	return performAuthRequest(r, method, path, body, nil)
}

func performAuthRequest(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func asAdmin(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	return performAuthRequest(r, method, path, body, map[string]string{"X-API-Key": adminKey})
}

func asUser(r http.Handler, token, method, path, body string) *httptest.ResponseRecorder {
	return performAuthRequest(r, method, path, body, map[string]string{"Authorization": "Bearer " + token})
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// ============================================================================
// Health Endpoint Tests
// ============================================================================

func TestHealth_ReturnsOK(t *testing.T) {
	env := newTestEnv(t, false)

	w := performRequest(env.router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[models.StatusResponse](t, w).Status)
}

func TestHealth_DatabaseClosed(t *testing.T) {
	env := newTestEnv(t, false)
	require.NoError(t, env.db.Close())

	w := performRequest(env.router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// ============================================================================
// Stats Endpoint Tests
// ============================================================================

func TestStats_ReturnsServerStats(t *testing.T) {
	env := newTestEnv(t, false)

	w := asAdmin(env.router, http.MethodGet, "/admin/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ServerStatsResponse](t, w)
	assert.NotEmpty(t, resp.Uptime)
	assert.Positive(t, resp.GoRoutines)
	assert.Positive(t, resp.CPU.NumCPU)
	assert.Positive(t, resp.SchemaVersion)
}

func TestStats_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t, false)

	assert.Equal(t, http.StatusUnauthorized, performRequest(env.router, http.MethodGet, "/admin/stats", "").Code)
	assert.Equal(t, http.StatusForbidden, asUser(env.router, userToken, http.MethodGet, "/admin/stats", "").Code)
	assert.Equal(t, http.StatusOK, asUser(env.router, rootToken, http.MethodGet, "/admin/stats", "").Code)
}
