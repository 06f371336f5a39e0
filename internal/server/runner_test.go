// Package server_test provides behavior tests for the server package.
package server_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/jroosing/dyndns/internal/config"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Database.Path = filepath.Join(t.TempDir(), "runner.db")
	cfg.API.EnableSwagger = false
	return cfg
}

// start runs the runner in the background and returns its base URL and a
// stop function that waits for exit.
func start(t *testing.T, cfg *config.Config, version string) (string, func() error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	addrCh := make(chan net.Addr, 1)
	r := server.NewRunner(nil, version)
	r.OnReady(func(a net.Addr) { addrCh <- a })

	done := make(chan error, 1)
	go func() { done <- r.RunWithContext(ctx, cfg) }()

	select {
	case a := <-addrCh:
		return "http://" + a.String(), func() error {
			cancel()
			return <-done
		}
	case err := <-done:
		cancel()
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		cancel()
		t.Fatal("runner did not become ready")
	}
	return "", nil
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRunner_ServesAndStops(t *testing.T) {
	base, stop := start(t, testConfig(t), "")

	code, _ := get(t, base+"/api/v1/health")
	assert.Equal(t, http.StatusOK, code)

	// No base domain yet.
	code, _ = get(t, base+"/pdns/getAllDomains")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	assert.NoError(t, stop())
}

func TestRunner_BootstrapsBaseDomain(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bootstrap = config.BootstrapConfig{
		BaseDomain:  "example.com",
		Nameservers: []string{"ns1.example.com", "ns2.example.com"},
	}

	base, stop := start(t, cfg, "1.4.0")
	code, body := get(t, base+"/pdns/lookup/example.com/SOA")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "example.com hostmaster.example.com 1 3600 1800 1209600 3600")
	require.NoError(t, stop())

	// A second start over the same store keeps the existing configuration.
	cfg.Bootstrap.BaseDomain = "other.org"
	base, stop = start(t, cfg, "1.4.1")
	code, body = get(t, base+"/pdns/getAllDomains")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"zone":"example.com"`)
	assert.NotContains(t, body, "other.org")
	require.NoError(t, stop())

	db, err := database.Open(cfg.Database.Path)
	require.NoError(t, err)
	defer db.Close()
	appCfg, err := db.AppConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "example.com", appCfg.BaseDomain)
	assert.Equal(t, "1.4.1", appCfg.AppVersion)
}

func TestRunner_InvalidBootstrapFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bootstrap = config.BootstrapConfig{BaseDomain: "example.com"}

	err := server.NewRunner(nil, "").RunWithContext(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap base domain")
}

func TestRateLimitSettings(t *testing.T) {
	rl := config.Default().RateLimit

	s := server.RateLimitSettings(rl)

	assert.Equal(t, rl.Cleanup.Duration, s.Cleanup)
	assert.Equal(t, rl.IPRate, s.IPRate)
	assert.Equal(t, rl.IPBurst, s.IPBurst)
	assert.Equal(t, rl.PrefixBurst, s.PrefixBurst)
	assert.Equal(t, rl.GlobalRate, s.GlobalRate)
	assert.Equal(t, rl.MaxPrefixEntries, s.MaxPrefixEntries)
}
