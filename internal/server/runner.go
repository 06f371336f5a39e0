// Package server wires the store, caches, services and HTTP API into a
// running process.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jroosing/dyndns/internal/accounts"
	"github.com/jroosing/dyndns/internal/advanced"
	"github.com/jroosing/dyndns/internal/api"
	"github.com/jroosing/dyndns/internal/api/handlers"
	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/config"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/lookup"
	"github.com/jroosing/dyndns/internal/metrics"
	"github.com/jroosing/dyndns/internal/ratelimit"
	"github.com/jroosing/dyndns/internal/records"
	"github.com/jroosing/dyndns/internal/update"
	"github.com/jroosing/dyndns/internal/zones"
)

const shutdownTimeout = 5 * time.Second

// Runner orchestrates startup, bootstrap and shutdown.
type Runner struct {
	logger  *slog.Logger
	version string

	// ready, when set, receives the bound address once the listener is open.
	ready func(addr net.Addr)
}

// NewRunner creates a runner. version is recorded in app_config.
func NewRunner(logger *slog.Logger, version string) *Runner {
	return &Runner{logger: logger, version: version}
}

// OnReady registers fn to be called with the listen address.
func (r *Runner) OnReady(fn func(addr net.Addr)) {
	r.ready = fn
}

// Run serves until SIGINT or SIGTERM.
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext serves until ctx is canceled or the listener fails.
//
// Lifecycle:
//  1. Open the store (migrations run on open)
//  2. Build the cache service and the domain services over it
//  3. Apply the bootstrap base domain when the store has none
//  4. Serve HTTP; on cancel, shut down with a timeout
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	db, err := database.Open(cfg.Database.Path, database.WithLogger(r.logger))
	if err != nil {
		return err
	}
	defer db.Close()

	h, err := r.buildHandler(ctx, cfg, db)
	if err != nil {
		return err
	}

	limiter := ratelimit.New(RateLimitSettings(cfg.RateLimit), nil)
	if r.logger != nil {
		r.logger.Info("rate limits", "effective", RateLimitSettings(cfg.RateLimit).String())
	}

	srv := api.New(cfg, h, limiter, r.logger)
	ln, err := srv.Listen(ctx)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr(), err)
	}
	if r.ready != nil {
		r.ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (r *Runner) buildHandler(ctx context.Context, cfg *config.Config, db *database.DB) (*handlers.Handler, error) {
	c := cache.NewService(cache.Options{
		DefaultTTL: cfg.Cache.DefaultTTL.Duration,
		MaxEntries: cfg.Cache.MaxEntries,
		TTLs:       cache.DefaultTTLs(),
		Observer:   metrics.CacheObserver{},
	})
	dir := zones.NewDirectory(db, c, nil, r.logger)

	if err := r.bootstrap(ctx, cfg.Bootstrap, dir); err != nil {
		return nil, err
	}
	if r.version != "" {
		if err := db.SetAppVersion(ctx, r.version); err != nil {
			return nil, err
		}
	}

	return handlers.New(handlers.Deps{
		Config:   cfg,
		DB:       db,
		Zones:    dir,
		Advanced: advanced.NewManager(db, dir, c, r.logger),
		Updates:  update.NewEngine(db, dir, c, r.logger),
		Lookup:   lookup.NewResolver(db, dir, c, r.logger),
		Accounts: accounts.NewService(db, dir, c, r.logger),
		Logger:   r.logger,
	}), nil
}

// bootstrap applies the configured base domain once. An already configured
// store is left alone.
func (r *Runner) bootstrap(ctx context.Context, b config.BootstrapConfig, dir *zones.Directory) error {
	if b.BaseDomain == "" {
		return nil
	}
	err := dir.SetupBaseDomain(ctx, b.BaseDomain, b.Nameservers)
	switch {
	case err == nil:
		if r.logger != nil {
			r.logger.Info("base domain bootstrapped", "domain", b.BaseDomain, "nameservers", b.Nameservers)
		}
		return nil
	case errors.Is(err, records.ErrConflict):
		if r.logger != nil {
			r.logger.Debug("bootstrap skipped, base domain already configured")
		}
		return nil
	default:
		return fmt.Errorf("bootstrap base domain: %w", err)
	}
}

// RateLimitSettings converts the config section into limiter settings.
func RateLimitSettings(rl config.RateLimitConfig) ratelimit.Settings {
	return ratelimit.Settings{
		Cleanup:          rl.Cleanup.Duration,
		MaxIPEntries:     rl.MaxIPEntries,
		MaxPrefixEntries: rl.MaxPrefixEntries,
		GlobalRate:       rl.GlobalRate,
		GlobalBurst:      rl.GlobalBurst,
		PrefixRate:       rl.PrefixRate,
		PrefixBurst:      rl.PrefixBurst,
		IPRate:           rl.IPRate,
		IPBurst:          rl.IPBurst,
	}
}
