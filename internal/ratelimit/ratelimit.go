// Package ratelimit provides token bucket admission control for the update
// and lookup endpoints.
//
// A Limiter applies three levels in order: a global bucket, a bucket per
// network prefix (/24 for IPv4, /64 for IPv6) and a bucket per source
// address. A request must pass every level.
package ratelimit

import (
	"fmt"
	"net/netip"
	"sync"
	"time"

	"github.com/jroosing/dyndns/internal/clock"
)

// Settings holds the limits of a Limiter. A level with a non-positive rate
// or burst is disabled.
type Settings struct {
	Cleanup          time.Duration
	MaxIPEntries     int
	MaxPrefixEntries int
	GlobalRate       float64
	GlobalBurst      int
	PrefixRate       float64
	PrefixBurst      int
	IPRate           float64
	IPBurst          int
}

// String summarizes the settings for startup logs.
func (s Settings) String() string {
	level := func(name string, rate float64, burst int) string {
		if rate <= 0 || burst <= 0 {
			return name + "=disabled"
		}
		return fmt.Sprintf("%s=%grps/%d", name, rate, burst)
	}
	return fmt.Sprintf("%s %s %s cleanup=%s max_ip=%d max_prefix=%d",
		level("global", s.GlobalRate, s.GlobalBurst),
		level("prefix", s.PrefixRate, s.PrefixBurst),
		level("ip", s.IPRate, s.IPBurst),
		s.Cleanup, s.MaxIPEntries, s.MaxPrefixEntries)
}

// Limiter combines the global, prefix and per-address buckets.
type Limiter struct {
	global *Bucket
	prefix *Bucket
	ip     *Bucket
}

// New creates a Limiter. A nil clock means the system clock.
func New(s Settings, clk clock.Clock) *Limiter {
	if s.Cleanup <= 0 {
		s.Cleanup = time.Minute
	}
	return &Limiter{
		global: NewBucket(BucketConfig{Rate: s.GlobalRate, Burst: s.GlobalBurst, Cleanup: s.Cleanup, MaxEntries: 1}, clk),
		prefix: NewBucket(BucketConfig{Rate: s.PrefixRate, Burst: s.PrefixBurst, Cleanup: s.Cleanup, MaxEntries: s.MaxPrefixEntries}, clk),
		ip:     NewBucket(BucketConfig{Rate: s.IPRate, Burst: s.IPBurst, Cleanup: s.Cleanup, MaxEntries: s.MaxIPEntries}, clk),
	}
}

// Allow reports whether a request from addr is admitted and consumes a
// token at every level when it is. A nil Limiter admits everything.
func (l *Limiter) Allow(addr netip.Addr) bool {
	if l == nil {
		return true
	}
	addr = addr.Unmap()
	if !l.global.Allow("*") {
		return false
	}
	if !l.prefix.Allow(prefixKey(addr)) {
		return false
	}
	return l.ip.Allow(addr.String())
}

func prefixKey(addr netip.Addr) string {
	bits := 64
	if addr.Is4() {
		bits = 24
	}
	p, err := addr.Prefix(bits)
	if err != nil {
		return "ip:" + addr.String()
	}
	return p.String()
}

// BucketConfig configures a Bucket.
type BucketConfig struct {
	Rate       float64 // tokens per second
	Burst      int
	Cleanup    time.Duration
	MaxEntries int
}

// Bucket is a keyed token bucket. Each key starts full and refills at Rate
// tokens per second up to Burst.
type Bucket struct {
	rate       float64
	burst      float64
	cleanup    time.Duration
	maxEntries int
	clock      clock.Clock

	mu          sync.Mutex
	lastCleanup time.Time
	lastSeen    map[string]time.Time
	tokens      map[string]float64
}

// NewBucket creates a Bucket.
func NewBucket(cfg BucketConfig, clk clock.Clock) *Bucket {
	if clk == nil {
		clk = clock.System
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = time.Minute
	}
	return &Bucket{
		rate:        cfg.Rate,
		burst:       float64(cfg.Burst),
		cleanup:     cfg.Cleanup,
		maxEntries:  cfg.MaxEntries,
		clock:       clk,
		lastCleanup: clk.Now(),
		lastSeen:    map[string]time.Time{},
		tokens:      map[string]float64{},
	}
}

// Allow takes a token for key if one is available.
func (b *Bucket) Allow(key string) bool {
	if b == nil || b.rate <= 0 || b.burst <= 0 {
		return true
	}
	now := b.clock.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastCleanup) > b.cleanup {
		b.cleanupLocked(now)
	}

	last, ok := b.lastSeen[key]
	if !ok {
		if len(b.lastSeen) >= b.maxEntries {
			b.cleanupLocked(now)
			if len(b.lastSeen) >= b.maxEntries {
				return false
			}
		}
		b.lastSeen[key] = now
		b.tokens[key] = b.burst - 1
		return true
	}

	tokens := b.tokens[key]
	if elapsed := now.Sub(last).Seconds(); elapsed > 0 {
		tokens = min(b.burst, tokens+elapsed*b.rate)
	}
	b.lastSeen[key] = now
	if tokens >= 1 {
		b.tokens[key] = tokens - 1
		return true
	}
	b.tokens[key] = tokens
	return false
}

// Len returns the number of tracked keys.
func (b *Bucket) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lastSeen)
}

// cleanupLocked drops keys idle for longer than the cleanup interval.
func (b *Bucket) cleanupLocked(now time.Time) {
	staleBefore := now.Add(-b.cleanup)
	for k, last := range b.lastSeen {
		if !last.After(staleBefore) {
			delete(b.lastSeen, k)
			delete(b.tokens, k)
		}
	}
	b.lastCleanup = now
}
