package cache

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jroosing/dyndns/internal/clock"
	"golang.org/x/sync/singleflight"
)

// Cache names used across the control plane.
const (
	Zones           = "zones"
	AppConfig       = "appConfig"
	AdvancedRecords = "advancednsRecords"
	DNSRecords      = "dnsRecords"
	UserDomains     = "userDomains"
	UnusedAdvanced  = "unusedAdvancedDomains"
)

// Observer receives hit and miss notifications per named cache.
type Observer interface {
	CacheHit(name string)
	CacheMiss(name string)
}

// Options configures a Service.
type Options struct {
	DefaultTTL time.Duration
	MaxEntries int
	// TTLs overrides the TTL of individual named caches.
	TTLs     map[string]time.Duration
	Clock    clock.Clock
	Observer Observer
}

type named struct {
	ttl   time.Duration
	store *TTLCache[string, any]
	// gen is bumped by every invalidation; loads started under an older
	// generation are not stored.
	gen atomic.Uint64
}

// Service holds every named cache of the process.
type Service struct {
	opts   Options
	mu     sync.Mutex
	caches map[string]*named
	group  singleflight.Group
}

// NewService creates an empty cache service.
func NewService(opts Options) *Service {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = 60 * time.Second
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 1024
	}
	if opts.Clock == nil {
		opts.Clock = clock.System
	}
	return &Service{opts: opts, caches: map[string]*named{}}
}

// UserKey is the userDomains cache key of a user.
func UserKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// DefaultTTLs are the per-cache windows used by the control plane.
func DefaultTTLs() map[string]time.Duration {
	return map[string]time.Duration{
		AppConfig:      180 * time.Second,
		UnusedAdvanced: 120 * time.Second,
	}
}

func (s *Service) cache(name string) *named {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.caches[name]
	if n == nil {
		ttl := s.opts.TTLs[name]
		if ttl <= 0 {
			ttl = s.opts.DefaultTTL
		}
		n = &named{ttl: ttl, store: NewTTLCache[string, any](s.opts.MaxEntries, ttl, s.opts.Clock)}
		s.caches[name] = n
	}
	return n
}

// Get returns the cached value for name/key.
func (s *Service) Get(name, key string) (any, bool) {
	v, ok := s.cache(name).store.Get(key)
	if s.opts.Observer != nil {
		if ok {
			s.opts.Observer.CacheHit(name)
		} else {
			s.opts.Observer.CacheMiss(name)
		}
	}
	return v, ok
}

// Set stores a value in the named cache with the cache's TTL.
func (s *Service) Set(name, key string, val any) {
	n := s.cache(name)
	n.store.Set(key, val, n.ttl)
}

// Invalidate drops one key from a named cache.
func (s *Service) Invalidate(name, key string) {
	n := s.cache(name)
	n.gen.Add(1)
	n.store.Delete(key)
}

// InvalidateAll empties a named cache.
func (s *Service) InvalidateAll(name string) {
	n := s.cache(name)
	n.gen.Add(1)
	n.store.Purge()
}

// Len returns the entry count of a named cache.
func (s *Service) Len(name string) int {
	return s.cache(name).store.Len()
}

// GetOrLoad returns the cached value for name/key or calls load, caching its
// result. Concurrent callers for the same key share one load. A result whose
// load overlapped an invalidation of the cache is returned but not stored.
func GetOrLoad[V any](s *Service, name, key string, load func() (V, error)) (V, error) {
	if v, ok := s.Get(name, key); ok {
		if typed, ok := v.(V); ok {
			return typed, nil
		}
	}

	n := s.cache(name)
	gen := n.gen.Load()
	flight := name + "\x00" + key + "\x00" + strconv.FormatUint(gen, 10)

	res, err, _ := s.group.Do(flight, func() (any, error) {
		v, err := load()
		if err != nil {
			return nil, err
		}
		if n.gen.Load() == gen {
			n.store.Set(key, v, n.ttl)
		}
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	typed, ok := res.(V)
	if !ok {
		var zero V
		return zero, fmt.Errorf("cache %s: unexpected value type %T", name, res)
	}
	return typed, nil
}
