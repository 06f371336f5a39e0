package config

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration read from YAML strings such as "60s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// UnmarshalYAML accepts a duration string scalar.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalText renders the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Host         string   `yaml:"host"`
	Port         int      `yaml:"port"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	// ReusePort sets SO_REUSEPORT so several processes can share the port.
	ReusePort bool `yaml:"reuse_port"`
}

// DatabaseConfig locates the SQLite store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// APIConfig contains administrator API settings.
//
// Note: APIKey is a secret and must not be returned by API endpoints.
type APIConfig struct {
	APIKey        string `yaml:"api_key"`
	EnableSwagger bool   `yaml:"enable_swagger"`
	// StaticDir, when set, is served at the root for an admin front-end.
	StaticDir string `yaml:"static_dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level"`
	Structured       bool              `yaml:"structured"`
	StructuredFormat string            `yaml:"structured_format"`
	IncludePID       bool              `yaml:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields"`
}

// CacheConfig sizes the named caches.
type CacheConfig struct {
	DefaultTTL Duration `yaml:"default_ttl"`
	MaxEntries int      `yaml:"max_entries"`
}

// RateLimitConfig controls admission to the update endpoint. A zero rate
// disables a level.
type RateLimitConfig struct {
	Cleanup          Duration `yaml:"cleanup"`
	MaxIPEntries     int      `yaml:"max_ip_entries"`
	MaxPrefixEntries int      `yaml:"max_prefix_entries"`
	GlobalRate       float64  `yaml:"global_rps"`
	GlobalBurst      int      `yaml:"global_burst"`
	PrefixRate       float64  `yaml:"prefix_rps"`
	PrefixBurst      int      `yaml:"prefix_burst"`
	IPRate           float64  `yaml:"ip_rps"`
	IPBurst          int      `yaml:"ip_burst"`
}

// UpdateConfig controls the dynamic update protocol.
type UpdateConfig struct {
	// TrustProxyHeaders takes the client address from X-Forwarded-For or
	// X-Real-IP. Enable only behind a reverse proxy.
	TrustProxyHeaders bool `yaml:"trust_proxy_headers"`
}

// BootstrapConfig configures the base domain at first start.
type BootstrapConfig struct {
	BaseDomain  string   `yaml:"base_domain"`
	Nameservers []string `yaml:"nameservers"`
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	API       APIConfig       `yaml:"api"`
	Logging   LoggingConfig   `yaml:"logging"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Update    UpdateConfig    `yaml:"update"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}
