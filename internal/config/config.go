// Package config provides the configuration types, YAML loading and
// validation of the control plane.
//
// A missing file is not an error: Load returns the defaults. Values read
// from the file are normalized by Validate.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config path.
const EnvConfigPath = "DYNDNS_CONFIG"

// ResolveConfigPath returns the flag value when set, else the environment
// variable, else "".
func ResolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{10 * time.Second},
		},
		Database: DatabaseConfig{Path: "dyndns.db"},
		API:      APIConfig{EnableSwagger: true},
		Logging: LoggingConfig{
			Level:            "INFO",
			StructuredFormat: "json",
			ExtraFields:      map[string]string{},
		},
		Cache: CacheConfig{DefaultTTL: Duration{60 * time.Second}, MaxEntries: 4096},
		RateLimit: RateLimitConfig{
			Cleanup:          Duration{time.Minute},
			MaxIPEntries:     65536,
			MaxPrefixEntries: 16384,
			GlobalRate:       500,
			GlobalBurst:      1000,
			PrefixRate:       20,
			PrefixBurst:      40,
			IPRate:           5,
			IPBurst:          10,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server.port must be 1..65535")
	}
	if cfg.Server.ReadTimeout.Duration < 0 || cfg.Server.WriteTimeout.Duration < 0 {
		return errors.New("server timeouts must not be negative")
	}

	if strings.TrimSpace(cfg.Database.Path) == "" {
		return errors.New("database.path is required")
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	switch cfg.Logging.Level {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("logging.level %q is not one of DEBUG, INFO, WARN, ERROR", cfg.Logging.Level)
	}
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	if cfg.Cache.DefaultTTL.Duration <= 0 {
		cfg.Cache.DefaultTTL = Duration{60 * time.Second}
	}
	if cfg.Cache.MaxEntries <= 0 {
		cfg.Cache.MaxEntries = 4096
	}

	if cfg.RateLimit.GlobalRate < 0 || cfg.RateLimit.PrefixRate < 0 || cfg.RateLimit.IPRate < 0 {
		return errors.New("rate_limit rates must not be negative")
	}

	b := &cfg.Bootstrap
	b.BaseDomain = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(b.BaseDomain), "."))
	if b.BaseDomain != "" && len(b.Nameservers) == 0 {
		return errors.New("bootstrap.nameservers is required with bootstrap.base_domain")
	}
	return nil
}

// Addr returns the listen address host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
