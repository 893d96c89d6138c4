// CLAUDE:SUMMARY Configuration of the schedule import service: listen address, run log, result cache, parser settings; YAML file loader.
package importsvc

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/schedimport/schedparse"
)

// Config configures the import service.
type Config struct {
	// Listen is the HTTP listen address (default: ":8086").
	Listen string `json:"listen" yaml:"listen"`

	// LogDB is the SQLite run log path. Empty disables the run log.
	LogDB string `json:"log_db" yaml:"log_db"`

	// RedisURL selects the Redis result cache (redis://host:port/db).
	// Empty uses an in-process cache.
	RedisURL string `json:"redis_url" yaml:"redis_url"`

	// CachePrefix namespaces Redis keys (default: "schedimport:").
	CachePrefix string `json:"cache_prefix" yaml:"cache_prefix"`

	// CacheTTL is how long a parse result is reused (default: 1h).
	// A negative value disables the cache.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// CacheEntries bounds the in-process cache (default: 256).
	CacheEntries int `json:"cache_entries" yaml:"cache_entries"`

	// RunRetention is how long run log rows are kept (default: 30 days).
	RunRetention time.Duration `json:"run_retention" yaml:"run_retention"`

	// CORSOrigins lists browser origins allowed to call the HTTP API.
	// Empty disables CORS headers.
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins"`

	Parser schedparse.Config `json:"parser" yaml:"parser"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Listen == "" {
		c.Listen = ":8086"
	}
	if c.CachePrefix == "" {
		c.CachePrefix = "schedimport:"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = time.Hour
	}
	if c.CacheEntries <= 0 {
		c.CacheEntries = 256
	}
	if c.RunRetention <= 0 {
		c.RunRetention = 30 * 24 * time.Hour
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Parser.Logger == nil {
		c.Parser.Logger = c.Logger
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
