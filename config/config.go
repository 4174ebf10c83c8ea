package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	IdleTimeout     string `yaml:"idle_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// DataConfig locates the reference tables. An empty Dir uses the tables
// embedded in the binary; Watch only applies to an on-disk Dir.
type DataConfig struct {
	Dir            string `yaml:"dir"`
	Watch          bool   `yaml:"watch"`
	ReloadDebounce string `yaml:"reload_debounce"`
}

type CacheConfig struct {
	Backend       string `yaml:"backend"` // memory, redis, none
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	TTL           string `yaml:"ttl"`
	MaxEntries    int    `yaml:"max_entries"` // memory backend only; 0 is unbounded
}

type RateLimitConfig struct {
	Capacity int    `yaml:"capacity"` // 0 disables
	Window   string `yaml:"window"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, console
}

type TracingConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "15s",
			WriteTimeout:    "15s",
			IdleTimeout:     "60s",
			ShutdownTimeout: "10s",
		},
		Data: DataConfig{
			ReloadDebounce: "500ms",
		},
		Cache: CacheConfig{
			Backend:    "memory",
			TTL:        "24h",
			MaxEntries: 10000,
		},
		RateLimit: RateLimitConfig{
			Capacity: 30,
			Window:   "1m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			ServiceName: "frt-offers",
		},
	}
}

// Load reads configuration from a YAML file, then applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if addr := os.Getenv("FRT_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if dir := os.Getenv("FRT_DATA_DIR"); dir != "" {
		c.Data.Dir = dir
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Cache.RedisAddr = addr
		c.Cache.Backend = "redis"
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		c.Cache.RedisPassword = pw
	}
	if level := os.Getenv("FRT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		c.Tracing.OTLPEndpoint = endpoint
	}
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "memory", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache.backend %q", c.Cache.Backend)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	if c.RateLimit.Capacity < 0 {
		return fmt.Errorf("rate_limit.capacity must not be negative")
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must not be negative")
	}
	for name, value := range map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"data.reload_debounce":    c.Data.ReloadDebounce,
		"cache.ttl":               c.Cache.TTL,
		"rate_limit.window":       c.RateLimit.Window,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func duration(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) GetReadTimeout() time.Duration     { return duration(c.Server.ReadTimeout, 15*time.Second) }
func (c *Config) GetWriteTimeout() time.Duration    { return duration(c.Server.WriteTimeout, 15*time.Second) }
func (c *Config) GetIdleTimeout() time.Duration     { return duration(c.Server.IdleTimeout, 60*time.Second) }
func (c *Config) GetShutdownTimeout() time.Duration { return duration(c.Server.ShutdownTimeout, 10*time.Second) }
func (c *Config) GetReloadDebounce() time.Duration  { return duration(c.Data.ReloadDebounce, 500*time.Millisecond) }
func (c *Config) GetCacheTTL() time.Duration        { return duration(c.Cache.TTL, 24*time.Hour) }
func (c *Config) GetRateLimitWindow() time.Duration { return duration(c.RateLimit.Window, time.Minute) }
