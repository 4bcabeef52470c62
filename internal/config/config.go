// Package config holds the service configuration and its loader.
package config

import (
	"fmt"
	"net/netip"
	"time"

	limiter "github.com/ulule/limiter/v3"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers
	// decide the client IP. Empty trusts none.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DataConfig points at the directory holding the bundled JSON datasets
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// UpstreamConfig configures third-party API calls
type UpstreamConfig struct {
	Timeout            time.Duration `mapstructure:"timeout"`
	JokeURL            string        `mapstructure:"joke_url"`
	GeolocationURL     string        `mapstructure:"geolocation_url"`
	GeolocationEnabled bool          `mapstructure:"geolocation_enabled"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type BadgerConfig struct {
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
}

// ShortenerConfig selects and tunes the short URL store
type ShortenerConfig struct {
	Driver     string        `mapstructure:"driver"`
	BaseURL    string        `mapstructure:"base_url"`
	TTL        time.Duration `mapstructure:"ttl"`
	CodeLength int           `mapstructure:"code_length"`
	Redis      RedisConfig   `mapstructure:"redis"`
	Badger     BadgerConfig  `mapstructure:"badger"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig limits requests per client IP. Store is "memory" or
// "redis"; redis shares counters between replicas.
type RateLimitConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Rate    string      `mapstructure:"rate"`
	Store   string      `mapstructure:"store"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// TelemetryConfig switches the OpenTelemetry stdout exporters on
type TelemetryConfig struct {
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	ServiceName    string `mapstructure:"service_name"`
}

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Data      DataConfig      `mapstructure:"data"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Shortener ShortenerConfig `mapstructure:"shortener"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// Shortener drivers
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverBadger = "badger"
)

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"upstream.timeout":        c.Upstream.Timeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes must not be negative")
	}
	for _, proxy := range c.Server.TrustedProxies {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			return fmt.Errorf("server.trusted_proxies: %q is not an IP or CIDR", proxy)
		}
	}

	switch c.Shortener.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Shortener.Redis.Addr == "" {
			return fmt.Errorf("shortener.redis.addr is required for the redis driver")
		}
	case DriverBadger:
		if !c.Shortener.Badger.InMemory && c.Shortener.Badger.Path == "" {
			return fmt.Errorf("shortener.badger.path is required unless in_memory is set")
		}
	default:
		return fmt.Errorf("unknown shortener.driver %q (memory, redis, badger)", c.Shortener.Driver)
	}
	if c.Shortener.CodeLength < 4 || c.Shortener.CodeLength > 32 {
		return fmt.Errorf("shortener.code_length must be between 4 and 32")
	}

	if c.RateLimit.Enabled {
		if _, err := limiter.NewRateFromFormatted(c.RateLimit.Rate); err != nil {
			return fmt.Errorf("rate_limit.rate: %w", err)
		}
		switch c.RateLimit.Store {
		case "", DriverMemory:
		case DriverRedis:
			if c.RateLimit.Redis.Addr == "" {
				return fmt.Errorf("rate_limit.redis.addr is required for the redis store")
			}
		default:
			return fmt.Errorf("unknown rate_limit.store %q (memory, redis)", c.RateLimit.Store)
		}
	}
	return nil
}
