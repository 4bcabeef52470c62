package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DefaultPaths are merged in order when no explicit config path is given.
var DefaultPaths = []string{
	"./config.yaml",
	"./configs/config.yaml",
	"/etc/apihub/config.yaml",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.trusted_proxies", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("data.dir", "./data")

	v.SetDefault("upstream.timeout", 5*time.Second)
	v.SetDefault("upstream.joke_url", "https://api.chucknorris.io")
	v.SetDefault("upstream.geolocation_url", "http://ip-api.com")
	v.SetDefault("upstream.geolocation_enabled", false)

	v.SetDefault("shortener.driver", DriverMemory)
	v.SetDefault("shortener.base_url", "")
	v.SetDefault("shortener.ttl", 24*time.Hour)
	v.SetDefault("shortener.code_length", 6)
	v.SetDefault("shortener.redis.addr", "")
	v.SetDefault("shortener.redis.password", "")
	v.SetDefault("shortener.redis.db", 0)
	v.SetDefault("shortener.badger.path", "./data/shortener")
	v.SetDefault("shortener.badger.in_memory", false)

	v.SetDefault("cors.allow_origins", []string{"*"})

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rate", "100-M")
	v.SetDefault("rate_limit.store", DriverMemory)
	v.SetDefault("rate_limit.redis.addr", "")
	v.SetDefault("rate_limit.redis.password", "")
	v.SetDefault("rate_limit.redis.db", 0)

	v.SetDefault("telemetry.tracing_enabled", false)
	v.SetDefault("telemetry.metrics_enabled", false)
	v.SetDefault("telemetry.service_name", "apihub")
}

// Load merges every existing file among paths (or DefaultPaths) in order, so
// later files override earlier ones. APIHUB_* environment variables override
// the files and the result is validated.
func Load(logger *zap.Logger, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APIHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if len(paths) == 0 {
		paths = DefaultPaths
	}

	var loaded []string
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Debug("Config file not found, skipping", zap.String("path", path))
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	if len(loaded) == 0 {
		logger.Info("No configuration files found, using defaults and environment variables")
	} else {
		logger.Info("Loaded configuration files", zap.Strings("files", loaded))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.CORS.AllowOrigins = splitList(cfg.CORS.AllowOrigins)
	cfg.Server.TrustedProxies = splitList(cfg.Server.TrustedProxies)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// splitList flattens comma separated entries, which is how env overrides of
// list values arrive.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
