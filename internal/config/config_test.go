package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func missingPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.yaml")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(zap.NewNop(), missingPath(t))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, DriverMemory, cfg.Shortener.Driver)
	assert.Equal(t, 6, cfg.Shortener.CodeLength)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "100-M", cfg.RateLimit.Rate)
	assert.EqualValues(t, 1<<20, cfg.Server.MaxBodyBytes)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
upstream:
  timeout: 3s
shortener:
  driver: badger
  badger:
    in_memory: true
`), 0o600))

	t.Setenv("APIHUB_LOGGING_LEVEL", "debug")
	t.Setenv("APIHUB_SERVER_PORT", "9191")

	cfg, err := Load(zap.NewNop(), path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port, "env overrides file")
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DriverBadger, cfg.Shortener.Driver)
	assert.True(t, cfg.Shortener.Badger.InMemory)
}

func TestLoadMergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	override := filepath.Join(dir, "override.yaml")
	require.NoError(t, os.WriteFile(base, []byte("server:\n  port: 9090\nlogging:\n  level: warn\n"), 0o600))
	require.NoError(t, os.WriteFile(override, []byte("server:\n  port: 9292\n"), 0o600))

	cfg, err := Load(zap.NewNop(), base, missingPath(t), override)
	require.NoError(t, err)
	assert.Equal(t, 9292, cfg.Server.Port, "later file wins")
	assert.Equal(t, "warn", cfg.Logging.Level, "earlier file still applies")
}

func TestLoadTrustedProxiesFromEnv(t *testing.T) {
	t.Setenv("APIHUB_SERVER_TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.1")
	cfg, err := Load(zap.NewNop(), missingPath(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.Server.TrustedProxies)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("APIHUB_SHORTENER_DRIVER", "etcd")
	_, err := Load(zap.NewNop(), missingPath(t))
	assert.ErrorContains(t, err, "shortener.driver")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(zap.NewNop(), missingPath(t))
		require.NoError(t, err)
		return cfg
	}

	cfg := valid()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Shortener.Driver = DriverRedis
	assert.ErrorContains(t, cfg.Validate(), "redis.addr")

	cfg = valid()
	cfg.RateLimit.Rate = "lots"
	assert.ErrorContains(t, cfg.Validate(), "rate_limit.rate")

	cfg = valid()
	cfg.RateLimit.Store = DriverRedis
	assert.ErrorContains(t, cfg.Validate(), "rate_limit.redis.addr")

	cfg = valid()
	cfg.RateLimit.Store = "etcd"
	assert.ErrorContains(t, cfg.Validate(), "rate_limit.store")

	cfg = valid()
	cfg.Upstream.Timeout = 0
	assert.ErrorContains(t, cfg.Validate(), "upstream.timeout")

	cfg = valid()
	assert.Empty(t, cfg.Server.TrustedProxies)
	cfg.Server.TrustedProxies = []string{"10.0.0.0/8", "192.0.2.1", "::1"}
	assert.NoError(t, cfg.Validate())
	cfg.Server.TrustedProxies = []string{"proxy.local"}
	assert.ErrorContains(t, cfg.Validate(), "server.trusted_proxies")
}

func TestSampleConfigIsValid(t *testing.T) {
	cfg, err := Load(zap.NewNop(), filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.RateLimit.Store)
	assert.Equal(t, 24*time.Hour, cfg.Shortener.TTL)
}
