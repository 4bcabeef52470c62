// Package shortener maps short codes to long URLs on top of a pluggable store.
package shortener

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/common/errors"
	"github.com/Aidin1998/apihub/internal/config"
)

// ErrNotFound is returned by stores for unknown or expired codes.
var ErrNotFound = errors.NotFound.Explain("Short URL not found or expired.")

// Store persists code to URL mappings.
type Store interface {
	// Save stores url under code unless code is taken. It reports false on a
	// collision. A zero ttl never expires.
	Save(ctx context.Context, code, url string, ttl time.Duration) (bool, error)
	// Resolve returns the URL for code or ErrNotFound.
	Resolve(ctx context.Context, code string) (string, error)
	Close() error
}

// OpenStore builds the store selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.ShortenerConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return NewMemoryStore(), nil
	case config.DriverRedis:
		return NewRedisStore(ctx, cfg.Redis)
	case config.DriverBadger:
		return NewBadgerStore(cfg.Badger, logger)
	default:
		return nil, fmt.Errorf("unknown shortener driver %q", cfg.Driver)
	}
}
