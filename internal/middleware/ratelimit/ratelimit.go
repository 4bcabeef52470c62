// Package ratelimit builds the per-client request limiter, backed by memory
// or by Redis for limits shared across replicas.
package ratelimit

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/common/apiutil"
	"github.com/Aidin1998/apihub/internal/config"
)

const keyPrefix = "apihub:limit"

// Store is a limiter store plus the function releasing its connection.
type Store struct {
	limiter.Store
	close func() error
}

func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// NewMemoryStore keeps counters in process.
func NewMemoryStore() *Store {
	return &Store{Store: memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: keyPrefix})}
}

// NewRedisStoreFromClient keeps counters in Redis using an existing client.
// The client is not closed by Store.Close.
func NewRedisStoreFromClient(client redis.UniversalClient) (*Store, error) {
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: keyPrefix})
	if err != nil {
		return nil, err
	}
	return &Store{Store: store}, nil
}

// OpenStore returns the store selected by cfg.Store.
func OpenStore(ctx context.Context, cfg config.RateLimitConfig, logger *zap.Logger) (*Store, error) {
	if cfg.Store != config.DriverRedis {
		return NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
	}
	store, err := NewRedisStoreFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	store.close = client.Close
	logger.Info("Rate limiter uses redis", zap.String("addr", cfg.Redis.Addr))
	return store, nil
}

// Middleware limits each client IP to cfg.Rate. It passes everything
// through when limiting is disabled.
func Middleware(cfg config.RateLimitConfig, store limiter.Store) (gin.HandlerFunc, error) {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }, nil
	}
	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", cfg.Rate, err)
	}
	return ginlimiter.NewMiddleware(
		limiter.New(store, rate),
		ginlimiter.WithLimitReachedHandler(apiutil.RateLimitReached),
		ginlimiter.WithErrorHandler(apiutil.LimiterError),
	), nil
}
