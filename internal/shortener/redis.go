package shortener

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aidin1998/apihub/internal/config"
)

const redisKeyPrefix = "apihub:short:"

// RedisStore keeps mappings in Redis, relying on key TTLs for expiry.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore connects to the configured Redis and pings it.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, code, url string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, redisKeyPrefix+code, url, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis SETNX: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) Resolve(ctx context.Context, code string) (string, error) {
	url, err := s.client.Get(ctx, redisKeyPrefix+code).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis GET: %w", err)
	}
	return url, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
