package shortener

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/common/errors"
	"github.com/Aidin1998/apihub/internal/config"
)

// StoreSuite runs the same contract against every Store driver.
type StoreSuite struct {
	suite.Suite
	open  func() Store
	store Store
}

func (s *StoreSuite) SetupTest() {
	s.store = s.open()
}

func (s *StoreSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func (s *StoreSuite) TestSaveAndResolve() {
	ctx := context.Background()
	ok, err := s.store.Save(ctx, "abc123", "https://example.com/a", time.Hour)
	s.Require().NoError(err)
	s.True(ok)

	url, err := s.store.Resolve(ctx, "abc123")
	s.Require().NoError(err)
	s.Equal("https://example.com/a", url)
}

func (s *StoreSuite) TestSaveCollision() {
	ctx := context.Background()
	ok, err := s.store.Save(ctx, "dup001", "https://example.com/first", time.Hour)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.store.Save(ctx, "dup001", "https://example.com/second", time.Hour)
	s.Require().NoError(err)
	s.False(ok)

	url, err := s.store.Resolve(ctx, "dup001")
	s.Require().NoError(err)
	s.Equal("https://example.com/first", url, "collision must not overwrite")
}

func (s *StoreSuite) TestResolveUnknown() {
	_, err := s.store.Resolve(context.Background(), "nope00")
	s.True(errors.Is(err, errors.NotFound))
}

func (s *StoreSuite) TestNoTTL() {
	ctx := context.Background()
	ok, err := s.store.Save(ctx, "forever", "https://example.com/f", 0)
	s.Require().NoError(err)
	s.True(ok)

	url, err := s.store.Resolve(ctx, "forever")
	s.Require().NoError(err)
	s.Equal("https://example.com/f", url)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func() Store { return NewMemoryStore() }})
}

func TestBadgerStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func() Store {
		store, err := NewBadgerStore(config.BadgerConfig{InMemory: true}, zap.NewNop())
		if err != nil {
			t.Fatalf("open badger: %v", err)
		}
		return store
	}})
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("APIHUB_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("APIHUB_TEST_REDIS_ADDR not set")
	}
	suite.Run(t, &StoreSuite{open: func() Store {
		client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
		if err := client.FlushDB(context.Background()).Err(); err != nil {
			t.Fatalf("flush redis: %v", err)
		}
		return NewRedisStoreFromClient(client)
	}})
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	ok, err := store.Save(ctx, "short1", "https://example.com", time.Minute)
	if err != nil || !ok {
		t.Fatalf("save: ok=%v err=%v", ok, err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Resolve(ctx, "short1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired code to be not found, got %v", err)
	}

	ok, err = store.Save(ctx, "short1", "https://example.org", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expired code should be reusable: ok=%v err=%v", ok, err)
	}
}

func TestOpenStore(t *testing.T) {
	store, err := OpenStore(context.Background(), config.ShortenerConfig{Driver: config.DriverMemory}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	if _, err := OpenStore(context.Background(), config.ShortenerConfig{Driver: "etcd"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
