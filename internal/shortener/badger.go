package shortener

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/internal/config"
)

// BadgerStore keeps mappings in an embedded BadgerDB with per-entry TTLs.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens the database at cfg.Path, or an in-memory one.
func NewBadgerStore(cfg config.BadgerConfig, logger *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // badger's own logger is too chatty

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger db: %w", err)
	}
	logger.Info("Opened badger short URL store",
		zap.String("path", cfg.Path),
		zap.Bool("in_memory", cfg.InMemory))
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Save(_ context.Context, code, url string, ttl time.Duration) (bool, error) {
	saved := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(code))
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		entry := badger.NewEntry([]byte(code), []byte(url))
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		if err := txn.SetEntry(entry); err != nil {
			return err
		}
		saved = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("badger save: %w", err)
	}
	return saved, nil
}

func (s *BadgerStore) Resolve(_ context.Context, code string) (string, error) {
	var url []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(code))
		if err != nil {
			return err
		}
		url, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("badger resolve: %w", err)
	}
	return string(url), nil
}

func (s *BadgerStore) Close() error { return s.db.Close() }
