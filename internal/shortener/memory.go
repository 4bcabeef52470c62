package shortener

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	url       string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore keeps mappings in process memory. Expired entries are dropped
// lazily when their code is touched.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, code, url string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[code]; ok && !e.expired(now) {
		return false, nil
	}
	e := memoryEntry{url: url}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	s.entries[code] = e
	return true, nil
}

func (s *MemoryStore) Resolve(_ context.Context, code string) (string, error) {
	s.mu.RLock()
	e, ok := s.entries[code]
	s.mu.RUnlock()

	if !ok {
		return "", ErrNotFound
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		if cur, ok := s.entries[code]; ok && cur.expired(s.now()) {
			delete(s.entries, code)
		}
		s.mu.Unlock()
		return "", ErrNotFound
	}
	return e.url, nil
}

func (s *MemoryStore) Close() error { return nil }
