package memcache

import (
	"strings"
	"sync"
	"time"
)

// Store is a small in-process string cache with per-entry expiry.
type Store interface {
	Set(key, value string, ttl time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
}

type entry struct {
	value     string
	expiresAt time.Time
}

type TTLStore struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewTTLStore() *TTLStore {
	return &TTLStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func (s *TTLStore) Set(key, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[normalizeKey(key)] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *TTLStore) Get(key string) (string, bool) {
	k := normalizeKey(key)

	s.mu.RLock()
	e, ok := s.data[k]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}

	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		// re-check, a concurrent Set may have refreshed it
		if cur, ok := s.data[k]; ok && s.now().After(cur.expiresAt) {
			delete(s.data, k)
		}
		s.mu.Unlock()
		return "", false
	}
	return e.value, true
}

func (s *TTLStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, normalizeKey(key))
}
