package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   string
	expires time.Time
}

// KVStore is a TTL map used to back refresh tokens and verification
// codes when redis is not configured.
type KVStore struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

func NewKVStore() *KVStore {
	return &KVStore{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

func (s *KVStore) Save(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = entry{value: value, expires: s.now().Add(ttl)}
	return nil
}

func (s *KVStore) Lookup(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	if !ok {
		return "", nil
	}
	if s.now().After(e.expires) {
		delete(s.items, key)
		return "", nil
	}
	return e.value, nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}
