package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a best-effort byte cache used for hosted-service listings.
// A miss and a backend error look the same to callers.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Memory is a minimal map-backed cache for dev/testing.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	val     []byte
	expires time.Time
}

// NewMemory creates an in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry)}
}

// Get returns a value when present and unexpired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return e.val, true
}

// Set stores a value with a TTL.
func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{val: val, expires: time.Now().Add(ttl)}
}

// Delete drops a key.
func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Redis is a redis-backed cache.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis builds a cache with a key prefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "photodrop:cache"
	}
	return &Redis{client: client, prefix: prefix}
}

// Get returns a value when present; redis errors read as misses.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, r.prefix+":"+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a value with a TTL; failures are ignored, the next read just
// goes to the origin.
func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	_ = r.client.Set(ctx, r.prefix+":"+key, val, ttl).Err()
}

// Delete drops a key.
func (r *Redis) Delete(ctx context.Context, key string) {
	_ = r.client.Del(ctx, r.prefix+":"+key).Err()
}
