package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCacheRepository keeps the cache in process. Used when no Redis is configured.
type MemoryCacheRepository struct {
	store *gocache.Cache
	mu    sync.Mutex
}

func NewMemoryCacheRepository(cleanupInterval time.Duration) CacheRepositoryInterface {
	return &MemoryCacheRepository{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (r *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	v, ok := r.store.Get(key)
	if !ok {
		return "", ErrCacheMiss
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	default:
		return fmt.Sprint(val), nil
	}
}

func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}
	r.store.Set(key, value, expiration)
	return nil
}

func (r *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		r.store.Delete(key)
	}
	return nil
}

// Incr creates missing keys at 1 without expiry, like Redis INCR.
func (r *MemoryCacheRepository) Incr(_ context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Add fails when the key exists, which is fine
	_ = r.store.Add(key, int64(0), gocache.NoExpiration)
	return r.store.IncrementInt64(key, 1)
}

func (r *MemoryCacheRepository) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.store.Get(key)
	if !ok {
		return false, nil
	}
	r.store.Set(key, v, expiration)
	return true, nil
}
