package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cinelist/cinelist/config"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_store "github.com/eko/gocache/store/go_cache/v4"
	redis_store "github.com/eko/gocache/store/redis/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Manager owns the shared byte cache the typed caches are layered on. The
// backend is either in-process memory or redis, selected by config.
type Manager struct {
	base *cache.Cache[[]byte]
	ttl  time.Duration
}

// New creates a cache manager for the configured backend.
func New(cfg *config.CacheConfig) *Manager {
	var base *cache.Cache[[]byte]
	if cfg.Type == config.CacheTypeRedis {
		base = newRedisCache(cfg)
	} else {
		base = newMemoryCache()
	}
	return &Manager{
		base: base,
		ttl:  time.Duration(cfg.TTL) * time.Minute,
	}
}

// TTL returns the configured expiration for cached values.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// For returns a typed view of the manager's cache under the given key prefix.
func For[T any](m *Manager, prefix string) *PrefixedCache[T] {
	return &PrefixedCache[T]{
		cache:  m.base,
		prefix: prefix,
		ttl:    m.ttl,
	}
}

// PrefixedCache wraps the byte cache with JSON codec, a key prefix and the
// configured TTL.
type PrefixedCache[T any] struct {
	cache  *cache.Cache[[]byte]
	prefix string
	ttl    time.Duration
}

// Get retrieves a value from the cache with the prefixed key.
func (p *PrefixedCache[T]) Get(ctx context.Context, key any) (T, error) {
	prefixedKey := p.prefix + fmt.Sprintf("%v", key)
	data, err := p.cache.Get(ctx, prefixedKey)
	if err != nil {
		return *new(T), err
	}
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return *new(T), err
	}
	return result, nil
}

// Set stores a value in the cache with the prefixed key and the configured TTL.
func (p *PrefixedCache[T]) Set(ctx context.Context, key any, object T) error {
	prefixedKey := p.prefix + fmt.Sprintf("%v", key)
	data, err := json.Marshal(object)
	if err != nil {
		return err
	}
	return p.cache.Set(ctx, prefixedKey, data, store.WithExpiration(p.ttl))
}

// Delete removes a value from the cache with the prefixed key.
func (p *PrefixedCache[T]) Delete(ctx context.Context, key any) error {
	prefixedKey := p.prefix + fmt.Sprintf("%v", key)
	return p.cache.Delete(ctx, prefixedKey)
}

func newMemoryCache() *cache.Cache[[]byte] {
	gocacheClient := gocache.New(gocache.NoExpiration, 10*time.Minute)
	gocacheStore := go_store.NewGoCache(gocacheClient)
	return cache.New[[]byte](gocacheStore)
}

func newRedisCache(cfg *config.CacheConfig) *cache.Cache[[]byte] {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	redisStore := redis_store.NewRedis(redisClient)
	return cache.New[[]byte](redisStore)
}
