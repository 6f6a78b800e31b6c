package cpiseries

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Cache is a string key/value store used to cache serialized CPI series.
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// RedisCache is a redis-backed Cache.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisCache creates a Cache backed by the redis instance at addr.
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
	}
}

// Get returns the cached value for key, if present.
func (r *RedisCache) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key with no expiration.
func (r *RedisCache) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// MemoryCache is an in-memory Cache, also used as the test double.
type MemoryCache struct {
	data map[string]string
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]string),
	}
}

// Get returns the cached value for key, if present.
func (m *MemoryCache) Get(key string) (string, bool) {
	val, ok := m.data[key]
	return val, ok
}

// Set stores value under key.
func (m *MemoryCache) Set(key string, value string) error {
	m.data[key] = value
	return nil
}
