// Copyright (c) 2026 SunnahTH. All rights reserved.
// Author: admin@sunnahthai.com

/*
Package cache provides a thin JSON read-through cache on top of Redis.

Cache failures are never surfaced to callers. A broken or absent Redis
deployment degrades every lookup to a miss and every write to a no-op, so
the API keeps serving from Postgres.
*/
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// # Cache Wrapper

// Cache wraps a Redis client with JSON serialization and miss-on-error
// semantics. The zero value and a nil pointer are both valid no-op caches.
type Cache struct {
	client *redis.Client
	logger *slog.Logger
}

// New constructs a [Cache]. A nil client yields a no-op cache.
func New(client *redis.Client, logger *slog.Logger) *Cache {
	return &Cache{client: client, logger: logger}
}

/*
Get loads the value stored under key into target.

Parameters:
  - context: context.Context
  - key: string
  - target: any (JSON unmarshal destination)

Returns:
  - bool: true on a cache hit, false on miss or any failure
*/
func (cache *Cache) Get(context context.Context, key string, target any) bool {
	if cache == nil || cache.client == nil {
		return false
	}

	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.Debug("cache_get_failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}

	if err := json.Unmarshal(payload, target); err != nil {
		cache.logger.Debug("cache_decode_failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

/*
Set stores value under key with the given TTL. Failures are logged, never
returned.
*/
func (cache *Cache) Set(context context.Context, key string, value any, ttl time.Duration) {
	if cache == nil || cache.client == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		cache.logger.Debug("cache_encode_failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}

	if err := cache.client.Set(context, key, payload, ttl).Err(); err != nil {
		cache.logger.Debug("cache_set_failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

/*
Delete drops the given keys. Used for invalidation after mutations.
*/
func (cache *Cache) Delete(context context.Context, keys ...string) {
	if cache == nil || cache.client == nil || len(keys) == 0 {
		return
	}

	if err := cache.client.Del(context, keys...).Err(); err != nil {
		cache.logger.Debug("cache_delete_failed", slog.String("error", err.Error()))
	}
}
