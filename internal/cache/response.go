// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go caches serialized bridge responses for the public read
// actions. Each key carries a generation counter. Readers note the
// generation before loading from the database and store their body under
// it; writes bump the counter, so a body loaded before a write can never be
// served after that write returns.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached bridge bodies.
	responseKeyPrefix = "bridge:"

	// generationKeyPrefix holds the per-key generation counters.
	generationKeyPrefix = responseKeyPrefix + "gen:"

	// DefaultResponseTTL is how long a cached body stays valid.
	DefaultResponseTTL = 30 * time.Second
)

// Keys for the cached read actions.
const (
	ConfigKey   = "config"
	ProjectsKey = "projects"
)

// Generation identifies the version of a cached key a body was loaded for.
type Generation int64

// NoGeneration is returned when the counter could not be read. Set ignores it.
const NoGeneration Generation = -1

// ResponseCache stores JSON response bodies in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

func bodyKey(key string, gen Generation) string {
	return responseKeyPrefix + key + ":" + strconv.FormatInt(int64(gen), 10)
}

// Get returns the cached body for key along with the current generation.
// On a miss the generation is still returned so the caller can Set the body
// it loads. Errors are logged and reported as a miss with NoGeneration.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, Generation, bool) {
	n, err := rc.client.Get(ctx, generationKeyPrefix+key).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("response cache generation error", "key", key, "error", err)
		return nil, NoGeneration, false
	}
	gen := Generation(n)

	val, err := rc.client.Get(ctx, bodyKey(key, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, NoGeneration, false
	}
	slog.Debug("response cache hit", "key", key, "generation", gen)
	return val, gen, true
}

// Set stores body under key for the given generation with the configured
// TTL. A body for a generation that has since been invalidated is never
// read back.
func (rc *ResponseCache) Set(ctx context.Context, key string, gen Generation, body []byte) {
	if gen < 0 {
		return
	}
	if err := rc.client.Set(ctx, bodyKey(key, gen), body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate advances the generation of the given keys.
func (rc *ResponseCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	_, err := rc.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, generationKeyPrefix+k)
		}
		return nil
	})
	if err != nil {
		slog.Warn("response cache invalidate error", "keys", keys, "error", err)
		return
	}
	slog.Debug("response cache invalidated", "keys", keys)
}
