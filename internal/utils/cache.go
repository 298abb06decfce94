package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error inspection
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keeps JSON-encoded values of one type in Redis under a shared key prefix
type Cache[T any] struct {
	rdb    *redis.Client
	prefix string
}

// NewCache creates a cache whose keys are prefix+id
func NewCache[T any](rdb *redis.Client, prefix string) *Cache[T] {
	return &Cache[T]{rdb: rdb, prefix: prefix}
}

// Key returns the Redis key holding id
func (c *Cache[T]) Key(id string) string {
	return c.prefix + id
}

// Get loads the value for id; found is false when the key is missing or expired
func (c *Cache[T]) Get(ctx context.Context, id string) (value *T, found bool, err error) {
	raw, err := c.rdb.Get(ctx, c.Key(id)).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return nil, false, nil // Key does not exist
	} else if err != nil {
		return nil, false, err // Other Redis error
	}
	value = new(T)
	if err := json.Unmarshal(raw, value); err != nil {
		return nil, false, err // Corrupt entry
	}
	return value, true, nil
}

// Set stores value under id with a fresh TTL
func (c *Cache[T]) Set(ctx context.Context, id string, value *T, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.Key(id), b, ttl).Err()
}

// Replace overwrites an existing entry and keeps its remaining TTL.
// found is false when the key has already expired; nothing is written then.
func (c *Cache[T]) Replace(ctx context.Context, id string, value *T) (found bool, err error) {
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	err = c.rdb.SetArgs(ctx, c.Key(id), b, redis.SetArgs{Mode: "XX", KeepTTL: true}).Err() // Only if present
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return err == nil, err
}

// Delete removes the entry for id
func (c *Cache[T]) Delete(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, c.Key(id)).Err() // Delete key from Redis
}
