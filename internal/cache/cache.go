// Package cache is a small Redis-backed read cache for per-view fetches,
// keyed by (resource, user, date) and invalidated explicitly after each
// mutation. A nil client disables caching without changing call sites, and
// Redis failures degrade to a miss rather than failing the request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds staleness for entries whose invalidation is missed
// (e.g. a crash between write and invalidate).
const DefaultTTL = 15 * time.Minute

type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func New(client *redis.Client) *Cache {
	return &Cache{redis: client, ttl: DefaultTTL}
}

// Key builds the canonical cache key for a resource scoped to a user and a
// calendar day. Resources without a date dimension pass an empty date.
func Key(resource string, userID uuid.UUID, date string) string {
	if date == "" {
		return fmt.Sprintf("%s:%s", resource, userID)
	}
	return fmt.Sprintf("%s:%s:%s", resource, userID, date)
}

// Get unmarshals the cached value into dest and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.redis == nil {
		return false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("cache: decode %s: %v", key, err)
		return false
	}
	return true
}

// Set stores value under key. Errors are logged, never returned.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: encode %s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
}

// Invalidate removes the given keys after a mutation.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.redis == nil || len(keys) == 0 {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: invalidate %v: %v", keys, err)
	}
}

// InvalidateResource removes every dated key for a user's resource, used
// when a mutation affects an unknown set of days (e.g. a food edit changes
// any dashboard that references it).
func (c *Cache) InvalidateResource(ctx context.Context, resource string, userID uuid.UUID) {
	if c == nil || c.redis == nil {
		return
	}
	pattern := fmt.Sprintf("%s:%s*", resource, userID)
	iter := c.redis.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("cache: scan %s: %v", pattern, err)
		return
	}
	if len(keys) > 0 {
		c.Invalidate(ctx, keys...)
	}
}
