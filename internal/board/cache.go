package board

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const listCacheKey = "corkboard:boards:list"

// ListCache caches the rendered board list in Redis. Nil-safe: a nil cache
// (or nil client) degrades to always-miss.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache instantiates the cache helper.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{client: client, ttl: ttl}
}

// Get returns the cached list, or ok=false on a miss.
func (c *ListCache) Get(ctx context.Context) ([]Board, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var boards []Board
	if err := json.Unmarshal(raw, &boards); err != nil {
		return nil, false
	}
	return boards, true
}

// Set stores the list with the configured TTL.
func (c *ListCache) Set(ctx context.Context, boards []Board) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(boards)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listCacheKey, raw, c.ttl).Err()
}

// Invalidate drops the cached list after any board mutation.
func (c *ListCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Del(ctx, listCacheKey).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
