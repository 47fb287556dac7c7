package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/abrahamrubi0/bettrack/internal/domain"
	"github.com/redis/go-redis/v9"
)

const gameIDsKey = "bettrack:gameids"

// GameIDCache implements domain.GameIDCache on a single Redis hash. Writes go
// straight to Redis, so Flush is a no-op; durability is the server's problem.
type GameIDCache struct {
	rdb *redis.Client
}

// NewGameIDCache creates a GameIDCache backed by the given Client.
func NewGameIDCache(c *Client) *GameIDCache {
	return &GameIDCache{rdb: c.Underlying()}
}

// Lookup returns the event id stored under key, or domain.ErrNotFound.
func (c *GameIDCache) Lookup(ctx context.Context, key string) (int64, error) {
	id, err := c.rdb.HGet(ctx, gameIDsKey, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("redis: lookup game id %s: %w", key, err)
	}
	return id, nil
}

// Store records an event id under key.
func (c *GameIDCache) Store(ctx context.Context, key string, eventID int64) error {
	if err := c.rdb.HSet(ctx, gameIDsKey, key, eventID).Err(); err != nil {
		return fmt.Errorf("redis: store game id %s: %w", key, err)
	}
	return nil
}

// Len returns the number of cached keys.
func (c *GameIDCache) Len(ctx context.Context) (int, error) {
	n, err := c.rdb.HLen(ctx, gameIDsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: game id cache len: %w", err)
	}
	return int(n), nil
}

// Flush is a no-op: every Store already hit Redis.
func (c *GameIDCache) Flush(context.Context) error {
	return nil
}

var _ domain.GameIDCache = (*GameIDCache)(nil)
