package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/abrahamrubi0/bettrack/internal/domain"
	"github.com/redis/go-redis/v9"
)

const cursorsKey = "bettrack:settled_last"

// CursorStore implements domain.CursorStore on a Redis hash keyed by sport id.
type CursorStore struct {
	rdb *redis.Client
}

// NewCursorStore creates a CursorStore backed by the given Client.
func NewCursorStore(c *Client) *CursorStore {
	return &CursorStore{rdb: c.Underlying()}
}

// Get returns the stored cursor for sportID, or zero when none exists.
func (s *CursorStore) Get(ctx context.Context, sportID int) (int64, error) {
	cursor, err := s.rdb.HGet(ctx, cursorsKey, strconv.Itoa(sportID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis: get cursor for sport %d: %w", sportID, err)
	}
	return cursor, nil
}

// Advance stores cursor for sportID only when it is strictly newer than the
// stored value. The tracker is single-threaded, so read-compare-write is safe.
func (s *CursorStore) Advance(ctx context.Context, sportID int, cursor int64) error {
	current, err := s.Get(ctx, sportID)
	if err != nil {
		return err
	}
	if cursor <= current {
		return nil
	}
	if err := s.rdb.HSet(ctx, cursorsKey, strconv.Itoa(sportID), cursor).Err(); err != nil {
		return fmt.Errorf("redis: advance cursor for sport %d: %w", sportID, err)
	}
	return nil
}

// Flush is a no-op: every Advance already hit Redis.
func (s *CursorStore) Flush(context.Context) error {
	return nil
}

var _ domain.CursorStore = (*CursorStore)(nil)
