package domain

import "context"

// GameIDCache is the durable mapping from cache keys (symmetric team-pair keys
// and bet-id keys) to provider event identifiers. Implementations must treat a
// missing or corrupt backing store as an empty mapping: cache loss degrades
// performance, never correctness.
type GameIDCache interface {
	// Lookup returns the event id stored under key, or ErrNotFound.
	Lookup(ctx context.Context, key string) (int64, error)

	// Store records an event id under key, overwriting any previous value.
	Store(ctx context.Context, key string, eventID int64) error

	// Flush writes the full mapping to durable storage. Called at the end of
	// every polling cycle and on shutdown.
	Flush(ctx context.Context) error

	// Len returns the number of keys currently held.
	Len(ctx context.Context) (int, error)
}

// CursorStore persists the per-sport settled-results pagination cursor. The
// cursor for a sport only ever advances; Advance with an older or equal value
// is a no-op.
type CursorStore interface {
	// Get returns the cursor for sportID, or zero when none is stored.
	Get(ctx context.Context, sportID int) (int64, error)

	// Advance stores cursor for sportID if it is newer than the stored value.
	Advance(ctx context.Context, sportID int, cursor int64) error

	// Flush writes all cursors to durable storage.
	Flush(ctx context.Context) error
}

// BetSource produces the bet records pending resolution for one polling cycle.
// An absent source (missing file, empty table) yields an empty slice, not an
// error.
type BetSource interface {
	Pending(ctx context.Context) ([]BetRecord, error)
}

// SettlementArchiver stores a cycle's resolved settlement payloads for audit.
type SettlementArchiver interface {
	Archive(ctx context.Context, key string, settlements []Settlement) error
}
