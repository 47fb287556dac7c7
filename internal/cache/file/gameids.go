// Package file implements the game-id cache and settled-cursor store as flat
// JSON files, the default durable backend. Both stores hold their mapping in
// memory and overwrite the backing file wholesale on Flush; a missing or
// corrupt file loads as an empty mapping.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abrahamrubi0/bettrack/internal/domain"
)

// GameIDCache is the JSON-file implementation of domain.GameIDCache.
type GameIDCache struct {
	path   string
	ids    map[string]int64
	logger *slog.Logger
}

// NewGameIDCache loads the mapping stored at path. Load failures are logged
// and produce an empty cache: losing the cache forces a fresh fixture search
// but never breaks resolution.
func NewGameIDCache(path string, logger *slog.Logger) *GameIDCache {
	c := &GameIDCache{
		path:   path,
		ids:    make(map[string]int64),
		logger: logger.With(slog.String("component", "gameid_cache")),
	}
	c.load()
	return c
}

func (c *GameIDCache) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn("cache file unreadable, starting empty",
				slog.String("path", c.path),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	if err := json.Unmarshal(data, &c.ids); err != nil {
		c.logger.Warn("cache file corrupt, starting empty",
			slog.String("path", c.path),
			slog.String("error", err.Error()),
		)
		c.ids = make(map[string]int64)
		return
	}
	c.logger.Info("game-id cache loaded", slog.Int("entries", len(c.ids)))
}

// Lookup returns the event id stored under key, or domain.ErrNotFound.
func (c *GameIDCache) Lookup(_ context.Context, key string) (int64, error) {
	if id, ok := c.ids[key]; ok {
		return id, nil
	}
	return 0, domain.ErrNotFound
}

// Store records an event id under key. The write becomes durable at the next
// Flush.
func (c *GameIDCache) Store(_ context.Context, key string, eventID int64) error {
	c.ids[key] = eventID
	return nil
}

// Len returns the number of cached keys.
func (c *GameIDCache) Len(_ context.Context) (int, error) {
	return len(c.ids), nil
}

// Flush overwrites the backing file with the full mapping. The write goes
// through a temp file and rename so a crash mid-write cannot corrupt the
// previous snapshot.
func (c *GameIDCache) Flush(_ context.Context) error {
	return writeJSON(c.path, c.ids)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Compile-time interface check.
var _ domain.GameIDCache = (*GameIDCache)(nil)
