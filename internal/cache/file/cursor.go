package file

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/abrahamrubi0/bettrack/internal/domain"
)

// CursorStore is the JSON-file implementation of domain.CursorStore. Cursors
// are keyed by the provider sport id rendered as a decimal string, matching
// the on-disk format the tracker has always used.
type CursorStore struct {
	path    string
	cursors map[string]int64
	logger  *slog.Logger
}

// NewCursorStore loads the cursor mapping stored at path; a missing or corrupt
// file loads as empty. The cursor only records how far the settled feed has
// been processed, so losing it never loses settlements.
func NewCursorStore(path string, logger *slog.Logger) *CursorStore {
	s := &CursorStore{
		path:    path,
		cursors: make(map[string]int64),
		logger:  logger.With(slog.String("component", "cursor_store")),
	}
	s.load()
	return s
}

func (s *CursorStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("cursor file unreadable, starting empty",
				slog.String("path", s.path),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	if err := json.Unmarshal(data, &s.cursors); err != nil {
		s.logger.Warn("cursor file corrupt, starting empty",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		s.cursors = make(map[string]int64)
	}
}

// Get returns the stored cursor for sportID, or zero when none exists.
func (s *CursorStore) Get(_ context.Context, sportID int) (int64, error) {
	return s.cursors[strconv.Itoa(sportID)], nil
}

// Advance stores cursor for sportID only when it is strictly newer than the
// stored value. Cursors never move backwards during normal operation.
func (s *CursorStore) Advance(_ context.Context, sportID int, cursor int64) error {
	key := strconv.Itoa(sportID)
	if cursor > s.cursors[key] {
		s.cursors[key] = cursor
	}
	return nil
}

// Flush overwrites the backing file with all cursors.
func (s *CursorStore) Flush(_ context.Context) error {
	return writeJSON(s.path, s.cursors)
}

var _ domain.CursorStore = (*CursorStore)(nil)
