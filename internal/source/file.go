// Package source provides the bet-source implementations: the JSON drop file
// the upstream pipeline writes once per day, and a Postgres table for
// deployments where bets land in a database instead.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/abrahamrubi0/bettrack/internal/domain"
)

// FileSource reads pending bets from a JSON file holding an array of bet
// records. A missing file is not an error: the upstream pipeline simply has
// not produced bets yet.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a FileSource reading from path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{
		path:   path,
		logger: logger.With(slog.String("component", "bet_source")),
	}
}

// Pending returns all bet records currently in the file.
func (s *FileSource) Pending(_ context.Context) ([]domain.BetRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("bet file absent", slog.String("path", s.path))
			return nil, nil
		}
		return nil, fmt.Errorf("source: read %s: %w", s.path, err)
	}

	var bets []domain.BetRecord
	if err := json.Unmarshal(data, &bets); err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", s.path, err)
	}
	return bets, nil
}

var _ domain.BetSource = (*FileSource)(nil)
