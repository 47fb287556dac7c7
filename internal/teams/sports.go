package teams

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Built-in fallbacks used when the data directory has no mapping files. Sport
// 4 is Basketball, league 493 is the NBA on the provider's numbering.
const (
	defaultSportName = "Basketball"
	defaultSportID   = 4
	defaultLeagueID  = 493
)

// Registry resolves sport and league names from bet records to the numeric
// identifiers the provider expects. Mappings are loaded once from JSON files
// in a data directory; missing or corrupt files fall back to the built-in
// defaults so the tracker keeps working with a fresh checkout.
type Registry struct {
	dataDir  string
	sports   map[string]int            // lower-cased sport name -> sport id
	leagues  map[string]map[string]int // lower-cased sport name -> (lower-cased league name -> id)
	logger   *slog.Logger
}

// NewRegistry loads sport and league mappings from dataDir. The expected
// layout mirrors what the provider's discovery endpoints produce:
//
//	<dataDir>/sports.json          {"sports": [{"id": 4, "name": "Basketball"}, ...]}
//	<dataDir>/<sport>.json         {"leagues": [{"id": 493, "name": "NBA"}, ...]}
func NewRegistry(dataDir string, logger *slog.Logger) *Registry {
	r := &Registry{
		dataDir: dataDir,
		sports:  make(map[string]int),
		leagues: make(map[string]map[string]int),
		logger:  logger.With(slog.String("component", "sports_registry")),
	}
	r.loadSports()
	return r
}

func (r *Registry) loadSports() {
	var doc struct {
		Sports []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"sports"`
	}
	path := filepath.Join(r.dataDir, "sports.json")
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("sports mapping file unavailable, using defaults",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		r.sports[strings.ToLower(defaultSportName)] = defaultSportID
		return
	}
	if err := json.Unmarshal(data, &doc); err != nil || len(doc.Sports) == 0 {
		r.logger.Warn("sports mapping file unreadable, using defaults",
			slog.String("path", path),
		)
		r.sports[strings.ToLower(defaultSportName)] = defaultSportID
		return
	}
	for _, s := range doc.Sports {
		r.sports[strings.ToLower(s.Name)] = s.ID
	}
}

// SportID returns the provider sport id for a sport name, falling back to the
// Basketball id when the name is unknown.
func (r *Registry) SportID(sport string) int {
	if id, ok := r.sports[strings.ToLower(strings.TrimSpace(sport))]; ok {
		return id
	}
	return defaultSportID
}

// LeagueIDs returns the provider league ids to scope fixture and settled
// queries for the given sport and league. The per-sport league file is loaded
// lazily and cached; an unknown league falls back to the default league id so
// a lookup always produces a usable scope.
func (r *Registry) LeagueIDs(sport, league string) []int {
	sportKey := strings.ToLower(strings.TrimSpace(sport))
	table, ok := r.leagues[sportKey]
	if !ok {
		table = r.loadLeagues(sportKey)
		r.leagues[sportKey] = table
	}
	if id, ok := table[strings.ToLower(strings.TrimSpace(league))]; ok {
		return []int{id}
	}
	return []int{defaultLeagueID}
}

func (r *Registry) loadLeagues(sportKey string) map[string]int {
	table := make(map[string]int)
	path := filepath.Join(r.dataDir, fmt.Sprintf("%s.json", sportKey))
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Debug("league mapping file unavailable",
			slog.String("path", path),
		)
		return table
	}
	var doc struct {
		Leagues []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"leagues"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		r.logger.Warn("league mapping file unreadable",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return table
	}
	for _, l := range doc.Leagues {
		table[strings.ToLower(l.Name)] = l.ID
	}
	return table
}
