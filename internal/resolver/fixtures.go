// Package resolver pairs pending bets with provider events and extracts their
// final scores once the provider settles them. It owns the matching tiers, the
// game-id cache discipline, and the once-only notification guard.
package resolver

import (
	"context"
	"log/slog"

	"github.com/abrahamrubi0/bettrack/internal/cache"
	"github.com/abrahamrubi0/bettrack/internal/domain"
	"github.com/abrahamrubi0/bettrack/internal/match"
	"github.com/abrahamrubi0/bettrack/internal/platform/ps3838"
)

// FixturesAPI is the slice of the provider client the fixture matcher needs.
type FixturesAPI interface {
	Fixtures(ctx context.Context, sportID int, leagueIDs []int) (ps3838.FixturesResponse, error)
}

// MatchedFixture is a provider event paired with a bet, carrying the
// provider's own team names for display.
type MatchedFixture struct {
	EventID int64
	RotNum  int64
	Home    string
	Away    string
	League  string
}

// FixtureMatcher scans the live fixtures page for the event a bet refers to
// and writes every derivable cache key back on a hit.
type FixtureMatcher struct {
	client FixturesAPI
	cache  domain.GameIDCache
	logger *slog.Logger
}

// NewFixtureMatcher creates a FixtureMatcher.
func NewFixtureMatcher(client FixturesAPI, gameIDs domain.GameIDCache, logger *slog.Logger) *FixtureMatcher {
	return &FixtureMatcher{
		client: client,
		cache:  gameIDs,
		logger: logger.With(slog.String("component", "fixture_matcher")),
	}
}

// Find locates the fixture for bet within the given sport and league scope.
// Event ids already cached for the bet are checked first: an id hit on the
// fixtures page needs no name comparison and recovers the provider's display
// names for a bet resolved from cache. It returns domain.ErrNotFound when no
// fixture matches; transient provider errors pass through unchanged so the
// caller can tell "not listed yet" from "could not look".
func (m *FixtureMatcher) Find(ctx context.Context, bet domain.ResolvedBet, sportID int, leagueIDs []int, knownIDs []int64) (MatchedFixture, error) {
	resp, err := m.client.Fixtures(ctx, sportID, leagueIDs)
	if err != nil {
		return MatchedFixture{}, err
	}

	if len(knownIDs) > 0 {
		known := make(map[int64]bool, len(knownIDs))
		for _, id := range knownIDs {
			known[id] = true
		}
		for _, lg := range resp.League {
			for _, ev := range lg.Events {
				if !known[ev.ID] {
					continue
				}
				fix := MatchedFixture{
					EventID: ev.ID,
					RotNum:  ev.RotNum,
					Home:    ev.Home,
					Away:    ev.Away,
					League:  lg.Name,
				}
				m.logger.Debug("fixture matched by cached event id",
					slog.Int64("bet_id", bet.Record.ID),
					slog.Int64("event_id", ev.ID),
				)
				m.writeBack(ctx, bet, fix)
				return fix, nil
			}
		}
	}

	pipeline := match.ForLeague(bet.League)
	for _, lg := range resp.League {
		if bet.League != "" && !match.LeagueMatches(bet.League, lg.Name) {
			continue
		}
		for _, ev := range lg.Events {
			tier, ok := m.fixtureMatches(pipeline, bet, ev)
			if !ok {
				continue
			}
			fix := MatchedFixture{
				EventID: ev.ID,
				RotNum:  ev.RotNum,
				Home:    ev.Home,
				Away:    ev.Away,
				League:  lg.Name,
			}
			m.logger.Info("fixture matched",
				slog.Int64("bet_id", bet.Record.ID),
				slog.Int64("event_id", ev.ID),
				slog.String("tier", tier),
				slog.String("home", ev.Home),
				slog.String("away", ev.Away),
			)
			m.writeBack(ctx, bet, fix)
			return fix, nil
		}
	}
	return MatchedFixture{}, domain.ErrNotFound
}

// fixtureMatches applies the team pipeline to one fixture. When the bet has
// both structured team names and both match, in either orientation (the
// bettor's visitor/home labeling is not trusted), the pair wins outright.
// Otherwise any single candidate matching either provider side is enough, so
// one recognizable name next to an unrecognized alias still finds the game.
func (m *FixtureMatcher) fixtureMatches(p *match.Pipeline, bet domain.ResolvedBet, ev ps3838.Fixture) (string, bool) {
	if bet.Visitor != "" && bet.Home != "" {
		if t1, ok1 := p.Match(bet.Visitor, ev.Away); ok1 {
			if _, ok2 := p.Match(bet.Home, ev.Home); ok2 {
				return t1, true
			}
		}
		if t1, ok1 := p.Match(bet.Visitor, ev.Home); ok1 {
			if _, ok2 := p.Match(bet.Home, ev.Away); ok2 {
				return t1, true
			}
		}
	}

	for _, name := range bet.SearchNames {
		if tier, ok := p.Match(name, ev.Away); ok {
			return tier, true
		}
		if tier, ok := p.Match(name, ev.Home); ok {
			return tier, true
		}
	}
	return "", false
}

// writeBack stores the event id under every key a future lookup might probe:
// the provider's team pair, every distinct pair drawn from the candidate-name
// superset (canonical names, original spellings, free-text extractions), each
// in both orderings, and the bet-id key. Store failures are logged and
// swallowed; the cache is an accelerator, not a source of truth.
func (m *FixtureMatcher) writeBack(ctx context.Context, bet domain.ResolvedBet, fix MatchedFixture) {
	keys := make(map[string]bool)
	for _, k := range cache.Keys(fix.Home, fix.Away) {
		keys[k] = true
	}
	names := bet.SearchNames
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			for _, k := range cache.Keys(names[i], names[j]) {
				keys[k] = true
			}
		}
	}
	keys[cache.BetKey(bet.Record.ID)] = true

	for k := range keys {
		if err := m.cache.Store(ctx, k, fix.EventID); err != nil {
			m.logger.Warn("cache store failed",
				slog.String("key", k),
				slog.String("error", err.Error()),
			)
		}
	}
}
