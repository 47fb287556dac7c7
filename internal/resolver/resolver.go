package resolver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/abrahamrubi0/bettrack/internal/cache"
	"github.com/abrahamrubi0/bettrack/internal/domain"
	"github.com/abrahamrubi0/bettrack/internal/teams"
)

// Outcome classifies what happened to one bet in one polling cycle.
type Outcome string

const (
	// OutcomeResolved means the bet's event settled, scores were extracted,
	// and the notification went out.
	OutcomeResolved Outcome = "resolved"

	// OutcomeDeferred means the bet is valid but cannot resolve yet: no
	// fixture matched, or the event is not settled. Retried next cycle.
	OutcomeDeferred Outcome = "deferred"

	// OutcomeUnresolvable means the bet carries no usable team information
	// and will never resolve. Logged once, then ignored.
	OutcomeUnresolvable Outcome = "unresolvable"

	// OutcomeFailed means a provider or notification error interrupted this
	// bet. Retried next cycle.
	OutcomeFailed Outcome = "failed"

	// OutcomeSkipped means the bet was already resolved and notified.
	OutcomeSkipped Outcome = "skipped"
)

// Notifier delivers the settlement payload for a resolved bet.
type Notifier interface {
	SettlementResolved(ctx context.Context, s domain.Settlement) error
}

// Resolver drives a single bet through normalization, event-id resolution,
// settlement lookup, and notification. It is used from one goroutine only;
// the processed guard is a plain map.
type Resolver struct {
	fixtures *FixtureMatcher
	settled  *SettledResolver
	gameIDs  domain.GameIDCache
	registry *teams.Registry
	notifier Notifier
	logger   *slog.Logger

	processed map[string]bool
}

// New creates a Resolver.
func New(fixtures *FixtureMatcher, settled *SettledResolver, gameIDs domain.GameIDCache, registry *teams.Registry, notifier Notifier, logger *slog.Logger) *Resolver {
	return &Resolver{
		fixtures:  fixtures,
		settled:   settled,
		gameIDs:   gameIDs,
		registry:  registry,
		notifier:  notifier,
		logger:    logger.With(slog.String("component", "resolver")),
		processed: make(map[string]bool),
	}
}

// BeginCycle resets per-cycle state. The processed guard survives cycles;
// only the settled-feed fetch marks are cleared.
func (r *Resolver) BeginCycle() {
	r.settled.BeginCycle()
}

// Process runs one bet through the pipeline and returns its outcome. The
// returned Settlement is non-nil only for OutcomeResolved. The processed
// guard is set after a successful notification, and for unresolvable bets so
// they are warned about once rather than every minute.
func (r *Resolver) Process(ctx context.Context, rec domain.BetRecord) (Outcome, *domain.Settlement, error) {
	bet := teams.NormalizeBet(rec)

	if r.processed[bet.GuardKey()] {
		return OutcomeSkipped, nil, nil
	}

	if !bet.HasTeamHint() {
		r.logger.Warn("bet has no team information, cannot resolve",
			slog.Int64("bet_id", rec.ID),
			slog.String("league", rec.League),
		)
		r.processed[bet.GuardKey()] = true
		return OutcomeUnresolvable, nil, nil
	}

	sportID := r.registry.SportID(rec.Sport)
	leagueIDs := r.registry.LeagueIDs(rec.Sport, bet.League)

	cachedIDs := r.probeCache(ctx, bet)

	// The fixtures page is consulted even on a cache hit: an id scan there
	// recovers the provider's display names after a restart. A transient
	// fixture-lookup failure is fatal only when no cached id can stand in.
	var fix *MatchedFixture
	f, err := r.fixtures.Find(ctx, bet, sportID, leagueIDs, cachedIDs)
	switch {
	case err == nil:
		fix = &f
	case errors.Is(err, domain.ErrNotFound):
		if len(cachedIDs) == 0 {
			r.logger.Debug("no fixture matched yet",
				slog.Int64("bet_id", rec.ID),
				slog.String("visitor", bet.Visitor),
				slog.String("home", bet.Home),
			)
			return OutcomeDeferred, nil, nil
		}
	default:
		if len(cachedIDs) == 0 {
			return OutcomeFailed, nil, err
		}
		r.logger.Warn("fixture lookup failed, falling back to cached event ids",
			slog.Int64("bet_id", rec.ID),
			slog.String("error", err.Error()),
		)
	}

	for _, eventID := range candidateEventIDs(fix, cachedIDs) {
		ev, err := r.settled.Resolve(ctx, sportID, leagueIDs, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotSettledYet) {
				continue
			}
			return OutcomeFailed, nil, err
		}

		fixForID := fix
		if fix != nil && fix.EventID != eventID {
			fixForID = nil
		}
		settlement := r.buildSettlement(bet, ev, fixForID)
		if err := r.notifier.SettlementResolved(ctx, settlement); err != nil {
			// Guard stays unset so delivery is retried next cycle.
			return OutcomeFailed, nil, err
		}

		r.processed[bet.GuardKey()] = true
		r.logger.Info("bet resolved",
			slog.Int64("bet_id", rec.ID),
			slog.Int64("event_id", eventID),
		)
		return OutcomeResolved, &settlement, nil
	}
	return OutcomeDeferred, nil, nil
}

// candidateEventIDs orders the ids to try against the settled feed: the
// fixture match first, then any remaining cached ids. A stale cached id that
// never settles must not mask one that did.
func candidateEventIDs(fix *MatchedFixture, cachedIDs []int64) []int64 {
	if fix == nil {
		return cachedIDs
	}
	ids := []int64{fix.EventID}
	for _, id := range cachedIDs {
		if id != fix.EventID {
			ids = append(ids, id)
		}
	}
	return ids
}

// probeCache collects every distinct cached event id reachable from the bet:
// the bet-id key plus both orderings of every pair drawn from the
// candidate-name superset. Lookup errors other than a miss are logged and
// treated as a miss.
func (r *Resolver) probeCache(ctx context.Context, bet domain.ResolvedBet) []int64 {
	keys := []string{cache.BetKey(bet.Record.ID)}
	names := bet.SearchNames
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			pair := cache.Keys(names[i], names[j])
			keys = append(keys, pair[0], pair[1])
		}
	}

	var ids []int64
	seen := make(map[int64]bool)
	for _, k := range keys {
		id, err := r.gameIDs.Lookup(ctx, k)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				r.logger.Warn("cache lookup failed",
					slog.String("key", k),
					slog.String("error", err.Error()),
				)
			}
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// buildSettlement assembles the notification payload. Display team names come
// from the matched fixture when this cycle found one; a cache hit has no
// fixture, so the bet's own spellings stand in.
func (r *Resolver) buildSettlement(bet domain.ResolvedBet, ev domain.SettledEvent, fix *MatchedFixture) domain.Settlement {
	homeName, awayName := bet.Record.Home, bet.Record.Visitor
	var rotNum int64
	if fix != nil {
		homeName, awayName = fix.Home, fix.Away
		rotNum = fix.RotNum
	}

	s := domain.NewSettlement(ev, homeName, awayName, rotNum)
	s.Bet = domain.SettlementBet{
		ID:      bet.Record.ID,
		Sport:   bet.Record.Sport,
		League:  bet.Record.League,
		BetType: bet.Record.BetType,
		TheBet:  bet.Record.TheBet,
		Line:    bet.Record.Line.String(),
		Period:  bet.Record.Period,
		Visitor: awayName,
		Home:    homeName,
	}
	return s
}
