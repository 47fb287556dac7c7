package resolver

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/abrahamrubi0/bettrack/internal/domain"
	"github.com/abrahamrubi0/bettrack/internal/platform/ps3838"
)

// SettledAPI is the slice of the provider client the settled resolver needs.
type SettledAPI interface {
	Settled(ctx context.Context, sportID int, leagueIDs []int, since int64) (ps3838.SettledResponse, error)
}

// SettledResolver fetches the settled-results feed and answers "is this event
// settled yet, and with what scores". Each scope is fetched at most once per
// cycle, always as the full page, so settlements that landed while the process
// was down are still observable after a restart. Every event the feed has ever
// returned is additionally retained in memory, covering events the provider
// rotates off the page before their bet matches a fixture.
type SettledResolver struct {
	client SettledAPI
	cursor domain.CursorStore
	logger *slog.Logger

	fetched map[string]bool
	seen    map[int64]ps3838.SettledEvent
}

// NewSettledResolver creates a SettledResolver.
func NewSettledResolver(client SettledAPI, cursor domain.CursorStore, logger *slog.Logger) *SettledResolver {
	return &SettledResolver{
		client:  client,
		cursor:  cursor,
		logger:  logger.With(slog.String("component", "settled_resolver")),
		fetched: make(map[string]bool),
		seen:    make(map[int64]ps3838.SettledEvent),
	}
}

// BeginCycle resets the per-cycle fetch marks so the next Resolve in each
// scope hits the provider again.
func (r *SettledResolver) BeginCycle() {
	r.fetched = make(map[string]bool)
}

// Resolve returns the settled scores for eventID. It returns
// domain.ErrNotSettledYet when the event has not appeared in the feed or has
// appeared without graded periods; transient provider errors pass through.
func (r *SettledResolver) Resolve(ctx context.Context, sportID int, leagueIDs []int, eventID int64) (domain.SettledEvent, error) {
	if err := r.refresh(ctx, sportID, leagueIDs); err != nil {
		return domain.SettledEvent{}, err
	}

	ev, ok := r.seen[eventID]
	if !ok {
		return domain.SettledEvent{}, domain.ErrNotSettledYet
	}
	if len(ev.Periods) == 0 {
		r.logger.Debug("event listed but not graded yet", slog.Int64("event_id", eventID))
		return domain.SettledEvent{}, domain.ErrNotSettledYet
	}
	return convertSettled(ev), nil
}

// refresh fetches the settled feed for a scope once per cycle, merges its
// events into the retained set, and advances the persisted cursor when the
// response carries a newer one. The request always asks for the full page
// (since zero); the persisted cursor only records how far the feed has been
// processed and never bounds the fetch, so an event that settled before a
// restart can still resolve afterwards.
func (r *SettledResolver) refresh(ctx context.Context, sportID int, leagueIDs []int) error {
	key := scopeKey(sportID, leagueIDs)
	if r.fetched[key] {
		return nil
	}

	cur, err := r.cursor.Get(ctx, sportID)
	if err != nil {
		r.logger.Warn("cursor read failed, treating as zero",
			slog.Int("sport_id", sportID),
			slog.String("error", err.Error()),
		)
		cur = 0
	}

	resp, err := r.client.Settled(ctx, sportID, leagueIDs, 0)
	if err != nil {
		return err
	}
	r.fetched[key] = true

	count := 0
	for _, lg := range resp.Leagues {
		for _, ev := range lg.Events {
			// A regrade or late grading replaces the retained copy.
			r.seen[ev.ID] = ev
			count++
		}
	}

	if resp.Last > cur {
		if err := r.cursor.Advance(ctx, sportID, resp.Last); err != nil {
			r.logger.Warn("cursor advance failed",
				slog.Int("sport_id", sportID),
				slog.String("error", err.Error()),
			)
		}
	}

	r.logger.Debug("settled feed refreshed",
		slog.Int("sport_id", sportID),
		slog.Int("events", count),
		slog.Int64("cursor", cur),
		slog.Int64("last", resp.Last),
	)
	return nil
}

// convertSettled maps provider period scores onto the domain shape. Team1 is
// the away side, team2 the home side.
func convertSettled(ev ps3838.SettledEvent) domain.SettledEvent {
	out := domain.SettledEvent{ID: ev.ID}
	for _, p := range ev.Periods {
		out.Periods = append(out.Periods, domain.Period{
			Number:    p.Number,
			AwayScore: p.Team1Score,
			HomeScore: p.Team2Score,
			SettledAt: p.SettledAt,
		})
	}
	return out
}

func scopeKey(sportID int, leagueIDs []int) string {
	parts := make([]string, 0, len(leagueIDs)+1)
	parts = append(parts, strconv.Itoa(sportID))
	for _, id := range leagueIDs {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ":")
}
