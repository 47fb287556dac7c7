package resolver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	cachefile "github.com/abrahamrubi0/bettrack/internal/cache/file"
	"github.com/abrahamrubi0/bettrack/internal/domain"
	"github.com/abrahamrubi0/bettrack/internal/platform/ps3838"
	"github.com/abrahamrubi0/bettrack/internal/teams"
)

type fakeFixturesAPI struct {
	resp  ps3838.FixturesResponse
	err   error
	calls int
}

func (f *fakeFixturesAPI) Fixtures(context.Context, int, []int) (ps3838.FixturesResponse, error) {
	f.calls++
	if f.err != nil {
		return ps3838.FixturesResponse{}, f.err
	}
	return f.resp, nil
}

type fakeSettledAPI struct {
	resp  ps3838.SettledResponse
	err   error
	calls int
	since int64
}

func (f *fakeSettledAPI) Settled(_ context.Context, _ int, _ []int, since int64) (ps3838.SettledResponse, error) {
	f.calls++
	f.since = since
	if f.err != nil {
		return ps3838.SettledResponse{}, f.err
	}
	return f.resp, nil
}

type fakeNotifier struct {
	sent []domain.Settlement
	err  error
}

func (f *fakeNotifier) SettlementResolved(_ context.Context, s domain.Settlement) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, s)
	return nil
}

type harness struct {
	fixtures *fakeFixturesAPI
	settled  *fakeSettledAPI
	notifier *fakeNotifier
	gameIDs  domain.GameIDCache
	cursors  domain.CursorStore
	resolver *Resolver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	h := &harness{
		fixtures: &fakeFixturesAPI{},
		settled:  &fakeSettledAPI{},
		notifier: &fakeNotifier{},
		gameIDs:  cachefile.NewGameIDCache(filepath.Join(dir, "game_ids.json"), logger),
		cursors:  cachefile.NewCursorStore(filepath.Join(dir, "settled_last.json"), logger),
	}
	registry := teams.NewRegistry(dir, logger)
	fm := NewFixtureMatcher(h.fixtures, h.gameIDs, logger)
	sr := NewSettledResolver(h.settled, h.cursors, logger)
	h.resolver = New(fm, sr, h.gameIDs, registry, h.notifier, logger)
	return h
}

func nbaFixtures() ps3838.FixturesResponse {
	return ps3838.FixturesResponse{
		SportID: 4,
		League: []ps3838.FixtureLeague{
			{ID: 493, Name: "NBA", Events: []ps3838.Fixture{
				{ID: 500, RotNum: 511, Home: "Boston Celtics", Away: "Miami Heat"},
				{ID: 501, RotNum: 515, Home: "Los Angeles Lakers", Away: "Golden State Warriors"},
			}},
		},
	}
}

func settledEvent501() ps3838.SettledResponse {
	return ps3838.SettledResponse{
		Last: 1700000050,
		Leagues: []ps3838.SettledLeague{
			{ID: 493, Events: []ps3838.SettledEvent{
				{ID: 501, Periods: []ps3838.SettledPeriod{
					{Number: 0, Status: 1, Team1Score: 110, Team2Score: 115, SettledAt: "2026-03-01T04:45:00Z"},
					{Number: 1, Status: 1, Team1Score: 55, Team2Score: 60, SettledAt: "2026-03-01T03:30:00Z"},
				}},
			}},
		},
	}
}

func warriorsLakersBet() domain.BetRecord {
	return domain.BetRecord{
		ID:      1001,
		Sport:   "Basketball",
		League:  "NBA",
		Visitor: "Warriors",
		Home:    "Lakers",
		BetType: "spread",
		TheBet:  "Warriors -4.5",
		Period:  "match",
	}
}

func TestProcessResolvesSettledBet(t *testing.T) {
	h := newHarness(t)
	h.fixtures.resp = nbaFixtures()
	h.settled.resp = settledEvent501()

	h.resolver.BeginCycle()
	outcome, settlement, err := h.resolver.Process(context.Background(), warriorsLakersBet())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if outcome != OutcomeResolved {
		t.Fatalf("outcome = %v, want resolved", outcome)
	}

	if settlement.GameID != 501 {
		t.Errorf("GameID = %d, want 501", settlement.GameID)
	}
	if settlement.Teams.Away.Name != "Golden State Warriors" {
		t.Errorf("away name = %q", settlement.Teams.Away.Name)
	}
	if settlement.Teams.Away.Score == nil || *settlement.Teams.Away.Score != 110 {
		t.Errorf("away score = %v, want 110", settlement.Teams.Away.Score)
	}
	if settlement.Teams.Home.Score == nil || *settlement.Teams.Home.Score != 115 {
		t.Errorf("home score = %v, want 115", settlement.Teams.Home.Score)
	}
	if len(settlement.Periods) != 2 {
		t.Errorf("periods = %d, want 2", len(settlement.Periods))
	}
	if settlement.Bet.ID != 1001 || settlement.Bet.TheBet != "Warriors -4.5" {
		t.Errorf("bet echo = %+v", settlement.Bet)
	}

	if len(h.notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(h.notifier.sent))
	}

	// The match is cached under both orderings of every candidate-name pair
	// (canonical and original spellings) and the bet key.
	ctx := context.Background()
	for _, key := range []string{
		"goldenstatewarriors_losangeleslakers",
		"losangeleslakers_goldenstatewarriors",
		"warriors_lakers",
		"lakers_warriors",
		"warriors_losangeleslakers",
		"goldenstatewarriors_lakers",
		"bet_1001",
	} {
		if id, err := h.gameIDs.Lookup(ctx, key); err != nil || id != 501 {
			t.Errorf("cache key %q = (%d, %v), want 501", key, id, err)
		}
	}

	// The settled cursor advanced to the response's last value.
	if cur, _ := h.cursors.Get(ctx, 4); cur != 1700000050 {
		t.Errorf("cursor = %d, want 1700000050", cur)
	}
}

func TestProcessNotifiesExactlyOnce(t *testing.T) {
	h := newHarness(t)
	h.fixtures.resp = nbaFixtures()
	h.settled.resp = settledEvent501()

	ctx := context.Background()
	h.resolver.BeginCycle()
	if outcome, _, _ := h.resolver.Process(ctx, warriorsLakersBet()); outcome != OutcomeResolved {
		t.Fatalf("first outcome = %v", outcome)
	}

	// Same bet on a later cycle is skipped without touching the provider.
	h.resolver.BeginCycle()
	fixtureCalls, settledCalls := h.fixtures.calls, h.settled.calls
	outcome, _, _ := h.resolver.Process(ctx, warriorsLakersBet())
	if outcome != OutcomeSkipped {
		t.Errorf("second outcome = %v, want skipped", outcome)
	}
	if h.fixtures.calls != fixtureCalls || h.settled.calls != settledCalls {
		t.Error("skipped bet still hit the provider")
	}
	if len(h.notifier.sent) != 1 {
		t.Errorf("notifications = %d, want 1", len(h.notifier.sent))
	}
}

func TestProcessDefersWhenNoFixtureMatches(t *testing.T) {
	h := newHarness(t)
	h.fixtures.resp = ps3838.FixturesResponse{
		League: []ps3838.FixtureLeague{
			{ID: 493, Name: "NBA", Events: []ps3838.Fixture{
				{ID: 500, Home: "Boston Celtics", Away: "Miami Heat"},
			}},
		},
	}

	h.resolver.BeginCycle()
	outcome, _, err := h.resolver.Process(context.Background(), warriorsLakersBet())
	if err != nil || outcome != OutcomeDeferred {
		t.Errorf("outcome = (%v, %v), want deferred", outcome, err)
	}
	if len(h.notifier.sent) != 0 {
		t.Error("unexpected notification")
	}
}

func TestProcessDefersWhenNotSettled(t *testing.T) {
	h := newHarness(t)
	h.fixtures.resp = nbaFixtures()
	h.settled.resp = ps3838.SettledResponse{Last: 10}

	h.resolver.BeginCycle()
	outcome, _, err := h.resolver.Process(context.Background(), warriorsLakersBet())
	if err != nil || outcome != OutcomeDeferred {
		t.Errorf("outcome = (%v, %v), want deferred", outcome, err)
	}
}

func TestProcessDefersOnUngradedEvent(t *testing.T) {
	h := newHarness(t)
	h.fixtures.resp = nbaFixtures()
	// The event is listed settled but carries no period scores yet.
	h.settled.resp = ps3838.SettledResponse{
		Last: 20,
		Leagues: []ps3838.SettledLeague{
			{ID: 493, Events: []ps3838.SettledEvent{{ID: 501}}},
		},
	}

	h.resolver.BeginCycle()
	outcome, _, err := h.resolver.Process(context.Background(), warriorsLakersBet())
	if err != nil || outcome != OutcomeDeferred {
		t.Errorf("outcome = (%v, %v), want deferred", outcome, err)
	}
	if len(h.notifier.sent) != 0 {
		t.Error("ungraded event must not notify")
	}
}

func TestProcessFailsOnRateLimit(t *testing.T) {
	h := newHarness(t)
	h.fixtures.err = domain.ErrRateLimited

	h.resolver.BeginCycle()
	outcome, _, err := h.resolver.Process(context.Background(), warriorsLakersBet())
	if outcome != OutcomeFailed {
		t.Errorf("outcome = %v, want failed", outcome)
	}
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("err = %v", err)
	}
}

func TestProcessUsesCachedEventID(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// A previous run cached the pair; the concluded event has since dropped
	// off the live fixtures page.
	_ = h.gameIDs.Store(ctx, "goldenstatewarriors_losangeleslakers", 501)
	h.fixtures.resp = ps3838.FixturesResponse{}
	h.settled.resp = settledEvent501()

	h.resolver.BeginCycle()
	outcome, settlement, err := h.resolver.Process(ctx, warriorsLakersBet())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if outcome != OutcomeResolved {
		t.Fatalf("outcome = %v, want resolved", outcome)
	}
	// Without a fixture this cycle, display names fall back to the record's
	// own spellings.
	if settlement.Teams.Away.Name != "Warriors" || settlement.Teams.Home.Name != "Lakers" {
		t.Errorf("display names = %q / %q", settlement.Teams.Away.Name, settlement.Teams.Home.Name)
	}
}

func TestProcessRecoversProviderNamesFromCachedID(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Only the cached id links the bet to the event; the fixtures page still
	// lists it, so the id scan recovers the provider's display names.
	_ = h.gameIDs.Store(ctx, "bet_1001", 501)
	h.fixtures.resp = nbaFixtures()
	h.settled.resp = settledEvent501()

	h.resolver.BeginCycle()
	outcome, settlement, err := h.resolver.Process(ctx, warriorsLakersBet())
	if err != nil || outcome != OutcomeResolved {
		t.Fatalf("outcome = (%v, %v), want resolved", outcome, err)
	}
	if settlement.Teams.Away.Name != "Golden State Warriors" || settlement.Teams.Home.Name != "Los Angeles Lakers" {
		t.Errorf("display names = %q / %q", settlement.Teams.Away.Name, settlement.Teams.Home.Name)
	}
	if settlement.RotationNumber != 515 {
		t.Errorf("rotation number = %d, want 515", settlement.RotationNumber)
	}
}

func TestProcessFallsBackToCachedIDOnRateLimit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_ = h.gameIDs.Store(ctx, "bet_1001", 501)
	h.fixtures.err = domain.ErrRateLimited
	h.settled.resp = settledEvent501()

	h.resolver.BeginCycle()
	outcome, settlement, err := h.resolver.Process(ctx, warriorsLakersBet())
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if outcome != OutcomeResolved || settlement.GameID != 501 {
		t.Fatalf("outcome = %v, GameID = %d, want resolved 501", outcome, settlement.GameID)
	}
}

func TestProcessTriesAllCachedIDs(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// The bet key points at a stale event that never graded; a pair key holds
	// the id that did. Both are tried before deferring.
	_ = h.gameIDs.Store(ctx, "bet_1001", 777)
	_ = h.gameIDs.Store(ctx, "goldenstatewarriors_losangeleslakers", 501)
	h.fixtures.resp = ps3838.FixturesResponse{}
	h.settled.resp = settledEvent501()

	h.resolver.BeginCycle()
	outcome, settlement, err := h.resolver.Process(ctx, warriorsLakersBet())
	if err != nil || outcome != OutcomeResolved {
		t.Fatalf("outcome = (%v, %v), want resolved", outcome, err)
	}
	if settlement.GameID != 501 {
		t.Errorf("GameID = %d, want 501", settlement.GameID)
	}
}

func TestProcessResolvesWithOneRecognizedName(t *testing.T) {
	h := newHarness(t)
	h.fixtures.resp = nbaFixtures()
	h.settled.resp = settledEvent501()

	// "LAL" is in no alias table, but the recognized visitor name alone is
	// enough to pin the fixture.
	bet := domain.BetRecord{
		ID: 1003, Sport: "Basketball", League: "NBA",
		Visitor: "Warriors", Home: "LAL", TheBet: "Warriors -4.5",
	}

	h.resolver.BeginCycle()
	outcome, settlement, err := h.resolver.Process(context.Background(), bet)
	if err != nil || outcome != OutcomeResolved {
		t.Fatalf("outcome = (%v, %v), want resolved", outcome, err)
	}
	if settlement.GameID != 501 {
		t.Errorf("GameID = %d, want 501", settlement.GameID)
	}
}

func TestProcessUnresolvableBet(t *testing.T) {
	h := newHarness(t)
	bet := domain.BetRecord{ID: 9, Sport: "Basketball", League: "NBA"}

	h.resolver.BeginCycle()
	outcome, _, err := h.resolver.Process(context.Background(), bet)
	if err != nil || outcome != OutcomeUnresolvable {
		t.Errorf("outcome = (%v, %v), want unresolvable", outcome, err)
	}

	// Warned once, then skipped.
	outcome, _, _ = h.resolver.Process(context.Background(), bet)
	if outcome != OutcomeSkipped {
		t.Errorf("second outcome = %v, want skipped", outcome)
	}
}

func TestProcessRetriesAfterNotifyFailure(t *testing.T) {
	h := newHarness(t)
	h.fixtures.resp = nbaFixtures()
	h.settled.resp = settledEvent501()
	h.notifier.err = errors.New("telegram down")

	ctx := context.Background()
	h.resolver.BeginCycle()
	outcome, _, err := h.resolver.Process(ctx, warriorsLakersBet())
	if outcome != OutcomeFailed || err == nil {
		t.Fatalf("outcome = (%v, %v), want failed", outcome, err)
	}

	// Delivery recovers on the next cycle; the bet is still eligible.
	h.notifier.err = nil
	h.resolver.BeginCycle()
	outcome, _, err = h.resolver.Process(ctx, warriorsLakersBet())
	if err != nil || outcome != OutcomeResolved {
		t.Fatalf("retry outcome = (%v, %v), want resolved", outcome, err)
	}
	if len(h.notifier.sent) != 1 {
		t.Errorf("notifications = %d, want 1", len(h.notifier.sent))
	}
}

func TestSettledFeedFetchedOncePerCycle(t *testing.T) {
	h := newHarness(t)
	h.fixtures.resp = nbaFixtures()
	h.settled.resp = settledEvent501()

	ctx := context.Background()
	h.resolver.BeginCycle()

	betA := warriorsLakersBet()
	betB := domain.BetRecord{
		ID: 1002, Sport: "Basketball", League: "NBA",
		Visitor: "Heat", Home: "Celtics", TheBet: "Heat +6",
	}
	_, _, _ = h.resolver.Process(ctx, betA)
	_, _, _ = h.resolver.Process(ctx, betB)

	if h.settled.calls != 1 {
		t.Errorf("settled calls = %d, want 1 per cycle", h.settled.calls)
	}
}

func TestSettledEventSurvivesCursorAdvance(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Cycle 1: another bet's lookup pulls the feed, which delivers event 501
	// and moves the cursor; the warriors bet is not processed this cycle.
	h.fixtures.resp = nbaFixtures()
	h.settled.resp = settledEvent501()
	h.resolver.BeginCycle()
	heatBet := domain.BetRecord{
		ID: 1002, Sport: "Basketball", League: "NBA",
		Visitor: "Heat", Home: "Celtics", TheBet: "Heat +6",
	}
	outcome, _, _ := h.resolver.Process(ctx, heatBet)
	if outcome != OutcomeDeferred {
		t.Fatalf("cycle 1 outcome = %v, want deferred", outcome)
	}

	// Cycle 2: the provider rotated the event off its page, but the retained
	// copy still resolves the warriors bet.
	h.settled.resp = ps3838.SettledResponse{Last: 1700000050}
	h.resolver.BeginCycle()
	outcome, settlement, err := h.resolver.Process(ctx, warriorsLakersBet())
	if err != nil || outcome != OutcomeResolved {
		t.Fatalf("cycle 2 outcome = (%v, %v), want resolved", outcome, err)
	}
	if settlement.GameID != 501 {
		t.Errorf("GameID = %d", settlement.GameID)
	}
	// The feed is always requested in full; the cursor never bounds it.
	if h.settled.since != 0 {
		t.Errorf("cycle 2 since = %d, want 0", h.settled.since)
	}
	if cur, _ := h.cursors.Get(ctx, 4); cur != 1700000050 {
		t.Errorf("cursor = %d, want 1700000050", cur)
	}
}

// sinceBoundedSettledAPI mimics a provider that returns only events newer
// than the requested since value.
type sinceBoundedSettledAPI struct {
	resp ps3838.SettledResponse
}

func (f *sinceBoundedSettledAPI) Settled(_ context.Context, _ int, _ []int, since int64) (ps3838.SettledResponse, error) {
	if since >= f.resp.Last {
		return ps3838.SettledResponse{Last: f.resp.Last}, nil
	}
	return f.resp, nil
}

func TestSettledResolutionSurvivesRestart(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	path := filepath.Join(dir, "settled_last.json")
	api := &sinceBoundedSettledAPI{resp: settledEvent501()}
	ctx := context.Background()

	cursors := cachefile.NewCursorStore(path, logger)
	sr := NewSettledResolver(api, cursors, logger)
	sr.BeginCycle()
	if _, err := sr.Resolve(ctx, 4, []int{493}, 501); err != nil {
		t.Fatalf("first lifetime: %v", err)
	}
	if err := cursors.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	// A fresh process loads the advanced cursor. The event must still be
	// reachable: the feed is fetched in full rather than from the cursor, so
	// a settlement that landed before the restart is not lost.
	cursors = cachefile.NewCursorStore(path, logger)
	if cur, _ := cursors.Get(ctx, 4); cur != 1700000050 {
		t.Fatalf("cursor after restart = %d, want 1700000050", cur)
	}
	sr = NewSettledResolver(api, cursors, logger)
	sr.BeginCycle()
	ev, err := sr.Resolve(ctx, 4, []int{493}, 501)
	if err != nil {
		t.Fatalf("after restart: %v", err)
	}
	if ev.ID != 501 || len(ev.Periods) != 2 {
		t.Errorf("event = %+v", ev)
	}
}

func TestFixtureMatchCachesOriginalSpellingKeys(t *testing.T) {
	h := newHarness(t)
	h.fixtures.resp = ps3838.FixturesResponse{
		SportID: 4,
		League: []ps3838.FixtureLeague{
			{ID: 493, Name: "NBA", Events: []ps3838.Fixture{
				{ID: 501, RotNum: 101, Home: "Los Angeles Lakers", Away: "Golden State Warriors"},
			}},
		},
	}
	h.settled.resp = settledEvent501()
	bet := domain.BetRecord{
		ID: 1, Sport: "Basketball", League: "NBA",
		Visitor: "warriors", Home: "lakers",
	}

	h.resolver.BeginCycle()
	outcome, _, err := h.resolver.Process(context.Background(), bet)
	if err != nil || outcome != OutcomeResolved {
		t.Fatalf("outcome = (%v, %v), want resolved", outcome, err)
	}

	ctx := context.Background()
	for _, key := range []string{"warriors_lakers", "lakers_warriors", "bet_1"} {
		if id, err := h.gameIDs.Lookup(ctx, key); err != nil || id != 501 {
			t.Errorf("cache key %q = (%d, %v), want 501", key, id, err)
		}
	}
}
