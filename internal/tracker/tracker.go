// Package tracker runs the polling loop: read pending bets, drive each one
// through the resolver, persist caches, and keep the operator informed when
// the provider is persistently unreachable.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abrahamrubi0/bettrack/internal/domain"
	"github.com/abrahamrubi0/bettrack/internal/metrics"
	"github.com/abrahamrubi0/bettrack/internal/resolver"
)

// CriticalNotifier delivers operator alerts when the loop degrades.
type CriticalNotifier interface {
	Critical(ctx context.Context, message string) error
}

// Config tunes the polling loop.
type Config struct {
	// PollInterval is the time between cycle starts. Zero means one minute.
	PollInterval time.Duration

	// MaxConsecutiveErrors is the failed-cycle count that triggers a critical
	// alert and a backoff pause. Zero means five.
	MaxConsecutiveErrors int

	// ErrorBackoff is the pause after the alert fires. Zero means five
	// minutes.
	ErrorBackoff time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = time.Minute
	}
	if c.MaxConsecutiveErrors <= 0 {
		c.MaxConsecutiveErrors = 5
	}
	if c.ErrorBackoff <= 0 {
		c.ErrorBackoff = 5 * time.Minute
	}
	return c
}

// Tracker owns the cycle loop and the flush discipline around it.
type Tracker struct {
	cfg      Config
	source   domain.BetSource
	resolver *resolver.Resolver
	gameIDs  domain.GameIDCache
	cursors  domain.CursorStore
	archiver domain.SettlementArchiver
	notifier CriticalNotifier
	metrics  *metrics.Metrics
	logger   *slog.Logger

	consecutiveErrors int
}

// New creates a Tracker. archiver may be nil when archiving is not
// configured.
func New(
	cfg Config,
	source domain.BetSource,
	res *resolver.Resolver,
	gameIDs domain.GameIDCache,
	cursors domain.CursorStore,
	archiver domain.SettlementArchiver,
	notifier CriticalNotifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Tracker {
	return &Tracker{
		cfg:      cfg.withDefaults(),
		source:   source,
		resolver: res,
		gameIDs:  gameIDs,
		cursors:  cursors,
		archiver: archiver,
		notifier: notifier,
		metrics:  m,
		logger:   logger.With(slog.String("component", "tracker")),
	}
}

// Run executes cycles until ctx is cancelled, starting with an immediate one.
// Caches are flushed after every cycle and once more on the way out, so a
// restart never loses resolved game ids or the settled cursor.
func (t *Tracker) Run(ctx context.Context) error {
	t.logger.Info("tracker started",
		slog.Duration("poll_interval", t.cfg.PollInterval),
	)

	ticker := time.NewTicker(t.cfg.PollInterval)
	defer ticker.Stop()

	t.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			t.shutdown()
			return ctx.Err()
		case <-ticker.C:
			t.cycle(ctx)
		}
	}
}

// cycle processes one batch of pending bets.
func (t *Tracker) cycle(ctx context.Context) {
	runID := uuid.NewString()
	start := time.Now()
	logger := t.logger.With(slog.String("run_id", runID))

	bets, err := t.source.Pending(ctx)
	if err != nil {
		logger.Error("reading bet source failed", slog.String("error", err.Error()))
		t.finishCycle(ctx, logger, start, false)
		return
	}
	t.metrics.SetPendingBets(len(bets))
	if len(bets) == 0 {
		logger.Debug("no pending bets")
		t.finishCycle(ctx, logger, start, true)
		return
	}

	t.resolver.BeginCycle()

	var settled []domain.Settlement
	failures := 0
	for _, rec := range bets {
		outcome, settlement, err := t.resolver.Process(ctx, rec)
		t.metrics.BetProcessed(string(outcome))
		switch outcome {
		case resolver.OutcomeResolved:
			t.metrics.NotificationSent("ok")
			settled = append(settled, *settlement)
		case resolver.OutcomeFailed:
			failures++
			logger.Warn("bet processing failed",
				slog.Int64("bet_id", rec.ID),
				slog.String("error", err.Error()),
			)
		}
		if ctx.Err() != nil {
			t.shutdown()
			return
		}
	}

	t.archive(ctx, logger, runID, settled)
	t.finishCycle(ctx, logger, start, failures == 0)

	logger.Info("cycle complete",
		slog.Int("bets", len(bets)),
		slog.Int("resolved", len(settled)),
		slog.Int("failures", failures),
		slog.Duration("took", time.Since(start)),
	)
}

// finishCycle flushes the caches, records metrics, and runs the
// consecutive-error escalation.
func (t *Tracker) finishCycle(ctx context.Context, logger *slog.Logger, start time.Time, ok bool) {
	t.flush(logger)

	status := "ok"
	if !ok {
		status = "error"
	}
	t.metrics.CycleCompleted(status, time.Since(start))

	if ok {
		t.consecutiveErrors = 0
		return
	}

	t.consecutiveErrors++
	if t.consecutiveErrors < t.cfg.MaxConsecutiveErrors {
		return
	}

	msg := fmt.Sprintf("%d consecutive cycles failed; pausing for %s",
		t.consecutiveErrors, t.cfg.ErrorBackoff)
	logger.Error("error threshold reached", slog.Int("consecutive_errors", t.consecutiveErrors))
	if err := t.notifier.Critical(ctx, msg); err != nil {
		logger.Error("critical alert delivery failed", slog.String("error", err.Error()))
	}

	select {
	case <-ctx.Done():
	case <-time.After(t.cfg.ErrorBackoff):
	}
	t.consecutiveErrors = 0
}

// archive uploads the cycle's settlements when an archiver is configured.
func (t *Tracker) archive(ctx context.Context, logger *slog.Logger, runID string, settled []domain.Settlement) {
	if t.archiver == nil || len(settled) == 0 {
		return
	}
	if err := t.archiver.Archive(ctx, runID, settled); err != nil {
		logger.Error("settlement archive failed", slog.String("error", err.Error()))
	}
}

// flush persists both caches. Flush runs against a background context so a
// cancelled cycle still writes state out.
func (t *Tracker) flush(logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := t.gameIDs.Flush(ctx); err != nil {
		logger.Error("game-id cache flush failed", slog.String("error", err.Error()))
	}
	if err := t.cursors.Flush(ctx); err != nil {
		logger.Error("cursor flush failed", slog.String("error", err.Error()))
	}
	if n, err := t.gameIDs.Len(ctx); err == nil {
		t.metrics.SetCachedGameIDs(n)
	}
}

func (t *Tracker) shutdown() {
	t.logger.Info("tracker stopping, flushing caches")
	t.flush(t.logger)
}
