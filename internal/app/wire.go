package app

import (
	"context"
	"fmt"
	"log/slog"

	s3blob "github.com/abrahamrubi0/bettrack/internal/blob/s3"
	cachefile "github.com/abrahamrubi0/bettrack/internal/cache/file"
	cacheredis "github.com/abrahamrubi0/bettrack/internal/cache/redis"
	"github.com/abrahamrubi0/bettrack/internal/config"
	"github.com/abrahamrubi0/bettrack/internal/domain"
	"github.com/abrahamrubi0/bettrack/internal/metrics"
	"github.com/abrahamrubi0/bettrack/internal/notify"
	"github.com/abrahamrubi0/bettrack/internal/platform/ps3838"
	"github.com/abrahamrubi0/bettrack/internal/resolver"
	"github.com/abrahamrubi0/bettrack/internal/source"
	"github.com/abrahamrubi0/bettrack/internal/teams"
	"github.com/abrahamrubi0/bettrack/internal/tracker"
)

// Dependencies bundles everything App runs: the tracker itself plus the
// metrics registry the scrape endpoint serves. It is constructed by Wire and
// torn down by the returned cleanup function.
type Dependencies struct {
	Tracker *tracker.Tracker
	Metrics *metrics.Metrics
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	m := metrics.New()

	// --- Caches ---
	var gameIDs domain.GameIDCache
	var cursors domain.CursorStore
	switch cfg.Cache.Backend {
	case "redis":
		rc, err := cacheredis.New(ctx, cacheredis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = rc.Close() })
		gameIDs = cacheredis.NewGameIDCache(rc)
		cursors = cacheredis.NewCursorStore(rc)
	default:
		gameIDs = cachefile.NewGameIDCache(cfg.Cache.GameIDsFile, logger)
		cursors = cachefile.NewCursorStore(cfg.Cache.CursorFile, logger)
	}

	// --- Bet source ---
	var bets domain.BetSource
	switch cfg.Source.Backend {
	case "postgres":
		pool, err := source.Connect(ctx, cfg.Source.DSN)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: bet source: %w", err)
		}
		closers = append(closers, pool.Close)
		bets = source.NewPostgresSource(pool, cfg.Source.Table)
	default:
		bets = source.NewFileSource(cfg.Source.BetsFile, logger)
	}

	// --- Provider client ---
	client := ps3838.NewClient(ps3838.Config{
		BaseURL:           cfg.PS3838.BaseURL,
		Username:          cfg.PS3838.Username,
		Password:          cfg.PS3838.Password,
		Timeout:           cfg.PS3838.Timeout.Duration,
		RequestsPerMinute: cfg.PS3838.RequestsPerMinute,
	})
	client.OnRequest = m.ProviderRequest

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	notifier := notify.NewNotifier(senders, cfg.Notify.Events, logger)

	// --- Settlement archive (optional) ---
	var archiver domain.SettlementArchiver
	if cfg.S3.Enabled {
		s3c, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		archiver = s3blob.NewArchiver(s3c)
	}

	// --- Resolution pipeline ---
	registry := teams.NewRegistry(cfg.DataDir, logger)
	fixtures := resolver.NewFixtureMatcher(client, gameIDs, logger)
	settled := resolver.NewSettledResolver(client, cursors, logger)
	res := resolver.New(fixtures, settled, gameIDs, registry, notifier, logger)

	trk := tracker.New(
		tracker.Config{
			PollInterval:         cfg.Tracker.PollInterval.Duration,
			MaxConsecutiveErrors: cfg.Tracker.MaxConsecutiveErrors,
			ErrorBackoff:         cfg.Tracker.ErrorBackoff.Duration,
		},
		bets, res, gameIDs, cursors, archiver, notifier, m, logger,
	)

	return &Dependencies{Tracker: trk, Metrics: m}, cleanup, nil
}
