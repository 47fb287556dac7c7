// Package config defines the top-level configuration for the bet settlement
// tracker and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by BETTRACK_* environment
// variables.
type Config struct {
	PS3838   PS3838Config  `toml:"ps3838"`
	Source   SourceConfig  `toml:"source"`
	Cache    CacheConfig   `toml:"cache"`
	Redis    RedisConfig   `toml:"redis"`
	S3       S3Config      `toml:"s3"`
	Notify   NotifyConfig  `toml:"notify"`
	Tracker  TrackerConfig `toml:"tracker"`
	Metrics  MetricsConfig `toml:"metrics"`
	DataDir  string        `toml:"data_dir"`
	LogLevel string        `toml:"log_level"`
}

// PS3838Config holds provider API credentials and limits.
type PS3838Config struct {
	BaseURL           string   `toml:"base_url"`
	Username          string   `toml:"username"`
	Password          string   `toml:"password"`
	Timeout           duration `toml:"timeout"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
}

// SourceConfig selects where pending bets come from.
type SourceConfig struct {
	// Backend is "file" or "postgres".
	Backend string `toml:"backend"`

	// BetsFile is the JSON drop file path for the file backend.
	BetsFile string `toml:"bets_file"`

	// DSN and Table configure the postgres backend.
	DSN   string `toml:"dsn"`
	Table string `toml:"table"`
}

// CacheConfig selects how game ids and the settled cursor persist.
type CacheConfig struct {
	// Backend is "file" or "redis".
	Backend string `toml:"backend"`

	// GameIDsFile and CursorFile are paths for the file backend.
	GameIDsFile string `toml:"game_ids_file"`
	CursorFile  string `toml:"cursor_file"`
}

// RedisConfig holds Redis connection parameters for the redis cache backend.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// S3Config holds object-storage parameters for the settlement archive. The
// archive is off unless enabled.
type S3Config struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// TrackerConfig tunes the polling loop.
type TrackerConfig struct {
	PollInterval         duration `toml:"poll_interval"`
	MaxConsecutiveErrors int      `toml:"max_consecutive_errors"`
	ErrorBackoff         duration `toml:"error_backoff"`
}

// MetricsConfig holds the Prometheus listener settings.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values. These
// match the values in config.example.toml.
func Defaults() Config {
	return Config{
		PS3838: PS3838Config{
			BaseURL:           "https://api.ps3838.com/v3",
			Timeout:           duration{30 * time.Second},
			RequestsPerMinute: 30,
		},
		Source: SourceConfig{
			Backend:  "file",
			BetsFile: "data/bets_today.json",
			Table:    "bets",
		},
		Cache: CacheConfig{
			Backend:     "file",
			GameIDsFile: "data/game_ids.json",
			CursorFile:  "data/settled_last.json",
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   10,
			MaxRetries: 3,
		},
		S3: S3Config{
			Enabled:        false,
			Endpoint:       "",
			Region:         "us-east-1",
			Bucket:         "bettrack-archive",
			UseSSL:         true,
			ForcePathStyle: false,
		},
		Notify: NotifyConfig{
			Events: []string{"settlement", "critical"},
		},
		Tracker: TrackerConfig{
			PollInterval:         duration{time.Minute},
			MaxConsecutiveErrors: 5,
			ErrorBackoff:         duration{5 * time.Minute},
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
		DataDir:  "data",
		LogLevel: "info",
	}
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Provider credentials are always required; there is no offline mode.
	if c.PS3838.Username == "" {
		errs = append(errs, "ps3838: username must not be empty")
	}
	if c.PS3838.Password == "" {
		errs = append(errs, "ps3838: password must not be empty")
	}
	if c.PS3838.BaseURL == "" {
		errs = append(errs, "ps3838: base_url must not be empty")
	}
	if c.PS3838.RequestsPerMinute < 0 {
		errs = append(errs, "ps3838: requests_per_minute must be >= 0")
	}

	switch c.Source.Backend {
	case "file":
		if c.Source.BetsFile == "" {
			errs = append(errs, "source: bets_file must not be empty for the file backend")
		}
	case "postgres":
		if strings.TrimSpace(c.Source.DSN) == "" {
			errs = append(errs, "source: dsn must not be empty for the postgres backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("source: unknown backend %q (valid: file, postgres)", c.Source.Backend))
	}

	switch c.Cache.Backend {
	case "file":
		if c.Cache.GameIDsFile == "" {
			errs = append(errs, "cache: game_ids_file must not be empty for the file backend")
		}
		if c.Cache.CursorFile == "" {
			errs = append(errs, "cache: cursor_file must not be empty for the file backend")
		}
	case "redis":
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty for the redis cache backend")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	default:
		errs = append(errs, fmt.Sprintf("cache: unknown backend %q (valid: file, redis)", c.Cache.Backend))
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			errs = append(errs, "s3: bucket must not be empty when enabled")
		}
		if c.S3.Region == "" {
			errs = append(errs, "s3: region must not be empty when enabled")
		}
	}

	if c.Tracker.PollInterval.Duration <= 0 {
		errs = append(errs, "tracker: poll_interval must be > 0")
	}
	if c.Tracker.MaxConsecutiveErrors < 1 {
		errs = append(errs, "tracker: max_consecutive_errors must be >= 1")
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			errs = append(errs, fmt.Sprintf("metrics: port must be 1-65535, got %d", c.Metrics.Port))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
