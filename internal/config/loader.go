package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies BETTRACK_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known BETTRACK_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject the provider credentials at deploy time without
// touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── PS3838 ──
	setStr(&cfg.PS3838.BaseURL, "BETTRACK_PS3838_BASE_URL")
	setStr(&cfg.PS3838.Username, "BETTRACK_PS3838_USERNAME")
	setStr(&cfg.PS3838.Password, "BETTRACK_PS3838_PASSWORD")
	setDuration(&cfg.PS3838.Timeout, "BETTRACK_PS3838_TIMEOUT")
	setInt(&cfg.PS3838.RequestsPerMinute, "BETTRACK_PS3838_REQUESTS_PER_MINUTE")

	// ── Source ──
	setStr(&cfg.Source.Backend, "BETTRACK_SOURCE_BACKEND")
	setStr(&cfg.Source.BetsFile, "BETTRACK_SOURCE_BETS_FILE")
	setStr(&cfg.Source.DSN, "BETTRACK_SOURCE_DSN")
	setStr(&cfg.Source.Table, "BETTRACK_SOURCE_TABLE")

	// ── Cache ──
	setStr(&cfg.Cache.Backend, "BETTRACK_CACHE_BACKEND")
	setStr(&cfg.Cache.GameIDsFile, "BETTRACK_CACHE_GAME_IDS_FILE")
	setStr(&cfg.Cache.CursorFile, "BETTRACK_CACHE_CURSOR_FILE")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "BETTRACK_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "BETTRACK_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "BETTRACK_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "BETTRACK_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "BETTRACK_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "BETTRACK_REDIS_TLS_ENABLED")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "BETTRACK_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "BETTRACK_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "BETTRACK_S3_REGION")
	setStr(&cfg.S3.Bucket, "BETTRACK_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "BETTRACK_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "BETTRACK_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "BETTRACK_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "BETTRACK_S3_FORCE_PATH_STYLE")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "BETTRACK_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "BETTRACK_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "BETTRACK_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "BETTRACK_NOTIFY_EVENTS")

	// ── Tracker ──
	setDuration(&cfg.Tracker.PollInterval, "BETTRACK_TRACKER_POLL_INTERVAL")
	setInt(&cfg.Tracker.MaxConsecutiveErrors, "BETTRACK_TRACKER_MAX_CONSECUTIVE_ERRORS")
	setDuration(&cfg.Tracker.ErrorBackoff, "BETTRACK_TRACKER_ERROR_BACKOFF")

	// ── Metrics ──
	setBool(&cfg.Metrics.Enabled, "BETTRACK_METRICS_ENABLED")
	setInt(&cfg.Metrics.Port, "BETTRACK_METRICS_PORT")

	// ── Top-level ──
	setStr(&cfg.DataDir, "BETTRACK_DATA_DIR")
	setStr(&cfg.LogLevel, "BETTRACK_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
