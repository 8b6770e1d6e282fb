/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Al-Wasmo/sec-chessbreak-board/board"
	"github.com/joho/godotenv"
)

// Source kinds understood by BOARD_SOURCE.
const (
	SourcePolling = "polling"
	SourceBatch   = "batch"
)

// Preference backends understood by BOARD_PREFS.
const (
	PrefsMemory   = "memory"
	PrefsFile     = "file"
	PrefsS3       = "s3"
	PrefsRedis    = "redis"
	PrefsPostgres = "postgres"
)

// Config is the process configuration, read from the environment (and an
// optional .env file in the working directory).
type Config struct {
	ListenAddr string

	Source         string
	PollingBaseURL string
	BatchBaseURL   string
	BatchToken     string

	// empty means an in-memory http cache
	CacheBucket string
	CacheMaxAge time.Duration

	// empty means the binary picks its own default
	PrefsBackend string
	PrefsFile    string
	PrefsBucket  string
	RedisURL     string
	PostgresDSN  string

	BotID     string
	BotTable  string
	Highlight string

	DiscordPublicKey string
	DiscordToken     string
	DiscordAppID     string
	DiscordCmdID     string
}

// LoadConfig loads .env (when present) and builds a Config from the
// environment, applying defaults for anything unset.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("internal.config: unable to load .env: %w", err)
	}

	cfg := Config{
		ListenAddr:       envOr("BOARD_LISTEN", DefaultListen),
		Source:           envOr("BOARD_SOURCE", SourcePolling),
		PollingBaseURL:   envOr("BOARD_POLLING_URL", PollingBaseURL),
		BatchBaseURL:     os.Getenv("BOARD_BATCH_URL"),
		BatchToken:       os.Getenv("BOARD_BATCH_TOKEN"),
		CacheBucket:      os.Getenv("BOARD_CACHE_BUCKET"),
		CacheMaxAge:      time.Minute,
		PrefsBackend:     os.Getenv("BOARD_PREFS"),
		PrefsFile:        envOr("BOARD_PREFS_FILE", defaultPrefsFile()),
		PrefsBucket:      envOr("BOARD_PREFS_BUCKET", WebCacheBucket),
		RedisURL:         os.Getenv("BOARD_REDIS_URL"),
		PostgresDSN:      os.Getenv("BOARD_POSTGRES_DSN"),
		BotID:            envOr("BOARD_BOT_ID", board.DefaultBotID),
		BotTable:         envOr("BOARD_BOT_TABLE", board.DefaultBotTable),
		Highlight:        envOr("BOARD_HIGHLIGHT", board.DefaultHighlight),
		DiscordPublicKey: os.Getenv("DISCORD_PUBLIC_KEY"),
		DiscordToken:     os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordAppID:     os.Getenv("DISCORD_APP_ID"),
		DiscordCmdID:     os.Getenv("DISCORD_CMD_ID"),
	}

	if raw := os.Getenv("BOARD_CACHE_MAX_AGE"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("internal.config: bad BOARD_CACHE_MAX_AGE %q: %w",
				raw, err)
		}
		cfg.CacheMaxAge = d
	}

	switch cfg.Source {
	case SourcePolling:
	case SourceBatch:
		if cfg.BatchBaseURL == "" {
			return Config{}, fmt.Errorf("internal.config: BOARD_SOURCE=%v requires BOARD_BATCH_URL",
				cfg.Source)
		}
	default:
		return Config{}, fmt.Errorf("internal.config: unknown BOARD_SOURCE %q", cfg.Source)
	}

	return cfg, nil
}

// Rules returns the presentation rules configured for this deployment.
func (cfg Config) Rules() board.Rules {
	return board.Rules{
		BotID:     cfg.BotID,
		BotTable:  cfg.BotTable,
		Highlight: cfg.Highlight,
	}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func defaultPrefsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, DefaultPrefsDir, "prefs.json")
}
