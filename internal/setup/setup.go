/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package setup turns an internal.Config into the collaborators the binaries
// share: the tournament source and the preference store.
package setup

import (
	"context"
	"fmt"

	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal/httpcache"
	"github.com/Al-Wasmo/sec-chessbreak-board/prefs"
	"github.com/Al-Wasmo/sec-chessbreak-board/s3store"
	"github.com/Al-Wasmo/sec-chessbreak-board/tournament"
	"github.com/Al-Wasmo/sec-chessbreak-board/viewer"
)

// NewSource returns the configured tournament source behind a cached http
// client.
func NewSource(ctx context.Context, cfg internal.Config) viewer.Source {
	client := httpcache.NewCachedHttpClient(ctx, cfg.CacheBucket, cfg.CacheMaxAge)

	switch cfg.Source {
	case internal.SourceBatch:
		return tournament.NewBatchClient(cfg.BatchBaseURL, cfg.BatchToken, client)
	default:
		return tournament.NewPollingClient(cfg.PollingBaseURL, client)
	}
}

// NewPrefs opens the configured preference store, or def when the config
// names none. The returned func releases the store's connections.
func NewPrefs(ctx context.Context, cfg internal.Config,
	def string) (prefs.Store, func(), error) {

	noop := func() {}
	backend := cfg.PrefsBackend
	if backend == "" {
		backend = def
	}

	switch backend {
	case internal.PrefsMemory:
		return prefs.NewMemory(), noop, nil
	case internal.PrefsFile:
		return prefs.NewFile(cfg.PrefsFile), noop, nil
	case internal.PrefsS3:
		bucket := s3store.New(cfg.PrefsBucket, false)
		if err := bucket.Init(ctx); err != nil {
			return nil, noop, fmt.Errorf("unable to open s3 prefs: %w", err)
		}
		return prefs.NewS3(bucket), noop, nil
	case internal.PrefsRedis:
		if cfg.RedisURL == "" {
			return nil, noop, fmt.Errorf("BOARD_PREFS=redis requires BOARD_REDIS_URL")
		}
		r, err := prefs.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("unable to open redis prefs: %w", err)
		}
		return r, func() { _ = r.Close() }, nil
	case internal.PrefsPostgres:
		if cfg.PostgresDSN == "" {
			return nil, noop, fmt.Errorf("BOARD_PREFS=postgres requires BOARD_POSTGRES_DSN")
		}
		p, err := prefs.NewPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("unable to open postgres prefs: %w", err)
		}
		return p, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown BOARD_PREFS %q", backend)
	}
}
