/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package setup

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
	"github.com/Al-Wasmo/sec-chessbreak-board/prefs"
	"github.com/Al-Wasmo/sec-chessbreak-board/tournament"
)

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	cfg := internal.Config{Source: internal.SourcePolling, PollingBaseURL: "http://poll"}
	if _, ok := NewSource(ctx, cfg).(*tournament.PollingClient); !ok {
		t.Errorf("polling config did not yield a PollingClient")
	}

	cfg = internal.Config{Source: internal.SourceBatch, BatchBaseURL: "http://api",
		BatchToken: "tok"}
	bc, ok := NewSource(ctx, cfg).(*tournament.BatchClient)
	if !ok {
		t.Fatalf("batch config did not yield a BatchClient")
	}
	if bc.Token != "tok" || bc.HTTP == nil {
		t.Errorf("unexpected batch client %+v", bc)
	}
}

func TestNewPrefs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")

	tests := []struct {
		name    string
		cfg     internal.Config
		def     string
		check   func(prefs.Store) bool
		wantErr bool
	}{
		{
			name:  "default memory",
			def:   internal.PrefsMemory,
			check: func(s prefs.Store) bool { _, ok := s.(*prefs.Memory); return ok },
		},
		{
			name:  "explicit file",
			cfg:   internal.Config{PrefsBackend: internal.PrefsFile, PrefsFile: path},
			def:   internal.PrefsMemory,
			check: func(s prefs.Store) bool { _, ok := s.(*prefs.File); return ok },
		},
		{
			name:    "redis without url",
			cfg:     internal.Config{PrefsBackend: internal.PrefsRedis},
			wantErr: true,
		},
		{
			name:    "postgres without dsn",
			cfg:     internal.Config{PrefsBackend: internal.PrefsPostgres},
			wantErr: true,
		},
		{
			name:    "unknown",
			cfg:     internal.Config{PrefsBackend: "sqlite"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, closeFn, err := NewPrefs(ctx, tc.cfg, tc.def)
			defer closeFn()
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error, got store %T", store)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPrefs returned error: %v", err)
			}
			if !tc.check(store) {
				t.Errorf("unexpected store type %T", store)
			}
		})
	}
}
