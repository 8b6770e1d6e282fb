/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Al-Wasmo/sec-chessbreak-board/board"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal/setup"
	"github.com/Al-Wasmo/sec-chessbreak-board/viewer"
	"github.com/Al-Wasmo/sec-chessbreak-board/web"
)

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

func main() {
	debug := flag.Bool("debug", false, "log every request")
	listen := flag.String("listen", "", "listen address (overrides BOARD_LISTEN)")
	idleTTL := flag.Duration("idle", 24*time.Hour, "drop viewers idle for this long")
	flag.Parse()

	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatalf("boardd.main: %v", err)
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	store, closePrefs, err := setup.NewPrefs(ctx, cfg, internal.PrefsMemory)
	if err != nil {
		log.Fatalf("boardd.main: %v", err)
	}
	defer closePrefs()

	source := setup.NewSource(ctx, cfg)
	leagues := board.DefaultLeagues()
	rules := cfg.Rules()
	hub := viewer.NewHub(ctx, *idleTTL, func(id string) viewer.Options {
		return viewer.Options{
			Leagues:   leagues,
			Rules:     rules,
			Source:    source,
			Prefs:     store,
			Namespace: id,
		}
	})
	hub.Start(5 * time.Minute)
	defer hub.Stop()

	srv := web.NewServer(hub)
	srv.Debug = *debug
	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("boardd.main: shutdown failed: %v", err)
		}
	}()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("boardd.main: starting server on %v%v (source:%v)", hostname,
		cfg.ListenAddr, cfg.Source)
	if err := httpSrv.ListenAndServe(); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("boardd.main: Serve failed: %v", err)
	}

	log.Printf("boardd.main: exiting")
}
