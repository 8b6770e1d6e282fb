/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Al-Wasmo/sec-chessbreak-board/board"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal/setup"
	"github.com/Al-Wasmo/sec-chessbreak-board/prefs"
	"github.com/Al-Wasmo/sec-chessbreak-board/viewer"
)

//go:embed help.txt
var helpText string

const fetchTimeout = 90 * time.Second

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":    handleHelp,
	"leagues": handleLeagues,
	"rounds":  handleRounds,
	"board":   handleBoard,
}

func main() {
	log.SetFlags(0)
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

type env struct {
	cfg    internal.Config
	store  prefs.Store
	source viewer.Source
	close  func()
}

func loadEnv(ctx context.Context) env {
	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	store, closeFn, err := setup.NewPrefs(ctx, cfg, internal.PrefsFile)
	if err != nil {
		log.Fatalf("Error opening preferences: %v", err)
	}

	return env{
		cfg:    cfg,
		store:  store,
		source: setup.NewSource(ctx, cfg),
		close:  closeFn,
	}
}

func (e env) newView(ctx context.Context) *viewer.View {
	return viewer.New(ctx, viewer.Options{
		Leagues: board.DefaultLeagues(),
		Rules:   e.cfg.Rules(),
		Source:  e.source,
		Prefs:   e.store,
	})
}

func handleLeagues(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("leagues", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	e := loadEnv(ctx)
	defer e.close()

	listLeagues(ctx, e, os.Stdout)
}

func listLeagues(ctx context.Context, e env, w io.Writer) {
	selected := e.store.Get(ctx, prefs.LeagueIndexKey, 0)
	for idx, l := range board.DefaultLeagues() {
		mark := " "
		if idx == selected {
			mark = "*"
		}
		fmt.Fprintf(w, "%v %d. %v (%v)\n", mark, idx+1, l.Name, l.ID)
	}
}

// waitBoard selects leagueArg (when set) and waits for its rounds.
func waitBoard(ctx context.Context, v *viewer.View,
	leagueArg string) (viewer.Snapshot, error) {

	if leagueArg != "" {
		idx, err := internal.ParseLeague(leagueArg, board.DefaultLeagues())
		if err != nil {
			return viewer.Snapshot{}, err
		}
		if err := v.SelectLeague(idx); err != nil {
			return viewer.Snapshot{}, fmt.Errorf("selecting league: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()
	snap, err := v.WaitReady(ctx)
	if err != nil {
		return viewer.Snapshot{}, fmt.Errorf("fetching pairings: %w", err)
	}
	if snap.Err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", snap.Err)
	}

	return snap, nil
}

func handleRounds(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rounds", flag.ExitOnError)
	league := fs.String("league", "", "League number, name or id")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	e := loadEnv(ctx)
	defer e.close()

	if err := showRounds(ctx, e, *league, os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func showRounds(ctx context.Context, e env, leagueArg string,
	w io.Writer) error {

	// inspect without remembering the league
	if leagueArg != "" {
		e.store = prefs.NewMemory()
	}
	v := e.newView(ctx)
	defer v.Close()

	snap, err := waitBoard(ctx, v, leagueArg)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v: %d rounds posted\n", snap.League.Name, snap.NumberOfRounds)
	if leagueArg == "" && snap.NumberOfRounds > 0 {
		fmt.Fprintf(w, "Selected: Round %d\n", snap.RoundIndex+1)
	}

	return nil
}

func handleBoard(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("board", flag.ExitOnError)
	league := fs.String("league", "", "League number, name or id")
	round := fs.String("round", "", "Round number (1-based)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	e := loadEnv(ctx)
	defer e.close()

	if err := showBoard(ctx, e, *league, *round, os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func showBoard(ctx context.Context, e env, leagueArg string, roundArg string,
	w io.Writer) error {

	v := e.newView(ctx)
	defer v.Close()

	if roundArg != "" {
		idx, err := internal.ParseRoundNumber(roundArg)
		if err != nil {
			return err
		}
		if err := v.SelectRound(idx); err != nil {
			return fmt.Errorf("selecting round: %w", err)
		}
	}

	snap, err := waitBoard(ctx, v, leagueArg)
	if err != nil {
		return err
	}
	fmt.Fprint(w, board.BuildBoardOutput(snap.League, snap.RoundIndex, snap.Rows))
	if snap.NumberOfRounds > 0 && snap.RoundIndex >= snap.NumberOfRounds {
		fmt.Fprintf(w, "\n%v has %d rounds posted\n", snap.League.Name,
			snap.NumberOfRounds)
	}

	return nil
}
