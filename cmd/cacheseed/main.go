/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Al-Wasmo/sec-chessbreak-board/board"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal/setup"
	"github.com/Al-Wasmo/sec-chessbreak-board/viewer"
)

// this program exists just to seed the shared http cache with every league's
// rounds so that the first viewers after a deploy don't wait on the backend

func main() {
	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatalf("cacheseed.main: %v", err)
	}
	if cfg.CacheBucket == "" {
		log.Printf("cacheseed.main: BOARD_CACHE_BUCKET unset; seeding an in-memory cache has no lasting effect")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := seed(ctx, setup.NewSource(ctx, cfg), board.DefaultLeagues())
	if err != nil {
		log.Fatalf("cacheseed.main: %v", err)
	}
	fmt.Printf("seeded %v rounds\n", n)
}

// seed fetches every league concurrently and returns how many rounds were
// fetched in total.
func seed(ctx context.Context, source viewer.Source,
	leagues []board.League) (int, error) {

	counts := make([]int, len(leagues))
	g, ctx := errgroup.WithContext(ctx)
	for idx, league := range leagues {
		g.Go(func() error {
			rounds, err := source.FetchRounds(ctx, league)
			counts[idx] = len(rounds)
			if err != nil {
				return fmt.Errorf("unable to seed %v: %w", league.Name, err)
			}
			fmt.Printf("seeded %v: %v rounds\n", league.Name, len(rounds))
			return nil
		})
	}
	err := g.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	return total, err
}
