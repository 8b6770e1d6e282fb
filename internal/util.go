/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Al-Wasmo/sec-chessbreak-board/board"
)

// ParseRoundNumber converts a user supplied 1-based round ("3", "r3",
// "Round 3") to a zero-based round index.
func ParseRoundNumber(s string) (int, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.TrimPrefix(t, "round")
	t = strings.TrimPrefix(t, "r")
	n, err := strconv.Atoi(strings.TrimSpace(t))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid round %q: expected a round number >= 1", s)
	}

	return n - 1, nil
}

// ParseLeague resolves a user supplied league reference to an index into
// leagues. It accepts a 1-based number, a league id or a league name, case
// insensitively ("2", "league 2", "55539c68...").
func ParseLeague(s string, leagues []board.League) (int, error) {
	t := strings.TrimSpace(s)
	if n, err := strconv.Atoi(t); err == nil {
		if n < 1 || n > len(leagues) {
			return 0, fmt.Errorf("invalid league %q: expected 1..%v", s, len(leagues))
		}
		return n - 1, nil
	}
	for idx, l := range leagues {
		if strings.EqualFold(t, l.ID) || strings.EqualFold(t, l.Name) {
			return idx, nil
		}
	}

	return 0, fmt.Errorf("unknown league %q", s)
}

type revalidateKey struct{}

// WithRevalidate marks ctx so that upstream fetches made with it bypass any
// fresh cached response.
func WithRevalidate(ctx context.Context) context.Context {
	return context.WithValue(ctx, revalidateKey{}, true)
}

func Revalidate(ctx context.Context) bool {
	v, _ := ctx.Value(revalidateKey{}).(bool)
	return v
}
