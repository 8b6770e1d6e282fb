/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package tournament fetches round pairings from the chessbreak tournament
// backends and adapts each upstream shape to board.Pairing.
package tournament

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
)

// ErrUnsuccessful is returned when the batched API answers success=false.
var ErrUnsuccessful = errors.New("tournament: upstream reported failure")

func httpClient(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}

// getJSON issues a GET against url and decodes the body into out. what names
// the object being fetched in error messages.
func getJSON(ctx context.Context, client *http.Client, url string,
	token string, what string, out any) error {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("unable to fetch %v (new): %w", what, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")
	if internal.Revalidate(ctx) {
		req.Header.Set("Cache-Control", "no-cache")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient(client).Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v (do): %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unable to fetch %v (http): %v", what, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to fetch %v (decode): %w", what, err)
	}

	return nil
}
