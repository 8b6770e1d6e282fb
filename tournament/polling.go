/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Al-Wasmo/sec-chessbreak-board/board"
)

// vended by {base}/tournament/{leagueId}/{round}
type roundResponse struct {
	NumberOfRounds int            `json:"numberOfRounds"`
	Players        []namePairJSON `json:"players"`
}

type namePairJSON struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// PollingClient reads one round per request from the chessbreak backend.
type PollingClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewPollingClient(baseURL string, client *http.Client) *PollingClient {
	return &PollingClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    client,
	}
}

func (c *PollingClient) roundURL(league board.League, round int) string {
	return fmt.Sprintf("%v/tournament/%v/%v", strings.TrimRight(c.BaseURL, "/"),
		league.ID, round)
}

func (c *PollingClient) fetchRound(ctx context.Context, league board.League,
	round int) (*roundResponse, error) {

	var resp roundResponse
	what := fmt.Sprintf("%v round %v", league.Name, round)
	if err := getJSON(ctx, c.HTTP, c.roundURL(league, round), "", what,
		&resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// FetchRounds fetches round 1 to learn how many rounds exist and then rounds
// 2..numberOfRounds in order. On failure it returns the rounds gathered so
// far along with the error.
func (c *PollingClient) FetchRounds(ctx context.Context,
	league board.League) ([]board.Round, error) {

	first, err := c.fetchRound(ctx, league, 1)
	if err != nil {
		return nil, err
	}
	if first.NumberOfRounds <= 0 {
		return nil, nil
	}

	rounds := make([]board.Round, 0, first.NumberOfRounds)
	rounds = append(rounds, nameRound(first.Players))
	for r := 2; r <= first.NumberOfRounds; r++ {
		resp, err := c.fetchRound(ctx, league, r)
		if err != nil {
			return rounds, err
		}
		rounds = append(rounds, nameRound(resp.Players))
	}

	return rounds, nil
}

func nameRound(players []namePairJSON) board.Round {
	round := make(board.Round, 0, len(players))
	for _, p := range players {
		round = append(round, namePairing(p))
	}
	return round
}

func namePairing(p namePairJSON) board.Pairing {
	return board.Pairing{
		Kind:  board.NamePair,
		White: board.Participant{Name: p.Player1},
		Black: board.Participant{Name: p.Player2},
	}
}
