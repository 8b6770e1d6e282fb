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

// vended by {api}/tournament/Rounds/{leagueId}
type batchResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Rounds [][]richPairingJSON `json:"rounds"`
	} `json:"result"`
}

type participantJSON struct {
	Name     string `json:"name"`
	Disabled bool   `json:"disabled"`
}

type richPairingJSON struct {
	PairNum     int              `json:"pairNum"`
	White       *participantJSON `json:"white"`
	Black       *participantJSON `json:"black"`
	Result      string           `json:"result"`
	WhiteResult *float64         `json:"whiteResult"`
}

// BatchClient reads every round of a league in one authorized request.
type BatchClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewBatchClient(baseURL string, token string,
	client *http.Client) *BatchClient {

	return &BatchClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    client,
	}
}

func (c *BatchClient) FetchRounds(ctx context.Context,
	league board.League) ([]board.Round, error) {

	url := fmt.Sprintf("%v/tournament/Rounds/%v",
		strings.TrimRight(c.BaseURL, "/"), league.ID)

	var resp batchResponse
	if err := getJSON(ctx, c.HTTP, url, c.Token, league.Name+" rounds",
		&resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("unable to fetch %v rounds: %w", league.Name,
			ErrUnsuccessful)
	}

	rounds := make([]board.Round, 0, len(resp.Result.Rounds))
	for _, in := range resp.Result.Rounds {
		round := make(board.Round, 0, len(in))
		for _, p := range in {
			round = append(round, richPairing(p))
		}
		rounds = append(rounds, round)
	}

	return rounds, nil
}

func participant(p *participantJSON) board.Participant {
	if p == nil {
		return board.Participant{}
	}
	return board.Participant{Name: p.Name, Disabled: p.Disabled}
}

func richPairing(p richPairingJSON) board.Pairing {
	return board.Pairing{
		Kind:       board.RichResult,
		White:      participant(p.White),
		Black:      participant(p.Black),
		PairNum:    p.PairNum,
		Result:     p.Result,
		WhiteScore: p.WhiteResult,
	}
}
