/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Al-Wasmo/sec-chessbreak-board/board"
	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
)

var league1 = board.DefaultLeagues()[0]

// pollingServer answers /tournament/{id}/{round} with numberOfRounds rounds
// of two pairings each and records the order rounds were requested in.
type pollingServer struct {
	mu        sync.Mutex
	requested []string
	failRound string
	numRounds int
}

func (s *pollingServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[0] != "tournament" || parts[1] != league1.ID {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("User-Agent") != internal.UserAgent {
		http.Error(w, "bad user agent", http.StatusBadRequest)
		return
	}
	round := parts[2]

	s.mu.Lock()
	s.requested = append(s.requested, round)
	s.mu.Unlock()

	if round == s.failRound {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"numberOfRounds":%d,"players":[`+
		`{"player1":"r%sw1","player2":"r%sb1"},`+
		`{"player1":"r%sw2","player2":"r%sb2"}]}`,
		s.numRounds, round, round, round, round)
}

func TestPollingFetchRoundsInOrder(t *testing.T) {
	srv := &pollingServer{numRounds: 3}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := NewPollingClient(ts.URL+"/", ts.Client())
	rounds, err := client.FetchRounds(context.Background(), league1)
	if err != nil {
		t.Fatalf("FetchRounds returned error: %v", err)
	}

	if got := strings.Join(srv.requested, ","); got != "1,2,3" {
		t.Errorf("requested rounds %v; want 1,2,3", got)
	}
	if len(rounds) != 3 {
		t.Fatalf("got %d rounds; want 3", len(rounds))
	}
	for i, round := range rounds {
		want := fmt.Sprintf("r%dw1", i+1)
		if len(round) != 2 || round[0].White.Name != want {
			t.Errorf("rounds[%d] = %+v; want first white %v", i, round, want)
		}
		if round[0].Kind != board.NamePair {
			t.Errorf("rounds[%d] kind %v; want name-pair", i, round[0].Kind)
		}
	}
}

func TestPollingNoRounds(t *testing.T) {
	srv := &pollingServer{numRounds: 0}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	rounds, err := NewPollingClient(ts.URL, ts.Client()).FetchRounds(
		context.Background(), league1)
	if err != nil {
		t.Fatalf("FetchRounds returned error: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("got %d rounds; want none", len(rounds))
	}
}

func TestPollingPartialFailure(t *testing.T) {
	srv := &pollingServer{numRounds: 4, failRound: "3"}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	rounds, err := NewPollingClient(ts.URL, ts.Client()).FetchRounds(
		context.Background(), league1)
	if err == nil {
		t.Fatalf("expected error for failed round 3")
	}
	if len(rounds) != 2 {
		t.Errorf("got %d rounds; want the 2 gathered before the failure",
			len(rounds))
	}
	if got := strings.Join(srv.requested, ","); got != "1,2,3" {
		t.Errorf("requested rounds %v; want 1,2,3", got)
	}
}

func TestPollingFirstRoundFailure(t *testing.T) {
	srv := &pollingServer{numRounds: 2, failRound: "1"}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	rounds, err := NewPollingClient(ts.URL, ts.Client()).FetchRounds(
		context.Background(), league1)
	if err == nil {
		t.Fatalf("expected error")
	}
	if rounds != nil {
		t.Errorf("got %v; want nil rounds", rounds)
	}
}

func TestPollingMalformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"numberOfRounds":`)
		}))
	defer ts.Close()

	_, err := NewPollingClient(ts.URL, ts.Client()).FetchRounds(
		context.Background(), league1)
	if err == nil || !strings.Contains(err.Error(), "(decode)") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestPollingMissingPlayers(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"numberOfRounds":1,"players":[{"player1":"smail"}]}`)
		}))
	defer ts.Close()

	rounds, err := NewPollingClient(ts.URL, ts.Client()).FetchRounds(
		context.Background(), league1)
	if err != nil {
		t.Fatalf("FetchRounds returned error: %v", err)
	}
	p := rounds[0][0]
	if p.White.Name != "smail" || p.Black.Name != "" {
		t.Errorf("got %+v; want white smail and empty black", p)
	}
}

func TestPollingCancelled(t *testing.T) {
	srv := &pollingServer{numRounds: 3}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPollingClient(ts.URL, ts.Client()).FetchRounds(ctx, league1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

const batchBody = `{
  "success": true,
  "result": {
    "rounds": [
      [
        {"pairNum": 1, "white": {"name": "AlphaSec", "disabled": false},
         "black": {"name": "smail", "disabled": false}, "result": "1-0",
         "whiteResult": 1},
        {"pairNum": 2, "white": {"name": "Nadia", "disabled": true},
         "black": null, "result": "Bye"}
      ],
      [
        {"pairNum": 1, "white": {"name": "smail", "disabled": false},
         "black": {"name": "Nadia", "disabled": false}, "result": "",
         "whiteResult": 0.5}
      ]
    ]
  }
}`

func TestBatchFetchRounds(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/tournament/Rounds/"+league1.ID {
				http.NotFound(w, r)
				return
			}
			if r.Header.Get("Authorization") != "Bearer sekrit" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, batchBody)
		}))
	defer ts.Close()

	rounds, err := NewBatchClient(ts.URL, "sekrit", ts.Client()).FetchRounds(
		context.Background(), league1)
	if err != nil {
		t.Fatalf("FetchRounds returned error: %v", err)
	}
	if len(rounds) != 2 || len(rounds[0]) != 2 || len(rounds[1]) != 1 {
		t.Fatalf("unexpected round shape: %+v", rounds)
	}

	first := rounds[0][0]
	if first.Kind != board.RichResult || first.PairNum != 1 {
		t.Errorf("got %+v; want rich-result pairNum 1", first)
	}
	if first.WhiteScore == nil || *first.WhiteScore != 1 {
		t.Errorf("expected white score 1, got %v", first.WhiteScore)
	}

	bye := rounds[0][1]
	if !bye.White.Disabled || bye.Black.Name != "" || bye.Result != board.ByeResult {
		t.Errorf("got %+v; want disabled white, empty black and a bye", bye)
	}
	if bye.WhiteScore != nil {
		t.Errorf("expected absent white score, got %v", *bye.WhiteScore)
	}
	if got := board.ResultBadge(bye.Result, bye.WhiteScore).Text; got != "BYE" {
		t.Errorf("bye badge %q", got)
	}
}

func TestBatchUnauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		}))
	defer ts.Close()

	_, err := NewBatchClient(ts.URL, "", ts.Client()).FetchRounds(
		context.Background(), league1)
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("expected http 401 error, got %v", err)
	}
}

func TestBatchUnsuccessful(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success":false,"result":null}`)
		}))
	defer ts.Close()

	rounds, err := NewBatchClient(ts.URL, "t", ts.Client()).FetchRounds(
		context.Background(), league1)
	if !errors.Is(err, ErrUnsuccessful) {
		t.Errorf("expected ErrUnsuccessful, got %v", err)
	}
	if rounds != nil {
		t.Errorf("expected no rounds, got %v", rounds)
	}
}

func TestRevalidateSendsNoCache(t *testing.T) {
	var cacheControl []string
	var mu sync.Mutex
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			cacheControl = append(cacheControl, r.Header.Get("Cache-Control"))
			mu.Unlock()
			fmt.Fprint(w, `{"numberOfRounds":1,"players":[]}`)
		}))
	defer ts.Close()

	client := NewPollingClient(ts.URL, ts.Client())
	ctx := context.Background()
	if _, err := client.FetchRounds(ctx, league1); err != nil {
		t.Fatal(err)
	}
	if _, err := client.FetchRounds(internal.WithRevalidate(ctx), league1); err != nil {
		t.Fatal(err)
	}

	if len(cacheControl) != 2 || cacheControl[0] != "" ||
		cacheControl[1] != "no-cache" {
		t.Errorf("Cache-Control headers %q; want [\"\" \"no-cache\"]",
			cacheControl)
	}
}
