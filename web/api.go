/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package web

import (
	"encoding/json"
	"net/http"

	"github.com/Al-Wasmo/sec-chessbreak-board/viewer"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type badgeJSON struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

type rowJSON struct {
	Board          string     `json:"board"`
	White          string     `json:"white"`
	Black          string     `json:"black"`
	WhiteDisabled  bool       `json:"whiteDisabled,omitempty"`
	BlackDisabled  bool       `json:"blackDisabled,omitempty"`
	Badge          *badgeJSON `json:"badge,omitempty"`
	HighlightWhite bool       `json:"highlightWhite,omitempty"`
	HighlightBlack bool       `json:"highlightBlack,omitempty"`
}

type boardJSON struct {
	State          string    `json:"state"`
	Generation     uint64    `json:"generation"`
	Leagues        []string  `json:"leagues"`
	LeagueIndex    int       `json:"leagueIndex"`
	League         string    `json:"league"`
	RoundIndex     int       `json:"roundIndex"`
	NumberOfRounds int       `json:"numberOfRounds"`
	Rows           []rowJSON `json:"rows"`
	Error          string    `json:"error,omitempty"`
}

func newBoardJSON(snap viewer.Snapshot) boardJSON {
	out := boardJSON{
		State:          snap.State.String(),
		Generation:     snap.Generation,
		LeagueIndex:    snap.LeagueIndex,
		League:         snap.League.Name,
		RoundIndex:     snap.RoundIndex,
		NumberOfRounds: snap.NumberOfRounds,
		Rows:           make([]rowJSON, 0, len(snap.Rows)),
	}
	for _, l := range snap.Leagues {
		out.Leagues = append(out.Leagues, l.Name)
	}
	for _, r := range snap.Rows {
		row := rowJSON{
			Board:          r.Board,
			White:          r.White,
			Black:          r.Black,
			WhiteDisabled:  r.WhiteDisabled,
			BlackDisabled:  r.BlackDisabled,
			HighlightWhite: r.HighlightWhite,
			HighlightBlack: r.HighlightBlack,
		}
		if r.Badge != nil {
			row.Badge = &badgeJSON{Text: r.Badge.Text, Class: r.Badge.Class()}
		}
		out.Rows = append(out.Rows, row)
	}
	if snap.Err != nil {
		out.Error = snap.Err.Error()
	}

	return out
}
