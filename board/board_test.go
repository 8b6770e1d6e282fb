/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package board

import (
	"strings"
	"testing"
)

func namePair(p1, p2 string) Pairing {
	return Pairing{
		Kind:  NamePair,
		White: Participant{Name: p1},
		Black: Participant{Name: p2},
	}
}

func score(v float64) *float64 {
	return &v
}

func TestDefaultLeagues(t *testing.T) {
	leagues := DefaultLeagues()
	if len(leagues) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(leagues))
	}
	for idx, prefix := range []string{"A", "B"} {
		l := leagues[idx]
		if len(l.Tables) != TablesPerLeague {
			t.Fatalf("%v: expected %d tables, got %d", l.Name,
				TablesPerLeague, len(l.Tables))
		}
		if l.Tables[0] != prefix+"1" || l.Tables[15] != prefix+"16" {
			t.Errorf("%v: unexpected tables %v", l.Name, l.Tables)
		}
	}
}

func TestBoardLabelByPosition(t *testing.T) {
	rules := DefaultRules()
	league := DefaultLeagues()[0]

	for pos := 0; pos < len(league.Tables); pos++ {
		p := namePair("alice", "bob")
		if got := rules.BoardLabel(p, pos, league); got != league.Tables[pos] {
			t.Errorf("pos %d: got %q; want %q", pos, got, league.Tables[pos])
		}
	}
}

func TestBoardLabelBot(t *testing.T) {
	rules := DefaultRules()
	league := DefaultLeagues()[1]

	cases := []struct {
		name string
		p    Pairing
	}{
		{name: "bot as player1", p: namePair(DefaultBotID, "bob")},
		{name: "bot as player2", p: namePair("alice", DefaultBotID)},
		{
			name: "bot as black in rich result",
			p: Pairing{
				Kind:  RichResult,
				White: Participant{Name: "carol"},
				Black: Participant{Name: DefaultBotID},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, pos := range []int{0, 3, 15, 40} {
				if got := rules.BoardLabel(c.p, pos, league); got != DefaultBotTable {
					t.Errorf("pos %d: got %q; want %q", pos, got, DefaultBotTable)
				}
			}
		})
	}
}

func TestBoardLabelOverflow(t *testing.T) {
	rules := DefaultRules()
	league := DefaultLeagues()[0]

	if got := rules.BoardLabel(namePair("a", "b"), 16, league); got != "#17" {
		t.Errorf("got %q; want #17", got)
	}
	if got := rules.BoardLabel(namePair("a", "b"), 0, League{}); got != "#1" {
		t.Errorf("got %q; want #1", got)
	}
}

func TestBoardLabelEmptyNamesNotBot(t *testing.T) {
	rules := Rules{BotID: "", BotTable: "C1"}
	league := DefaultLeagues()[0]

	if got := rules.BoardLabel(namePair("", ""), 2, league); got != "A3" {
		t.Errorf("got %q; want A3", got)
	}
}

func TestResultBadge(t *testing.T) {
	cases := []struct {
		name   string
		result string
		score  *float64
		want   Badge
	}{
		{"bye wins over score", ByeResult, score(1), Badge{"BYE", Purple}},
		{"bye without score", ByeResult, nil, Badge{"BYE", Purple}},
		{"white won", "1-0", score(1), Badge{"1-0", Green}},
		{"draw", "", score(0.5), Badge{"½-½", Yellow}},
		{"black won", "anything", score(0), Badge{"0-1", Red}},
		{"not played", "", nil, Badge{"TBD", Gray}},
		{"odd score", "", score(0.25), Badge{"TBD", Gray}},
		{"lowercase bye is not a bye", "bye", nil, Badge{"TBD", Gray}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ResultBadge(c.result, c.score); got != c.want {
				t.Errorf("got %+v; want %+v", got, c.want)
			}
		})
	}
}

func TestBadgeClass(t *testing.T) {
	want := map[Color]string{
		Purple: "bg-purple-500",
		Green:  "bg-green-500",
		Yellow: "bg-yellow-500",
		Red:    "bg-red-500",
		Gray:   "bg-gray-500",
	}
	for c, cls := range want {
		if got := (Badge{Color: c}).Class(); got != cls {
			t.Errorf("%v: got %q; want %q", c, got, cls)
		}
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"smail":    "Smail",
		"Smail":    "Smail",
		"a":        "A",
		"éric":     "Éric",
		"john doe": "John doe",
		"1player":  "1player",
	}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestRowsNamePair(t *testing.T) {
	rules := DefaultRules()
	league := DefaultLeagues()[0]
	round := Round{
		namePair("smail", "bob"),
		namePair("carol", DefaultBotID),
		namePair("dave", "erin"),
	}

	rows := rules.Rows(round, league)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []struct{ board, white, black string }{
		{"A1", "Smail", "Bob"},
		{DefaultBotTable, "Carol", DefaultBotID},
		{"A3", "Dave", "Erin"},
	}
	for idx, w := range want {
		r := rows[idx]
		if r.Board != w.board || r.White != w.white || r.Black != w.black {
			t.Errorf("row %d: got %+v; want %+v", idx, r, w)
		}
		if r.Badge != nil {
			t.Errorf("row %d: name-pair rows must not carry a badge", idx)
		}
	}
	if !rows[0].HighlightWhite || rows[0].HighlightBlack {
		t.Errorf("expected only white highlighted on row 0: %+v", rows[0])
	}
}

func TestRowsRichResult(t *testing.T) {
	rules := DefaultRules()
	league := DefaultLeagues()[1]
	round := Round{
		{
			Kind:       RichResult,
			PairNum:    1,
			White:      Participant{Name: "alice"},
			Black:      Participant{Name: "bob", Disabled: true},
			WhiteScore: score(0.5),
		},
		{
			Kind:    RichResult,
			PairNum: 2,
			White:   Participant{Name: "carol"},
			Result:  ByeResult,
		},
	}

	rows := rules.Rows(round, league)
	if rows[0].White != "alice" {
		t.Errorf("rich-result names must be verbatim, got %q", rows[0].White)
	}
	if !rows[0].BlackDisabled {
		t.Errorf("expected black disabled")
	}
	if rows[0].Badge == nil || rows[0].Badge.Text != "½-½" {
		t.Errorf("unexpected badge %+v", rows[0].Badge)
	}
	if rows[1].Board != "B2" || rows[1].Badge == nil || rows[1].Badge.Color != Purple {
		t.Errorf("unexpected bye row %+v", rows[1])
	}
}

func TestBuildBoardOutput(t *testing.T) {
	rules := DefaultRules()
	league := DefaultLeagues()[0]

	out := BuildBoardOutput(league, 0, rules.Rows(Round{namePair("alice", "bob")}, league))
	if !strings.Contains(out, "League 1 Round 1 Pairings") {
		t.Errorf("missing heading in %q", out)
	}
	if !strings.Contains(out, "A1") || !strings.Contains(out, "Alice") {
		t.Errorf("missing pairing in %q", out)
	}
	if strings.Contains(out, "Result") {
		t.Errorf("name-pair output must not have a result column: %q", out)
	}

	rich := Round{{Kind: RichResult, White: Participant{Name: "x"},
		Black: Participant{Name: "y"}, WhiteScore: score(1)}}
	out = BuildBoardOutput(league, 2, rules.Rows(rich, league))
	if !strings.Contains(out, "Round 3") || !strings.Contains(out, "1-0") {
		t.Errorf("unexpected rich output %q", out)
	}

	out = BuildBoardOutput(league, 4, nil)
	if !strings.Contains(out, "No pairings posted") {
		t.Errorf("unexpected empty output %q", out)
	}
}
