/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package board

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultBotID    = "AlphaSec"
	DefaultBotTable = "C1"
	// names containing this get the sparkle effect on the web board
	DefaultHighlight = "smail"

	TablesPerLeague = 16
)

// League is an independent bracket with its own set of board labels.
type League struct {
	ID     string
	Name   string
	Tables []string
}

// DefaultLeagues returns the two leagues of the chessbreak deployment.
func DefaultLeagues() []League {
	return []League{
		{
			ID:     "1d706685527242e9a1d2cd49928a182e",
			Name:   "League 1",
			Tables: tableLabels("A", TablesPerLeague),
		},
		{
			ID:     "55539c6858e342828a61c0b0aca493a5",
			Name:   "League 2",
			Tables: tableLabels("B", TablesPerLeague),
		},
	}
}

func tableLabels(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return out
}

// Kind tags which upstream shape a Pairing was adapted from.
type Kind int

const (
	// NamePair pairings carry only the two participant identifiers.
	NamePair Kind = iota
	// RichResult pairings carry colors, a result and the white score.
	RichResult
)

func (k Kind) String() string {
	switch k {
	case NamePair:
		return "name-pair"
	case RichResult:
		return "rich-result"
	default:
		return "?"
	}
}

type Participant struct {
	Name     string
	Disabled bool
}

// Pairing is one board's match within a round. For NamePair pairings White
// holds player1 and Black holds player2; PairNum, Result and WhiteScore are
// only meaningful for RichResult pairings.
type Pairing struct {
	Kind       Kind
	White      Participant
	Black      Participant
	PairNum    int
	Result     string
	WhiteScore *float64
}

// Round is the ordered list of pairings; a pairing's index is its board
// assignment input.
type Round []Pairing

// Rules holds the deployment constants that drive presentation.
type Rules struct {
	BotID     string
	BotTable  string
	Highlight string
}

func DefaultRules() Rules {
	return Rules{
		BotID:     DefaultBotID,
		BotTable:  DefaultBotTable,
		Highlight: DefaultHighlight,
	}
}

// BoardLabel returns the table label for the pairing at position pos of its
// round. The bot always plays at BotTable. Positions past the end of the
// league's table list get a "#<n>" placeholder.
func (r Rules) BoardLabel(p Pairing, pos int, league League) string {
	if r.isBot(p.White.Name) || r.isBot(p.Black.Name) {
		return r.BotTable
	}
	if pos >= 0 && pos < len(league.Tables) {
		return league.Tables[pos]
	}

	return fmt.Sprintf("#%d", pos+1)
}

func (r Rules) isBot(name string) bool {
	return r.BotID != "" && name == r.BotID
}

func (r Rules) highlighted(name string) bool {
	if r.Highlight == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(r.Highlight))
}

// Capitalize upper-cases the first character and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(first)) + s[size:]
}
