/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package board

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// BuildBoardOutput formats a round's rows into an aligned text table.
func BuildBoardOutput(league League, roundIdx int, rows []Row) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v Round %v Pairings:\n\n", league.Name, roundIdx+1))
	if len(rows) == 0 {
		sb.WriteString("No pairings posted for this round\n")
		return sb.String()
	}

	withResult := false
	for _, r := range rows {
		if r.Badge != nil {
			withResult = true
			break
		}
	}

	type line struct{ board, white, black, result string }
	lines := make([]line, 0, len(rows))
	for _, r := range rows {
		l := line{
			board: r.Board,
			white: playerCell(r.White, r.WhiteDisabled),
			black: playerCell(r.Black, r.BlackDisabled),
		}
		if r.Badge != nil {
			l.result = r.Badge.Text
		}
		lines = append(lines, l)
	}

	// Compute column widths
	maxB, maxW, maxBl := len("Board"), len("White"), len("Black")
	for _, l := range lines {
		if n := utf8.RuneCountInString(l.board); n > maxB {
			maxB = n
		}
		if n := utf8.RuneCountInString(l.white); n > maxW {
			maxW = n
		}
		if n := utf8.RuneCountInString(l.black); n > maxBl {
			maxBl = n
		}
	}

	if withResult {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxB, "Board",
			maxW, "White", maxBl, "Black", "Result"))
	} else {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %s\n", maxB, "Board", maxW,
			"White", "Black"))
	}
	for _, l := range lines {
		if withResult {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxB, l.board,
				maxW, l.white, maxBl, l.black, l.result))
		} else {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %s\n", maxB, l.board,
				maxW, l.white, l.black))
		}
	}

	return sb.String()
}

func playerCell(name string, disabled bool) string {
	if disabled {
		return name + " (withdrawn)"
	}
	return name
}
