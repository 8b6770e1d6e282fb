/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package board

// Row is everything needed to draw one pairing on the board.
type Row struct {
	Board         string
	White         string
	Black         string
	WhiteDisabled bool
	BlackDisabled bool
	// nil for name-pair rows, which carry no result data
	Badge          *Badge
	HighlightWhite bool
	HighlightBlack bool
}

// Rows derives the display rows for one round of a league.
func (r Rules) Rows(round Round, league League) []Row {
	rows := make([]Row, 0, len(round))
	for idx, p := range round {
		row := Row{
			Board:          r.BoardLabel(p, idx, league),
			WhiteDisabled:  p.White.Disabled,
			BlackDisabled:  p.Black.Disabled,
			HighlightWhite: r.highlighted(p.White.Name),
			HighlightBlack: r.highlighted(p.Black.Name),
		}
		if p.Kind == RichResult {
			row.White = p.White.Name
			row.Black = p.Black.Name
			badge := ResultBadge(p.Result, p.WhiteScore)
			row.Badge = &badge
		} else {
			row.White = Capitalize(p.White.Name)
			row.Black = Capitalize(p.Black.Name)
		}
		rows = append(rows, row)
	}

	return rows
}
