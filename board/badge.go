/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package board

import "fmt"

const ByeResult = "Bye"

type Color int

const (
	Gray Color = iota
	Purple
	Green
	Yellow
	Red
)

func (c Color) String() string {
	switch c {
	case Purple:
		return "purple"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	default:
		return "gray"
	}
}

// Class returns the stylesheet class used for the badge background.
func (c Color) Class() string {
	return fmt.Sprintf("bg-%v-500", c)
}

// Badge is the short result label shown next to a rich-result pairing.
type Badge struct {
	Text  string
	Color Color
}

func (b Badge) Class() string {
	return b.Color.Class()
}

// ResultBadge summarizes a pairing outcome. whiteScore is nil when the game
// has not been played yet.
func ResultBadge(result string, whiteScore *float64) Badge {
	if result == ByeResult {
		return Badge{Text: "BYE", Color: Purple}
	}
	if whiteScore != nil {
		switch *whiteScore {
		case 1:
			return Badge{Text: "1-0", Color: Green}
		case 0.5:
			return Badge{Text: "½-½", Color: Yellow}
		case 0:
			return Badge{Text: "0-1", Color: Red}
		}
	}

	return Badge{Text: "TBD", Color: Gray}
}
