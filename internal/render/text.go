package render

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const emptyGlyph = "-"

// TurnBanner is the line shown above the board while a game is running.
func TurnBanner(player entity.Player) string {
	return "Player - " + player.String()
}

// GameOverText is the overlay message for a finished game; empty while the game is running.
func GameOverText(state entity.State) string {
	switch state.Status {
	case entity.StatusWon:
		return state.Winner.String() + " wins!"
	case entity.StatusDrawn:
		return "draw!"
	default:
		return ""
	}
}

// Text draws the board as three lines of marks.
func Text(state entity.State) string {
	var sb strings.Builder

	for r, row := range state.Cells {
		for c, cell := range row {
			if c > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(glyph(cell))
		}

		if r < len(state.Cells)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func glyph(cell entity.Player) string {
	if cell == entity.EmptyCell {
		return emptyGlyph
	}

	return cell.String()
}
