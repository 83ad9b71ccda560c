package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const (
	colorX    = "#E06C75"
	colorO    = "#61AFEF"
	colorLine = "#98C379"
)

type stateSource interface {
	CurrentState() entity.State
}

// Terminal redraws the board on every game event.
type Terminal struct {
	out         *termenv.Output
	source      stateSource
	clearScreen bool
}

// NewTerminal builds a renderer writing to w. With clearScreen set the screen is wiped before every frame.
func NewTerminal(w io.Writer, source stateSource, clearScreen bool, opts ...termenv.OutputOption) *Terminal {
	return &Terminal{
		out:         termenv.NewOutput(w, opts...),
		source:      source,
		clearScreen: clearScreen,
	}
}

func (that *Terminal) OnEvent(event tictactoe.Event) {
	// the follow-up event carries the full picture
	if event.Type == tictactoe.EventCellMarked {
		return
	}

	that.Draw()
}

// Draw writes the current board followed by the banner or the game over line.
func (that *Terminal) Draw() {
	state := that.source.CurrentState()

	if that.clearScreen {
		that.out.ClearScreen()
		that.out.MoveCursor(1, 1)
	}

	fmt.Fprintln(that.out, that.Board(state))

	if text := GameOverText(state); text != "" {
		fmt.Fprintln(that.out, that.out.String(text).Bold().String())
		fmt.Fprintln(that.out, "press r to play again, q to quit")
		return
	}

	banner := that.out.String(TurnBanner(state.Active))
	if color := markColor(state.Active); color != "" {
		banner = banner.Foreground(that.out.Color(color))
	}

	fmt.Fprintln(that.out, banner.String())
}

// Board renders the grid with row and column indexes and the winning line highlighted.
func (that *Terminal) Board(state entity.State) string {
	var sb strings.Builder

	sb.WriteString("  0 1 2\n")
	for r, row := range state.Cells {
		sb.WriteString(strconv.Itoa(r))
		for c, cell := range row {
			sb.WriteString(" ")

			highlight := state.WinningLine != nil && state.WinningLine.Contains(entity.Coord{Row: r, Col: c})
			sb.WriteString(that.style(cell, highlight).String())
		}

		if r < len(state.Cells)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (that *Terminal) style(cell entity.Player, highlight bool) termenv.Style {
	styled := that.out.String(glyph(cell))

	if color := markColor(cell); color != "" {
		styled = styled.Foreground(that.out.Color(color))
	} else {
		styled = styled.Faint()
	}

	if highlight {
		styled = styled.Background(that.out.Color(colorLine)).Bold()
	}

	return styled
}

func markColor(player entity.Player) string {
	switch player {
	case entity.PlayerX:
		return colorX
	case entity.PlayerO:
		return colorO
	default:
		return ""
	}
}
