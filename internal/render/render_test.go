package render

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

func TestTurnBanner(t *testing.T) {
	assert.Equal(t, "Player - X", TurnBanner(entity.PlayerX))
	assert.Equal(t, "Player - O", TurnBanner(entity.PlayerO))
}

func TestGameOverText(t *testing.T) {
	t.Run("Empty while the game runs", func(t *testing.T) {
		state := entity.NewSession("1").State()

		assert.Empty(t, GameOverText(state))
	})

	t.Run("Names the winner", func(t *testing.T) {
		state := entity.State{Status: entity.StatusWon, Winner: entity.PlayerO}

		assert.Equal(t, "O wins!", GameOverText(state))
	})

	t.Run("Draw", func(t *testing.T) {
		state := entity.State{Status: entity.StatusDrawn}

		assert.Equal(t, "draw!", GameOverText(state))
	})
}

func TestText(t *testing.T) {
	// Given: a board with two marks
	session := entity.NewSession("1")
	require.NoError(t, session.Board.SetMark(0, 0, entity.PlayerX))
	require.NoError(t, session.Board.SetMark(1, 2, entity.PlayerO))

	// When: it is drawn as text
	text := Text(session.State())

	// Then: empty cells use a dash
	assert.Equal(t, "X - -\n- - O\n- - -", text)
}

func TestTerminal(t *testing.T) {
	t.Run("Redraws on turn change with the banner", func(t *testing.T) {
		// Given: a controller with a plain terminal renderer attached
		var buf bytes.Buffer
		controller := tictactoe.NewGameController(entity.NewSession("1"))
		controller.Subscribe(NewTerminal(&buf, controller, false, termenv.WithProfile(termenv.Ascii)))

		// When: X plays the center
		_, err := controller.ApplyMove(1, 1)
		require.NoError(t, err)

		// Then: the board and the next player's banner are printed once
		assert.Equal(t, "  0 1 2\n0 - - -\n1 - X -\n2 - - -\nPlayer - O\n", buf.String())
	})

	t.Run("Shows the game over line", func(t *testing.T) {
		// Given: a game one move from X winning
		var buf bytes.Buffer
		controller := tictactoe.NewGameController(entity.NewSession("1"))
		for _, move := range []entity.Coord{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}} {
			_, err := controller.ApplyMove(move.Row, move.Col)
			require.NoError(t, err)
		}
		controller.Subscribe(NewTerminal(&buf, controller, false, termenv.WithProfile(termenv.Ascii)))

		// When: X completes the top row
		_, err := controller.ApplyMove(0, 2)
		require.NoError(t, err)

		// Then: the overlay text replaces the banner
		assert.Contains(t, buf.String(), "X wins!")
		assert.NotContains(t, buf.String(), "Player - ")
	})
}
