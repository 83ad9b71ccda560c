package tictactoe

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeWon      = "won"
	OutcomeDrawn    = "drawn"
)

// Outcome describes what a single move did to the session.
type Outcome struct {
	Kind string `json:"kind"`
	// Player is the next active player for accepted moves and the winner for won ones.
	Player entity.Player `json:"player,omitempty"`
	Line   *entity.Line  `json:"line,omitempty"`
	Reason error         `json:"-"`
}

func (that Outcome) IsRejected() bool {
	return that.Kind == OutcomeRejected
}

// ReasonCode is a stable name for the rejection reason.
func (that Outcome) ReasonCode() string {
	switch {
	case that.Reason == nil:
		return ""
	case errors.Is(that.Reason, apperror.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(that.Reason, apperror.ErrCellOccupied):
		return "cell_occupied"
	case errors.Is(that.Reason, apperror.ErrGameAlreadyOver):
		return "game_already_over"
	default:
		return "invalid_move"
	}
}

func (that Outcome) MarshalJSON() ([]byte, error) {
	type outcome Outcome

	data, err := json.Marshal(struct {
		outcome
		Reason string `json:"reason,omitempty"`
	}{
		outcome: outcome(that),
		Reason:  that.ReasonCode(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal outcome: %w", err)
	}

	return data, nil
}

// GameController drives one session: it validates moves, detects wins and draws and hands turns over.
// It is not safe for concurrent use.
type GameController struct {
	session   *entity.Session
	listeners []Listener
}

func NewGameController(session *entity.Session, listeners ...Listener) *GameController {
	if session == nil {
		session = entity.NewSession("")
	}

	if session.Board == nil {
		session.Board = entity.NewBoard()
	}

	return &GameController{
		session:   session,
		listeners: listeners,
	}
}

func (that *GameController) Subscribe(listener Listener) {
	that.listeners = append(that.listeners, listener)
}

func (that *GameController) Session() *entity.Session {
	return that.session
}

// ApplyMove places the active player's mark at row, col.
// Rejected moves leave the session untouched and return the reason as error too.
func (that *GameController) ApplyMove(row, col int) (Outcome, error) {
	session := that.session

	if session.IsTerminal() {
		return rejected(apperror.ErrGameAlreadyOver)
	}

	player := session.Active
	if err := session.Board.SetMark(row, col, player); err != nil {
		return rejected(err)
	}

	that.emit(Event{Type: EventCellMarked, Cell: &entity.Coord{Row: row, Col: col}, Player: player})

	if winner, line, ok := DetectWinner(session.Board); ok {
		session.Status = entity.StatusWon
		session.Winner = winner
		session.WinningLine = &line

		that.emit(Event{Type: EventWon, Player: winner, Line: &line})

		return Outcome{Kind: OutcomeWon, Player: winner, Line: &line}, nil
	}

	if session.Board.IsFull() {
		session.Status = entity.StatusDrawn

		that.emit(Event{Type: EventDrawn})

		return Outcome{Kind: OutcomeDrawn}, nil
	}

	session.Active = player.Opponent()
	that.emit(Event{Type: EventTurnChanged, Player: session.Active})

	return Outcome{Kind: OutcomeAccepted, Player: session.Active}, nil
}

func (that *GameController) CurrentState() entity.State {
	return that.session.State()
}

// Reset starts a new game in the same session.
func (that *GameController) Reset() {
	that.session.Restart()
	that.emit(Event{Type: EventReset, Player: that.session.Active})
}

// DetectWinner checks the lines in their fixed order and reports the first complete one.
func DetectWinner(board *entity.Board) (entity.Player, entity.Line, bool) {
	for _, line := range entity.Lines {
		if owner := line.Owner(board); owner != entity.EmptyCell {
			return owner, line, true
		}
	}

	return entity.EmptyCell, entity.Line{}, false
}

func (that *GameController) emit(event Event) {
	for _, listener := range that.listeners {
		listener.OnEvent(event)
	}
}

func rejected(reason error) (Outcome, error) {
	return Outcome{Kind: OutcomeRejected, Reason: reason}, fmt.Errorf("move rejected: %w", reason)
}
