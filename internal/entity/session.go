package entity

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDrawn      = "drawn"
)

// Session is a single game from the first move to a win or a draw.
type Session struct {
	ID          string `json:"id"`
	Board       *Board `json:"board"`
	Active      Player `json:"active"`
	Status      string `json:"status"`
	Winner      Player `json:"winner,omitempty"`
	WinningLine *Line  `json:"winning_line,omitempty"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Board:  NewBoard(),
		Active: PlayerX,
		Status: StatusInProgress,
	}
}

func (that *Session) IsTerminal() bool {
	return that.Status != StatusInProgress
}

func (that *Session) IsWon() bool {
	return that.Status == StatusWon
}

func (that *Session) IsDrawn() bool {
	return that.Status == StatusDrawn
}

// Restart puts the session back into its initial state, keeping its ID.
func (that *Session) Restart() {
	if that.Board == nil {
		that.Board = NewBoard()
	}

	that.Board.Reset()
	that.Active = PlayerX
	that.Status = StatusInProgress
	that.Winner = EmptyCell
	that.WinningLine = nil
}

// State is a read-only view of a session handed to presentation code.
type State struct {
	SessionID   string                       `json:"session_id"`
	Cells       [BoardSize][BoardSize]Player `json:"cells"`
	Active      Player                       `json:"active"`
	Status      string                       `json:"status"`
	Winner      Player                       `json:"winner,omitempty"`
	WinningLine *Line                        `json:"winning_line,omitempty"`
}

func (that *Session) State() State {
	state := State{
		SessionID: that.ID,
		Active:    that.Active,
		Status:    that.Status,
		Winner:    that.Winner,
	}

	if that.Board != nil {
		state.Cells = that.Board.Cells()
	}

	if that.WinningLine != nil {
		line := *that.WinningLine
		state.WinningLine = &line
	}

	return state
}
