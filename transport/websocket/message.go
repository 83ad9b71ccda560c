package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/render"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const (
	actionSessionNew = "session:new"
	actionGameTurn   = "game:turn"
	actionGameReset  = "game:reset"
	actionGameState  = "game:state"
)

var ErrMissingCell = errors.New("row and col are required")

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Session *entity.State      `json:"session,omitempty"`
	Outcome *tictactoe.Outcome `json:"outcome,omitempty"`
	Events  []tictactoe.Event  `json:"events,omitempty"`
	Banner  string             `json:"banner,omitempty"`
	Overlay string             `json:"overlay,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// turnRequest accepts row and col as numbers or numeric strings.
type turnRequest struct {
	Row *int `mapstructure:"row"`
	Col *int `mapstructure:"col"`
}

func decodeTurn(raw json.RawMessage) (int, int, error) {
	if len(raw) == 0 {
		return 0, 0, ErrMissingCell
	}

	var contents map[string]any
	if err := json.Unmarshal(raw, &contents); err != nil {
		return 0, 0, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	var request turnRequest
	if err := mapstructure.WeakDecode(contents, &request); err != nil {
		return 0, 0, fmt.Errorf("failed to decode turn: %w", err)
	}

	if request.Row == nil || request.Col == nil {
		return 0, 0, ErrMissingCell
	}

	return *request.Row, *request.Col, nil
}

// newPayload describes a session the way the browser draws it.
func newPayload(session *entity.Session) Payload {
	state := session.State()

	payload := Payload{
		Session: &state,
		Overlay: render.GameOverText(state),
	}

	if !session.IsTerminal() {
		payload.Banner = render.TurnBanner(state.Active)
	}

	return payload
}
