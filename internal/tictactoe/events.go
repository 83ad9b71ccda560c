package tictactoe

import "github.com/rocketscienceinc/tictactoe-web/internal/entity"

const (
	EventCellMarked  = "cell_marked"
	EventTurnChanged = "turn_changed"
	EventWon         = "won"
	EventDrawn       = "drawn"
	EventReset       = "reset"
)

// Event is a state change notification for presentation code.
type Event struct {
	Type   string        `json:"type"`
	Cell   *entity.Coord `json:"cell,omitempty"`
	Player entity.Player `json:"player,omitempty"`
	Line   *entity.Line  `json:"line,omitempty"`
}

type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(event Event)

func (that ListenerFunc) OnEvent(event Event) {
	that(event)
}

// Recorder collects events in the order they were emitted.
type Recorder struct {
	Events []Event
}

func (that *Recorder) OnEvent(event Event) {
	that.Events = append(that.Events, event)
}

func (that *Recorder) Types() []string {
	types := make([]string, 0, len(that.Events))
	for _, event := range that.Events {
		types = append(types, event.Type)
	}

	return types
}
