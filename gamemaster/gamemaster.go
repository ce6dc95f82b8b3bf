package gamemaster

import (
	"context"

	"reversi/game"
)

// Controls is the enabled state of the session's input controls.
type Controls struct {
	Start bool `json:"start"`
	End   bool `json:"end"`
	Undo  bool `json:"undo"`
	Seats bool `json:"seats"` // seat selects for both sides
}

// View displays a session. Render may hold the session for as long as it needs
// to pace the display but must return once ctx is done.
type View interface {
	Render(ctx context.Context, s game.State) error
	Notice(msg string)
	Result(r game.Result)
	Controls(c Controls)
}

// Interrupts carries the external end and undo requests of a session. A nil
// channel never fires.
type Interrupts struct {
	Abort <-chan struct{}
	Undo  <-chan struct{}
}

// SignalKind tells the session loop what won a suspension point.
type SignalKind int

const (
	Continue SignalKind = iota
	Abort
	Undo
)

func (k SignalKind) String() string {
	switch k {
	case Continue:
		return "continue"
	case Abort:
		return "abort"
	case Undo:
		return "undo"
	default:
		return "unknown"
	}
}

// Signal is the outcome of a suspension point. Cell is set when a move won.
type Signal struct {
	Kind SignalKind
	Cell game.Cell
}

// Outcome summarises a finished session.
type Outcome struct {
	Result  *game.Result // nil when the game was aborted
	Aborted bool
	Final   game.State // last position before teardown
	Moves   int        // committed moves, undone ones included
}
