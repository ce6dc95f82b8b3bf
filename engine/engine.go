package engine

import (
	"errors"

	"reversi/game"
)

// Phase is the state of the turn controller.
type Phase int

const (
	Active Phase = iota
	AwaitingInput
	Ended
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case AwaitingInput:
		return "awaiting-input"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// EventKind tells the session what a Step decided.
type EventKind int

const (
	// EventAwait means the current player must choose a move.
	EventAwait EventKind = iota
	// EventPass means the current player had no move and the turn passed.
	EventPass
	// EventEnd means neither player can move, or the game was aborted.
	EventEnd
)

// Event is the outcome of a Step.
type Event struct {
	Kind   EventKind
	Passed game.Player // set for EventPass
	Result game.Result // set for EventEnd
}

var (
	ErrNotAwaiting = errors.New("controller is not awaiting a move")
	ErrEnded       = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
)
