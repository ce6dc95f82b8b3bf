package engine

import (
	"fmt"

	"reversi/game"
)

// Controller is the turn state machine. It is an immutable value: every
// transition returns a new Controller and leaves the receiver untouched.
type Controller struct {
	phase   Phase
	state   game.State
	history *history
	result  game.Result
	aborted bool
}

// Start returns a controller at the opening position with First to move.
func Start() Controller {
	return Resume(game.Opening())
}

// Resume returns a controller positioned at s with an empty history.
func Resume(s game.State) Controller {
	return Controller{phase: Active, state: s}
}

func (c Controller) Phase() Phase {
	return c.phase
}

// State returns the current snapshot.
func (c Controller) State() game.State {
	return c.state
}

// Result is meaningful once Phase is Ended and the game was not aborted.
func (c Controller) Result() game.Result {
	return c.result
}

func (c Controller) Aborted() bool {
	return c.aborted
}

// History returns the number of undoable snapshots.
func (c Controller) History() int {
	return c.history.len()
}

// CanUndo reports whether Undo would change the state. Undo is disabled once
// the game has ended.
func (c Controller) CanUndo() bool {
	return c.phase != Ended && c.history != nil
}

// Step evaluates the turn rules for the current state. A player without a legal
// move passes; if the opponent cannot move either the game ends. Otherwise the
// controller waits for the current player's move.
func (c Controller) Step() (Controller, Event) {
	switch c.phase {
	case Ended:
		return c, Event{Kind: EventEnd, Result: c.result}
	case AwaitingInput:
		return c, Event{Kind: EventAwait}
	}

	if c.state.CanMove() {
		c.phase = AwaitingInput
		return c, Event{Kind: EventAwait}
	}

	passed := c.state.Player
	next := c.state.Pass()
	if !next.CanMove() {
		c.phase = Ended
		c.result = game.Score(c.state.Board)
		return c, Event{Kind: EventEnd, Result: c.result}
	}
	c.state = next
	return c, Event{Kind: EventPass, Passed: passed}
}

// Commit plays cell for the current player. When undoable is set the pre-move
// snapshot is pushed onto the history.
func (c Controller) Commit(cell game.Cell, undoable bool) (Controller, error) {
	switch c.phase {
	case Ended:
		return c, ErrEnded
	case Active:
		return c, ErrNotAwaiting
	}
	if !c.state.Legal.At(cell) {
		return c, fmt.Errorf("%w: %v for %v", ErrIllegalMove, cell, c.state.Player)
	}

	if undoable {
		c.history = c.history.push(c.state)
	}
	c.state = c.state.Play(cell)
	c.phase = Active
	return c, nil
}

// Undo restores the most recent history entry. It is a no-op, reporting false,
// when the history is empty or the game has ended.
func (c Controller) Undo() (Controller, bool) {
	if c.phase == Ended {
		return c, false
	}
	prev, rest, ok := c.history.pop()
	if !ok {
		return c, false
	}
	c.state = prev
	c.history = rest
	c.phase = Active
	return c, true
}

// Abort ends the game unconditionally, clearing the board and the history.
func (c Controller) Abort() Controller {
	return Controller{
		phase:   Ended,
		state:   game.Empty(),
		aborted: true,
	}
}
