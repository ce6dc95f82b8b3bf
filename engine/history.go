package engine

import "reversi/game"

// history is a persistent stack: push and pop return new stacks and never touch
// the old ones, so Controller values can share it freely.
type history struct {
	state game.State
	prev  *history
	size  int
}

func (h *history) push(s game.State) *history {
	return &history{state: s, prev: h, size: h.len() + 1}
}

func (h *history) pop() (game.State, *history, bool) {
	if h == nil {
		return game.State{}, nil, false
	}
	return h.state, h.prev, true
}

func (h *history) len() int {
	if h == nil {
		return 0
	}
	return h.size
}
