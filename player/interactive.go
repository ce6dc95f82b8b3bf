package player

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"reversi/game"
)

type request struct {
	legal game.Mask
	reply chan game.Cell
}

// Interactive is a human seat. Its moves arrive through Select, typically from
// a transport goroutine, and may be undone.
type Interactive struct {
	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]request
}

func NewInteractive() *Interactive {
	return &Interactive{pending: make(map[uint64]request)}
}

func (p *Interactive) Undoable() bool { return true }

func (p *Interactive) SelectMove(ctx context.Context, s game.State) (game.Cell, error) {
	reply := make(chan game.Cell, 1)

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.pending[id] = request{legal: s.Legal, reply: reply}
	p.mu.Unlock()

	select {
	case c := <-reply:
		return c, nil
	case <-ctx.Done():
		p.mu.Lock()
		delete(p.pending, id)
		p.mu.Unlock()
		return game.Cell{}, ctx.Err()
	}
}

// Select offers a cell to every pending request. Requests whose legal mask
// contains the cell resolve and are removed. It returns false when nobody took
// the cell.
func (p *Interactive) Select(c game.Cell) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	resolved := false
	for id, r := range p.pending {
		if !r.legal.At(c) {
			continue
		}
		r.reply <- c
		delete(p.pending, id)
		resolved = true
	}
	if !resolved {
		log.Debug().Int("row", c.Row).Int("col", c.Col).Msg("selection ignored")
	}
	return resolved
}

// Pending returns the number of unresolved requests.
func (p *Interactive) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
