package player

import (
	"context"
	"fmt"

	"reversi/game"
	"reversi/searcher"
)

// Automated delegates move choice to an evaluator. Its moves are not undoable.
type Automated struct {
	evaluator searcher.Evaluator
	config    searcher.Config
}

func NewAutomated(evaluator searcher.Evaluator, config searcher.Config) *Automated {
	if evaluator == nil {
		panic("automated player needs an evaluator")
	}
	return &Automated{evaluator: evaluator, config: config}
}

func (p *Automated) Undoable() bool { return false }

func (p *Automated) Config() searcher.Config { return p.config }

// SelectMove checks the evaluator's answer against s. Anything other than a
// legal cell index is a contract violation.
func (p *Automated) SelectMove(ctx context.Context, s game.State) (game.Cell, error) {
	index, err := p.evaluator.Choose(ctx, int8(s.Player), s.Board.Flatten(), p.config)
	if err != nil {
		if ctx.Err() != nil {
			return game.Cell{}, ctx.Err()
		}
		return game.Cell{}, fmt.Errorf("%w: %w", ErrContractViolation, err)
	}
	if index < 0 || index >= game.Cells {
		return game.Cell{}, fmt.Errorf("%w: index %d out of range", ErrContractViolation, index)
	}
	c := game.CellFromIndex(index)
	if !s.Legal.At(c) {
		return game.Cell{}, fmt.Errorf("%w: %v is not legal for %v", ErrContractViolation, c, s.Player)
	}
	return c, nil
}
