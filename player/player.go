package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"reversi/game"
	"reversi/searcher"
	"reversi/utils"
)

// Player chooses moves for one seat.
type Player interface {
	// Undoable reports whether moves committed for this player are recorded in
	// the undo history.
	Undoable() bool
	// SelectMove blocks until a legal cell of s is chosen or ctx is done.
	SelectMove(ctx context.Context, s game.State) (game.Cell, error)
}

var ErrContractViolation = errors.New("evaluator contract violation")

// Seat options accepted by New.
const (
	Human     = "human"
	CPUEasy   = "cpu-easy"
	CPUNormal = "cpu-normal"
	CPUHard   = "cpu-hard"
)

var options = []string{Human, CPUEasy, CPUNormal, CPUHard}

// Options lists the seat options in display order.
func Options() []string {
	return slices.Clone(options)
}

// New builds the player for a seat option. Unknown options fall back to a human
// seat.
func New(option string, evaluator searcher.Evaluator, interactive *Interactive) (Player, error) {
	if utils.FindIndex(options, option) < 0 {
		log.Warn().Str("option", option).Msg("unknown seat option, seating a human")
		option = Human
	}
	if option == Human {
		if interactive == nil {
			return nil, fmt.Errorf("seat %q needs an interactive input", option)
		}
		return interactive, nil
	}
	if evaluator == nil {
		return nil, fmt.Errorf("seat %q needs an evaluator", option)
	}
	tier, err := ParseTier(option)
	if err != nil {
		return nil, err
	}
	return NewAutomated(evaluator, tier.Config()), nil
}
