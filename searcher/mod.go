package searcher

import (
	"context"
	"errors"

	"reversi/game"
)

// Config fixes the search depth and which heuristics contribute to the
// evaluation of a leaf.
type Config struct {
	MaxDepth          int  `json:"max_depth"`
	CoinParity        bool `json:"coin_parity"`
	ActualMobility    bool `json:"actual_mobility"`
	PotentialMobility bool `json:"potential_mobility"`
	Corners           bool `json:"corners"`
	Stability         bool `json:"stability"`
}

// Evaluator chooses a move for player on a flattened board (row-major, one
// signed value per cell). It returns a cell index in [0, 64) that is legal for
// player.
type Evaluator interface {
	Choose(ctx context.Context, player int8, board [game.Cells]int8, cfg Config) (int, error)
}

var ErrNoLegalMove = errors.New("no legal move")
