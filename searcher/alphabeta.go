package searcher

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"reversi/game"
	"reversi/meta"
)

// How many nodes are expanded between two checks of the search context.
const checkInterval = 1024

type Option func(ab *AlphaBeta)

// WithMetrics records node, leaf and cutoff counts for every search.
func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.metrics = NewMetricsCollector()
	}
}

// WithDepthLimit caps the depth any Config may request.
func WithDepthLimit(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.depthLimit = depth
		}
	}
}

// AlphaBeta is a depth-limited minimax search with alpha-beta pruning. First
// maximises the evaluation and Second minimises it.
type AlphaBeta struct {
	depthLimit int
	metrics    MetricsCollector

	mu   sync.Mutex
	last SearchMetrics
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		depthLimit: meta.DEPTH_LIMIT,
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

// LastMetrics returns the metrics of the most recent completed search.
func (ab *AlphaBeta) LastMetrics() SearchMetrics {
	ab.mu.Lock()
	defer ab.mu.Unlock()
	return ab.last
}

func (ab *AlphaBeta) Choose(ctx context.Context, player int8, board [game.Cells]int8, cfg Config) (int, error) {
	cell, err := ab.Search(ctx, toPlayer(player), game.Unflatten(board), cfg)
	if err != nil {
		return -1, err
	}
	return cell.Index(), nil
}

// Search returns the best cell for player on b.
func (ab *AlphaBeta) Search(ctx context.Context, player game.Player, b game.Board, cfg Config) (game.Cell, error) {
	if !player.Valid() {
		return game.Cell{}, fmt.Errorf("search: invalid player %d", player)
	}
	depth := cfg.MaxDepth
	if depth < 1 {
		depth = 1
	}
	if depth > ab.depthLimit {
		depth = ab.depthLimit
	}

	// Metrics collection shares one collector, so searches on one AlphaBeta run
	// one at a time.
	ab.mu.Lock()
	defer ab.mu.Unlock()

	moves := orderedMoves(player, b)
	if len(moves) == 0 {
		return game.Cell{}, ErrNoLegalMove
	}

	s := &search{ctx: ctx, cfg: cfg, metrics: ab.metrics}
	ab.metrics.Start(depth)

	alpha, beta := math.Inf(-1), math.Inf(1)
	best := moves[0]
	for _, move := range moves {
		score, err := s.minimax(player.Opponent(), game.Apply(player, b, move), depth-1, alpha, beta)
		if err != nil {
			return game.Cell{}, err
		}
		if player == game.First && score > alpha {
			alpha = score
			best = move
		}
		if player == game.Second && score < beta {
			beta = score
			best = move
		}
	}

	ab.last = ab.metrics.Complete()
	log.Debug().
		Str("player", player.String()).
		Int("depth", depth).
		Int64("nodes", ab.last.Nodes).
		Stringer("move", best).
		Msg("search complete")
	return best, nil
}

type search struct {
	ctx     context.Context
	cfg     Config
	metrics MetricsCollector
	nodes   int
}

func (s *search) minimax(player game.Player, b game.Board, depth int, alpha, beta float64) (float64, error) {
	s.metrics.AddNode()
	s.nodes++
	if s.nodes%checkInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			return 0, err
		}
	}

	if depth == 0 {
		s.metrics.AddLeaf()
		return evaluate(s.cfg, b), nil
	}

	moves := orderedMoves(player, b)
	if len(moves) == 0 {
		if !game.LegalMoves(player.Opponent(), b).Any() {
			s.metrics.AddLeaf()
			return evaluate(s.cfg, b), nil
		}
		// A pass consumes one ply.
		return s.minimax(player.Opponent(), b, depth-1, alpha, beta)
	}

	if player == game.First {
		best := math.Inf(-1)
		for _, move := range moves {
			score, err := s.minimax(game.Second, game.Apply(player, b, move), depth-1, alpha, beta)
			if err != nil {
				return 0, err
			}
			best = math.Max(best, score)
			alpha = math.Max(alpha, score)
			if score >= beta {
				s.metrics.AddCutoff()
				break
			}
		}
		return best, nil
	}

	best := math.Inf(1)
	for _, move := range moves {
		score, err := s.minimax(game.First, game.Apply(player, b, move), depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		best = math.Min(best, score)
		beta = math.Min(beta, score)
		if score <= alpha {
			s.metrics.AddCutoff()
			break
		}
	}
	return best, nil
}

type scoredMove struct {
	cell  game.Cell
	flips int
}

// orderedMoves lists the legal cells, most flips first. Ties keep row-major
// order.
func orderedMoves(player game.Player, b game.Board) []game.Cell {
	legal := game.LegalMoves(player, b).Cells()
	scored := make([]scoredMove, len(legal))
	for i, c := range legal {
		scored[i] = scoredMove{cell: c, flips: game.Flips(player, b, c)}
	}
	slices.SortStableFunc(scored, func(a, b scoredMove) int {
		return b.flips - a.flips
	})
	cells := make([]game.Cell, len(scored))
	for i, m := range scored {
		cells[i] = m.cell
	}
	return cells
}

func toPlayer(v int8) game.Player {
	switch {
	case v > 0:
		return game.First
	case v < 0:
		return game.Second
	default:
		return game.None
	}
}
