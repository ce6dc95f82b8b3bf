package searcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"reversi/game"
)

func mustBoard(t *testing.T, s string) game.Board {
	t.Helper()
	b, err := game.ParseBoard(s)
	require.NoError(t, err)
	return b
}

func swapColors(b game.Board) game.Board {
	for row := range b {
		for col := range b[row] {
			b[row][col] = -b[row][col]
		}
	}
	return b
}

const greedyBoard = `
	.OX.....
	........
	........
	.OOOX...
	........
	........
	........
	........`

func TestSearch(t *testing.T) {
	t.Run("First maximises coin parity", func(t *testing.T) {
		b := mustBoard(t, greedyBoard)
		ab := NewAlphaBeta()

		cell, err := ab.Search(context.Background(), game.First, b, Config{MaxDepth: 1, CoinParity: true})

		require.NoError(t, err)
		require.Equal(t, game.Cell{Row: 3, Col: 0}, cell, "three flips beat one flip")
	})

	t.Run("Second minimises coin parity", func(t *testing.T) {
		b := swapColors(mustBoard(t, greedyBoard))
		ab := NewAlphaBeta()

		cell, err := ab.Search(context.Background(), game.Second, b, Config{MaxDepth: 1, CoinParity: true})

		require.NoError(t, err)
		require.Equal(t, game.Cell{Row: 3, Col: 0}, cell)
	})

	t.Run("returns a legal move for every depth", func(t *testing.T) {
		s := game.Opening().Play(game.Cell{Row: 2, Col: 3})
		ab := NewAlphaBeta()
		for depth := 1; depth <= 4; depth++ {
			cfg := Config{MaxDepth: depth, CoinParity: true, ActualMobility: true, PotentialMobility: true, Corners: true, Stability: true}

			cell, err := ab.Search(context.Background(), s.Player, s.Board, cfg)

			require.NoError(t, err)
			require.True(t, s.Legal.At(cell), "depth %d chose illegal %v", depth, cell)
		}
	})

	t.Run("no legal move is an error", func(t *testing.T) {
		_, err := NewAlphaBeta().Search(context.Background(), game.First, game.Board{}, Config{MaxDepth: 2})

		require.ErrorIs(t, err, ErrNoLegalMove)
	})

	t.Run("invalid player is an error", func(t *testing.T) {
		_, err := NewAlphaBeta().Search(context.Background(), game.None, game.OpeningBoard(), Config{MaxDepth: 2})

		require.Error(t, err)
	})

	t.Run("cancelled context stops the search", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewAlphaBeta().Search(ctx, game.First, game.OpeningBoard(), Config{MaxDepth: 8, CoinParity: true})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestChoose(t *testing.T) {
	t.Run("returns a flattened legal index", func(t *testing.T) {
		b := mustBoard(t, greedyBoard)

		index, err := NewAlphaBeta().Choose(context.Background(), 1, b.Flatten(), Config{MaxDepth: 1, CoinParity: true})

		require.NoError(t, err)
		require.Equal(t, 24, index, "(3,0) flattens to 24")
	})

	t.Run("depth below one searches one ply", func(t *testing.T) {
		index, err := NewAlphaBeta().Choose(context.Background(), 1, game.OpeningBoard().Flatten(), Config{})

		require.NoError(t, err)
		require.True(t, game.Opening().Legal.At(game.CellFromIndex(index)))
	})
}

func TestMetrics(t *testing.T) {
	t.Run("collects counts when enabled", func(t *testing.T) {
		ab := NewAlphaBeta(WithMetrics())

		_, err := ab.Search(context.Background(), game.First, game.OpeningBoard(), Config{MaxDepth: 3, CoinParity: true})

		require.NoError(t, err)
		m := ab.LastMetrics()
		require.Equal(t, 3, m.MaxDepth)
		require.Greater(t, m.Nodes, int64(0))
		require.Greater(t, m.Leaves, int64(0))
		require.LessOrEqual(t, m.Leaves, m.Nodes)
	})

	t.Run("depth limit caps the config", func(t *testing.T) {
		ab := NewAlphaBeta(WithMetrics(), WithDepthLimit(2))

		_, err := ab.Search(context.Background(), game.First, game.OpeningBoard(), Config{MaxDepth: 8})

		require.NoError(t, err)
		require.Equal(t, 2, ab.LastMetrics().MaxDepth)
	})

	t.Run("is empty when disabled", func(t *testing.T) {
		ab := NewAlphaBeta()

		_, err := ab.Search(context.Background(), game.First, game.OpeningBoard(), Config{MaxDepth: 2})

		require.NoError(t, err)
		require.Equal(t, SearchMetrics{}, ab.LastMetrics())
	})
}
