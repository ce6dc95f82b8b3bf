package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"reversi/game"
	"reversi/searcher"
)

type mockEvaluator struct {
	index  int
	err    error
	calls  int
	player int8
	board  [game.Cells]int8
	config searcher.Config
}

func (m *mockEvaluator) Choose(ctx context.Context, player int8, board [game.Cells]int8, cfg searcher.Config) (int, error) {
	m.calls++
	m.player = player
	m.board = board
	m.config = cfg
	return m.index, m.err
}

type blockingEvaluator struct{}

func (blockingEvaluator) Choose(ctx context.Context, _ int8, _ [game.Cells]int8, _ searcher.Config) (int, error) {
	<-ctx.Done()
	return -1, ctx.Err()
}

func TestInteractive(t *testing.T) {
	t.Run("legal selection resolves the request", func(t *testing.T) {
		p := NewInteractive()
		done := make(chan game.Cell, 1)
		go func() {
			c, err := p.SelectMove(context.Background(), game.Opening())
			if err == nil {
				done <- c
			}
		}()
		require.Eventually(t, func() bool { return p.Pending() == 1 }, time.Second, time.Millisecond)

		require.True(t, p.Select(game.Cell{Row: 2, Col: 3}))

		select {
		case c := <-done:
			require.Equal(t, game.Cell{Row: 2, Col: 3}, c)
		case <-time.After(time.Second):
			t.Fatal("request did not resolve")
		}
		require.Equal(t, 0, p.Pending(), "resolved request is removed")
	})

	t.Run("illegal selection is ignored", func(t *testing.T) {
		p := NewInteractive()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _, _ = p.SelectMove(ctx, game.Opening()) }()
		require.Eventually(t, func() bool { return p.Pending() == 1 }, time.Second, time.Millisecond)

		require.False(t, p.Select(game.Cell{Row: 0, Col: 0}), "corner is not legal at the opening")
		require.False(t, p.Select(game.Cell{Row: 3, Col: 3}), "occupied cell is never legal")
		require.Equal(t, 1, p.Pending(), "request stays pending")
	})

	t.Run("selection without a request is ignored", func(t *testing.T) {
		require.False(t, NewInteractive().Select(game.Cell{Row: 2, Col: 3}))
	})

	t.Run("cancellation removes the request", func(t *testing.T) {
		p := NewInteractive()
		ctx, cancel := context.WithCancel(context.Background())
		errs := make(chan error, 1)
		go func() {
			_, err := p.SelectMove(ctx, game.Opening())
			errs <- err
		}()
		require.Eventually(t, func() bool { return p.Pending() == 1 }, time.Second, time.Millisecond)

		cancel()

		require.ErrorIs(t, <-errs, context.Canceled)
		require.Equal(t, 0, p.Pending())
		require.False(t, p.Select(game.Cell{Row: 2, Col: 3}), "nothing left to resolve")
	})

	t.Run("is undoable", func(t *testing.T) {
		require.True(t, NewInteractive().Undoable())
	})
}

func TestAutomated(t *testing.T) {
	t.Run("passes the flattened board and returns the chosen cell", func(t *testing.T) {
		s := game.Opening()
		eval := &mockEvaluator{index: 19}
		cfg := Normal.Config()
		p := NewAutomated(eval, cfg)

		c, err := p.SelectMove(context.Background(), s)

		require.NoError(t, err)
		require.Equal(t, game.Cell{Row: 2, Col: 3}, c)
		require.Equal(t, int8(1), eval.player)
		require.Equal(t, s.Board.Flatten(), eval.board)
		require.Equal(t, cfg, eval.config)
	})

	t.Run("out of range index violates the contract", func(t *testing.T) {
		for _, index := range []int{-1, 64, 1000} {
			p := NewAutomated(&mockEvaluator{index: index}, Easy.Config())

			_, err := p.SelectMove(context.Background(), game.Opening())

			require.ErrorIs(t, err, ErrContractViolation, "index %d", index)
		}
	})

	t.Run("illegal cell violates the contract", func(t *testing.T) {
		p := NewAutomated(&mockEvaluator{index: 0}, Easy.Config())

		_, err := p.SelectMove(context.Background(), game.Opening())

		require.ErrorIs(t, err, ErrContractViolation)
	})

	t.Run("evaluator failure violates the contract", func(t *testing.T) {
		boom := errors.New("boom")
		p := NewAutomated(&mockEvaluator{err: boom}, Easy.Config())

		_, err := p.SelectMove(context.Background(), game.Opening())

		require.ErrorIs(t, err, ErrContractViolation)
		require.ErrorIs(t, err, boom)
	})

	t.Run("cancellation is not a violation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := NewAutomated(blockingEvaluator{}, Easy.Config())

		_, err := p.SelectMove(ctx, game.Opening())

		require.ErrorIs(t, err, context.Canceled)
		require.NotErrorIs(t, err, ErrContractViolation)
	})

	t.Run("alpha-beta evaluator plays legal moves", func(t *testing.T) {
		p := NewAutomated(searcher.NewAlphaBeta(), Easy.Config())
		s := game.Opening()
		for i := 0; i < 6 && s.CanMove(); i++ {
			c, err := p.SelectMove(context.Background(), s)

			require.NoError(t, err)
			require.True(t, s.Legal.At(c), "move %d: %v", i, c)
			s = s.Play(c)
		}
	})

	t.Run("is not undoable", func(t *testing.T) {
		require.False(t, NewAutomated(&mockEvaluator{}, Easy.Config()).Undoable())
	})

	t.Run("nil evaluator panics", func(t *testing.T) {
		require.Panics(t, func() { NewAutomated(nil, Easy.Config()) })
	})
}

func TestTier(t *testing.T) {
	easy := Easy.Config()
	require.Equal(t, 4, easy.MaxDepth)
	require.True(t, easy.CoinParity && easy.Stability)
	require.False(t, easy.Corners || easy.ActualMobility || easy.PotentialMobility)

	normal := Normal.Config()
	require.Equal(t, 6, normal.MaxDepth)
	require.True(t, normal.CoinParity && normal.Corners && normal.Stability)
	require.False(t, normal.ActualMobility || normal.PotentialMobility)

	hard := Hard.Config()
	require.Equal(t, 8, hard.MaxDepth)
	require.True(t, hard.CoinParity && hard.ActualMobility && hard.PotentialMobility && hard.Corners && hard.Stability)

	_, err := ParseTier(Human)
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	eval := &mockEvaluator{}
	interactive := NewInteractive()

	t.Run("human seat is the interactive input", func(t *testing.T) {
		p, err := New(Human, eval, interactive)

		require.NoError(t, err)
		require.Same(t, interactive, p)
	})

	t.Run("cpu seats carry their tier", func(t *testing.T) {
		for option, tier := range map[string]Tier{CPUEasy: Easy, CPUNormal: Normal, CPUHard: Hard} {
			p, err := New(option, eval, interactive)

			require.NoError(t, err)
			automated, ok := p.(*Automated)
			require.True(t, ok, option)
			require.Equal(t, tier.Config(), automated.Config(), option)
		}
	})

	t.Run("unknown option seats a human", func(t *testing.T) {
		p, err := New("cpu-impossible", eval, interactive)

		require.NoError(t, err)
		require.Same(t, interactive, p)
	})

	t.Run("missing dependencies are errors", func(t *testing.T) {
		_, err := New(Human, eval, nil)
		require.Error(t, err)

		_, err = New(CPUHard, nil, interactive)
		require.Error(t, err)
	})

	t.Run("options are listed in order", func(t *testing.T) {
		require.Equal(t, []string{"human", "cpu-easy", "cpu-normal", "cpu-hard"}, Options())
	})
}
