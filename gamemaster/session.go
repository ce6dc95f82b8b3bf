package gamemaster

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"reversi/engine"
	"reversi/game"
	"reversi/player"
)

type Option func(s *Session)

// WithAutoClose ends the session as soon as the result is reported instead of
// waiting for an end request.
func WithAutoClose() Option {
	return func(s *Session) {
		s.autoClose = true
	}
}

// WithID tags the session's log lines.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithStart starts the game from s instead of the opening.
func WithStart(state game.State) Option {
	return func(s *Session) {
		s.start = state
	}
}

// Session drives one game from start to teardown. Every suspension point
// (rendering, waiting for a move) races against the abort and undo interrupts.
// Each receive from an interrupt channel counts as one request.
type Session struct {
	id         string
	players    map[game.Player]player.Player
	view       View
	interrupts Interrupts
	autoClose  bool
	start      game.State
	log        zerolog.Logger

	// An undo that arrived together with a move, served at the next
	// suspension point.
	undoQueued bool
}

func NewSession(first, second player.Player, view View, interrupts Interrupts, options ...Option) *Session {
	if first == nil || second == nil {
		panic("session needs two players")
	}
	if view == nil {
		panic("session needs a view")
	}
	s := &Session{ // Default values
		players:    map[game.Player]player.Player{game.First: first, game.Second: second},
		view:       view,
		interrupts: interrupts,
		start:      game.Opening(),
	}
	for _, option := range options {
		option(s)
	}
	s.log = log.With().Str("session", s.id).Logger()
	return s
}

type task func(ctx context.Context) (game.Cell, error)

type taskResult struct {
	cell game.Cell
	err  error
}

// Run plays the game. It returns once the game was aborted, once the result was
// acknowledged with an end request (or immediately with WithAutoClose), or with
// an error when a player broke its contract or ctx was cancelled. The controls
// are restored in every case.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	s.view.Controls(Controls{End: true})
	defer s.teardown(ctx)

	s.log.Info().Msg("session started")
	c := engine.Resume(s.start)
	moves := 0

	c, kind, err := s.display(ctx, c)
	if err != nil {
		return s.outcome(c, moves), err
	}
	if kind == Abort {
		return s.abort(c, moves), nil
	}

	for {
		var ev engine.Event
		c, ev = c.Step()
		switch ev.Kind {
		case engine.EventEnd:
			return s.finish(ctx, c, moves), nil
		case engine.EventPass:
			s.log.Info().Str("player", ev.Passed.String()).Msg("pass")
			s.view.Notice(ev.Passed.Color() + " is out of move.")
			c, kind, err = s.display(ctx, c)
			if err != nil {
				return s.outcome(c, moves), err
			}
			if kind == Abort {
				return s.abort(c, moves), nil
			}
			continue
		}

		current := c.State()
		p := s.players[current.Player]
		sig, err := s.race(ctx, func(ctx context.Context) (game.Cell, error) {
			return p.SelectMove(ctx, current)
		})
		if err != nil {
			s.log.Error().Err(err).Str("player", current.Player.String()).Msg("move failed")
			return s.outcome(c, moves), err
		}

		switch sig.Kind {
		case Abort:
			return s.abort(c, moves), nil
		case Undo:
			c = s.undo(c)
		default:
			c, err = c.Commit(sig.Cell, p.Undoable())
			if err != nil {
				return s.outcome(c, moves), err
			}
			moves++
			s.log.Debug().
				Str("player", current.Player.String()).
				Int("row", sig.Cell.Row).
				Int("col", sig.Cell.Col).
				Msg("move")
			s.view.Controls(Controls{End: true, Undo: c.CanUndo()})
		}

		c, kind, err = s.display(ctx, c)
		if err != nil {
			return s.outcome(c, moves), err
		}
		if kind == Abort {
			return s.abort(c, moves), nil
		}
	}
}

// display renders the current state, serving undo requests that arrive while
// rendering. It returns Continue or Abort.
func (s *Session) display(ctx context.Context, c engine.Controller) (engine.Controller, SignalKind, error) {
	for {
		state := c.State()
		sig, err := s.race(ctx, func(ctx context.Context) (game.Cell, error) {
			return game.Cell{}, s.view.Render(ctx, state)
		})
		if err != nil {
			return c, Continue, err
		}
		if sig.Kind != Undo {
			return c, sig.Kind, nil
		}
		c = s.undo(c)
	}
}

// race runs advance against the interrupts. An abort wins every tie, including
// an abort that is ready when advance completes, and discards the advance
// result. An undo cancels advance and waits for it: a move that completed
// anyway is kept and the undo is served at the next suspension point.
func (s *Session) race(ctx context.Context, advance task) (Signal, error) {
	if s.abortReady() {
		return Signal{Kind: Abort}, nil
	}
	if err := ctx.Err(); err != nil {
		return Signal{}, err
	}
	if s.undoQueued {
		s.undoQueued = false
		return Signal{Kind: Undo}, nil
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan taskResult, 1)
	go func() {
		cell, err := advance(taskCtx)
		done <- taskResult{cell: cell, err: err}
	}()

	select {
	case r := <-done:
		return s.resolve(r)
	case <-s.interrupts.Abort:
		return Signal{Kind: Abort}, nil
	case <-s.interrupts.Undo:
		cancel()
		if r := <-done; r.err == nil {
			s.undoQueued = true
			return s.resolve(r)
		}
		return Signal{Kind: Undo}, nil
	case <-ctx.Done():
		return Signal{}, ctx.Err()
	}
}

func (s *Session) resolve(r taskResult) (Signal, error) {
	if s.abortReady() {
		return Signal{Kind: Abort}, nil
	}
	if r.err != nil {
		return Signal{}, r.err
	}
	return Signal{Kind: Continue, Cell: r.cell}, nil
}

func (s *Session) abortReady() bool {
	select {
	case <-s.interrupts.Abort:
		return true
	default:
		return false
	}
}

func (s *Session) undo(c engine.Controller) engine.Controller {
	next, ok := c.Undo()
	if !ok {
		s.log.Debug().Msg("nothing to undo")
		return c
	}
	s.log.Info().Int("history", next.History()).Msg("undo")
	s.view.Controls(Controls{End: true, Undo: next.CanUndo()})
	return next
}

func (s *Session) finish(ctx context.Context, c engine.Controller, moves int) Outcome {
	res := c.Result()
	s.log.Info().
		Str("result", res.String()).
		Int("first", res.First).
		Int("second", res.Second).
		Msg("game over")
	s.view.Result(res)
	s.view.Controls(Controls{End: true})

	if !s.autoClose {
		s.idle(ctx)
	}
	return Outcome{Result: &res, Final: c.State(), Moves: moves}
}

// idle waits for an end request. Undo requests are ignored once the game is
// over.
func (s *Session) idle(ctx context.Context) {
	for {
		select {
		case <-s.interrupts.Abort:
			return
		case <-s.interrupts.Undo:
		case <-ctx.Done():
			return
		}
	}
}

// abort reports the position the game was abandoned at.
func (s *Session) abort(c engine.Controller, moves int) Outcome {
	s.log.Info().Int("moves", moves).Msg("session aborted")
	return Outcome{Aborted: true, Final: c.State(), Moves: moves}
}

func (s *Session) outcome(c engine.Controller, moves int) Outcome {
	return Outcome{Final: c.State(), Moves: moves}
}

// teardown clears the board and hands the controls back for a new game.
func (s *Session) teardown(ctx context.Context) {
	s.view.Controls(Controls{})
	if err := s.view.Render(context.WithoutCancel(ctx), game.Empty()); err != nil {
		s.log.Warn().Err(err).Msg("teardown render failed")
	}
	s.view.Controls(Controls{Start: true, Seats: true})
}
