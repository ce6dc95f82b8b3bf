package experiments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/gamemaster"
	"reversi/meta"
	"reversi/player"
	"reversi/searcher"
)

type Option func(a *Arena)

// WithGames sets the number of games per matchup.
func WithGames(n int) Option {
	return func(a *Arena) {
		if n > 0 {
			a.games = n
		}
	}
}

// WithOpenings sets how many random plies precede every game.
func WithOpenings(plies int) Option {
	return func(a *Arena) {
		if plies >= 0 {
			a.openingPlies = plies
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(a *Arena) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// Arena plays automated seats against each other and records every game.
type Arena struct {
	games        int
	openingPlies int
	rng          *rand.Rand
}

func NewArena(options ...Option) *Arena {
	a := &Arena{ // Default values
		games:        meta.ARENA_GAMES,
		openingPlies: meta.OPENING_PLIES,
		rng:          rand.New(rand.NewSource(1)),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Summary counts wins per agent over a series.
type Summary struct {
	Games int
	Ties  int
	Wins  map[int]int // AgentConfig.ID -> wins
}

func (s *Summary) add(gm metrics.GameMetric) {
	s.Games++
	if gm.WinnerAgent == 0 {
		s.Ties++
		return
	}
	s.Wins[gm.WinnerAgent]++
}

// Run plays every matchup and, when outDir is set, stores the records as CSV.
// Seats alternate between games so each agent starts half of them.
func (a *Arena) Run(ctx context.Context, name, outDir string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig) (Summary, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summary := Summary{Wins: map[int]int{}}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < a.games; i++ {
			first, second := matchup[0], matchup[1]
			if i%2 == 1 {
				first, second = second, first
			}

			gameMetric, moveMetrics, err := a.Play(ctx, first, second)
			if err != nil {
				return summary, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				First:      first.ID,
				Second:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			summary.add(gameMetric)

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s (%d-%d)",
				mi+1, len(matchUps), i+1, gameMetric.Winner, gameMetric.FirstDiscs, gameMetric.SecondDiscs)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	if outDir == "" {
		return summary, nil
	}
	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		return summary, err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return summary, err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return summary, nil
}

// Play runs one game from a random opening and returns its metrics.
func (a *Arena) Play(ctx context.Context, first, second metrics.AgentConfig) (metrics.GameMetric, []metrics.MoveMetric, error) {
	collector := metrics.NewCollector()
	p1, err := seat(first, game.First, collector)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	p2, err := seat(second, game.Second, collector)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	id := uuid.NewString()
	opening := a.Opening()
	session := gamemaster.NewSession(p1, p2, &logView{game: id, collector: collector}, gamemaster.Interrupts{},
		gamemaster.WithAutoClose(),
		gamemaster.WithStart(opening),
		gamemaster.WithID(id))

	collector.Start(first.ID, a.openingPlies)
	out, err := session.Run(ctx)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	if out.Result == nil {
		return metrics.GameMetric{}, nil, errors.New("game ended without a result")
	}

	winnerAgent := 0
	switch out.Result.Winner {
	case game.First:
		winnerAgent = first.ID
	case game.Second:
		winnerAgent = second.ID
	}
	gameMetric, moveMetrics := collector.Complete(*out.Result, winnerAgent)
	return gameMetric, moveMetrics, nil
}

// Opening plays the configured number of random legal plies from the standard
// opening.
func (a *Arena) Opening() game.State {
	s := game.Opening()
	for i := 0; i < a.openingPlies && s.CanMove(); i++ {
		cells := s.Legal.Cells()
		s = s.Play(cells[a.rng.Intn(len(cells))])
	}
	return s
}

// recordingPlayer reports the search metrics of every move it makes.
type recordingPlayer struct {
	player.Player
	search    *searcher.AlphaBeta
	agent     int
	side      game.Player
	collector metrics.Collector
}

func (p *recordingPlayer) SelectMove(ctx context.Context, s game.State) (game.Cell, error) {
	c, err := p.Player.SelectMove(ctx, s)
	if err != nil {
		return c, err
	}
	p.collector.AddMove(p.agent, p.side, p.search.LastMetrics())
	return c, nil
}

// seat builds an automated player for config with its own searcher so the
// metrics of both sides stay apart.
func seat(config metrics.AgentConfig, side game.Player, collector metrics.Collector) (player.Player, error) {
	if config.Option == player.Human {
		return nil, fmt.Errorf("agent %d: the arena seats automated players only", config.ID)
	}
	search := searcher.NewAlphaBeta(searcher.WithMetrics())
	p, err := player.New(config.Option, search, nil)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	return &recordingPlayer{Player: p, search: search, agent: config.ID, side: side, collector: collector}, nil
}
