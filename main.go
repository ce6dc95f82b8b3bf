package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"reversi/communication"
	"reversi/experiments"
	"reversi/meta"
	"reversi/player"
	"reversi/searcher"
)

type config struct {
	mode     string
	addr     string
	logLevel string
	games    int
	first    string
	second   string
	series   bool
	openings int
	seed     uint64
	out      string
	remote   string
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("reversi", flag.ContinueOnError)
	fs.StringVar(&cfg.mode, "mode", "web", "web or arena")
	fs.StringVar(&cfg.addr, "addr", ":8080", "web: listen address")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "trace, debug, info, warn or error")
	fs.IntVar(&cfg.games, "games", meta.ARENA_GAMES, "arena: games per matchup")
	fs.StringVar(&cfg.first, "first", player.CPUEasy, "arena: seat option of the first agent")
	fs.StringVar(&cfg.second, "second", player.CPUHard, "arena: seat option of the second agent")
	fs.BoolVar(&cfg.series, "series", false, "arena: play every tier against every other tier")
	fs.IntVar(&cfg.openings, "openings", meta.OPENING_PLIES, "arena: random plies before each game")
	fs.Uint64Var(&cfg.seed, "seed", uint64(time.Now().UnixNano()), "arena: random seed for openings")
	fs.StringVar(&cfg.out, "out", "experiments/results", "arena: directory for CSV records, empty to skip")
	fs.StringVar(&cfg.remote, "evaluator", "", "web: URL of a remote /api/evaluate endpoint, empty for the built-in search")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if cfg.mode != "web" && cfg.mode != "arena" {
		return config{}, fmt.Errorf("unknown mode %q", cfg.mode)
	}
	return cfg, nil
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}
	level, err := zerolog.ParseLevel(cfg.logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.mode {
	case "web":
		runWeb(ctx, cfg)
	case "arena":
		runArena(ctx, cfg)
	}
}

func runWeb(ctx context.Context, cfg config) {
	var evaluator searcher.Evaluator = searcher.NewAlphaBeta()
	if cfg.remote != "" {
		evaluator = searcher.NewRemote(cfg.remote, &http.Client{Timeout: time.Minute})
		log.Info().Str("url", cfg.remote).Msg("using remote evaluator")
	}
	server := communication.NewServer(evaluator)
	if err := server.ListenAndServe(ctx, cfg.addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func runArena(ctx context.Context, cfg config) {
	options := []experiments.Option{
		experiments.WithGames(cfg.games),
		experiments.WithOpenings(cfg.openings),
		experiments.WithSeed(cfg.seed),
	}

	var summary experiments.Summary
	var err error
	if cfg.series {
		summary, err = experiments.RunTierSeries(ctx, cfg.out, options...)
	} else {
		summary, err = experiments.RunMatch(ctx, cfg.first, cfg.second, cfg.out, options...)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("arena failed")
	}
	log.Info().Int("games", summary.Games).Int("ties", summary.Ties).Interface("wins", summary.Wins).Msg("arena complete")
}
