package experiments

import (
	"context"

	"github.com/rs/zerolog/log"

	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/gamemaster"
)

// logView is the headless view of arena games. Boards go to the debug log and
// passes are counted.
type logView struct {
	game      string
	collector metrics.Collector
}

func (v *logView) Render(_ context.Context, s game.State) error {
	log.Debug().Str("game", v.game).Str("player", s.Player.String()).Msgf("board\n%s", s.Board)
	return nil
}

func (v *logView) Notice(msg string) {
	v.collector.AddPass()
	log.Debug().Str("game", v.game).Msg(msg)
}

func (v *logView) Result(r game.Result) {
	log.Debug().Str("game", v.game).Msg(r.Message())
}

func (v *logView) Controls(gamemaster.Controls) {}
