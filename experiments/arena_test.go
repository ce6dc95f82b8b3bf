package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"reversi/player"
)

func readCSV(t *testing.T, pattern string) [][]string {
	t.Helper()
	paths, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.Len(t, paths, 1, "one table matches %s", pattern)

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestOpening(t *testing.T) {
	t.Run("random plies are reproducible", func(t *testing.T) {
		a := NewArena(WithSeed(7), WithOpenings(4))
		b := NewArena(WithSeed(7), WithOpenings(4))

		s := a.Opening()

		require.Equal(t, s, b.Opening())
		require.Equal(t, 8, s.Board.Occupied(), "four plies add four discs")
		require.True(t, s.CanMove())
	})

	t.Run("zero plies keep the standard opening", func(t *testing.T) {
		s := NewArena(WithOpenings(0)).Opening()

		require.Equal(t, 4, s.Board.Occupied())
	})
}

func TestRunMatch(t *testing.T) {
	t.Run("plays the series and writes the tables", func(t *testing.T) {
		dir := t.TempDir()

		summary, err := RunMatch(context.Background(), player.CPUEasy, player.CPUEasy, dir,
			WithGames(2), WithOpenings(2), WithSeed(3))

		require.NoError(t, err)
		require.Equal(t, 2, summary.Games)
		require.Equal(t, 2, summary.Ties+summary.Wins[1]+summary.Wins[2])

		configs := readCSV(t, filepath.Join(dir, "match", "*", "agent_configs.csv"))
		require.Equal(t, [][]string{{"id", "option"}, {"1", "cpu-easy"}, {"2", "cpu-easy"}}, configs)

		games := readCSV(t, filepath.Join(dir, "match", "*", "game_records.csv"))
		require.Len(t, games, 3, "header and two games")
		require.Equal(t, "1", games[1][1], "agent 1 starts the first game")
		require.Equal(t, "2", games[2][1], "seats alternate")

		moves := readCSV(t, filepath.Join(dir, "match", "*", "move_records.csv"))
		require.Greater(t, len(moves), 2)
		require.Equal(t, "4", moves[1][4], "easy searches four plies")
	})

	t.Run("human seats are rejected", func(t *testing.T) {
		_, err := RunMatch(context.Background(), player.Human, player.CPUEasy, "", WithGames(1))

		require.Error(t, err)
	})

	t.Run("unknown options are rejected", func(t *testing.T) {
		_, err := RunMatch(context.Background(), "cpu-impossible", player.CPUEasy, "", WithGames(1))

		require.Error(t, err)
	})

	t.Run("cancelled context stops the series", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := RunMatch(ctx, player.CPUEasy, player.CPUEasy, "", WithGames(1))

		require.ErrorIs(t, err, context.Canceled)
	})
}
