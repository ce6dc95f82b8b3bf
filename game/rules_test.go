package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Board {
	t.Helper()
	b, err := ParseBoard(s)
	require.NoError(t, err)
	return b
}

func TestLegalMoves(t *testing.T) {
	t.Run("opening position has four moves for First", func(t *testing.T) {
		mask := LegalMoves(First, OpeningBoard())

		require.Equal(t, 4, mask.Count(), "First should have exactly four opening moves")
		require.Equal(t, []Cell{{2, 3}, {3, 2}, {4, 5}, {5, 4}}, mask.Cells())
	})

	t.Run("opening position has four moves for Second", func(t *testing.T) {
		mask := LegalMoves(Second, OpeningBoard())

		require.Equal(t, []Cell{{2, 4}, {3, 5}, {4, 2}, {5, 3}}, mask.Cells())
	})

	t.Run("only empty cells are legal", func(t *testing.T) {
		boards := []Board{
			OpeningBoard(),
			mustParse(t, `
				XXXXXXXX
				XOOOOOOX
				XO....OX
				XO.XO.OX
				XO.OX.OX
				XO....OX
				XOOOOOOX
				XXXXXXX.`),
		}
		for _, b := range boards {
			for _, p := range []Player{First, Second} {
				for _, c := range LegalMoves(p, b).Cells() {
					require.Equal(t, None, b.At(c), "legal cell %v must be empty", c)
				}
			}
		}
	})

	t.Run("run must end on an own disc", func(t *testing.T) {
		b := mustParse(t, `
			........
			........
			........
			...OO...
			........
			........
			........
			........`)

		require.False(t, LegalMoves(First, b).Any(), "opponent runs without a terminator are not legal")
	})

	t.Run("adjacent own disc does not count", func(t *testing.T) {
		b := mustParse(t, `
			XX......
			........
			........
			........
			........
			........
			........
			.......O`)

		require.False(t, LegalMoves(First, b).Any())
		require.False(t, LegalMoves(Second, b).Any())
	})

	t.Run("scans do not wrap around edges", func(t *testing.T) {
		b := mustParse(t, `
			......OX
			X.......
			........
			........
			........
			........
			........
			........`)

		mask := LegalMoves(First, b)
		require.True(t, mask.At(Cell{0, 5}), "row run bracketed to the right is legal")
		require.Equal(t, 1, mask.Count(), "no move may wrap from row 0 into row 1")
	})
}

func TestApply(t *testing.T) {
	t.Run("First plays (2,3) from the opening", func(t *testing.T) {
		before := OpeningBoard()

		after := Apply(First, before, Cell{2, 3})

		require.Equal(t, First, after.At(Cell{2, 3}), "placed disc belongs to First")
		require.Equal(t, First, after.At(Cell{3, 3}), "bracketed disc flips to First")
		require.Equal(t, Second, after.At(Cell{4, 4}), "unbracketed disc stays")
		require.Equal(t, Second, before.At(Cell{3, 3}), "input board is not mutated")
	})

	t.Run("flips every bracketing direction and leaves the rest", func(t *testing.T) {
		b := mustParse(t, `
			X..X..X.
			.O.O.O..
			..OOO...
			XOO.OOX.
			..OOO...
			.O.O.O..
			X..O..X.
			...X....`)

		after := Apply(First, b, Cell{3, 3})

		require.Equal(t, mustParse(t, `
			X..X..X.
			.X.X.X..
			..XXX...
			XXXXXXX.
			..XXX...
			.X.X.X..
			X..X..X.
			...X....`), after)
	})

	t.Run("open runs are not flipped", func(t *testing.T) {
		b := mustParse(t, `
			........
			........
			........
			..OXO...
			..O.....
			..X.....
			........
			........`)

		after := Apply(First, b, Cell{3, 1})

		require.Equal(t, First, after.At(Cell{3, 2}), "bracketed run flips")
		require.Equal(t, Second, after.At(Cell{3, 4}), "discs past the terminator are untouched")
		require.Equal(t, Second, after.At(Cell{4, 2}), "run ending on an empty cell is untouched")
	})

	t.Run("disc count grows by exactly one", func(t *testing.T) {
		s := Opening()
		for i := 0; i < 30 && !s.Over(); i++ {
			if !s.CanMove() {
				s = s.Pass()
				continue
			}
			c := s.Legal.Cells()[0]
			before := s.Board.Occupied()
			flips := Flips(s.Player, s.Board, c)

			next := s.Play(c)

			require.Equal(t, before+1, next.Board.Occupied(), "placement adds one disc at move %d", i)
			require.Equal(t, s.Board.Count(s.Player)+flips+1, next.Board.Count(s.Player),
				"mover gains the placement plus the flips")
			s = next
		}
	})
}

func TestFlips(t *testing.T) {
	b := OpeningBoard()

	require.Equal(t, 1, Flips(First, b, Cell{2, 3}))
	require.Equal(t, 0, Flips(First, b, Cell{0, 0}), "illegal cell flips nothing")
	require.Equal(t, 0, Flips(First, b, Cell{3, 3}), "occupied cell flips nothing")
	require.Equal(t, 0, Flips(First, b, Cell{-1, 9}), "off-board cell flips nothing")
}
