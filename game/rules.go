package game

type direction struct {
	dr, dc int
}

var directions = [8]direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// run walks from (row, col) along d and returns how many opponent discs lie
// between the start and the first own disc. It returns 0 when the walk leaves the
// board or meets an empty cell first.
func run(player Player, b *Board, row, col int, d direction) int {
	n := 0
	for {
		row += d.dr
		col += d.dc
		if row < 0 || row >= Size || col < 0 || col >= Size {
			return 0
		}
		switch b[row][col] {
		case player:
			return n
		case None:
			return 0
		default:
			n++
		}
	}
}

// LegalMoves marks every empty cell where player would bracket at least one
// opponent run.
func LegalMoves(player Player, b Board) Mask {
	var mask Mask
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col] != None {
				continue
			}
			for _, d := range directions {
				if run(player, &b, row, col, d) > 0 {
					mask[row][col] = true
					break
				}
			}
		}
	}
	return mask
}

// Flips counts the discs that placing player's disc on c would flip.
func Flips(player Player, b Board, c Cell) int {
	if !c.Valid() || b[c.Row][c.Col] != None {
		return 0
	}
	n := 0
	for _, d := range directions {
		n += run(player, &b, c.Row, c.Col, d)
	}
	return n
}

// Apply places player's disc on c and flips every bracketed run. c must be legal
// for player on b; Apply does not check.
func Apply(player Player, b Board, c Cell) Board {
	next := b
	next[c.Row][c.Col] = player
	for _, d := range directions {
		n := run(player, &b, c.Row, c.Col, d)
		row, col := c.Row, c.Col
		for i := 0; i < n; i++ {
			row += d.dr
			col += d.dc
			next[row][col] = -next[row][col]
		}
	}
	return next
}
