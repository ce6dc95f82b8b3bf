package game

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the board edge length.
const Size = 8

// Cells is the number of cells on the board.
const Cells = Size * Size

var ErrInvalidBoard = errors.New("invalid board")

// Cell addresses one square of the board.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether the cell lies on the board.
func (c Cell) Valid() bool {
	return 0 <= c.Row && c.Row < Size && 0 <= c.Col && c.Col < Size
}

// Index flattens the cell row-major.
func (c Cell) Index() int {
	return c.Row*Size + c.Col
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// CellFromIndex reverses Index: col = i mod 8, row = (i - col) / 8.
func CellFromIndex(i int) Cell {
	col := i % Size
	return Cell{Row: (i - col) / Size, Col: col}
}

// Board is a value type; assigning a Board copies the grid.
type Board [Size][Size]Disc

// At returns the disc on c.
func (b Board) At(c Cell) Disc {
	return b[c.Row][c.Col]
}

// Sum adds all cell values. Its sign decides the game.
func (b Board) Sum() int {
	sum := 0
	for _, row := range b {
		for _, d := range row {
			sum += int(d)
		}
	}
	return sum
}

// Count returns the number of cells holding d.
func (b Board) Count(d Disc) int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == d {
				n++
			}
		}
	}
	return n
}

// Occupied returns the number of non-empty cells.
func (b Board) Occupied() int {
	return Cells - b.Count(None)
}

// Flatten lays the board out row-major, one signed value per cell.
func (b Board) Flatten() [Cells]int8 {
	var flat [Cells]int8
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			flat[row*Size+col] = int8(b[row][col])
		}
	}
	return flat
}

// Unflatten builds a board from a row-major signed array. Any positive value is
// First and any negative value is Second.
func Unflatten(flat [Cells]int8) Board {
	var b Board
	for i, v := range flat {
		c := CellFromIndex(i)
		switch {
		case v > 0:
			b[c.Row][c.Col] = First
		case v < 0:
			b[c.Row][c.Col] = Second
		}
	}
	return b
}

// String draws the board with X for First, O for Second and . for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sb.WriteByte(b[row][col].symbol())
		}
		if row < Size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard reads the format produced by Board.String. Blank lines and
// surrounding whitespace are ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	row := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if row >= Size {
			return Board{}, fmt.Errorf("%w: more than %d rows", ErrInvalidBoard, Size)
		}
		if len(line) != Size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, row, len(line))
		}
		for col := 0; col < Size; col++ {
			switch line[col] {
			case 'X', 'x', 'B', 'b':
				b[row][col] = First
			case 'O', 'o', 'W', 'w':
				b[row][col] = Second
			case '.', '-':
			default:
				return Board{}, fmt.Errorf("%w: unexpected %q at %d,%d", ErrInvalidBoard, line[col], row, col)
			}
		}
		row++
	}
	if row != Size {
		return Board{}, fmt.Errorf("%w: got %d rows", ErrInvalidBoard, row)
	}
	return b, nil
}

// Mask marks one boolean per cell.
type Mask [Size][Size]bool

// At reports whether c is marked.
func (m Mask) At(c Cell) bool {
	return c.Valid() && m[c.Row][c.Col]
}

// Any reports whether at least one cell is marked.
func (m Mask) Any() bool {
	for _, row := range m {
		for _, ok := range row {
			if ok {
				return true
			}
		}
	}
	return false
}

// Count returns the number of marked cells.
func (m Mask) Count() int {
	n := 0
	for _, row := range m {
		for _, ok := range row {
			if ok {
				n++
			}
		}
	}
	return n
}

// Cells lists the marked cells row-major.
func (m Mask) Cells() []Cell {
	var cells []Cell
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if m[row][col] {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
	}
	return cells
}
