package game

// Disc is the content of a cell. The signed encoding lets negation flip ownership
// and lets the board sum decide the winner.
type Disc int8

const (
	None   Disc = 0
	First  Disc = 1
	Second Disc = -1
)

// Player is the side to move. Only First and Second are valid players.
type Player = Disc

// Opponent returns the other side.
func (d Disc) Opponent() Disc {
	return -d
}

// Valid reports whether d names a player rather than an empty cell.
func (d Disc) Valid() bool {
	return d == First || d == Second
}

func (d Disc) String() string {
	switch d {
	case First:
		return "First"
	case Second:
		return "Second"
	default:
		return "None"
	}
}

// Color is the display name used by the board UI: First plays black.
func (d Disc) Color() string {
	switch d {
	case First:
		return "Black"
	case Second:
		return "White"
	default:
		return ""
	}
}

func (d Disc) symbol() byte {
	switch d {
	case First:
		return 'X'
	case Second:
		return 'O'
	default:
		return '.'
	}
}
