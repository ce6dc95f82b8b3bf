package game

// State is an immutable snapshot of the game: the side to move, the board and
// the legal moves of that side on that board. Operations on State always return
// a new copy.
type State struct {
	Player Player `json:"player"`
	Board  Board  `json:"board"`
	Legal  Mask   `json:"legal"`
}

// NewState derives the legal-move mask for player on b.
func NewState(player Player, b Board) State {
	return State{
		Player: player,
		Board:  b,
		Legal:  LegalMoves(player, b),
	}
}

// OpeningBoard returns the standard four-disc start position.
func OpeningBoard() Board {
	var b Board
	b[3][4] = First
	b[4][3] = First
	b[3][3] = Second
	b[4][4] = Second
	return b
}

// Opening returns the start state with First to move.
func Opening() State {
	return NewState(First, OpeningBoard())
}

// Empty returns the cleared snapshot shown once a game is torn down.
func Empty() State {
	return State{Player: First}
}

// Play applies a legal move and hands the turn to the opponent.
func (s State) Play(c Cell) State {
	return NewState(s.Player.Opponent(), Apply(s.Player, s.Board, c))
}

// Pass hands the turn to the opponent without touching the board.
func (s State) Pass() State {
	return NewState(s.Player.Opponent(), s.Board)
}

// CanMove reports whether the side to move has a legal move.
func (s State) CanMove() bool {
	return s.Legal.Any()
}

// Over reports whether neither side can move.
func (s State) Over() bool {
	return !s.Legal.Any() && !LegalMoves(s.Player.Opponent(), s.Board).Any()
}
