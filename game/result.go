package game

import "fmt"

// Result is the outcome of a finished game.
type Result struct {
	Winner Disc `json:"winner"` // None on a tie
	First  int  `json:"first"`
	Second int  `json:"second"`
}

// Score decides the game from the sign of the board sum.
func Score(b Board) Result {
	r := Result{First: b.Count(First), Second: b.Count(Second)}
	switch sum := b.Sum(); {
	case sum > 0:
		r.Winner = First
	case sum < 0:
		r.Winner = Second
	}
	return r
}

// Tie reports whether nobody won.
func (r Result) Tie() bool {
	return r.Winner == None
}

func (r Result) String() string {
	if r.Tie() {
		return "Tie"
	}
	return r.Winner.String() + " wins"
}

// Message is the line shown to players when the game ends.
func (r Result) Message() string {
	if r.Tie() {
		return "Game over! The game is a tie."
	}
	return fmt.Sprintf("Game over! %s is the winner.", r.Winner.Color())
}
