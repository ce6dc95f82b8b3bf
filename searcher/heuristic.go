package searcher

import "reversi/game"

// Heuristic weights. Every term is scored from First's point of view.
const (
	coinParityWeight        = 15.0
	actualMobilityWeight    = 2.0
	potentialMobilityWeight = 1.0
	cornerWeight            = 18.0
	stabilityWeight         = 15.0
)

var stabilityTable = [game.Size][game.Size]int{
	{4, -3, 2, 2, 2, 2, -3, 4},
	{-3, -4, -1, -1, -1, -1, -4, -3},
	{2, -1, 1, 0, 0, 1, -1, 2},
	{2, -1, 0, 1, 1, 0, -1, 2},
	{2, -1, 0, 1, 1, 0, -1, 2},
	{2, -1, 1, 0, 0, 1, -1, 2},
	{-3, -4, -1, -1, -1, -1, -4, -3},
	{4, -3, 2, 2, 2, 2, -3, 4},
}

var corners = [4]game.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 7}, {Row: 7, Col: 0}, {Row: 7, Col: 7}}

// evaluate scores a board: positive favours First, negative favours Second.
func evaluate(cfg Config, b game.Board) float64 {
	var firstMoves, secondMoves game.Mask
	if cfg.ActualMobility || cfg.Corners {
		firstMoves = game.LegalMoves(game.First, b)
		secondMoves = game.LegalMoves(game.Second, b)
	}

	score := 0.0
	if cfg.CoinParity {
		score += coinParity(b) * coinParityWeight
	}
	if cfg.ActualMobility {
		score += actualMobility(firstMoves, secondMoves) * actualMobilityWeight
	}
	if cfg.PotentialMobility {
		score += potentialMobility(b) * potentialMobilityWeight
	}
	if cfg.Corners {
		score += cornerScore(b, firstMoves, secondMoves) * cornerWeight
	}
	if cfg.Stability {
		score += stability(b) * stabilityWeight
	}
	return score
}

func coinParity(b game.Board) float64 {
	return float64(b.Sum())
}

// ratio maps two non-negative counts to [-1, 1].
func ratio(first, second int) float64 {
	if first == 0 && second == 0 {
		return 0
	}
	return float64(first-second) / float64(first+second)
}

func actualMobility(firstMoves, secondMoves game.Mask) float64 {
	return ratio(firstMoves.Count(), secondMoves.Count())
}

// potentialMobility counts, per side, the empty cells next to an opposing disc.
func potentialMobility(b game.Board) float64 {
	first, second := 0, 0
	for row := 0; row < game.Size; row++ {
		for col := 0; col < game.Size; col++ {
			if b[row][col] != game.None {
				continue
			}
			nextToFirst, nextToSecond := false, false
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					r, c := row+dr, col+dc
					if r < 0 || r >= game.Size || c < 0 || c >= game.Size {
						continue
					}
					switch b[r][c] {
					case game.First:
						nextToFirst = true
					case game.Second:
						nextToSecond = true
					}
				}
			}
			if nextToSecond {
				first++
			}
			if nextToFirst {
				second++
			}
		}
	}
	return ratio(first, second)
}

// cornerScore gives two points for an owned corner and one for a corner the
// side could take right now.
func cornerScore(b game.Board, firstMoves, secondMoves game.Mask) float64 {
	first, second := 0, 0
	for _, c := range corners {
		switch b.At(c) {
		case game.First:
			first += 2
		case game.Second:
			second += 2
		default:
			if firstMoves.At(c) {
				first++
			}
			if secondMoves.At(c) {
				second++
			}
		}
	}
	return ratio(first, second)
}

func stability(b game.Board) float64 {
	first, second := 0, 0
	for row := 0; row < game.Size; row++ {
		for col := 0; col < game.Size; col++ {
			switch b[row][col] {
			case game.First:
				first += stabilityTable[row][col]
			case game.Second:
				second += stabilityTable[row][col]
			}
		}
	}
	return float64(first - second)
}
