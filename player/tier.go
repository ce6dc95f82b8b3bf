package player

import (
	"fmt"

	"reversi/searcher"
)

// Tier is a difficulty level of the automated player.
type Tier int

const (
	Easy Tier = iota
	Normal
	Hard
)

func (t Tier) String() string {
	switch t {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Config returns the search depth and heuristic set of the tier.
func (t Tier) Config() searcher.Config {
	switch t {
	case Easy:
		return searcher.Config{MaxDepth: 4, CoinParity: true, Stability: true}
	case Normal:
		return searcher.Config{MaxDepth: 6, CoinParity: true, Corners: true, Stability: true}
	default:
		return searcher.Config{
			MaxDepth:          8,
			CoinParity:        true,
			ActualMobility:    true,
			PotentialMobility: true,
			Corners:           true,
			Stability:         true,
		}
	}
}

// ParseTier maps a cpu seat option to its tier.
func ParseTier(option string) (Tier, error) {
	switch option {
	case CPUEasy:
		return Easy, nil
	case CPUNormal:
		return Normal, nil
	case CPUHard:
		return Hard, nil
	}
	return 0, fmt.Errorf("no tier for seat option %q", option)
}
