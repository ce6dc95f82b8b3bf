package experiments

import (
	"context"

	"reversi/experiments/metrics"
	"reversi/player"
)

var tierConfigs = []metrics.AgentConfig{
	{ID: 1, Option: player.CPUEasy},
	{ID: 2, Option: player.CPUNormal},
	{ID: 3, Option: player.CPUHard},
}

// RunTierSeries pits every tier against every other tier.
func RunTierSeries(ctx context.Context, outDir string, options ...Option) (Summary, error) {
	matchUps := [][2]metrics.AgentConfig{}
	for i, config := range tierConfigs {
		for _, opponent := range tierConfigs[i+1:] {
			matchUps = append(matchUps, [2]metrics.AgentConfig{config, opponent})
		}
	}

	return NewArena(options...).Run(ctx, "tier_series", outDir, tierConfigs, matchUps)
}

// RunMatch plays a series between two seat options.
func RunMatch(ctx context.Context, first, second, outDir string, options ...Option) (Summary, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, Option: first},
		{ID: 2, Option: second},
	}
	matchUps := [][2]metrics.AgentConfig{{configs[0], configs[1]}}

	return NewArena(options...).Run(ctx, "match", outDir, configs, matchUps)
}
