package catch

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
)

// Performance implements the catch ruleset's performance formula (spec
// §4.7): a single difficulty value scaled by object count, an accuracy
// exponent and the HD/FL bonuses. There is no separate miss-count or combo
// multiplier; misses lower the value only through accuracy.
func Performance(attrs DifficultyAttributes, state difficulty.ScoreState, mods difficulty.Mods) PerformanceAttributes {
	totalObjects := attrs.NFruits + attrs.NDroplets + attrs.NTinyDrops
	if totalObjects == 0 {
		return PerformanceAttributes{Difficulty: attrs}
	}

	caught := state.N300 + state.N100 + state.N50
	nonMiss := caught

	accuracy := 0.0
	if nonMiss+state.NMiss > 0 {
		accuracy = float64(nonMiss) / float64(nonMiss+state.NMiss)
	}

	value := math.Pow(5.0*math.Max(1, attrs.Stars/0.0049)-4, 2) / 100000

	value *= math.Min(1.15, math.Pow(float64(totalObjects)/2500, 0.3))

	value *= math.Pow(accuracy, 5.5)

	if mods.HD() {
		value *= 1.05 + 0.075*math.Min(1, float64(totalObjects)/2800)
	}

	if mods.FL() {
		value *= 1.35
	}

	return PerformanceAttributes{Difficulty: attrs, PP: value}
}
