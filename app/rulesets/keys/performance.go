package keys

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
)

// Performance implements the keys ruleset's performance formula (spec
// §4.7): a difficulty sub-score multiplied by accuracy and miss-count
// penalties; customAccuracy picks the 320 weight from the Classic mod.
func Performance(attrs DifficultyAttributes, state difficulty.ScoreState, mods difficulty.Mods) PerformanceAttributes {
	total := state.NGeki + state.N320 + state.NKatu + state.N300 + state.N200 + state.N100 + state.N50 + state.NMiss
	if total == 0 {
		return PerformanceAttributes{Difficulty: attrs}
	}

	customAcc := customAccuracy(state, total, mods.CL())

	value := math.Pow(math.Max(attrs.Stars-0.15, 0.05), 2.2)

	value *= 0.8 + math.Pow(customAcc, 6)/2.5

	value *= math.Min(1.15, math.Pow(float64(total)/1500, 0.3))

	if mods.NF() {
		value *= 0.75
	}

	if mods.EZ() {
		value *= 0.5
	}

	return PerformanceAttributes{Difficulty: attrs, PP: value}
}

func customAccuracy(state difficulty.ScoreState, total int, classic bool) float64 {
	perfectWeight := 60.0
	if !classic {
		perfectWeight = 61.0
	}

	weighted := perfectWeight*float64(state.N320) + 60*float64(state.NGeki) + 60*float64(state.N300) + 40*float64(state.N200) + 20*float64(state.N100) + 10*float64(state.N50)

	return weighted / (60 * float64(total))
}
