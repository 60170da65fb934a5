package taiko

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
)

// Performance implements the drum ruleset's performance formula (spec
// §4.7): independent difficulty/accuracy sub-scores combined through an
// L1.1 norm, then scaled by a base multiplier and the NF/HD factors.
func Performance(attrs DifficultyAttributes, state difficulty.ScoreState, mods difficulty.Mods) PerformanceAttributes {
	total := state.N300 + state.N100 + state.NMiss
	if total == 0 {
		return PerformanceAttributes{Difficulty: attrs}
	}

	accuracy := 0.0
	if total > 0 {
		accuracy = (float64(state.N300)*2 + float64(state.N100)) / (2 * float64(total))
	}

	multiplier := 1.1

	if mods.NF() {
		multiplier *= 0.9
	}

	if mods.HD() {
		multiplier *= 1.075
	}

	effectiveMiss := float64(state.NMiss)

	diffValue := computeDifficultyValue(attrs, effectiveMiss, float64(total))
	accValue := computeAccuracyValue(attrs, accuracy)

	pp := math.Pow(math.Pow(diffValue, 1.1)+math.Pow(accValue, 1.1), 1/1.1) * multiplier

	return PerformanceAttributes{
		Difficulty:    attrs,
		PP:            pp,
		PPDifficulty:  diffValue,
		PPAccuracy:    accValue,
		EffectiveMiss: effectiveMiss,
	}
}

func computeDifficultyValue(attrs DifficultyAttributes, missCount, totalHits float64) float64 {
	value := math.Pow(5*math.Max(attrs.Stars/0.0075, 1)-4, 2) / 100000

	lengthBonus := 1 + 0.1*math.Min(1, totalHits/1500)
	value *= lengthBonus

	value *= math.Pow(0.986, missCount)

	return value
}

func computeAccuracyValue(attrs DifficultyAttributes, accuracy float64) float64 {
	if attrs.GreatHitWindow <= 0 {
		return 0
	}

	return math.Pow(150/attrs.GreatHitWindow, 1.1) * math.Pow(accuracy, 15) * 22
}
