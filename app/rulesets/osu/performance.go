package osu

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
)

// Performance implements the standard ruleset's performance formula (spec
// §4.7): independent aim/speed/accuracy/flashlight sub-scores combined via
// an L1.1 norm, each nerfed by misses and boosted/reduced by mods.
func Performance(attrs DifficultyAttributes, state difficulty.ScoreState, mods difficulty.Mods) PerformanceAttributes {
	totalHits := float64(state.N300 + state.N100 + state.N50 + state.NMiss)
	if totalHits == 0 {
		return PerformanceAttributes{Difficulty: attrs}
	}

	accuracy := customAccuracy(state, totalHits)

	effectiveMissCount := calcEffectiveMissCount(attrs, state)

	multiplier := performanceBaseMultiplier

	if mods.NF() {
		multiplier *= math.Max(1-0.02*effectiveMissCount, 0.9)
	}

	if mods.SO() {
		if attrs.NSpinners > 0 {
			multiplier *= 1 - math.Pow(float64(attrs.NSpinners)/totalHits, 0.85)
		}
	}

	aimValue := computeAimValue(attrs, state, effectiveMissCount, totalHits, accuracy)
	speedValue := computeSpeedValue(attrs, state, effectiveMissCount, totalHits, accuracy, mods)
	accValue := computeAccuracyValue(attrs, state, mods)
	flashlightValue := 0.0

	if mods.FL() {
		flashlightValue = computeFlashlightValue(attrs, effectiveMissCount, totalHits)
	}

	pp := math.Pow(
		math.Pow(aimValue, 1.1)+math.Pow(speedValue, 1.1)+math.Pow(accValue, 1.1)+math.Pow(flashlightValue, 1.1),
		1/1.1,
	) * multiplier

	return PerformanceAttributes{
		Difficulty:         attrs,
		PP:                 pp,
		PPAim:              aimValue,
		PPSpeed:            speedValue,
		PPAcc:              accValue,
		PPFlashlight:       flashlightValue,
		EffectiveMissCount: effectiveMissCount,
	}
}

func customAccuracy(state difficulty.ScoreState, totalHits float64) float64 {
	if totalHits == 0 {
		return 0
	}

	return (float64(state.N300)*6 + float64(state.N100)*2 + float64(state.N50)) / (6 * totalHits)
}

func calcEffectiveMissCount(attrs DifficultyAttributes, state difficulty.ScoreState) float64 {
	miss := float64(state.NMiss)

	if attrs.NSliders == 0 {
		return miss
	}

	comboBasedMissCount := 0.0
	if state.MaxCombo > 0 {
		fullCombo := float64(attrs.MaxCombo)
		comboBasedMissCount = fullCombo/math.Max(float64(state.MaxCombo), 1) - 1
	}

	comboBasedMissCount = math.Max(comboBasedMissCount, 0)

	return math.Max(miss, math.Min(comboBasedMissCount, miss+float64(attrs.NSliders)))
}

func computeAimValue(attrs DifficultyAttributes, state difficulty.ScoreState, effectiveMissCount, totalHits, accuracy float64) float64 {
	rawAim := attrs.AimRating

	aimValue := math.Pow(5*math.Max(rawAim/0.0675, 1)-4, 3) / 100000

	lengthBonus := 0.95 + 0.4*math.Min(1, totalHits/2000)
	if totalHits > 2000 {
		lengthBonus += math.Log10(totalHits/2000) * 0.5
	}

	aimValue *= lengthBonus

	if effectiveMissCount > 0 {
		aimValue *= calcMissPenalty(effectiveMissCount, countTopWeighted(attrs))
	}

	if attrs.MaxCombo > 0 {
		aimValue *= math.Min(math.Pow(float64(state.MaxCombo), 0.8)/math.Pow(float64(attrs.MaxCombo), 0.8), 1)
	}

	arFactor := 0.0
	if attrs.AR > 10.33 {
		arFactor = 0.3 * (attrs.AR - 10.33)
	} else if attrs.AR < 8 {
		arFactor = 0.05 * (8 - attrs.AR)
	}

	aimValue *= 1 + arFactor*lengthBonus

	aimValue *= 0.98 + math.Pow(math.Max(0, attrs.OD), 2)/2500

	return aimValue * math.Pow(accuracy, 0.5)
}

func computeSpeedValue(attrs DifficultyAttributes, state difficulty.ScoreState, effectiveMissCount, totalHits, accuracy float64, mods difficulty.Mods) float64 {
	if mods.RX() {
		return 0
	}

	speedValue := math.Pow(5*math.Max(attrs.SpeedRating/0.0675, 1)-4, 3) / 100000

	lengthBonus := 0.95 + 0.4*math.Min(1, totalHits/2000)
	if totalHits > 2000 {
		lengthBonus += math.Log10(totalHits/2000) * 0.5
	}

	speedValue *= lengthBonus

	if effectiveMissCount > 0 {
		speedValue *= calcMissPenalty(effectiveMissCount, countTopWeighted(attrs))
	}

	if attrs.MaxCombo > 0 {
		speedValue *= math.Min(math.Pow(float64(state.MaxCombo), 0.8)/math.Pow(float64(attrs.MaxCombo), 0.8), 1)
	}

	speedValue *= (0.95 + math.Pow(math.Max(0, attrs.OD), 2)/750) * math.Pow(accuracy, (14.5-attrs.OD)/2)

	return speedValue
}

func computeAccuracyValue(attrs DifficultyAttributes, state difficulty.ScoreState, mods difficulty.Mods) float64 {
	if attrs.NCircles == 0 {
		return 0
	}

	betterAccPercentage := 0.0

	if attrs.NCircles > 0 {
		// Non-circle objects (sliders/spinners) can't miss the 300 window
		// in a way accuracy pp should be judged on, so excess 300s beyond
		// what circles alone could produce are attributed to them first.
		nonCircles := attrs.NSliders + attrs.NSpinners
		n300 := state.N300 - maxI(0, nonCircles-(state.N100+state.N50+state.NMiss))
		n300 = maxI(0, n300)

		betterAccPercentage = math.Max(0, float64(n300*6+state.N100*2+state.N50)/float64(attrs.NCircles*6))
	}

	accValue := math.Pow(1.52163, attrs.OD) * math.Pow(betterAccPercentage, 24) * 2.83

	accValue *= math.Min(1.15, math.Pow(float64(attrs.NCircles)/1000, 0.3))

	if mods.HD() {
		accValue *= 1.08
	}

	if mods.FL() {
		accValue *= 1.02
	}

	return accValue
}

func computeFlashlightValue(attrs DifficultyAttributes, effectiveMissCount, totalHits float64) float64 {
	flashlightValue := math.Pow(attrs.FlashlightRating, 2) * 25

	if effectiveMissCount > 0 {
		flashlightValue *= 0.97 * math.Pow(1-math.Pow(effectiveMissCount/totalHits, 0.775), math.Pow(effectiveMissCount, 0.875))
	}

	flashlightValue *= 0.7 + 0.1*math.Min(1, totalHits/200)
	if totalHits > 200 {
		flashlightValue += 0.2 * math.Min(1, (totalHits-200)/200)
	}

	flashlightValue *= 0.98 + math.Pow(math.Max(0, attrs.OD), 2)/2500

	return flashlightValue
}

func countTopWeighted(attrs DifficultyAttributes) float64 {
	if attrs.AimTopWeightedCount > 0 {
		return attrs.AimTopWeightedCount
	}

	return math.Max(attrs.Stars, 1)
}

func calcMissPenalty(missCount, diffStrainCount float64) float64 {
	return 0.96 / (missCount/(4*math.Pow(math.Log(math.Max(diffStrainCount, math.E)), 0.94)) + 1)
}

func maxI(a, b int) int {
	if a > b {
		return a
	}

	return b
}
