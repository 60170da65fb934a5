package osu

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/osu/skills"
)

const performanceBaseMultiplier = 1.15

// Calculate runs the full standard-ruleset difficulty pipeline (spec §2's
// control-flow chain) and returns the star rating plus sub-ratings.
func Calculate(bm *beatmap.BeatMap, mods difficulty.Mods) (DifficultyAttributes, error) {
	objs, err := Convert(bm, mods)
	if err != nil {
		return DifficultyAttributes{}, err
	}

	clockRate := mods.ClockRate()
	scale := NewScalingFactor(bm.Diff.GetCS(mods))

	diffObjs := BuildDifficultyObjects(objs, clockRate, scale)

	aim := skills.NewAim(true)
	aimNoSliders := skills.NewAim(false)
	hw := NewHitWindows(bm.Diff.GetOD(mods), clockRate)
	speed := skills.NewSpeed(hw.Great)
	flashlight := skills.NewFlashlight(mods.FL())

	for i := range diffObjs {
		aim.Process(diffObjs, i)
		aimNoSliders.Process(diffObjs, i)
		speed.Process(diffObjs, i)

		if mods.FL() {
			flashlight.Process(diffObjs, i)
		}
	}

	aimDiff, aimStrains := aim.DifficultyValue()
	aimDiffNoSliders, _ := aimNoSliders.DifficultyValue()
	speedDiff, _ := speed.DifficultyValue()

	flashlightDiff := 0.0
	if mods.FL() {
		flashlightDiff, _ = flashlight.DifficultyValue()
	}

	aimTopWeightedCount := difficulty.CountTopWeightedStrains(aimStrains, aimDiff)

	sliderFactor := 1.0
	if aimDiff > 0 {
		sliderFactor = aimDiffNoSliders / aimDiff
	}

	if mods.TD() {
		aimDiff = math.Pow(aimDiff, 0.8)
		flashlightDiff = math.Pow(flashlightDiff, 0.8)
	}

	if mods.RX() {
		aimDiff *= 0.9
		speedDiff = 0
		flashlightDiff *= 0.7
	}

	if mods.AP() {
		speedDiff *= 0.5
		aimDiff = 0
		flashlightDiff *= 0.4
	}

	aimRating := math.Sqrt(aimDiff) * 0.0675
	aimRatingNoSliders := math.Sqrt(aimDiffNoSliders) * 0.0675
	speedRating := math.Sqrt(speedDiff) * 0.0675
	flashlightRating := math.Sqrt(flashlightDiff) * 0.0675

	aimPerf := difficultyToPerformance(aimDiff)
	speedPerf := difficultyToPerformance(speedDiff)

	basePerf := math.Pow(math.Pow(aimPerf, 1.1)+math.Pow(speedPerf, 1.1), 1/1.1)

	stars := 0.0
	if basePerf > 1e-5 {
		stars = math.Cbrt(performanceBaseMultiplier) * 0.027 * (math.Cbrt(100000*basePerf/math.Pow(2, 1.0/1.1)) + 4)
	}

	nCircles, nSliders, nSpinners, nLargeTicks := 0, 0, 0, 0

	for _, o := range objs {
		switch {
		case o.IsCircle():
			nCircles++
		case o.IsSlider():
			nSliders++
			nLargeTicks += o.Repeats + 1
		case o.IsSpinner():
			nSpinners++
		}
	}

	return DifficultyAttributes{
		Stars:              stars,
		MaxCombo:           maxCombo(objs),
		AimRating:          aimRating,
		AimRatingNoSliders: aimRatingNoSliders,
		SpeedRating:        speedRating,
		FlashlightRating:   flashlightRating,
		SliderFactor:       sliderFactor,
		NCircles:           nCircles,
		NSliders:           nSliders,
		NSpinners:          nSpinners,
		NLargeTicks:        nLargeTicks,
		AR:                 bm.Diff.GetAR(mods),
		OD:                 bm.Diff.GetOD(mods),
		GreatHitWindow:      hw.Great,
		OkHitWindow:         hw.Ok,
		MehHitWindow:        hw.Meh,
		AimTopWeightedCount: aimTopWeightedCount,
	}, nil
}

func difficultyToPerformance(diff float64) float64 {
	return math.Pow(5*math.Max(diff/0.0675, 1)-4, 3) / 100000
}

func maxCombo(objs []*PlayableObject) int {
	combo := 0

	for _, o := range objs {
		combo++

		if o.IsSlider() {
			combo += len(o.Nested)
		}
	}

	return combo
}
