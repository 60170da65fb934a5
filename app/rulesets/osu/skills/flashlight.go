package skills

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/osu"
)

const flashlightSkillMultiplier = 0.05512
const flashlightStrainDecayBase = 0.15

// Flashlight is the standard ruleset's flashlight skill: for each object it
// sums, over up to ten previous non-spinner objects, the jump distance to
// each (nerfed below 100 units, so stacked objects count less) divided by
// the cumulative strain time, squares the sum, adds a slider travel bonus
// and scales the result down for repeated angles. It has no opacity,
// Hidden or reveal-radius term.
type Flashlight struct {
	HasFlashlight bool

	inner      *difficulty.StrainSkill
	currStrain float64
}

func NewFlashlight(hasFL bool) *Flashlight {
	return &Flashlight{HasFlashlight: hasFL, inner: difficulty.NewStrainSkill(difficulty.SectionLen, true)}
}

func (f *Flashlight) Process(objs []*osu.DifficultyObject, idx int) {
	curr := objs[idx]

	f.inner.Process(idx == 0, curr.StartTime, func(sectionEnd float64) float64 {
		prevStart := 0.0
		if p := curr.Previous(objs, 0); p != nil {
			prevStart = p.StartTime
		}

		return f.currStrain * difficulty.StrainDecay(sectionEnd-prevStart, flashlightStrainDecayBase)
	}, func() float64 {
		f.currStrain *= difficulty.StrainDecay(curr.DeltaTime, flashlightStrainDecayBase)
		f.currStrain += evaluateFlashlight(objs, idx) * flashlightSkillMultiplier
		f.inner.ObjectStrains = append(f.inner.ObjectStrains, f.currStrain)

		return f.currStrain
	})
}

// DifficultyValue uses the same top-weighted reduction as aim/speed (spec
// §4.3): flashlight rewards a few hard-to-track sections more than an even
// spread across the whole map.
func (f *Flashlight) DifficultyValue() (float64, []float64) {
	dv := f.inner.TopWeightedDifficultyValue(difficulty.ReducedSectionCount, difficulty.ReducedStrainBaseline, difficulty.DecayWeight)
	return dv, f.inner.ObjectStrains
}

func evaluateFlashlight(objs []*osu.DifficultyObject, idx int) float64 {
	curr := objs[idx]

	result := 0.0
	cumulativeStrainTime := 0.0

	angleRepeats := 0.0
	var lastAngle float64
	hasLastAngle := false

	lookback := 10
	for i := 0; i < lookback; i++ {
		prev := curr.Previous(objs, i)
		if prev == nil {
			break
		}

		cumulativeStrainTime += prev.StrainTime

		if prev.Base.IsSpinner() {
			continue
		}

		jumpDist := curr.Base.StackedPos.Dst(prev.Base.StackedPos)

		stackNerf := math.Min(1, jumpDist/100)

		if hasLastAngle && prev.HasAngle && math.Abs(prev.Angle-lastAngle) < 0.02 {
			angleRepeats++
		}

		if prev.HasAngle {
			lastAngle = prev.Angle
			hasLastAngle = true
		}

		result += stackNerf * jumpDist / math.Max(cumulativeStrainTime, 1)
	}

	result *= result

	if curr.Base.IsSlider() {
		sliderBonus := math.Sqrt(math.Max(curr.Base.PathLength/math.Max(curr.TravelTime, 1)-0.5, 0)) * curr.Base.PathLength / float64(curr.Base.Repeats+1)
		result += sliderBonus
	}

	return result * (0.2 + 0.8/(angleRepeats+1))
}
