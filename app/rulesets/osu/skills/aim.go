// Package skills implements the standard ruleset's pure per-object strain
// evaluators (spec §4.4): aim, speed and flashlight. Each wraps the shared
// difficulty.StrainSkill section bookkeeping with its own decaying
// current-strain state, since skills differ in decay base.
package skills

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/osu"
)

const aimSkillMultiplier = 25.18
const aimStrainDecayBase = 0.15

const wideAngleMultiplier = 1.5
const acuteAngleMultiplier = 1.95
const sliderMultiplier = 1.35
const velocityChangeMultiplier = 0.75

// Aim is the standard ruleset's aim skill. WithSliders selects whether
// slider travel contributes to velocity (the "aim" vs "aim_no_sliders"
// sub-rating of spec §4.5).
type Aim struct {
	WithSliders bool

	inner      *difficulty.StrainSkill
	currStrain float64
}

func NewAim(withSliders bool) *Aim {
	return &Aim{WithSliders: withSliders, inner: difficulty.NewStrainSkill(difficulty.SectionLen, true)}
}

func (a *Aim) Process(objs []*osu.DifficultyObject, idx int) {
	curr := objs[idx]

	a.inner.Process(idx == 0, curr.StartTime, func(sectionEnd float64) float64 {
		prevStart := 0.0
		if p := curr.Previous(objs, 0); p != nil {
			prevStart = p.StartTime
		}

		return a.currStrain * difficulty.StrainDecay(sectionEnd-prevStart, aimStrainDecayBase)
	}, func() float64 {
		a.currStrain *= difficulty.StrainDecay(curr.DeltaTime, aimStrainDecayBase)
		a.currStrain += evaluateAim(objs, idx, a.WithSliders) * aimSkillMultiplier
		a.inner.ObjectStrains = append(a.inner.ObjectStrains, a.currStrain)

		return a.currStrain
	})
}

func (a *Aim) DifficultyValue() (float64, []float64) {
	dv := a.inner.TopWeightedDifficultyValue(difficulty.ReducedSectionCount, difficulty.ReducedStrainBaseline, difficulty.DecayWeight)
	return dv, a.inner.ObjectStrains
}

func calcWideAngleBonus(angle float64) float64 {
	v := math.Sin(0.75 * (math.Min(5.0/6*math.Pi, math.Max(angle, math.Pi/6)) - math.Pi/6))
	return v * v
}

func calcAcuteAngleBonus(angle float64) float64 {
	return 1 - calcWideAngleBonus(angle)
}

func evaluateAim(objs []*osu.DifficultyObject, idx int, withSliderTravel bool) float64 {
	curr := objs[idx]

	lastLast := curr.Previous(objs, 1)
	last := curr.Previous(objs, 0)

	if last == nil || lastLast == nil {
		return 0
	}

	if curr.Base.IsSpinner() || last.Base.IsSpinner() {
		return 0
	}

	currVel := curr.LazyJumpDist / curr.StrainTime

	if last.Base.IsSlider() && withSliderTravel {
		travelVel := last.TravelDist / last.TravelTime
		movementVel := curr.MinJumpDist / curr.MinJumpTime
		currVel = math.Max(currVel, movementVel+travelVel)
	}

	prevVel := last.LazyJumpDist / last.StrainTime

	if lastLast.Base.IsSlider() && withSliderTravel {
		travelVel := lastLast.TravelDist / lastLast.TravelTime
		movementVel := last.MinJumpDist / last.MinJumpTime
		prevVel = math.Max(prevVel, movementVel+travelVel)
	}

	wideAngleBonus, acuteAngleBonus, sliderBonus, velChangeBonus := 0.0, 0.0, 0.0, 0.0

	aimStrain := currVel

	if math.Max(curr.StrainTime, last.StrainTime) < 1.25*math.Min(curr.StrainTime, last.StrainTime) {
		if curr.HasAngle && last.HasAngle && lastLast.HasAngle {
			angleBonus := math.Min(currVel, prevVel)

			wideAngleBonus = calcWideAngleBonus(curr.Angle)
			acuteAngleBonus = calcAcuteAngleBonus(curr.Angle)

			if curr.StrainTime > 100 {
				acuteAngleBonus = 0
			} else {
				base1 := math.Sin(math.Pi / 2 * math.Min((100-curr.StrainTime)/25, 1))
				base2 := math.Sin(math.Pi / 2 * (clamp(curr.LazyJumpDist, 50, 100) - 50) / 50)

				acuteAngleBonus *= calcAcuteAngleBonus(last.Angle) *
					math.Min(angleBonus, 125/curr.StrainTime) *
					math.Pow(base1, 2) * math.Pow(base2, 2)
			}

			wideAngleBonus *= angleBonus * (1 - math.Min(wideAngleBonus, math.Pow(calcWideAngleBonus(last.Angle), 3)))
			acuteAngleBonus *= 0.5 + 0.5*(1-math.Min(acuteAngleBonus, math.Pow(calcAcuteAngleBonus(lastLast.Angle), 3)))
		}
	}

	if math.Max(prevVel, currVel) != 0 {
		prevVel = (last.LazyJumpDist + lastLast.TravelDist) / last.StrainTime
		currVel = (curr.LazyJumpDist + last.TravelDist) / curr.StrainTime

		distRatio := math.Pow(math.Sin(math.Pi/2*math.Abs(prevVel-currVel)/math.Max(prevVel, currVel)), 2)

		overlapVelBuff := math.Min(125/math.Min(curr.StrainTime, last.StrainTime), math.Abs(prevVel-currVel))

		velChangeBonus = overlapVelBuff * distRatio

		bonusBase := math.Min(curr.StrainTime, last.StrainTime) / math.Max(curr.StrainTime, last.StrainTime)
		velChangeBonus *= math.Pow(bonusBase, 2)
	}

	if last.Base.IsSlider() {
		sliderBonus = last.TravelDist / last.TravelTime
	}

	aimStrain += math.Max(acuteAngleBonus*acuteAngleMultiplier, wideAngleBonus*wideAngleMultiplier+velChangeBonus*velocityChangeMultiplier)

	if withSliderTravel {
		aimStrain += sliderBonus * sliderMultiplier
	}

	return aimStrain
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
