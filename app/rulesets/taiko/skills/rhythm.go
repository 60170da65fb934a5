// Package skills implements the drum ruleset's strain evaluators (spec
// §4.4): rhythm, colour and stamina.
package skills

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/taiko"
)

const rhythmSkillMultiplier = 0.2
const rhythmStrainDecayBase = 0.3

// Rhythm rewards deviation from a steady stream: each hit's snapped-ratio
// difficulty is scaled by a logistic of how much its delta time changed
// relative to the previous hit's. Hits are scored one by one (same-ratio
// runs are not grouped, and there is no group-length bonus), and the value
// is not gated by stamina.
type Rhythm struct {
	inner      *difficulty.StrainSkill
	currStrain float64
}

func NewRhythm() *Rhythm {
	return &Rhythm{inner: difficulty.NewStrainSkill(difficulty.SectionLen, false)}
}

func (r *Rhythm) Process(objs []*taiko.DifficultyObject, idx int) {
	curr := objs[idx]

	r.inner.Process(idx == 0, curr.StartTime, func(sectionEnd float64) float64 {
		prevStart := 0.0
		if p := curr.Previous(objs, 0); p != nil {
			prevStart = p.StartTime
		}

		return r.currStrain * difficulty.StrainDecay(sectionEnd-prevStart, rhythmStrainDecayBase)
	}, func() float64 {
		r.currStrain *= difficulty.StrainDecay(curr.DeltaTime, rhythmStrainDecayBase)
		r.currStrain += evaluateRhythm(objs, idx) * rhythmSkillMultiplier

		return r.currStrain
	})
}

func (r *Rhythm) DifficultyValue() float64 {
	return r.inner.DifficultyValue(difficulty.DecayWeight)
}

// SectionPeaks exposes the raw per-section peaks (zeros included); use
// either this or DifficultyValue per instance, not both (each finalizes
// the open trailing section exactly once).
func (r *Rhythm) SectionPeaks() []float64 {
	r.inner.SaveCurrPeak()
	return r.inner.StrainPeaks.All()
}

func evaluateRhythm(objs []*taiko.DifficultyObject, idx int) float64 {
	curr := objs[idx]

	difficulty := curr.Rhythm.Difficulty

	prev := curr.Previous(objs, 0)
	if prev != nil && curr.DeltaTime > 0 {
		consistency := logistic((curr.DeltaTime-prev.DeltaTime)/math.Max(curr.DeltaTime, 1), 0.7, 1.0, 1.0)
		difficulty *= consistency
	}

	return difficulty
}

func logistic(x, scale, max, mid float64) float64 {
	return max / (1 + math.Exp(-scale*(x-mid)))
}
