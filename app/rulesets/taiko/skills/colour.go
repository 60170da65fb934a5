package skills

import (
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/taiko"
)

const colourSkillMultiplier = 0.12
const colourStrainDecayBase = 0.8

// Colour rewards alternating don/kat patterns, cascaded through the
// hierarchical MonoStreak -> AlternatingMonoPattern -> RepeatingHitPatterns
// arena built by BuildDifficultyObjects (spec §4.4/§9): each level's sigmoid
// scales the level above it, and the whole sum is attenuated when the
// surrounding rhythm ratio has stayed consistent across recent objects.
type Colour struct {
	inner      *difficulty.StrainSkill
	currStrain float64
}

func NewColour() *Colour {
	return &Colour{inner: difficulty.NewStrainSkill(difficulty.SectionLen, false)}
}

func (c *Colour) Process(objs []*taiko.DifficultyObject, idx int) {
	curr := objs[idx]

	c.inner.Process(idx == 0, curr.StartTime, func(sectionEnd float64) float64 {
		prevStart := 0.0
		if p := curr.Previous(objs, 0); p != nil {
			prevStart = p.StartTime
		}

		return c.currStrain * difficulty.StrainDecay(sectionEnd-prevStart, colourStrainDecayBase)
	}, func() float64 {
		c.currStrain *= difficulty.StrainDecay(curr.DeltaTime, colourStrainDecayBase)
		c.currStrain += taiko.EvaluateColourDifficultyOf(objs, idx) * colourSkillMultiplier

		return c.currStrain
	})
}

func (c *Colour) DifficultyValue() float64 {
	return c.inner.DifficultyValue(difficulty.DecayWeight)
}

// SectionPeaks exposes the raw per-section peaks (zeros included); use
// either this or DifficultyValue per instance, not both (each finalizes
// the open trailing section exactly once).
func (c *Colour) SectionPeaks() []float64 {
	c.inner.SaveCurrPeak()
	return c.inner.StrainPeaks.All()
}
