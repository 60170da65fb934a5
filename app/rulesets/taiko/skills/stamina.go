package skills

import (
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/taiko"
)

const staminaSkillMultiplier = 1.1
const staminaStrainDecayBase = 0.4

// Stamina tracks how close together same-colour hits land: k=1 lookback
// when the colour changed within 300ms, else k=7, per spec §4.4.
type Stamina struct {
	SingleColour bool

	inner      *difficulty.StrainSkill
	currStrain float64
}

func NewStamina(singleColour bool) *Stamina {
	return &Stamina{SingleColour: singleColour, inner: difficulty.NewStrainSkill(difficulty.SectionLen, false)}
}

func (s *Stamina) Process(objs []*taiko.DifficultyObject, idx int) {
	curr := objs[idx]

	s.inner.Process(idx == 0, curr.StartTime, func(sectionEnd float64) float64 {
		prevStart := 0.0
		if p := curr.Previous(objs, 0); p != nil {
			prevStart = p.StartTime
		}

		return s.currStrain * difficulty.StrainDecay(sectionEnd-prevStart, staminaStrainDecayBase)
	}, func() float64 {
		s.currStrain *= difficulty.StrainDecay(curr.DeltaTime, staminaStrainDecayBase)
		s.currStrain += evaluateStamina(objs, idx) * staminaSkillMultiplier

		return s.currStrain
	})
}

func (s *Stamina) DifficultyValue() float64 {
	return s.inner.DifficultyValue(difficulty.DecayWeight)
}

// SectionPeaks exposes the raw per-section peaks (zeros included); use
// either this or DifficultyValue per instance, not both (each finalizes
// the open trailing section exactly once).
func (s *Stamina) SectionPeaks() []float64 {
	s.inner.SaveCurrPeak()
	return s.inner.StrainPeaks.All()
}

func evaluateStamina(objs []*taiko.DifficultyObject, idx int) float64 {
	curr := objs[idx]

	k := 7
	if prev := curr.Previous(objs, 0); prev != nil && curr.StartTime-prev.StartTime < 300 && prev.Base.Type != curr.Base.Type {
		k = 1
	}

	sameColourBack := func(d *taiko.DifficultyObject) *taiko.DifficultyObject {
		seen := 0
		for p := d.Previous(objs, 0); p != nil; p = p.Previous(objs, 0) {
			if p.Base.Type == d.Base.Type {
				seen++
				if seen == k {
					return p
				}
			}
		}

		return nil
	}

	sameColour := sameColourBack(curr)

	deltaToK := 1.0
	if sameColour != nil {
		deltaToK = maxF(curr.StartTime-sameColour.StartTime, 1)
	}

	base := 0.5 + 20/deltaToK

	if prev := curr.Previous(objs, 0); prev != nil {
		prevSame := sameColourBack(prev)

		prevDelta := 1.0
		if prevSame != nil {
			prevDelta = maxF(prev.StartTime-prevSame.StartTime, 1)
		}

		base += 0.5 * (0.5 + 20/prevDelta)
	}

	return base
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}

	return b
}
