// Package skills implements the catch ruleset's single strain evaluator:
// movement (spec §4.4).
package skills

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/catch"
)

const movementSkillMultiplier = 900.0
const movementStrainDecayBase = 0.2
const movementSectionLen = 750.0

// Movement rewards weighted jump distance between normalized X positions,
// stretched further for hyperdash chains (spec §4.4).
type Movement struct {
	inner      *difficulty.StrainSkill
	currStrain float64
}

func NewMovement() *Movement {
	return &Movement{inner: difficulty.NewStrainSkill(movementSectionLen, false)}
}

func (m *Movement) Process(objs []*catch.DifficultyObject, idx int) {
	curr := objs[idx]

	m.inner.Process(idx == 0, curr.StartTime, func(sectionEnd float64) float64 {
		prevStart := 0.0
		if p := curr.Previous(objs, 0); p != nil {
			prevStart = p.StartTime
		}

		return m.currStrain * difficulty.StrainDecay(sectionEnd-prevStart, movementStrainDecayBase)
	}, func() float64 {
		strainTime := math.Max(curr.DeltaTime, 40)

		m.currStrain *= difficulty.StrainDecay(strainTime, movementStrainDecayBase)
		m.currStrain += evaluateMovement(curr) * movementSkillMultiplier / strainTime

		return m.currStrain
	})
}

func (m *Movement) DifficultyValue() float64 {
	return m.inner.DifficultyValue(difficulty.DecayWeight)
}

func evaluateMovement(curr *catch.DifficultyObject) float64 {
	dist := math.Abs(curr.NormalizedPos - curr.LastNormalized)

	if curr.Base.HyperDash {
		dist *= 1.3
	}

	return dist
}
