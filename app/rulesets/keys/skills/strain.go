// Package skills implements the keys ruleset's strain evaluator: a
// per-column hold strain aggregated into an overall value (spec §4.4).
package skills

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/keys"
)

const individualDecayBase = 0.125
const overallDecayBase = 0.3
const releaseThreshold = 24.0
const skillMultiplier = 1.0

// Strain tracks a chord-aware per-column strain and an overall strain with
// a hold-overlap bonus, each decaying on its own timescale. DifficultyValue
// reports the overall strain's weighted peaks only; the per-column strain
// is tracked but does not enter the result.
type Strain struct {
	Columns int

	individual *difficulty.StrainSkill
	overall    *difficulty.StrainSkill

	colStrain    []float64
	colEndTimes  []float64
	currStrain   float64
}

func NewStrain(columns int) *Strain {
	return &Strain{
		Columns:     columns,
		individual:  difficulty.NewStrainSkill(difficulty.SectionLen, false),
		overall:     difficulty.NewStrainSkill(difficulty.SectionLen, false),
		colStrain:   make([]float64, columns),
		colEndTimes: make([]float64, columns),
	}
}

func (s *Strain) Process(objs []*keys.DifficultyObject, idx int) {
	curr := objs[idx]
	col := curr.Base.Column

	isChord := curr.DeltaTime <= 1

	s.individual.Process(idx == 0, curr.StartTime, func(sectionEnd float64) float64 {
		prevStart := 0.0
		if p := curr.Previous(objs, 0); p != nil {
			prevStart = p.StartTime
		}

		return s.maxColStrain() * difficulty.StrainDecay(sectionEnd-prevStart, individualDecayBase)
	}, func() float64 {
		s.colStrain[col] *= difficulty.StrainDecay(curr.DeltaTime, individualDecayBase)
		s.colStrain[col] += 2.0 * skillMultiplier

		if isChord {
			return s.maxColStrain()
		}

		s.colEndTimes[col] = curr.EndTime

		return s.colStrain[col]
	})

	s.overall.Process(idx == 0, curr.StartTime, func(sectionEnd float64) float64 {
		prevStart := 0.0
		if p := curr.Previous(objs, 0); p != nil {
			prevStart = p.StartTime
		}

		return s.currStrain * difficulty.StrainDecay(sectionEnd-prevStart, overallDecayBase)
	}, func() float64 {
		s.currStrain *= difficulty.StrainDecay(curr.DeltaTime, overallDecayBase)
		s.currStrain += evaluateOverall(curr, s.closestEndDelta(col, curr.StartTime)) * skillMultiplier

		return s.currStrain
	})
}

func (s *Strain) maxColStrain() float64 {
	max := 0.0

	for _, v := range s.colStrain {
		if v > max {
			max = v
		}
	}

	return max
}

func (s *Strain) closestEndDelta(col int, t float64) float64 {
	best := math.Inf(1)

	for c, end := range s.colEndTimes {
		if c == col {
			continue
		}

		d := math.Abs(t - end)
		if d < best {
			best = d
		}
	}

	return best
}

func evaluateOverall(curr *keys.DifficultyObject, closestEndDelta float64) float64 {
	base := 1.0

	if curr.Base.IsHold() {
		overlapBonus := 1 / (1 + math.Exp(0.5*(releaseThreshold-closestEndDelta)))
		base += overlapBonus
	}

	return base
}

func (s *Strain) DifficultyValue() float64 {
	return s.overall.DifficultyValue(difficulty.DecayWeight)
}
