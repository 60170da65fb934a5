package catch

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/catch/skills"
)

// Calculate runs the catch ruleset's difficulty pipeline (spec §4.5):
// `stars = sqrt(movement_diff) * 0.153`.
func Calculate(bm *beatmap.BeatMap, mods difficulty.Mods) (DifficultyAttributes, error) {
	objs, err := Convert(bm, mods)
	if err != nil {
		return DifficultyAttributes{}, err
	}

	clockRate := mods.ClockRate()
	cs := bm.Diff.GetCS(mods)

	diffObjs := BuildDifficultyObjects(objs, clockRate, cs)

	movement := skills.NewMovement()
	for i := range diffObjs {
		movement.Process(diffObjs, i)
	}

	movementDiff := movement.DifficultyValue()

	stars := math.Sqrt(movementDiff) * 0.153

	nFruits, nDroplets, nTiny, combo := 0, 0, 0, 0

	for _, o := range objs {
		switch o.Kind {
		case KindFruit:
			nFruits++
			combo++
		case KindDroplet:
			nDroplets++
			combo++
		case KindTinyDroplet:
			nTiny++
		}
	}

	return DifficultyAttributes{
		Stars:        stars,
		MovementDiff: movementDiff,
		MaxCombo:     combo,
		NFruits:      nFruits,
		NDroplets:    nDroplets,
		NTinyDrops:   nTiny,
	}, nil
}
