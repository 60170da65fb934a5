package keys

import (
	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/rulesets/keys/skills"
)

// Calculate runs the keys ruleset's difficulty pipeline (spec §4.5):
// `stars = strain_diff * 0.018`.
func Calculate(bm *beatmap.BeatMap, mods difficulty.Mods) (DifficultyAttributes, error) {
	objs, columns, err := Convert(bm, mods)
	if err != nil {
		return DifficultyAttributes{}, err
	}

	clockRate := mods.ClockRate()
	diffObjs := BuildDifficultyObjects(objs, clockRate)

	strain := skills.NewStrain(columns)
	for i := range diffObjs {
		strain.Process(diffObjs, i)
	}

	strainDiff := strain.DifficultyValue()
	stars := strainDiff * 0.018

	od := bm.Diff.GetOD(mods)
	great := 64 - 3*od

	return DifficultyAttributes{
		Stars:          stars,
		StrainDiff:     strainDiff,
		Columns:        columns,
		NObjects:       len(objs),
		MaxCombo:       len(objs),
		GreatHitWindow: great,
	}, nil
}
