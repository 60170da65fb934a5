package catch

import "github.com/wieku/starcalc/app/beatmap/difficulty"

// ScoreInputs mirrors the partial-score description of spec §4.6 as it
// applies to catch: accuracy there is simply the caught fraction of all
// non-miss judgements (fruits, droplets, tiny droplets).
type ScoreInputs struct {
	NFruit, NDroplet, NTinyDroplet, NMiss *int
	Accuracy                              *float64
	Priority                               difficulty.HitResultPriority
}

// Synthesize reconstructs a canonical ScoreState from a partial catch
// score description.
func Synthesize(attrs DifficultyAttributes, in ScoreInputs) difficulty.ScoreState {
	misses := 0
	if in.NMiss != nil {
		misses = *in.NMiss
	}

	totalObjects := attrs.NFruits + attrs.NDroplets + attrs.NTinyDrops
	if misses > totalObjects {
		misses = totalObjects
	}

	remaining := totalObjects - misses

	fruits, haveFruits := 0, false
	if in.NFruit != nil {
		fruits, haveFruits = *in.NFruit, true
	}

	droplets, haveDroplets := 0, false
	if in.NDroplet != nil {
		droplets, haveDroplets = *in.NDroplet, true
	}

	tiny, haveTiny := 0, false
	if in.NTinyDroplet != nil {
		tiny, haveTiny = *in.NTinyDroplet, true
	}

	if !haveFruits || !haveDroplets || !haveTiny {
		caught := remaining

		if in.Accuracy != nil {
			acc := *in.Accuracy
			if acc < 0 {
				acc = 0
			}

			if acc > 1 {
				acc = 1
			}

			caught = int(acc * float64(remaining))
		}

		if !haveFruits {
			fruits = minI(caught, attrs.NFruits)
		}

		if !haveDroplets {
			droplets = minI(caught-fruits, attrs.NDroplets)
			if droplets < 0 {
				droplets = 0
			}
		}

		if !haveTiny {
			tiny = remaining - fruits - droplets
			if tiny < 0 {
				tiny = 0
			}
		}
	}

	return difficulty.ScoreState{
		MaxCombo: attrs.MaxCombo - misses,
		N300:     fruits,
		N100:     droplets,
		N50:      tiny,
		NMiss:    misses,
	}
}

func minI(a, b int) int {
	if a < b {
		return a
	}

	return b
}
