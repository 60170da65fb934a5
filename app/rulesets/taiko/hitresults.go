package taiko

import "github.com/wieku/starcalc/app/beatmap/difficulty"

// ScoreInputs mirrors the standard ruleset's partial-score description,
// restricted to the judgements the drum ruleset actually has (spec §4.6:
// "drum: 300/100 = 2/1, denominator 2·total").
type ScoreInputs struct {
	N300, N100, NMiss *int
	Accuracy          *float64
	Priority          difficulty.HitResultPriority
}

// Synthesize reconstructs a canonical ScoreState from a partial drum score
// description, following the same weighted-bracket approach as standard
// but over the reduced 300/100 judgement set.
func Synthesize(attrs DifficultyAttributes, in ScoreInputs) difficulty.ScoreState {
	nObjects := attrs.NObjects

	misses := 0
	if in.NMiss != nil {
		misses = *in.NMiss
	}

	if misses > nObjects {
		misses = nObjects
	}

	remaining := nObjects - misses

	n300, have300 := 0, false
	n100, have100 := 0, false

	if in.N300 != nil {
		n300, have300 = *in.N300, true
	}

	if in.N100 != nil {
		n100, have100 = *in.N100, true
	}

	switch {
	case have300 && have100:
		// fully specified
	case in.Accuracy != nil:
		acc := *in.Accuracy
		if acc < 0 {
			acc = 0
		}

		if acc > 1 {
			acc = 1
		}

		target := acc * 2 * float64(nObjects)

		switch {
		case have300:
			n100 = remaining - n300
		case have100:
			n300 = remaining - n100
		default:
			n300 = int(target - float64(remaining))
			if n300 < 0 {
				n300 = 0
			}

			if n300 > remaining {
				n300 = remaining
			}

			n100 = remaining - n300
		}
	default:
		switch in.Priority {
		case difficulty.PriorityWorstCase:
			if !have100 {
				n100 = remaining - n300
			} else {
				n300 = remaining - n100
			}
		default:
			if !have300 {
				n300 = remaining - n100
			} else {
				n100 = remaining - n300
			}
		}
	}

	if n300 < 0 {
		n300 = 0
	}

	if n100 < 0 {
		n100 = 0
	}

	if n300+n100 > remaining {
		n100 = remaining - n300
	}

	return difficulty.ScoreState{
		MaxCombo: attrs.MaxCombo - misses,
		N300:     n300,
		N100:     n100,
		NMiss:    misses,
	}
}
