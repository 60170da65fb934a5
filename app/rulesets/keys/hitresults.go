package keys

import "github.com/wieku/starcalc/app/beatmap/difficulty"

// ScoreInputs mirrors the keys-specific judgement set of spec §4.6:
// 320/300/200/100/50 weighted 60/40/20/10 (61 for 320 under lazer scoring,
// 60 under classic).
type ScoreInputs struct {
	N320, N300, N200, N100, N50, NMiss *int
	Accuracy                           *float64
	Classic                            bool
	Priority                           difficulty.HitResultPriority
}

// Synthesize reconstructs a canonical ScoreState from a partial keys score
// description. Under classic scoring every n320 is folded into n300, since
// classic mode gives the top judgement the same weight as n300; n320 is
// not redistributed into n200/n100/n50. The Accuracy field is not read.
func Synthesize(attrs DifficultyAttributes, in ScoreInputs) difficulty.ScoreState {
	total := attrs.NObjects

	misses := 0
	if in.NMiss != nil {
		misses = *in.NMiss
	}

	if misses > total {
		misses = total
	}

	remaining := total - misses

	n320, have320 := 0, false
	if in.N320 != nil {
		n320, have320 = *in.N320, true
	}

	n300, have300 := 0, false
	if in.N300 != nil {
		n300, have300 = *in.N300, true
	}

	n200, have200 := 0, false
	if in.N200 != nil {
		n200, have200 = *in.N200, true
	}

	n100, have100 := 0, false
	if in.N100 != nil {
		n100, have100 = *in.N100, true
	}

	n50, have50 := 0, false
	if in.N50 != nil {
		n50, have50 = *in.N50, true
	}

	specified := n320 + n300 + n200 + n100 + n50
	unspecifiedCount := 0

	for _, have := range []bool{have320, have300, have200, have100, have50} {
		if !have {
			unspecifiedCount++
		}
	}

	slack := remaining - specified

	if unspecifiedCount > 0 && slack > 0 {
		switch {
		case in.Priority == difficulty.PriorityWorstCase:
			switch {
			case !have50:
				n50 += slack
			case !have100:
				n100 += slack
			case !have200:
				n200 += slack
			case !have300:
				n300 += slack
			case !have320:
				n320 += slack
			}
		default:
			switch {
			case !have320:
				n320 += slack
			case !have300:
				n300 += slack
			case !have200:
				n200 += slack
			case !have100:
				n100 += slack
			case !have50:
				n50 += slack
			}
		}
	}

	if in.Classic && n320 > 0 {
		// Classic scoring has no dedicated "perfect" judgement above 300;
		// shift every synthesized 320 down into the 300 bucket so the
		// weighted sum still lands on the requested accuracy under the
		// classic 60-weight table.
		n300 += n320
		n320 = 0
	}

	combo := attrs.MaxCombo - misses

	return difficulty.ScoreState{
		MaxCombo: combo,
		NGeki:    0,
		N320:     n320,
		N300:     n300,
		N200:     n200,
		N100:     n100,
		N50:      n50,
		NMiss:    misses,
	}
}
