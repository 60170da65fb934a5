package osu

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/difficulty"
)

// ScoreInputs is the partial score description consumed by HitResultSynth
// (spec §4.6): any subset of judgement counts, miss count, combo and
// accuracy, plus a tie-break priority.
type ScoreInputs struct {
	N300, N100, N50, NMiss *int
	Combo                  *int
	Accuracy               *float64
	Priority               difficulty.HitResultPriority
}

// Synthesize reconstructs a canonical ScoreState consistent with the given
// partial constraints: misses are kept as given (capped at the object
// count); unspecified judgement counts are distributed to match the
// requested accuracy as closely as possible, using the stable weighted
// formula (300/100/50 = 6/2/1 over all objects, misses included) of spec
// §4.6, or, without an accuracy, every remaining slot goes to the highest-
// (BestCase) or lowest- (WorstCase) ranked unspecified judgement. Finally
// n300 is adjusted, even when it was specified, so that the judgements and
// misses add up to the object count.
func Synthesize(attrs DifficultyAttributes, in ScoreInputs) difficulty.ScoreState {
	nObjects := attrs.NCircles + attrs.NSliders + attrs.NSpinners

	misses := 0
	if in.NMiss != nil {
		misses = *in.NMiss
	}

	if misses > nObjects {
		misses = nObjects
	}

	remaining := nObjects - misses

	n300, have300 := derefOr(in.N300, 0)
	n100, have100 := derefOr(in.N100, 0)
	n50, have50 := derefOr(in.N50, 0)

	specifiedSum := 0
	if have300 {
		specifiedSum += n300
	}

	if have100 {
		specifiedSum += n100
	}

	if have50 {
		specifiedSum += n50
	}

	unspecifiedSlots := remaining - specifiedSum
	if unspecifiedSlots < 0 {
		unspecifiedSlots = 0
	}

	switch {
	case have300 && have100 && have50:
		// Fully specified: nothing to solve, just clamp to remaining.
	case in.Accuracy != nil:
		acc := clamp01f(*in.Accuracy)
		maxWeighted := 6.0 * float64(nObjects)
		targetWeighted := acc * maxWeighted

		alreadyWeighted := 0.0
		if have300 {
			targetWeighted -= float64(n300) * 6
		}

		if have100 {
			alreadyWeighted += float64(n100) * 2
		}

		if have50 {
			alreadyWeighted += float64(n50)
		}

		targetWeighted -= alreadyWeighted

		if !have300 && !have100 && !have50 {
			// Distribute across all three to hit the target accuracy,
			// favouring 300s (BestCase) or 50s (WorstCase) first.
			n300, n100, n50 = distributeThree(remaining, targetWeighted+alreadyWeighted, in.Priority)
		} else if !have100 && !have50 {
			// Solve for 100/50 split with 300 fixed.
			n100, n50 = solveTwo(unspecifiedSlots, targetWeighted, 2, 1, in.Priority)
		} else if !have300 && !have50 {
			n300, n50 = solveTwo(unspecifiedSlots, targetWeighted, 6, 1, in.Priority)
		} else if !have300 && !have100 {
			n300, n100 = solveTwo(unspecifiedSlots, targetWeighted, 6, 2, in.Priority)
		} else {
			// Only one of the three unspecified: whatever's left over.
			switch {
			case !have300:
				n300 = unspecifiedSlots
			case !have100:
				n100 = unspecifiedSlots
			default:
				n50 = unspecifiedSlots
			}
		}
	default:
		// No accuracy and not fully specified: assign all remaining slots
		// to the highest-ranked unspecified judgement under BestCase, the
		// lowest under WorstCase (spec §4.6 point 4).
		switch in.Priority {
		case difficulty.PriorityWorstCase:
			if !have50 {
				n50 = unspecifiedSlots
			} else if !have100 {
				n100 = unspecifiedSlots
			} else if !have300 {
				n300 = unspecifiedSlots
			}
		default:
			if !have300 {
				n300 = unspecifiedSlots
			} else if !have100 {
				n100 = unspecifiedSlots
			} else if !have50 {
				n50 = unspecifiedSlots
			}
		}
	}

	total := n300 + n100 + n50
	if total > remaining {
		n300 = clampNonNeg(remaining - n100 - n50)
	} else if total < remaining {
		n300 += remaining - total
	}

	combo := attrs.MaxCombo - misses
	if in.Combo != nil && *in.Combo < combo {
		combo = *in.Combo
	}

	return difficulty.ScoreState{
		MaxCombo: combo,
		N300:     n300,
		N100:     n100,
		N50:      n50,
		NMiss:    misses,
	}
}

func distributeThree(remaining int, targetWeighted float64, priority difficulty.HitResultPriority) (n300, n100, n50 int) {
	if remaining == 0 {
		return 0, 0, 0
	}

	maxWeighted := 6.0 * float64(remaining)
	targetWeighted = math.Max(0, math.Min(targetWeighted, maxWeighted))

	// Start everyone at 50s (floor accuracy), then promote to 100s, then
	// 300s, whichever the priority prefers, until the target is reached.
	n50 = remaining

	promote := func(from *int, to *int, weightDelta float64) {
		for *from > 0 && weightedSum(n300, n100, n50)+weightDelta <= targetWeighted {
			*from--
			*to++
		}
	}

	if priority == difficulty.PriorityBestCase {
		promote(&n50, &n100, 1)
		promote(&n100, &n300, 4)
	} else {
		promote(&n50, &n300, 5)
	}

	return n300, n100, n50
}

func weightedSum(n300, n100, n50 int) float64 {
	return float64(n300)*6 + float64(n100)*2 + float64(n50)
}

// solveTwo distributes `slots` between two judgements weighted w1/w2 to
// approach targetWeighted, biasing remainder toward the higher weight
// under BestCase and the lower weight under WorstCase.
func solveTwo(slots int, targetWeighted float64, w1, w2 float64, priority difficulty.HitResultPriority) (a, b int) {
	if slots <= 0 {
		return 0, 0
	}

	if w1 == w2 {
		return slots, 0
	}

	// a*w1 + b*w2 = target, a+b = slots => a = (target - slots*w2)/(w1-w2)
	raw := (targetWeighted - float64(slots)*w2) / (w1 - w2)

	a = int(math.Round(raw))
	if a < 0 {
		a = 0
	}

	if a > slots {
		a = slots
	}

	b = slots - a

	return a, b
}

func derefOr(p *int, def int) (int, bool) {
	if p == nil {
		return def, false
	}

	return *p, true
}

func clamp01f(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}

	return v
}
