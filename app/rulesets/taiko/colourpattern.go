package taiko

import "math"

// maxRepetitionInterval caps how far back RepeatingHitPatterns looks for a
// repeat before giving up (spec §4.4/§9's colour hierarchy).
const maxRepetitionInterval = 16

// consistentRatioThreshold and consistentRatioWindow bound the
// ratio-consistency penalty applied across recently processed objects.
const consistentRatioThreshold = 0.01
const consistentRatioWindow = 64

// monoStreak is a run of consecutive same-type (don/kat) hits.
type monoStreak struct {
	objIdx []int
	parent int
	idx    int
}

func (m *monoStreak) runLen() int { return len(m.objIdx) }

// alternatingMonoPattern is a run of consecutive monoStreaks sharing the
// same run length.
type alternatingMonoPattern struct {
	streakIdx []int
	parent    int
	idx       int
}

// repeatingHitPatterns couples repeated pairs/triples of
// alternatingMonoPatterns and tracks how far back (in pattern count) an
// equivalent pattern last occurred.
type repeatingHitPatterns struct {
	patternIdx         []int
	prev               int
	repetitionInterval int
}

// colourArena is the three-level object graph built bottom-up from a flat
// DifficultyObject stream (spec §9's "arena+indices" representation of the
// original's Rc<RefCell<>>/Weak tree).
type colourArena struct {
	mono []monoStreak
	alt  []alternatingMonoPattern
	rep  []repeatingHitPatterns
}

// buildColourArena encodes objs' colour hierarchy and assigns each arena
// node's first hit object a back-pointer into it, mirroring
// ColourDifficultyPreprocessor::process_and_assign.
func buildColourArena(objs []*DifficultyObject) *colourArena {
	a := &colourArena{}
	if len(objs) == 0 {
		return a
	}

	a.encodeMonoStreaks(objs)
	a.encodeAlternatingMonoPatterns()
	a.encodeRepeatingHitPatterns(objs)
	a.assign(objs)

	return a
}

func (a *colourArena) encodeMonoStreaks(objs []*DifficultyObject) {
	a.mono = append(a.mono, monoStreak{parent: -1})
	a.mono[0].objIdx = append(a.mono[0].objIdx, 0)

	for i := 1; i < len(objs); i++ {
		if objs[i-1].Base.Type != objs[i].Base.Type {
			a.mono = append(a.mono, monoStreak{parent: -1})
		}

		last := len(a.mono) - 1
		a.mono[last].objIdx = append(a.mono[last].objIdx, i)
	}
}

func (a *colourArena) encodeAlternatingMonoPatterns() {
	a.alt = append(a.alt, alternatingMonoPattern{parent: -1})
	a.alt[0].streakIdx = append(a.alt[0].streakIdx, 0)

	prevRunLen := a.mono[0].runLen()

	for i := 1; i < len(a.mono); i++ {
		runLen := a.mono[i].runLen()
		if runLen != prevRunLen {
			a.alt = append(a.alt, alternatingMonoPattern{parent: -1})
		}

		prevRunLen = runLen

		last := len(a.alt) - 1
		a.alt[last].streakIdx = append(a.alt[last].streakIdx, i)
	}
}

// hasIdenticalMonoLen compares the run length of each pattern's first mono
// streak, mirroring AlternatingMonoPattern::has_identical_mono_len.
func (a *colourArena) hasIdenticalMonoLen(i, j int) bool {
	return a.mono[a.alt[i].streakIdx[0]].runLen() == a.mono[a.alt[j].streakIdx[0]].runLen()
}

// isRepetitionOfAlt mirrors AlternatingMonoPattern::is_repetition_of.
func (a *colourArena) isRepetitionOfAlt(i, j int, objs []*DifficultyObject) bool {
	if !a.hasIdenticalMonoLen(i, j) {
		return false
	}

	if len(a.alt[i].streakIdx) != len(a.alt[j].streakIdx) {
		return false
	}

	firstI := objs[a.mono[a.alt[i].streakIdx[0]].objIdx[0]]
	firstJ := objs[a.mono[a.alt[j].streakIdx[0]].objIdx[0]]

	return firstI.Base.Type == firstJ.Base.Type
}

// isRepetitionOfRep mirrors RepeatingHitPatterns::is_repetition_of: it only
// compares the first two child patterns' mono lengths, not a full
// is_repetition_of, matching the original exactly.
func (a *colourArena) isRepetitionOfRep(i, j int) bool {
	pi := a.rep[i].patternIdx
	pj := a.rep[j].patternIdx

	if len(pi) != len(pj) {
		return false
	}

	n := len(pi)
	if n > 2 {
		n = 2
	}

	for k := 0; k < n; k++ {
		if !a.hasIdenticalMonoLen(pi[k], pj[k]) {
			return false
		}
	}

	return true
}

func (a *colourArena) encodeRepeatingHitPatterns(objs []*DifficultyObject) {
	queue := make([]int, len(a.alt))
	for i := range a.alt {
		queue[i] = i
	}

	curr := -1

	isCoupled := func() bool {
		return len(queue) >= 3 && a.isRepetitionOfAlt(queue[0], queue[2], objs)
	}

	for len(queue) > 0 {
		rp := repeatingHitPatterns{prev: curr, repetitionInterval: 0}
		a.rep = append(a.rep, rp)
		idx := len(a.rep) - 1
		curr = idx

		if isCoupled() {
			for isCoupled() {
				a.rep[idx].patternIdx = append(a.rep[idx].patternIdx, queue[0])
				queue = queue[1:]
			}

			for k := 0; k < 2 && len(queue) > 0; k++ {
				a.rep[idx].patternIdx = append(a.rep[idx].patternIdx, queue[0])
				queue = queue[1:]
			}
		} else {
			a.rep[idx].patternIdx = append(a.rep[idx].patternIdx, queue[0])
			queue = queue[1:]
		}
	}

	for i := range a.rep {
		a.findRepetitionInterval(i)
	}
}

// findRepetitionInterval mirrors RepeatingHitPatterns::find_repetition_interval,
// walking the backward prev chain up to maxRepetitionInterval steps.
func (a *colourArena) findRepetitionInterval(i int) {
	prev := a.rep[i].prev
	if prev == -1 {
		a.rep[i].repetitionInterval = maxRepetitionInterval + 1
		return
	}

	interval := 1
	other := prev

	for interval < maxRepetitionInterval {
		if a.isRepetitionOfRep(i, other) {
			if interval > maxRepetitionInterval {
				interval = maxRepetitionInterval
			}

			a.rep[i].repetitionInterval = interval

			return
		}

		next := a.rep[other].prev
		if next == -1 {
			break
		}

		other = next
		interval++
	}

	a.rep[i].repetitionInterval = maxRepetitionInterval + 1
}

// assign walks the arena top-down, linking parent/idx and tagging each
// unit's first hit object with a back-pointer, mirroring
// ColourDifficultyPreprocessor::process_and_assign.
func (a *colourArena) assign(objs []*DifficultyObject) {
	for rpIdx := range a.rep {
		patterns := a.rep[rpIdx].patternIdx
		if len(patterns) == 0 {
			continue
		}

		firstAlt := patterns[0]
		firstStreak := a.alt[firstAlt].streakIdx[0]
		firstObj := a.mono[firstStreak].objIdx[0]
		objs[firstObj].RepeatingRef = rpIdx

		for i, altIdx := range patterns {
			a.alt[altIdx].parent = rpIdx
			a.alt[altIdx].idx = i

			firstStreak := a.alt[altIdx].streakIdx[0]
			firstObj := a.mono[firstStreak].objIdx[0]
			objs[firstObj].AlternatingRef = altIdx

			for j, streakIdx := range a.alt[altIdx].streakIdx {
				a.mono[streakIdx].parent = altIdx
				a.mono[streakIdx].idx = j

				objs[a.mono[streakIdx].objIdx[0]].MonoStreakRef = streakIdx
			}
		}
	}
}

// logisticExp mirrors the original's logistic_exp(exponent, None): a
// logistic curve of max height 1 that decreases as exponent grows.
func logisticExp(exponent float64) float64 {
	return 1.0 / (1.0 + math.Exp(exponent))
}

func (a *colourArena) evalMonoStreakDiff(streakIdx int) float64 {
	s := a.mono[streakIdx]

	parentEval := 1.0
	if s.parent != -1 {
		parentEval = a.evalAlternatingDiff(s.parent)
	}

	return logisticExp(math.E*float64(s.idx)-2*math.E) * parentEval * 0.5
}

func (a *colourArena) evalAlternatingDiff(altIdx int) float64 {
	p := a.alt[altIdx]

	parentEval := 1.0
	if p.parent != -1 {
		parentEval = a.evalRepeatingDiff(p.parent)
	}

	return logisticExp(math.E*float64(p.idx)-2*math.E) * parentEval
}

func (a *colourArena) evalRepeatingDiff(repIdx int) float64 {
	interval := float64(a.rep[repIdx].repetitionInterval)

	return 2.0 * (1.0 - logisticExp(math.E*interval-2*math.E))
}

// consistentRatioPenalty mirrors ColorEvaluator::consistent_ratio_penalty:
// it scans backward through pairs of objects two apart, within the last
// consistentRatioWindow objects, for the nearest pair whose rhythm ratios
// agree within consistentRatioThreshold, and uses its ratio to compute a
// down-weighting multiplier.
func consistentRatioPenalty(objs []*DifficultyObject, idx int) float64 {
	start := idx - consistentRatioWindow
	if start < 0 {
		start = 0
	}

	consistentRatioCount := 0
	totalRatioCount := 0.0

	for e := idx; e-2 >= start; e -= 2 {
		currRatio := objs[e].Rhythm.Ratio
		prevRatio := objs[e-2].Rhythm.Ratio

		if math.Abs(1.0-currRatio/prevRatio) <= consistentRatioThreshold {
			consistentRatioCount++
			totalRatioCount += currRatio

			break
		}
	}

	return 1.0 - totalRatioCount/float64(consistentRatioCount+1)*0.8
}

// EvaluateColourDifficultyOf sums the mono-streak, alternating-pattern and
// repeating-pattern cascades that are rooted at objs[idx] (only true for the
// first object of each unit), then applies the ratio-consistency penalty,
// mirroring ColorEvaluator::evaluate_difficulty_of.
func EvaluateColourDifficultyOf(objs []*DifficultyObject, idx int) float64 {
	curr := objs[idx]
	a := curr.arena

	difficultyTotal := 0.0

	if curr.MonoStreakRef != -1 {
		difficultyTotal += a.evalMonoStreakDiff(curr.MonoStreakRef)
	}

	if curr.AlternatingRef != -1 {
		difficultyTotal += a.evalAlternatingDiff(curr.AlternatingRef)
	}

	if curr.RepeatingRef != -1 {
		difficultyTotal += a.evalRepeatingDiff(curr.RepeatingRef)
	}

	return difficultyTotal * consistentRatioPenalty(objs, idx)
}
