package difficulty

import "sort"

// TimingPoint carries the beat length (ms per beat) active from Time
// onward. beat_len is clamped to [6, 60000] per §3.
type TimingPoint struct {
	Time     float64
	BeatLen  float64
	Uninherited bool
}

func (t TimingPoint) BPM() float64 {
	if t.BeatLen <= 0 {
		return 0
	}

	return 60000 / t.BeatLen
}

// DifficultyPoint carries the slider-velocity multiplier and tick
// generation toggle active from Time onward.
type DifficultyPoint struct {
	Time            float64
	SliderVelocity  float64 // multiplier, negative beat_len encodes -100/beat_len
	GenerateTicks   bool
}

// EffectPoint carries kiai time and scroll speed (keys/drum "scroll
// velocity") active from Time onward.
type EffectPoint struct {
	Time        float64
	Kiai        bool
	ScrollSpeed float64
}

// ControlPoints bundles the three sorted-by-time timelines and exposes
// active_at(t) lookups per §3.
type ControlPoints struct {
	Timing     []TimingPoint
	Difficulty []DifficultyPoint
	Effect     []EffectPoint
}

func NewControlPoints() *ControlPoints {
	return &ControlPoints{}
}

func (cp *ControlPoints) Sort() {
	sort.SliceStable(cp.Timing, func(i, j int) bool { return cp.Timing[i].Time < cp.Timing[j].Time })
	sort.SliceStable(cp.Difficulty, func(i, j int) bool { return cp.Difficulty[i].Time < cp.Difficulty[j].Time })
	sort.SliceStable(cp.Effect, func(i, j int) bool { return cp.Effect[i].Time < cp.Effect[j].Time })
}

func clampBeatLen(v float64) float64 {
	if v < 6 {
		return 6
	}

	if v > 60000 {
		return 60000
	}

	return v
}

// AddTiming inserts an uninherited (beat-length-defining) point, clamping
// BeatLen into the documented [6, 60000] range.
func (cp *ControlPoints) AddTiming(time, beatLen float64) {
	cp.Timing = append(cp.Timing, TimingPoint{Time: time, BeatLen: clampBeatLen(beatLen), Uninherited: true})
}

// TimingAt returns the timing point with the largest time <= t. If none
// precede t it returns the first timing point, and if the map has no
// timing points at all it returns a default (120 BPM) point.
func (cp *ControlPoints) TimingAt(t float64) TimingPoint {
	if len(cp.Timing) == 0 {
		return TimingPoint{Time: 0, BeatLen: 500}
	}

	idx := activeIndex(len(cp.Timing), func(i int) float64 { return cp.Timing[i].Time }, t)
	if idx < 0 {
		return cp.Timing[0]
	}

	return cp.Timing[idx]
}

func (cp *ControlPoints) DifficultyAt(t float64) DifficultyPoint {
	idx := activeIndex(len(cp.Difficulty), func(i int) float64 { return cp.Difficulty[i].Time }, t)
	if idx < 0 {
		return DifficultyPoint{SliderVelocity: 1, GenerateTicks: true}
	}

	return cp.Difficulty[idx]
}

func (cp *ControlPoints) EffectAt(t float64) EffectPoint {
	idx := activeIndex(len(cp.Effect), func(i int) float64 { return cp.Effect[i].Time }, t)
	if idx < 0 {
		return EffectPoint{ScrollSpeed: 1}
	}

	return cp.Effect[idx]
}

// activeIndex returns the largest index i such that timeAt(i) <= t, or -1.
func activeIndex(n int, timeAt func(int) float64, t float64) int {
	lo, hi := 0, n

	for lo < hi {
		mid := (lo + hi) / 2
		if timeAt(mid) <= t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo - 1
}
