package taiko

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap"
)

const MinDeltaTime = 25.0

// commonRatios is the fixed snapping table of spec §4.2's RhythmData.
var commonRatios = []float64{1, 2, 0.5, 3, 1.0 / 3, 1.5, 2.0 / 3, 1.25, 0.8}

// RhythmData is the drum ruleset's per-object rhythm feature (spec §4.2).
type RhythmData struct {
	Ratio      float64
	Difficulty float64
}

// DifficultyObject is the drum ruleset's per-object derived-feature view.
//
// MonoStreakRef/AlternatingRef/RepeatingRef index into the colour arena
// built by buildColourArena (spec §4.4/§9's three-level colour hierarchy:
// MonoStreak -> AlternatingMonoPattern -> RepeatingHitPatterns). Each is -1
// except on the first object of the unit it names, mirroring the original's
// encoding where only a streak/pattern's first hit object carries a
// back-pointer into the arena.
type DifficultyObject struct {
	Idx int

	Base *PlayableObject

	StartTime    float64
	DeltaTime    float64
	Rhythm       RhythmData
	EffectiveBPM float64

	MonoStreakRef  int
	AlternatingRef int
	RepeatingRef   int

	arena *colourArena
}

func (d *DifficultyObject) Previous(objs []*DifficultyObject, n int) *DifficultyObject {
	idx := d.Idx - 1 - n
	if idx < 0 || idx >= len(objs) {
		return nil
	}

	return objs[idx]
}

func (d *DifficultyObject) Next(objs []*DifficultyObject, n int) *DifficultyObject {
	idx := d.Idx + 1 + n
	if idx < 0 || idx >= len(objs) {
		return nil
	}

	return objs[idx]
}

// BuildDifficultyObjects derives the drum DifficultyObject stream.
func BuildDifficultyObjects(bm *beatmap.BeatMap, objs []*PlayableObject, clockRate float64) []*DifficultyObject {
	out := make([]*DifficultyObject, 0, len(objs))

	for i, curr := range objs {
		d := &DifficultyObject{
			Idx:            i,
			Base:           curr,
			StartTime:      curr.StartTime / clockRate,
			MonoStreakRef:  -1,
			AlternatingRef: -1,
			RepeatingRef:   -1,
		}

		if i > 0 {
			prev := objs[i-1]
			d.DeltaTime = math.Max((curr.StartTime-prev.StartTime)/clockRate, MinDeltaTime)
		} else {
			d.DeltaTime = MinDeltaTime
		}

		ratio := 1.0
		if i >= 2 {
			prevDelta := math.Max((objs[i-1].StartTime-objs[i-2].StartTime)/clockRate, MinDeltaTime)
			if prevDelta > 0 {
				ratio = d.DeltaTime / prevDelta
			}
		}

		d.Rhythm = RhythmData{Ratio: snapRatio(ratio), Difficulty: evaluateRatio(snapRatio(ratio))}

		timing := bm.Control.TimingAt(curr.StartTime)
		effect := bm.Control.EffectAt(curr.StartTime)
		d.EffectiveBPM = timing.BPM() * maxF(effect.ScrollSpeed, 1e-9) * clockRate

		out = append(out, d)
	}

	arena := buildColourArena(out)
	for _, d := range out {
		d.arena = arena
	}

	return out
}

func snapRatio(ratio float64) float64 {
	best := commonRatios[0]
	bestDist := math.Abs(ratio - best)

	for _, r := range commonRatios[1:] {
		dist := math.Abs(ratio - r)
		if dist < bestDist {
			best = r
			bestDist = dist
		}
	}

	return best
}

// evaluateRatio scores a snapped rhythm ratio: 0 for the steady stream
// (ratio 1), otherwise |log2(ratio)| capped at 1, so ratios further from 1
// are harder and halving or doubling the interval scores the maximum.
// Simple rational subdivisions get no separate reduction.
func evaluateRatio(ratio float64) float64 {
	if ratio == 1 {
		return 0
	}

	return math.Min(1, math.Abs(math.Log2(ratio))) * 1.0
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}

	return b
}
