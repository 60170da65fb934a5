package catch

import (
	"math"
	"sort"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/beatmap/objects"
	"github.com/wieku/starcalc/framework/math/curves"
)

const legacyRandomSeed = 1337
const baseSpeed = 1.0
const playfieldWidth = 512.0

// areaCatcherSize, allowedCatchRange and frameTimeQuarter ground the
// catcher-width and hyperdash-timing constants of Catcher (spec §4.1, §6).
const areaCatcherSize = 106.75
const allowedCatchRange = 0.8
const frameTimeQuarter = 1000.0 / 60.0 / 4.0

// Convert implements the standard->catch leg of RulesetConverter (spec
// §4.1, §6): sliders become juice streams (their non-tiny-droplet nested
// objects become palpable fruit/droplets), spinners/holds become banana
// showers consuming 4 RNG draws per banana, and under HardRock every X
// position is mirrored across the playfield (x -> 512 - x) before
// hyperdash tagging. The seeded legacy PRNG is drawn from only by banana
// showers; HardRock applies no random position offset.
func Convert(bm *beatmap.BeatMap, mods difficulty.Mods) ([]*PlayableObject, error) {
	switch bm.Mode {
	case beatmap.ModeCatch:
		return tagHyperdashes(nativeObjects(bm), bm.Diff.GetCS(mods)), nil
	case beatmap.ModeOsu:
		rng := difficulty.NewLegacyRandom(legacyRandomSeed)
		out := make([]*PlayableObject, 0, len(bm.HitObjects)*2)

		for _, h := range bm.HitObjects {
			switch {
			case h.IsCircle():
				out = append(out, &PlayableObject{StartTime: h.StartTime, X: float64(h.Pos.X), Kind: KindFruit, NewCombo: h.NewCombo})
			case h.IsSlider():
				out = append(out, juiceStream(bm, h)...)
			case h.IsSpinner(), h.IsHold():
				out = append(out, bananaShower(h, rng)...)
			}
		}

		if mods.HR() {
			for _, o := range out {
				o.X = playfieldWidth - o.X
			}
		}

		return tagHyperdashes(out, bm.Diff.GetCS(mods)), nil
	default:
		return nil, &difficulty.ConvertError{From: "unknown", To: "catch", Reason: difficulty.Incompatible}
	}
}

func nativeObjects(bm *beatmap.BeatMap) []*PlayableObject {
	out := make([]*PlayableObject, 0, len(bm.HitObjects))

	for _, h := range bm.HitObjects {
		out = append(out, &PlayableObject{StartTime: h.StartTime, X: float64(h.Pos.X), Kind: KindFruit, NewCombo: h.NewCombo})
	}

	return out
}

// juiceStream expands a slider into a fruit at the head and tail of every
// span, with droplets spaced at the velocity-derived tick distance in
// between (the same slider_multiplier/slider_tick_rate computation the
// standard ruleset's buildSlider uses, spec §4.1). A leftover gap too short
// for a full tick is filled with a single tiny droplet instead of a regular
// one; only non-tiny nested objects become palpable.
func juiceStream(bm *beatmap.BeatMap, h *objects.HitObject) []*PlayableObject {
	path := curves.NewSliderPath(h.CurveType, h.ControlPoints, h.ExpectedDist, h.HasExpectedDist)
	pathLength := path.Length()

	velocity, tickDist := catchTickDistance(bm, h)

	spanCount := h.Repeats + 1
	spanDuration := (h.EndTime - h.StartTime) / float64(spanCount)

	out := make([]*PlayableObject, 0, spanCount*4)

	minDistFromEnd := velocity * 10

	for span := 0; span < spanCount; span++ {
		spanStart := h.StartTime + float64(span)*spanDuration
		reversed := span%2 == 1

		out = append(out, &PlayableObject{StartTime: spanStart, X: pointX(path, reversed, 0), Kind: KindFruit, NewCombo: h.NewCombo && span == 0})

		lastTickDist := 0.0

		if tickDist > 0 && velocity > 0 {
			for d := tickDist; d < pathLength-minDistFromEnd; d += tickDist {
				progress := d / pathLength

				out = append(out, &PlayableObject{StartTime: spanStart + d/velocity, X: pointX(path, reversed, progress), Kind: KindDroplet})

				lastTickDist = d
			}
		}

		// The remaining distance to the span end is shorter than a full
		// tick; a tiny droplet (not palpable for difficulty) fills it
		// instead of omitting it outright.
		if remaining := pathLength - lastTickDist; remaining > 0 && tickDist > 0 && remaining < tickDist && velocity > 0 {
			progress := (lastTickDist + remaining/2) / pathLength

			out = append(out, &PlayableObject{StartTime: spanStart + (lastTickDist+remaining/2)/velocity, X: pointX(path, reversed, progress), Kind: KindTinyDroplet})
		}
	}

	tailPos := pointX(path, spanCount%2 == 1, 1)
	out = append(out, &PlayableObject{StartTime: h.EndTime, X: tailPos, Kind: KindFruit})

	return out
}

// catchTickDistance mirrors osu/convert.go's buildSlider velocity/tick
// distance computation: both rulesets derive ticks from the same
// slider_multiplier/slider_tick_rate/slider_velocity model.
func catchTickDistance(bm *beatmap.BeatMap, h *objects.HitObject) (velocity, tickDist float64) {
	timing := bm.Control.TimingAt(h.StartTime)
	diffPoint := bm.Control.DifficultyAt(h.StartTime)

	beatLen := timing.BeatLen
	if diffPoint.SliderVelocity < 0 {
		beatLen *= bpmMultiplier(diffPoint.SliderVelocity)
	}

	velocity = 100 * bm.Diff.SliderMultiplier / beatLen
	tickDist = 100 * bm.Diff.SliderMultiplier / bm.Diff.SliderTickRate

	if bm.FormatVersion < 8 {
		svMult := 1.0
		if diffPoint.SliderVelocity > 0 {
			svMult = diffPoint.SliderVelocity
		}

		tickDist /= svMult
	}

	return velocity, tickDist
}

func bpmMultiplier(sv float64) float64 {
	if sv >= 0 {
		return 1
	}

	return clampRange(-sv, 10, 10000) / 100
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

func pointX(path *curves.SliderPath, reversed bool, progress float64) float64 {
	p := progress
	if reversed {
		p = 1 - p
	}

	return path.PositionAt(p).X
}

// bananaShower turns a spinner/hold into a shower of bananas spread evenly
// across its duration, consuming 4 RNG draws per banana as documented.
func bananaShower(h *objects.HitObject, rng *difficulty.LegacyRandom) []*PlayableObject {
	duration := h.EndTime - h.StartTime
	if duration <= 0 {
		return nil
	}

	spacing := 100.0
	count := int(duration / spacing)

	out := make([]*PlayableObject, 0, count)

	for i := 0; i < count; i++ {
		t := h.StartTime + float64(i)*spacing

		_ = rng.NextDouble() // banana type
		_ = rng.NextDouble() // rotation
		_ = rng.NextDouble() // colour
		x := rng.NextDouble() * playfieldWidth

		out = append(out, &PlayableObject{StartTime: t, X: x, Kind: KindBanana})
	}

	return out
}

// tagHyperdashes sweeps the time-sorted palpable list tracking the
// catcher's last travel direction and leftover catch-width slack: moving
// the same direction as last time carries that slack forward instead of
// the full catcher width, and a quarter-frame grace is subtracted from the
// time budget to account for 60fps update quantization (spec §4.1, §6).
// Objects that stay reachable record how much slack remains in
// DistToHyperDash; objects that don't are flagged HyperDash and reset the
// slack to the full catcher width for the next comparison.
//
// The reference implementation sorts with an unstable sort before a final
// stable sort to reproduce an initialization quirk affecting same-time
// ties; both passes order by start time only, so a single stable sort
// produces the same tie-break here.
func tagHyperdashes(objs []*PlayableObject, cs float64) []*PlayableObject {
	halfWidth := catcherHalfWidth(cs)

	sort.SliceStable(objs, func(i, j int) bool { return objs[i].StartTime < objs[j].StartTime })

	palpable := make([]int, 0, len(objs))

	for i, o := range objs {
		if o.Kind != KindBanana && o.Kind != KindTinyDroplet {
			palpable = append(palpable, i)
		}
	}

	lastDir := 0
	lastExcess := halfWidth

	for k := 0; k+1 < len(palpable); k++ {
		cur := objs[palpable[k]]
		next := objs[palpable[k+1]]

		thisDir := -1
		if next.X > cur.X {
			thisDir = 1
		}

		timeToNext := next.StartTime - cur.StartTime - frameTimeQuarter

		distToNext := math.Abs(next.X - cur.X)
		if lastDir == thisDir {
			distToNext -= lastExcess
		} else {
			distToNext -= halfWidth
		}

		distToHyper := timeToNext*baseSpeed - distToNext

		if distToHyper < 0 {
			cur.HyperDash = true
			cur.HyperDashTarget = next.X
			lastExcess = halfWidth
		} else {
			cur.DistToHyperDash = distToHyper
			lastExcess = clampRange(distToHyper, 0, halfWidth)
		}

		lastDir = thisDir
	}

	return objs
}

// catcherHalfWidth mirrors Catcher::calculate_catch_width divided by two
// and then renormalized by ALLOWED_CATCH_RANGE, exactly as
// initialize_hyper_dash computes it.
func catcherHalfWidth(cs float64) float64 {
	scale := 1 - 0.7*(cs-5)/5

	halfWidth := areaCatcherSize * math.Abs(scale) * allowedCatchRange / 2
	halfWidth /= allowedCatchRange

	return halfWidth
}
