package osu

import (
	"sort"

	"github.com/wieku/starcalc/app/beatmap"
	"github.com/wieku/starcalc/app/beatmap/difficulty"
	"github.com/wieku/starcalc/app/beatmap/objects"
	"github.com/wieku/starcalc/framework/math/curves"
	"github.com/wieku/starcalc/framework/math/vector"
)

const StackDistance = 3.0
const playfieldY = 384.0

// Convert projects a standard beatmap's raw hit objects into the
// PlayableObject stream of spec §4.1: slider curve flattening, nested
// tick/repeat/tail generation, HR reflection (applied before stacking) and
// the version-gated stacking algorithm.
func Convert(bm *beatmap.BeatMap, mods difficulty.Mods) ([]*PlayableObject, error) {
	if bm.Mode != beatmap.ModeOsu {
		return nil, &difficulty.ConvertError{From: bm.Mode.String(), To: "osu", Reason: difficulty.Incompatible}
	}

	out := make([]*PlayableObject, 0, len(bm.HitObjects))

	preempt := timePreempt(bm.Diff.GetAR(mods))

	for _, h := range bm.HitObjects {
		po := &PlayableObject{
			Pos:       h.Pos.Copy64(),
			StartTime: h.StartTime,
			EndTime:   h.EndTime,
			NewCombo:  h.NewCombo,
		}

		switch h.Type {
		case objects.TypeCircle:
			po.Kind = KindCircle
		case objects.TypeSpinner:
			po.Kind = KindSpinner
		case objects.TypeSlider:
			po.Kind = KindSlider
			buildSlider(bm, h, po)
		default:
			continue
		}

		if mods.HR() {
			reflectY(po)
		}

		po.StackedPos = po.Pos
		po.Source = h

		out = append(out, po)
	}

	if bm.FormatVersion >= 6 {
		stackLazer(out, bm, mods, preempt)
	} else {
		stackLegacy(out, bm)
	}

	scale := (1 - 0.7*(bm.Diff.GetCS(mods)-5)/5) / 2

	for _, po := range out {
		offset := float64(po.StackHeight) * scale * -6.4
		po.StackOffset = vector.NewVec2d(offset, offset)
		po.StackedPos = po.Pos.Add(po.StackOffset)

		for i := range po.Nested {
			po.Nested[i].Pos = po.Nested[i].Pos.Add(po.StackOffset)
		}
	}

	return out, nil
}

func reflectY(po *PlayableObject) {
	po.Pos.Y = playfieldY - po.Pos.Y

	for i := range po.Nested {
		po.Nested[i].Pos.Y = playfieldY - po.Nested[i].Pos.Y
	}
}

func timePreempt(ar float64) float64 {
	if ar <= 5 {
		return 1800 - 120*ar
	}

	return 1200 - 150*(ar-5)
}

// bpmMultiplier implements the negative-slider-velocity encoding: a
// DifficultyPoint's SliderVelocity < 0 stores -100/beat_len, clamped to
// [10, 10000]/100 (spec §4.1).
func bpmMultiplier(sv float64) float64 {
	if sv >= 0 {
		return 1
	}

	clamped := clampRange(-sv, 10, 10000)

	return clamped / 100
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

func buildSlider(bm *beatmap.BeatMap, h *objects.HitObject, po *PlayableObject) {
	timing := bm.Control.TimingAt(h.StartTime)
	diffPoint := bm.Control.DifficultyAt(h.StartTime)

	beatLen := timing.BeatLen
	if diffPoint.SliderVelocity < 0 {
		beatLen *= bpmMultiplier(diffPoint.SliderVelocity)
	}

	velocity := 100 * bm.Diff.SliderMultiplier / beatLen
	tickDist := 100 * bm.Diff.SliderMultiplier / bm.Diff.SliderTickRate

	if bm.FormatVersion < 8 {
		svMult := 1.0
		if diffPoint.SliderVelocity > 0 {
			svMult = diffPoint.SliderVelocity
		}

		tickDist /= svMult
	}

	path := curves.NewSliderPath(h.CurveType, h.ControlPoints, h.ExpectedDist, h.HasExpectedDist)
	po.PathLength = path.Length()
	po.Repeats = h.Repeats

	duration := po.PathLength / velocity * float64(h.Repeats+1) * 1
	if velocity <= 0 {
		duration = 0
	}

	// spanDuration is the time one span takes at velocity; duration above
	// equals spanDuration*(Repeats+1) and is not used further.
	spanDuration := po.PathLength / (100 * bm.Diff.SliderMultiplier / beatLen)
	po.EndTime = h.StartTime + spanDuration*float64(h.Repeats+1)
	_ = duration

	if tickDist <= 0 || spanDuration <= 0 {
		return
	}

	minDistFromEnd := velocity * 10

	for span := 0; span <= h.Repeats; span++ {
		spanStart := h.StartTime + spanDuration*float64(span)
		reversed := span%2 == 1

		var ticks []float64
		for d := tickDist; d < po.PathLength-minDistFromEnd; d += tickDist {
			ticks = append(ticks, d)
		}

		if reversed {
			for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
				ticks[i], ticks[j] = ticks[j], ticks[i]
			}

			for i := range ticks {
				ticks[i] = po.PathLength - ticks[i]
			}
		}

		for _, d := range ticks {
			progress := d / po.PathLength
			t := spanStart + (d/po.PathLength)*spanDuration

			if reversed {
				t = spanStart + (1-progress)*spanDuration
			}

			pos := path.PositionAt(progress)

			po.Nested = append(po.Nested, NestedObject{Pos: pos, Time: t, Kind: NestedTick})
		}

		endProgress := 1.0
		if reversed {
			endProgress = 0.0
		}

		kind := NestedRepeat
		if span == h.Repeats {
			kind = NestedTail
		}

		po.Nested = append(po.Nested, NestedObject{
			Pos:  path.PositionAt(endProgress),
			Time: spanStart + spanDuration,
			Kind: kind,
		})
	}

	sort.SliceStable(po.Nested, func(i, j int) bool { return po.Nested[i].Time < po.Nested[j].Time })
}

func stackLazer(objs []*PlayableObject, bm *beatmap.BeatMap, mods difficulty.Mods, preempt float64) {
	stackThreshold := preempt * bm.Diff.StackLeniency

	for i := len(objs) - 1; i >= 0; i-- {
		n := objs[i]

		if n.StackHeight != 0 || n.IsSpinner() {
			continue
		}

		if n.IsCircle() {
			sbIdx := i

			for j := i - 1; j >= 0; j-- {
				o := objs[j]
				if o.IsSpinner() {
					continue
				}

				if n.StartTime-o.EndTime > stackThreshold {
					break
				}

				if o.IsSlider() && o.EndCursorPos().Dst(n.Pos) < StackDistance {
					offset := n.StackHeight - o.StackHeight + 1

					for k := sbIdx; k > j; k-- {
						if objs[k].Pos.Dst(o.EndCursorPos()) < StackDistance {
							objs[k].StackHeight = offset
						}
					}

					sbIdx = j
				} else if o.Pos.Dst(n.Pos) < StackDistance {
					o.StackHeight = n.StackHeight + 1
					n = o
					sbIdx = j
				}
			}
		} else if n.IsSlider() {
			for j := i - 1; j >= 0; j-- {
				o := objs[j]
				if o.IsSpinner() {
					continue
				}

				if n.StartTime-o.EndTime > stackThreshold {
					break
				}

				if o.EndCursorPos().Dst(n.Pos) < StackDistance {
					o.StackHeight = n.StackHeight + 1
					n = o
				}
			}
		}
	}
}

// stackLegacy implements the pre-version-6 stacking variant, which treats
// slider endpoints as separate stack anchors instead of the lazy endpoint.
func stackLegacy(objs []*PlayableObject, bm *beatmap.BeatMap) {
	threshold := timePreempt(bm.Diff.GetAR(0)) * bm.Diff.StackLeniency

	for i := 0; i < len(objs); i++ {
		cur := objs[i]
		if cur.StackHeight != 0 {
			continue
		}

		startTime := cur.EndTime

		var sliderStack int

		for j := i + 1; j < len(objs); j++ {
			obj := objs[j]

			if obj.StartTime-threshold > startTime {
				break
			}

			if obj.Pos.Dst(cur.Pos) < StackDistance {
				cur.StackHeight++
				startTime = obj.EndTime
			} else if cur.IsSlider() && obj.Nested != nil && len(cur.Nested) > 0 &&
				obj.Pos.Dst(cur.Nested[len(cur.Nested)-1].Pos) < StackDistance {
				sliderStack++
				obj.StackHeight -= sliderStack
				startTime = obj.EndTime
			}
		}
	}
}
