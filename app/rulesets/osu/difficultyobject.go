package osu

import "math"

const MinDeltaTime = 25.0
const assumedSliderRadiusFactor = 0.9
const maxSliderRadiusFactor = 0.9 // tail allowance shares the head allowance in this model

// DifficultyObject is the per-object derived-feature view of spec §4.2,
// computed from a small neighbourhood ([i-2, i-1, i]) of PlayableObjects.
type DifficultyObject struct {
	Idx int

	Base *PlayableObject

	StartTime float64
	DeltaTime float64
	StrainTime float64

	LazyJumpDist float64
	MinJumpDist  float64
	MinJumpTime  float64

	TravelDist float64
	TravelTime float64

	Angle    float64
	HasAngle bool
}

// Previous returns the n-th preceding difficulty object (0 = immediately
// before this one), or nil past the start of the stream.
func (d *DifficultyObject) Previous(objs []*DifficultyObject, n int) *DifficultyObject {
	idx := d.Idx - 1 - n
	if idx < 0 || idx >= len(objs) {
		return nil
	}

	return objs[idx]
}

// Next returns the n-th following difficulty object, or nil past the end.
func (d *DifficultyObject) Next(objs []*DifficultyObject, n int) *DifficultyObject {
	idx := d.Idx + 1 + n
	if idx < 0 || idx >= len(objs) {
		return nil
	}

	return objs[idx]
}

// BuildDifficultyObjects derives the DifficultyObject stream from a
// PlayableObject stream, skipping spinners from the neighbourhood as noted
// in spec §4.2.
func BuildDifficultyObjects(objs []*PlayableObject, clockRate float64, scale ScalingFactor) []*DifficultyObject {
	filtered := make([]*PlayableObject, 0, len(objs))
	for _, o := range objs {
		filtered = append(filtered, o)
	}

	out := make([]*DifficultyObject, 0, len(filtered))

	for i := 1; i < len(filtered); i++ {
		curr := filtered[i]
		prev := filtered[i-1]

		if curr.IsSpinner() {
			continue
		}

		d := &DifficultyObject{
			Idx:       len(out),
			Base:      curr,
			StartTime: curr.StartTime / clockRate,
		}

		d.DeltaTime = (curr.StartTime - prev.StartTime) / clockRate
		d.StrainTime = math.Max(d.DeltaTime, MinDeltaTime)

		if !prev.IsSpinner() {
			d.LazyJumpDist = curr.StackedPos.Dst(prev.EndCursorPos()) * scale.Factor
		}

		computeSliderTravel(curr, scale, d)

		d.MinJumpDist = d.LazyJumpDist
		d.MinJumpTime = d.StrainTime

		if prev.IsSlider() {
			lastTravelTime := maxF(prev.LazyTravelTime/clockRate, MinDeltaTime)
			d.MinJumpTime = maxF(d.StrainTime-lastTravelTime, MinDeltaTime)

			travelGap := maxF(0, d.LazyJumpDist-maxSliderRadiusFactor*scale.Radius*assumedSliderRadiusFactor/assumedSliderRadiusFactor)
			d.MinJumpDist = minF(d.LazyJumpDist, travelGap)
		}

		if i >= 2 {
			lastLast := filtered[i-2]
			if !lastLast.IsSpinner() && !prev.IsSpinner() {
				v1 := lastLast.EndCursorPos().Sub(prev.StackedPos)
				v2 := curr.StackedPos.Sub(prev.EndCursorPos())

				dot := v1.Dot(v2)
				det := v1.Det(v2)

				d.Angle = math.Abs(math.Atan2(det, dot))
				d.HasAngle = true
			}
		}

		out = append(out, d)
	}

	return out
}

// computeSliderTravel walks a slider's nested objects (head -> ticks ->
// repeats -> tail), freezing the lazy end position once the final repeat
// is processed, per spec §4.2 / §9 ("Cursor-path simulation").
func computeSliderTravel(o *PlayableObject, scale ScalingFactor, d *DifficultyObject) {
	if !o.IsSlider() {
		o.LazyEndPos = o.StackedPos
		return
	}

	assumedRadius := assumedSliderRadiusFactor * scale.Radius
	cursor := o.StackedPos

	travelDist := 0.0

	for i, n := range o.Nested {
		isLast := i == len(o.Nested)-1
		limit := assumedRadius

		if isLast {
			limit = scale.Radius
		}

		diff := n.Pos.Sub(cursor)
		dist := diff.Len()

		if dist > limit {
			excess := (dist - limit) / dist
			cursor = cursor.Add(diff.Scl(excess))
			travelDist += excess * dist
		}
	}

	o.LazyEndPos = cursor
	o.LazyTravelDist = travelDist * scale.Factor
	o.LazyTravelTime = maxF(o.EndTime-o.StartTime, MinDeltaTime)

	d.TravelDist = o.LazyTravelDist
	d.TravelTime = maxF(o.LazyTravelTime/1, MinDeltaTime)
}
