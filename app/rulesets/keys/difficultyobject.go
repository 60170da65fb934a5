package keys

import "math"

const MinDeltaTime = 1.0

// DifficultyObject is the keys ruleset's per-object derived-feature view
// (spec §4.2): column, start/end time divided by clock rate, and the delta
// to the previous note in any column, floored at MinDeltaTime (used for
// chord detection and strain decay).
type DifficultyObject struct {
	Idx int

	Base *PlayableObject

	StartTime float64
	EndTime   float64
	DeltaTime float64
}

func (d *DifficultyObject) Previous(objs []*DifficultyObject, n int) *DifficultyObject {
	idx := d.Idx - 1 - n
	if idx < 0 || idx >= len(objs) {
		return nil
	}

	return objs[idx]
}

// BuildDifficultyObjects derives the keys DifficultyObject stream.
func BuildDifficultyObjects(objs []*PlayableObject, clockRate float64) []*DifficultyObject {
	out := make([]*DifficultyObject, 0, len(objs))

	for i, o := range objs {
		d := &DifficultyObject{
			Idx:       i,
			Base:      o,
			StartTime: o.StartTime / clockRate,
			EndTime:   o.EndTime / clockRate,
		}

		if i > 0 {
			d.DeltaTime = math.Max((o.StartTime-objs[i-1].StartTime)/clockRate, MinDeltaTime)
		} else {
			d.DeltaTime = MinDeltaTime
		}

		out = append(out, d)
	}

	return out
}
