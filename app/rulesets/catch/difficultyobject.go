package catch

import "math"

const MinDeltaTime = 25.0
const normalizedHitObjectRadius = 41.0

// DifficultyObject is the catch ruleset's per-object derived-feature view
// (spec §4.2): a normalized X position and the time since the previous
// palpable object.
type DifficultyObject struct {
	Idx int

	Base *PlayableObject

	StartTime      float64
	DeltaTime      float64
	NormalizedPos  float64
	LastNormalized float64
}

func (d *DifficultyObject) Previous(objs []*DifficultyObject, n int) *DifficultyObject {
	idx := d.Idx - 1 - n
	if idx < 0 || idx >= len(objs) {
		return nil
	}

	return objs[idx]
}

// BuildDifficultyObjects derives the catch DifficultyObject stream,
// skipping bananas and tiny droplets (neither is palpable for difficulty
// purposes) and scaling every X position by the CS-derived normalization
// factor of spec §4.2: the catcher's half width at cs, trimmed by the same
// small-catcher fair-play allowance the hyperdash sweep's half width omits.
func BuildDifficultyObjects(objs []*PlayableObject, clockRate, cs float64) []*DifficultyObject {
	catchWidth := catcherHalfWidth(cs) * 2 * allowedCatchRange
	halfCatcherWidth := catchWidth * 0.5 * (1 - math.Max(cs-5.5, 0)*0.0625)
	scale := normalizedHitObjectRadius / halfCatcherWidth

	out := make([]*DifficultyObject, 0, len(objs))

	lastNormalized := 0.0
	first := true

	for _, o := range objs {
		if o.Kind == KindBanana || o.Kind == KindTinyDroplet {
			continue
		}

		d := &DifficultyObject{
			Idx:           len(out),
			Base:          o,
			StartTime:     o.StartTime / clockRate,
			NormalizedPos: o.X * scale,
		}

		if !first {
			d.LastNormalized = lastNormalized
		}

		if len(out) > 0 {
			d.DeltaTime = math.Max((o.StartTime-out[len(out)-1].Base.StartTime)/clockRate, MinDeltaTime)
		} else {
			d.DeltaTime = MinDeltaTime
		}

		lastNormalized = d.NormalizedPos
		first = false

		out = append(out, d)
	}

	return out
}
