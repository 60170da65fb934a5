// Package osu implements the standard-ruleset difficulty and performance
// pipeline: slider/stack conversion, the aim/speed/flashlight skills, star
// aggregation, hit-result synthesis and the performance formula.
package osu

import (
	"github.com/wieku/starcalc/app/beatmap/objects"
	"github.com/wieku/starcalc/framework/math/vector"
)

type NestedKind uint8

const (
	NestedTick NestedKind = iota
	NestedRepeat
	NestedTail
)

// NestedObject is one slider tick/repeat/tail produced by expanding a
// Slider's curve, per spec §3.
type NestedObject struct {
	Pos  vector.Vector2d
	Time float64
	Kind NestedKind
}

type ObjectKind uint8

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
)

// PlayableObject is the standard ruleset's per-object projection of spec
// §3: position, stacking, and (for sliders) the nested tick/repeat/tail
// sequence plus the lazily-simulated cursor endpoint used by the aim skill.
type PlayableObject struct {
	Kind ObjectKind

	Pos         vector.Vector2d
	StackedPos  vector.Vector2d
	StackHeight int
	StackOffset vector.Vector2d

	StartTime float64
	EndTime   float64

	NewCombo bool

	// Slider-only.
	Nested         []NestedObject
	Repeats        int
	PathLength     float64
	LazyEndPos     vector.Vector2d
	LazyTravelDist float64
	LazyTravelTime float64

	Source *objects.HitObject
}

func (o *PlayableObject) IsCircle() bool  { return o.Kind == KindCircle }
func (o *PlayableObject) IsSlider() bool  { return o.Kind == KindSlider }
func (o *PlayableObject) IsSpinner() bool { return o.Kind == KindSpinner }

// EndCursorPos is the position used as the "cursor rest point" after this
// object: the lazy end for sliders, the plain stacked position otherwise.
func (o *PlayableObject) EndCursorPos() vector.Vector2d {
	if o.IsSlider() {
		return o.LazyEndPos
	}

	return o.StackedPos
}
