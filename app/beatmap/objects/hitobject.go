// Package objects holds the ruleset-independent beatmap entities described
// by the data model: circles, sliders, spinners and hold notes, plus the
// curve control points a slider is built from.
package objects

import "github.com/wieku/starcalc/framework/math/vector"

// HitObjectType tags the concrete variant carried by HitObject.
type HitObjectType uint8

const (
	TypeCircle HitObjectType = iota
	TypeSlider
	TypeSpinner
	TypeHold
)

// SliderNodeSound mirrors osu!'s per-node (head/repeat/tail) hit sound set,
// kept only as a bitmask; interpretation of hit sound flags other than
// "whistle/clap selects a rim drum hit, finish a strong one" is outside the
// core's concern.
type SliderNodeSound uint8

const (
	SoundNormal SliderNodeSound = 1 << iota
	SoundWhistle
	SoundFinish
	SoundClap
)

// CurveType is the slider path curve kind from the beatmap text format.
type CurveType uint8

const (
	CurveBezier CurveType = iota
	CurveCatmull
	CurveLinear
	CurvePerfect
)

// ControlPoint is one raw (x,y) anchor of a slider curve, exactly as
// decoded from the beatmap text (before curve interpolation).
type ControlPoint struct {
	Pos vector.Vector2f
}

// HitObject is the tagged-variant beatmap entity of §3. Exactly one of the
// type-specific fields is meaningful, selected by Type.
type HitObject struct {
	Type HitObjectType

	StartTime float64
	EndTime   float64 // meaningful for Slider, Spinner, Hold
	NewCombo  bool

	// Circle / Slider head position.
	Pos vector.Vector2f

	// Slider-only fields.
	ExpectedDist    float64 // pixel length from the beatmap; 0 means "derive from curve"
	HasExpectedDist bool
	Repeats         int
	CurveType       CurveType
	ControlPoints   []ControlPoint
	NodeSounds      []SliderNodeSound // len == Repeats+2 (head, each repeat, tail)

	// Hold-only.
	Column int

	HitSound uint8
}

func (h *HitObject) IsCircle() bool  { return h.Type == TypeCircle }
func (h *HitObject) IsSlider() bool  { return h.Type == TypeSlider }
func (h *HitObject) IsSpinner() bool { return h.Type == TypeSpinner }
func (h *HitObject) IsHold() bool    { return h.Type == TypeHold }

// Duration returns EndTime-StartTime, 0 for instantaneous objects.
func (h *HitObject) Duration() float64 {
	if h.EndTime <= h.StartTime {
		return 0
	}

	return h.EndTime - h.StartTime
}
