// Package curves approximates osu! slider paths (bezier, uniform
// catmull-rom, linear and perfect-circle arcs) as a cumulative-length
// polyline, the same "flatten once, walk many times" approach the donor
// project's curve package uses for rendering and that the difficulty
// pipeline reuses for cursor-path simulation (spec §9, "Cursor-path
// simulation").
package curves

import (
	"math"

	"github.com/wieku/starcalc/app/beatmap/objects"
	"github.com/wieku/starcalc/framework/math/vector"
)

const tolerance = 0.25

// SliderPath is a flattened, arc-length-parameterized representation of a
// slider's curve, built once per slider and then queried many times while
// walking nested objects (ticks, repeats, tail) and while simulating the
// cursor path for travel-distance features.
type SliderPath struct {
	points     []vector.Vector2d
	cumulative []float64
	length     float64
}

// NewSliderPath flattens the given control points under curveType into a
// polyline, then rescales it to match expectedDist when the beatmap
// specifies one (sliders are allowed to claim a pixel length that disagrees
// slightly with their raw control-point geometry).
func NewSliderPath(curveType objects.CurveType, controlPoints []objects.ControlPoint, expectedDist float64, hasExpectedDist bool) *SliderPath {
	raw := make([]vector.Vector2d, len(controlPoints))
	for i, cp := range controlPoints {
		raw[i] = cp.Pos.Copy64()
	}

	var flattened []vector.Vector2d

	switch curveType {
	case objects.CurveLinear:
		flattened = raw
	case objects.CurvePerfect:
		flattened = flattenPerfect(raw)
	case objects.CurveCatmull:
		flattened = flattenCatmull(raw)
	default:
		flattened = flattenBezier(raw)
	}

	sp := &SliderPath{points: dedupe(flattened)}
	sp.buildCumulative()

	if hasExpectedDist && sp.length > 0 && math.Abs(expectedDist-sp.length) > 0.1 {
		sp.rescale(expectedDist)
	}

	return sp
}

func dedupe(pts []vector.Vector2d) []vector.Vector2d {
	if len(pts) == 0 {
		return pts
	}

	out := pts[:1]

	for _, p := range pts[1:] {
		if p.Dst(out[len(out)-1]) > 1e-6 {
			out = append(out, p)
		}
	}

	return out
}

func (sp *SliderPath) buildCumulative() {
	sp.cumulative = make([]float64, len(sp.points))

	total := 0.0
	for i := 1; i < len(sp.points); i++ {
		total += sp.points[i].Dst(sp.points[i-1])
		sp.cumulative[i] = total
	}

	sp.length = total
}

func (sp *SliderPath) rescale(target float64) {
	if sp.length <= 0 || len(sp.points) < 2 {
		return
	}

	if target < sp.length {
		// Trim the tail to the requested length.
		cut := sp.pointAtDistance(target)
		idx := sp.segmentIndex(target)
		sp.points = append(append([]vector.Vector2d{}, sp.points[:idx+1]...), cut)
	} else {
		// Extrapolate in the direction of the final segment.
		last := sp.points[len(sp.points)-1]
		prev := sp.points[len(sp.points)-2]

		dir := last.Sub(prev)
		if l := dir.Len(); l > 1e-9 {
			dir = dir.Scl(1 / l)
		}

		extra := target - sp.length
		sp.points = append(sp.points, last.Add(dir.Scl(extra)))
	}

	sp.buildCumulative()
}

// Length returns the total (post-rescale) path length.
func (sp *SliderPath) Length() float64 {
	return sp.length
}

func (sp *SliderPath) segmentIndex(dist float64) int {
	lo, hi := 0, len(sp.cumulative)-1

	for lo < hi {
		mid := (lo + hi) / 2
		if sp.cumulative[mid] < dist {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo > 0 {
		lo--
	}

	return lo
}

func (sp *SliderPath) pointAtDistance(dist float64) vector.Vector2d {
	if len(sp.points) == 0 {
		return vector.Vector2d{}
	}

	if dist <= 0 {
		return sp.points[0]
	}

	if dist >= sp.length {
		return sp.points[len(sp.points)-1]
	}

	idx := sp.segmentIndex(dist)
	segStart := sp.cumulative[idx]
	segLen := sp.cumulative[idx+1] - segStart

	if segLen <= 1e-9 {
		return sp.points[idx]
	}

	t := (dist - segStart) / segLen

	return sp.points[idx].Add(sp.points[idx+1].Sub(sp.points[idx]).Scl(t))
}

// PositionAt returns the point progress (0..1) of the way along the path.
func (sp *SliderPath) PositionAt(progress float64) vector.Vector2d {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	return sp.pointAtDistance(progress * sp.length)
}

func flattenBezier(raw []vector.Vector2d) []vector.Vector2d {
	if len(raw) < 2 {
		return raw
	}

	// Split on repeated control points: osu! encodes connected bezier
	// segments by duplicating the anchor between them.
	var out []vector.Vector2d

	start := 0
	for i := 1; i < len(raw); i++ {
		if raw[i] == raw[i-1] {
			out = append(out, subdivideBezier(raw[start:i])...)
			start = i
		}
	}

	out = append(out, subdivideBezier(raw[start:])...)

	return out
}

func subdivideBezier(ctrl []vector.Vector2d) []vector.Vector2d {
	if len(ctrl) < 2 {
		return ctrl
	}

	steps := 50
	out := make([]vector.Vector2d, 0, steps+1)

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		out = append(out, deCasteljau(ctrl, t))
	}

	return out
}

func deCasteljau(ctrl []vector.Vector2d, t float64) vector.Vector2d {
	pts := append([]vector.Vector2d{}, ctrl...)

	for len(pts) > 1 {
		next := make([]vector.Vector2d, len(pts)-1)
		for i := range next {
			next[i] = pts[i].Add(pts[i+1].Sub(pts[i]).Scl(t))
		}
		pts = next
	}

	return pts[0]
}

func flattenCatmull(raw []vector.Vector2d) []vector.Vector2d {
	if len(raw) < 2 {
		return raw
	}

	steps := 25
	out := make([]vector.Vector2d, 0, len(raw)*steps)

	get := func(i int) vector.Vector2d {
		if i < 0 {
			return raw[0]
		}

		if i >= len(raw) {
			return raw[len(raw)-1]
		}

		return raw[i]
	}

	for i := 0; i < len(raw)-1; i++ {
		p0, p1, p2, p3 := get(i-1), get(i), get(i+1), get(i+2)

		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps)
			out = append(out, catmullPoint(p0, p1, p2, p3, t))
		}
	}

	out = append(out, raw[len(raw)-1])

	return out
}

func catmullPoint(p0, p1, p2, p3 vector.Vector2d, t float64) vector.Vector2d {
	t2 := t * t
	t3 := t2 * t

	x := 0.5 * (2*p1.X + (-p0.X+p2.X)*t + (2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 + (-p0.X+3*p1.X-3*p2.X+p3.X)*t3)
	y := 0.5 * (2*p1.Y + (-p0.Y+p2.Y)*t + (2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 + (-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3)

	return vector.Vector2d{X: x, Y: y}
}

// flattenPerfect builds a circular arc through three points (osu!'s
// "perfect curve" slider type), falling back to a straight line when the
// three points are collinear.
func flattenPerfect(raw []vector.Vector2d) []vector.Vector2d {
	if len(raw) != 3 {
		return flattenBezier(raw)
	}

	a, b, c := raw[0], raw[1], raw[2]

	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-9 {
		return []vector.Vector2d{a, c}
	}

	ux := ((a.X*a.X+a.Y*a.Y)*(b.Y-c.Y) + (b.X*b.X+b.Y*b.Y)*(c.Y-a.Y) + (c.X*c.X+c.Y*c.Y)*(a.Y-b.Y)) / d
	uy := ((a.X*a.X+a.Y*a.Y)*(c.X-b.X) + (b.X*b.X+b.Y*b.Y)*(a.X-c.X) + (c.X*c.X+c.Y*c.Y)*(b.X-a.X)) / d

	centre := vector.Vector2d{X: ux, Y: uy}
	radius := centre.Dst(a)

	startAngle := math.Atan2(a.Y-centre.Y, a.X-centre.X)
	midAngle := math.Atan2(b.Y-centre.Y, b.X-centre.X)
	endAngle := math.Atan2(c.Y-centre.Y, c.X-centre.X)

	// Pick the rotation direction that passes through b.
	totalAngle := endAngle - startAngle
	for totalAngle <= 0 {
		totalAngle += 2 * math.Pi
	}

	midOffset := midAngle - startAngle
	for midOffset < 0 {
		midOffset += 2 * math.Pi
	}

	if midOffset > totalAngle {
		totalAngle -= 2 * math.Pi
	}

	steps := int(math.Max(8, math.Abs(totalAngle)*radius/tolerance))
	out := make([]vector.Vector2d, 0, steps+1)

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		angle := startAngle + totalAngle*t
		out = append(out, vector.Vector2d{X: centre.X + radius*math.Cos(angle), Y: centre.Y + radius*math.Sin(angle)})
	}

	return out
}
