// Package vector provides the minimal 2D vector math the difficulty and
// performance pipelines need: distance, dot/determinant for angles, and
// float32/float64 variants matching how positions arrive from the beatmap
// decoder (float32) versus how the difficulty pipeline computes with them
// (float64).
package vector

import "math"

type Vector2f struct {
	X, Y float32
}

func NewVec2f(x, y float32) Vector2f {
	return Vector2f{X: x, Y: y}
}

func (v Vector2f) Copy64() Vector2d {
	return Vector2d{X: float64(v.X), Y: float64(v.Y)}
}

func (v Vector2f) Add(o Vector2f) Vector2f {
	return Vector2f{v.X + o.X, v.Y + o.Y}
}

func (v Vector2f) Sub(o Vector2f) Vector2f {
	return Vector2f{v.X - o.X, v.Y - o.Y}
}

func (v Vector2f) Scl(s float32) Vector2f {
	return Vector2f{v.X * s, v.Y * s}
}

func (v Vector2f) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

func (v Vector2f) Dst(o Vector2f) float32 {
	return v.Sub(o).Len()
}

// Vector2d is the float64 counterpart used throughout the difficulty math
// so accumulated strain/travel computations don't lose precision.
type Vector2d struct {
	X, Y float64
}

func NewVec2d(x, y float64) Vector2d {
	return Vector2d{X: x, Y: y}
}

func (v Vector2d) Add(o Vector2d) Vector2d {
	return Vector2d{v.X + o.X, v.Y + o.Y}
}

func (v Vector2d) Sub(o Vector2d) Vector2d {
	return Vector2d{v.X - o.X, v.Y - o.Y}
}

func (v Vector2d) Scl(s float64) Vector2d {
	return Vector2d{v.X * s, v.Y * s}
}

func (v Vector2d) Dot(o Vector2d) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Det is the 2D "determinant" (z component of the 3D cross product),
// used together with Dot to get a signed turn angle via atan2.
func (v Vector2d) Det(o Vector2d) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vector2d) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector2d) Dst(o Vector2d) float64 {
	return v.Sub(o).Len()
}

func (v Vector2d) Copy32() Vector2f {
	return Vector2f{X: float32(v.X), Y: float32(v.Y)}
}
