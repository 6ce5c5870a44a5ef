// Package geometry provides the vector, rotation, color and matrix value
// types that property cells animate and transform components compose.
//
// Vector and matrix types are defined over golang.org/x/image/math/f64
// array types, so they convert freely for callers that already work in f64.
package geometry

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Vec2 is a 2-component vector.
type Vec2 f64.Vec2

// Vec3 is a 3-component vector.
type Vec3 f64.Vec3

// Vec4 is a 4-component vector.
type Vec4 f64.Vec4

// F64 returns the underlying f64 value.
func (v Vec2) F64() f64.Vec2 { return f64.Vec2(v) }

// F64 returns the underlying f64 value.
func (v Vec3) F64() f64.Vec3 { return f64.Vec3(v) }

// F64 returns the underlying f64 value.
func (v Vec4) F64() f64.Vec4 { return f64.Vec4(v) }

// X returns the first component.
func (v Vec2) X() float64 { return v[0] }

// Y returns the second component.
func (v Vec2) Y() float64 { return v[1] }

// X returns the first component.
func (v Vec3) X() float64 { return v[0] }

// Y returns the second component.
func (v Vec3) Y() float64 { return v[1] }

// Z returns the third component.
func (v Vec3) Z() float64 { return v[2] }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v[0] + o[0], v[1] + o[1]}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v[0] - o[0], v[1] - o[1]}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v[0]*o[0] + v[1]*o[1]
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Lerp linearly interpolates between v and o at t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{
		v[0] + (o[0]-v[0])*t,
		v[1] + (o[1]-v[1])*t,
	}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp linearly interpolates between v and o at t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		v[0] + (o[0]-v[0])*t,
		v[1] + (o[1]-v[1])*t,
		v[2] + (o[2]-v[2])*t,
	}
}

// Add returns v + o.
func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

// Sub returns v - o.
func (v Vec4) Sub(o Vec4) Vec4 {
	return Vec4{v[0] - o[0], v[1] - o[1], v[2] - o[2], v[3] - o[3]}
}

// Scale returns v scaled by s.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Dot returns the dot product of v and o.
func (v Vec4) Dot(o Vec4) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] + v[3]*o[3]
}

// Length returns the Euclidean length of v.
func (v Vec4) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Lerp linearly interpolates between v and o at t.
func (v Vec4) Lerp(o Vec4, t float64) Vec4 {
	return Vec4{
		v[0] + (o[0]-v[0])*t,
		v[1] + (o[1]-v[1])*t,
		v[2] + (o[2]-v[2])*t,
		v[3] + (o[3]-v[3])*t,
	}
}
