package animation

import "github.com/go-ember/ember/pkg/geometry"

// Lerp interpolates between two values. It receives the start value, the
// target value, and eased progress t in [0, 1], and returns the blended
// value.
type Lerp[T any] func(a, b T, t float64) T

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec2 interpolates two Vec2 values component-wise.
func LerpVec2(a, b geometry.Vec2, t float64) geometry.Vec2 {
	return a.Lerp(b, t)
}

// LerpVec3 interpolates two Vec3 values component-wise.
func LerpVec3(a, b geometry.Vec3, t float64) geometry.Vec3 {
	return a.Lerp(b, t)
}

// LerpVec4 interpolates two Vec4 values component-wise.
func LerpVec4(a, b geometry.Vec4, t float64) geometry.Vec4 {
	return a.Lerp(b, t)
}

// LerpQuat interpolates two rotations spherically, taking the shortest
// arc. Component-wise blending of quaternions produces non-uniform
// angular velocity, so rotation-valued cells use this instead.
func LerpQuat(a, b geometry.Quat, t float64) geometry.Quat {
	return geometry.Slerp(a, b, t)
}

// LerpColor linearly interpolates between two Color values per channel.
func LerpColor(a, b geometry.Color, t float64) geometry.Color {
	aR := float64((a >> 16) & 0xFF)
	aG := float64((a >> 8) & 0xFF)
	aB := float64(a & 0xFF)
	aA := float64((a >> 24) & 0xFF)

	bR := float64((b >> 16) & 0xFF)
	bG := float64((b >> 8) & 0xFF)
	bB := float64(b & 0xFF)
	bA := float64((b >> 24) & 0xFF)

	r := uint8(LerpFloat64(aR, bR, t))
	g := uint8(LerpFloat64(aG, bG, t))
	b8 := uint8(LerpFloat64(aB, bB, t))
	alpha := uint8(LerpFloat64(aA, bA, t))

	return geometry.Color(uint32(alpha)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b8))
}

// NewFloat64Cell creates a cell for float64 values.
func NewFloat64Cell(host Host, initial float64) *Cell[float64] {
	return NewCell(host, initial, LerpFloat64)
}

// NewVec2Cell creates a cell for Vec2 values.
func NewVec2Cell(host Host, initial geometry.Vec2) *Cell[geometry.Vec2] {
	return NewCell(host, initial, LerpVec2)
}

// NewVec3Cell creates a cell for Vec3 values.
func NewVec3Cell(host Host, initial geometry.Vec3) *Cell[geometry.Vec3] {
	return NewCell(host, initial, LerpVec3)
}

// NewVec4Cell creates a cell for Vec4 values.
func NewVec4Cell(host Host, initial geometry.Vec4) *Cell[geometry.Vec4] {
	return NewCell(host, initial, LerpVec4)
}

// NewQuatCell creates a cell for rotation values, interpolating
// spherically.
func NewQuatCell(host Host, initial geometry.Quat) *Cell[geometry.Quat] {
	return NewCell(host, initial, LerpQuat)
}

// NewColorCell creates a cell for Color values.
func NewColorCell(host Host, initial geometry.Color) *Cell[geometry.Color] {
	return NewCell(host, initial, LerpColor)
}
