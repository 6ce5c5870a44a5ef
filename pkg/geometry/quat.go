package geometry

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Quat is a rotation quaternion stored as [x, y, z, w].
//
// Rotation-valued property cells interpolate with Slerp rather than
// component-wise blending, which keeps angular velocity uniform across
// the animation.
type Quat f64.Vec4

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// AxisAngle returns the rotation of angle radians around axis.
// The axis need not be normalized.
func AxisAngle(axis Vec3, radians float64) Quat {
	n := axis.Normalize()
	half := radians / 2
	s := math.Sin(half)
	return Quat{n[0] * s, n[1] * s, n[2] * s, math.Cos(half)}
}

// F64 returns the underlying f64 value.
func (q Quat) F64() f64.Vec4 { return f64.Vec4(q) }

// X returns the x component.
func (q Quat) X() float64 { return q[0] }

// Y returns the y component.
func (q Quat) Y() float64 { return q[1] }

// Z returns the z component.
func (q Quat) Z() float64 { return q[2] }

// W returns the w component.
func (q Quat) W() float64 { return q[3] }

// Dot returns the 4-dimensional dot product of q and o.
func (q Quat) Dot(o Quat) float64 {
	return q[0]*o[0] + q[1]*o[1] + q[2]*o[2] + q[3]*o[3]
}

// Neg returns the antipodal quaternion, which represents the same
// rotation.
func (q Quat) Neg() Quat {
	return Quat{-q[0], -q[1], -q[2], -q[3]}
}

// Normalize returns q scaled to unit length. The zero quaternion
// normalizes to the identity.
func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.Dot(q))
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{q[0] / l, q[1] / l, q[2] / l, q[3] / l}
}

// Mul returns the Hamilton product q * o, the rotation o followed by q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		q[3]*o[0] + q[0]*o[3] + q[1]*o[2] - q[2]*o[1],
		q[3]*o[1] - q[0]*o[2] + q[1]*o[3] + q[2]*o[0],
		q[3]*o[2] + q[0]*o[1] - q[1]*o[0] + q[2]*o[3],
		q[3]*o[3] - q[0]*o[0] - q[1]*o[1] - q[2]*o[2],
	}
}

// Rotate applies the rotation q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u x v) + 2(u x (u x v)) with u = (x, y, z).
	u := Vec3{q[0], q[1], q[2]}
	c1 := u.Cross(v)
	c2 := u.Cross(c1)
	return v.Add(c1.Scale(2 * q[3])).Add(c2.Scale(2))
}

// Slerp spherically interpolates from q to o at t, taking the shortest
// arc. Near-parallel quaternions fall back to normalized linear
// interpolation to avoid division by a vanishing sine.
func Slerp(q, o Quat, t float64) Quat {
	d := q.Dot(o)
	if d < 0 {
		o = o.Neg()
		d = -d
	}
	if d > 0.9995 {
		return Nlerp(q, o, t)
	}
	if d > 1 {
		d = 1
	}
	theta := math.Acos(d)
	sinTheta := math.Sin(theta)
	wq := math.Sin((1-t)*theta) / sinTheta
	wo := math.Sin(t*theta) / sinTheta
	return Quat{
		q[0]*wq + o[0]*wo,
		q[1]*wq + o[1]*wo,
		q[2]*wq + o[2]*wo,
		q[3]*wq + o[3]*wo,
	}
}

// Nlerp linearly interpolates from q to o at t and normalizes the
// result. Unlike Slerp it does not correct for the shortest arc.
func Nlerp(q, o Quat, t float64) Quat {
	return Quat{
		q[0] + (o[0]-q[0])*t,
		q[1] + (o[1]-q[1])*t,
		q[2] + (o[2]-q[2])*t,
		q[3] + (o[3]-q[3])*t,
	}.Normalize()
}
