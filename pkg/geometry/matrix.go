package geometry

import "golang.org/x/image/math/f64"

// Mat4 is a row-major 4x4 transform matrix.
type Mat4 f64.Mat4

// F64 returns the underlying f64 value.
func (m Mat4) F64() f64.Mat4 { return f64.Mat4(m) }

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Translate returns the translation matrix for v.
func Mat4Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v[0],
		0, 1, 0, v[1],
		0, 0, 1, v[2],
		0, 0, 0, 1,
	}
}

// Mat4Scale returns the scale matrix for v.
func Mat4Scale(v Vec3) Mat4 {
	return Mat4{
		v[0], 0, 0, 0,
		0, v[1], 0, 0,
		0, 0, v[2], 0,
		0, 0, 0, 1,
	}
}

// Mat4Rotate returns the rotation matrix for q, which is normalized
// first.
func Mat4Rotate(q Quat) Mat4 {
	n := q.Normalize()
	x, y, z, w := n[0], n[1], n[2], n[3]
	return Mat4{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w), 0,
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w), 0,
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}

// Mul returns the matrix product m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// TransformPoint applies m to p as a position (w = 1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p[0] + m[1]*p[1] + m[2]*p[2] + m[3],
		m[4]*p[0] + m[5]*p[1] + m[6]*p[2] + m[7],
		m[8]*p[0] + m[9]*p[1] + m[10]*p[2] + m[11],
	}
}

// TRS composes translation, rotation and scale into a single transform,
// applied to points in scale, rotate, translate order.
func TRS(t Vec3, r Quat, s Vec3) Mat4 {
	return Mat4Translate(t).Mul(Mat4Rotate(r)).Mul(Mat4Scale(s))
}
