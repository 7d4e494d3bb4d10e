package math3d

import "math"

// Mat4 is a 4x4 matrix stored row-major: m[row][col].
// Vectors are columns, so M.MulVec4(v) computes M * v and
// a.Mul(b) applied to v runs b first, then a.
//
// For an affine transform:
// | Xx Yx Zx Tx |
// | Xy Yy Zy Ty |
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[0][3] = v.X
	m[1][3] = v.Y
	m[2][3] = v.Z
	return m
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0][0] = v.X
	m[1][1] = v.Y
	m[2][2] = v.Z
	return m
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[1][1] = c
	m[1][2] = -s
	m[2][1] = s
	m[2][2] = c
	return m
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[0][0] = c
	m[0][2] = s
	m[2][0] = -s
	m[2][2] = c
	return m
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[0][0] = c
	m[0][1] = -s
	m[1][0] = s
	m[1][1] = c
	return m
}

// World builds the model-to-world matrix T * Rx * Ry * Rz * S.
// Scale is applied first and translation last.
func World(scale, rotation, translation Vec3) Mat4 {
	m := Scale(scale)
	m = RotateZ(rotation.Z).Mul(m)
	m = RotateY(rotation.Y).Mul(m)
	m = RotateX(rotation.X).Mul(m)
	return Translate(translation).Mul(m)
}

// LookAt creates a left-handed view matrix looking from eye towards target.
// View-space +Z points from the eye to the target.
func LookAt(eye, target, up Vec3) Mat4 {
	z := target.Sub(eye).Normalize() // Forward
	x := up.Cross(z).Normalize()     // Right
	y := z.Cross(x)                  // Up (recomputed)

	return Mat4{
		{x.X, x.Y, x.Z, -x.Dot(eye)},
		{y.X, y.Y, y.Z, -y.Dot(eye)},
		{z.X, z.Y, z.Z, -z.Dot(eye)},
		{0, 0, 0, 1},
	}
}

// Perspective creates a perspective projection matrix.
// fovy is the vertical field of view in radians and invAspect is
// height/width. The bottom row copies view-space z into w so that
// MulVec4Project keeps the original depth for perspective correction.
func Perspective(fovy, invAspect, znear, zfar float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)

	var m Mat4
	m[0][0] = invAspect * f
	m[1][1] = f
	m[2][2] = zfar / (zfar - znear)
	m[2][3] = (-zfar * znear) / (zfar - znear)
	m[3][2] = 1
	return m
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			m[row][col] = a[row][0]*b[0][col] +
				a[row][1]*b[1][col] +
				a[row][2]*b[2][col] +
				a[row][3]*b[3][col]
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// MulVec4Project transforms v by a projection matrix and performs the
// perspective divide on X, Y and Z. W keeps the pre-divide value. When W is
// zero the vector is returned undivided.
func (m Mat4) MulVec4Project(v Vec4) Vec4 {
	r := m.MulVec4(v)
	if r.W != 0 {
		r.X /= r.W
		r.Y /= r.W
		r.Z /= r.W
	}
	return r
}

// MulVec3 transforms a Vec3 as a point (w=1), discarding w.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v)).Vec3()
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[col][row] = m[row][col]
		}
	}
	return t
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
func (m Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for row := range 4 {
		for col := range 4 {
			if math.Abs(m[row][col]-b[row][col]) > eps {
				return false
			}
		}
	}
	return true
}
