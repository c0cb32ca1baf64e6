// Package mathutil implements the vector, quaternion and matrix value types
// used for position/rotation/scale transforms.
package mathutil

import (
	"fmt"
	"math"
)

// Mat4 is a 4×4 matrix stored column-major: index 4*col + row.
// Columns 0-2 hold the basis axes, column 3 the translation and w.
// The slice m[:] is the flat buffer a graphics API expects.
//
// The zero value is the zero matrix; use Mat4Identity for a fresh transform.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4FromSlice copies the first 16 values of vals in column-major order.
func Mat4FromSlice(vals []float64) (Mat4, error) {
	var m Mat4
	if err := m.FromSlice(vals); err != nil {
		return Mat4{}, err
	}
	return m, nil
}

// Identity resets m to the identity matrix.
func (m *Mat4) Identity() *Mat4 {
	*m = Mat4Identity()
	return m
}

// Set assigns all entries. Arguments are given row by row (m00, m01, m02, m03,
// m10, ...) and stored column-major.
func (m *Mat4) Set(
	m00, m01, m02, m03,
	m10, m11, m12, m13,
	m20, m21, m22, m23,
	m30, m31, m32, m33 float64,
) *Mat4 {
	m[0], m[4], m[8], m[12] = m00, m01, m02, m03
	m[1], m[5], m[9], m[13] = m10, m11, m12, m13
	m[2], m[6], m[10], m[14] = m20, m21, m22, m23
	m[3], m[7], m[11], m[15] = m30, m31, m32, m33
	return m
}

// At returns the entry at row r, column c.
func (m Mat4) At(r, c int) float64 {
	return m[4*c+r]
}

// FromSlice copies the first 16 values of vals into m.
// Fewer than 16 values is ErrInvalidArgument and leaves m untouched.
func (m *Mat4) FromSlice(vals []float64) error {
	if len(vals) < 16 {
		return fmt.Errorf("%w: need 16 values, got %d", ErrInvalidArgument, len(vals))
	}
	copy(m[:], vals[:16])
	return nil
}

// Copy overwrites m with the contents of o.
func (m *Mat4) Copy(o *Mat4) *Mat4 {
	*m = *o
	return m
}

// Clone returns an independent copy.
func (m Mat4) Clone() Mat4 {
	return m
}

// Float32s converts the buffer for float32 uniform uploads.
func (m Mat4) Float32s() [16]float32 {
	var f [16]float32
	for i, v := range m {
		f[i] = float32(v)
	}
	return f
}

// SetToProjection builds a right-handed perspective projection in place.
// fov is the vertical field of view in degrees. Inputs are not validated:
// fov must lie in (0, 180), aspect > 0 and far != near.
func (m *Mat4) SetToProjection(near, far, fov, aspect float64) *Mat4 {
	fd := 1 / math.Tan(fov*math.Pi/180/2)
	a1 := (far + near) / (near - far)
	a2 := (2 * far * near) / (near - far)

	*m = Mat4{}
	m[0] = fd / aspect
	m[5] = fd
	m[10] = a1
	m[11] = -1
	m[14] = a2
	return m
}

// Scale multiplies every entry by f in place.
func (m *Mat4) Scale(f float64) *Mat4 {
	return m.ScaleTo(f, m)
}

// ScaleTo writes f·m into dst. dst may be m.
func (m Mat4) ScaleTo(f float64, dst *Mat4) *Mat4 {
	for i := range m {
		m[i] *= f
	}
	*dst = m
	return dst
}

// Multiply sets m = m·b.
func (m *Mat4) Multiply(b *Mat4) *Mat4 {
	return Mat4MulTo(m, b, m)
}

// MultiplyTo writes m·b into dst. dst may alias m or b.
func (m *Mat4) MultiplyTo(b, dst *Mat4) *Mat4 {
	return Mat4MulTo(m, b, dst)
}

// PreMultiply sets m = b·m.
func (m *Mat4) PreMultiply(b *Mat4) *Mat4 {
	return Mat4MulTo(b, m, m)
}

// PreMultiplyTo writes b·m into dst. dst may alias m or b.
func (m *Mat4) PreMultiplyTo(b, dst *Mat4) *Mat4 {
	return Mat4MulTo(b, m, dst)
}

// Mat4Mul returns a × b.
func Mat4Mul(a, b Mat4) Mat4 {
	var m Mat4
	Mat4MulTo(&a, &b, &m)
	return m
}

// Mat4MulTo writes a × b into dst and returns dst.
// Every operand entry is read into a local before the first write, so dst
// may be the same matrix as a, b, or both.
func Mat4MulTo(a, b, dst *Mat4) *Mat4 {
	a00, a01, a02, a03 := a[0], a[4], a[8], a[12]
	a10, a11, a12, a13 := a[1], a[5], a[9], a[13]
	a20, a21, a22, a23 := a[2], a[6], a[10], a[14]
	a30, a31, a32, a33 := a[3], a[7], a[11], a[15]

	b00, b01, b02, b03 := b[0], b[4], b[8], b[12]
	b10, b11, b12, b13 := b[1], b[5], b[9], b[13]
	b20, b21, b22, b23 := b[2], b[6], b[10], b[14]
	b30, b31, b32, b33 := b[3], b[7], b[11], b[15]

	dst[0] = a00*b00 + a01*b10 + a02*b20 + a03*b30
	dst[4] = a00*b01 + a01*b11 + a02*b21 + a03*b31
	dst[8] = a00*b02 + a01*b12 + a02*b22 + a03*b32
	dst[12] = a00*b03 + a01*b13 + a02*b23 + a03*b33

	dst[1] = a10*b00 + a11*b10 + a12*b20 + a13*b30
	dst[5] = a10*b01 + a11*b11 + a12*b21 + a13*b31
	dst[9] = a10*b02 + a11*b12 + a12*b22 + a13*b32
	dst[13] = a10*b03 + a11*b13 + a12*b23 + a13*b33

	dst[2] = a20*b00 + a21*b10 + a22*b20 + a23*b30
	dst[6] = a20*b01 + a21*b11 + a22*b21 + a23*b31
	dst[10] = a20*b02 + a21*b12 + a22*b22 + a23*b32
	dst[14] = a20*b03 + a21*b13 + a22*b23 + a23*b33

	dst[3] = a30*b00 + a31*b10 + a32*b20 + a33*b30
	dst[7] = a30*b01 + a31*b11 + a32*b21 + a33*b31
	dst[11] = a30*b02 + a31*b12 + a32*b22 + a33*b32
	dst[15] = a30*b03 + a31*b13 + a32*b23 + a33*b33

	return dst
}

// Determinant is recomputed on every call by cofactor expansion along the
// bottom row (24 signed products).
func (m Mat4) Determinant() float64 {
	m00, m01, m02, m03 := m[0], m[4], m[8], m[12]
	m10, m11, m12, m13 := m[1], m[5], m[9], m[13]
	m20, m21, m22, m23 := m[2], m[6], m[10], m[14]
	m30, m31, m32, m33 := m[3], m[7], m[11], m[15]

	return m30*(m03*m12*m21-m02*m13*m21-m03*m11*m22+m01*m13*m22+m02*m11*m23-m01*m12*m23) +
		m31*(m00*m12*m23-m00*m13*m22+m03*m10*m22-m02*m10*m23+m02*m13*m20-m03*m12*m20) +
		m32*(m00*m13*m21-m00*m11*m23-m03*m10*m21+m01*m10*m23+m03*m11*m20-m01*m13*m20) +
		m33*(-m02*m11*m20-m00*m12*m21+m00*m11*m22+m02*m10*m21-m01*m10*m22+m01*m12*m20)
}

// Invert replaces m with its inverse. On ErrSingularMatrix m is unchanged.
func (m *Mat4) Invert() error {
	return m.InvertTo(m)
}

// InvertTo writes the inverse of m into dst. dst may be m.
// A determinant of exactly zero returns ErrSingularMatrix and leaves dst
// untouched.
func (m Mat4) InvertTo(dst *Mat4) error {
	det := m.Determinant()
	if det == 0 {
		return ErrSingularMatrix
	}

	var inv Mat4
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]

	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]

	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]

	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	invDet := 1 / det
	for i := range inv {
		inv[i] *= invDet
	}
	*dst = inv
	return nil
}

// Transpose swaps the off-diagonal pairs in place.
func (m *Mat4) Transpose() *Mat4 {
	m[1], m[4] = m[4], m[1]
	m[2], m[8] = m[8], m[2]
	m[3], m[12] = m[12], m[3]
	m[6], m[9] = m[9], m[6]
	m[7], m[13] = m[13], m[7]
	m[11], m[14] = m[14], m[11]
	return m
}

// ResetPos zeroes the translation column.
func (m *Mat4) ResetPos() *Mat4 {
	m[12], m[13], m[14] = 0, 0, 0
	return m
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// MulPoint transforms a 3D point (w=1) by the matrix, ignoring the w row.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14],
	}
}

// MulVec4 returns M × v for a homogeneous vector.
func (m Mat4) MulVec4(v [4]float64) [4]float64 {
	return [4]float64{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// Project transforms p (w=1) and performs the perspective divide.
// ok is false when the resulting w is not positive (point at or behind the eye).
func (m Mat4) Project(p Vec3) (ndc Vec3, ok bool) {
	h := m.MulVec4([4]float64{p[0], p[1], p[2], 1})
	if h[3] <= 0 {
		return Vec3{}, false
	}
	return Vec3{h[0] / h[3], h[1] / h[3], h[2] / h[3]}, true
}

// FromMat3Translation builds a 4×4 affine matrix from a row-major 3×3 rotation and translation.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	var m Mat4
	m.Set(
		r[0], r[1], r[2], t[0],
		r[3], r[4], r[5], t[1],
		r[6], r[7], r[8], t[2],
		0, 0, 0, 1,
	)
	return m
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	id := Mat4Identity()
	for i := 0; i < 16; i++ {
		d := m[i] - id[i]
		if d > 1e-8 || d < -1e-8 {
			return false
		}
	}
	return true
}
