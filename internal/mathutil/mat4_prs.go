package mathutil

import "math"

// ComposePos sets m to a pure translation.
func (m *Mat4) ComposePos(p Vec3) *Mat4 {
	*m = Mat4Identity()
	m[12], m[13], m[14] = p[0], p[1], p[2]
	return m
}

// ComposeRot sets m to a pure rotation.
func (m *Mat4) ComposeRot(q Quat) *Mat4 {
	return m.ComposePosRot(Vec3Zero, q)
}

// ComposePosRot sets m to rotation q followed by translation p.
func (m *Mat4) ComposePosRot(p Vec3, q Quat) *Mat4 {
	return m.ComposePosRotSca(p, q, Vec3{1, 1, 1})
}

// ComposePosRotSca sets m = T(p)·R(q)·S(s). Column i of the rotation block
// is scaled by s[i]. q is used as given; pass a unit quaternion for a rigid rotation.
func (m *Mat4) ComposePosRotSca(p Vec3, q Quat, s Vec3) *Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xs, ys, zs := x*2, y*2, z*2

	wx, wy, wz := w*xs, w*ys, w*zs
	xx, xy, xz := x*xs, x*ys, x*zs
	yy, yz, zz := y*ys, y*zs, z*zs

	sx, sy, sz := s[0], s[1], s[2]

	m[0] = (1 - (yy + zz)) * sx
	m[1] = (xy + wz) * sx
	m[2] = (xz - wy) * sx
	m[3] = 0

	m[4] = (xy - wz) * sy
	m[5] = (1 - (xx + zz)) * sy
	m[6] = (yz + wx) * sy
	m[7] = 0

	m[8] = (xz + wy) * sz
	m[9] = (yz - wx) * sz
	m[10] = (1 - (xx + yy)) * sz
	m[11] = 0

	m[12] = p[0]
	m[13] = p[1]
	m[14] = p[2]
	m[15] = 1
	return m
}

// DecomposePosRotSca splits m into translation, rotation and scale.
//
// Scale is the length of each basis column. The columns are normalized and the
// rotation is recovered with the trace/diagonal branch selection, so q and -q
// are both valid answers. Shear and reflections are not modeled; a zero-length
// column yields non-finite components rather than an error.
func (m Mat4) DecomposePosRotSca(pos *Vec3, rot *Quat, scale *Vec3) {
	sx := Vec3Len(m[0], m[1], m[2])
	sy := Vec3Len(m[4], m[5], m[6])
	sz := Vec3Len(m[8], m[9], m[10])
	scale[0], scale[1], scale[2] = sx, sy, sz

	// rRC: row R, column C of the normalized basis
	r00, r10, r20 := m[0]/sx, m[1]/sx, m[2]/sx
	r01, r11, r21 := m[4]/sy, m[5]/sy, m[6]/sy
	r02, r12, r22 := m[8]/sz, m[9]/sz, m[10]/sz

	var x, y, z, w float64
	t := r00 + r11 + r22
	switch {
	case t >= 0:
		s := math.Sqrt(t + 1)
		w = 0.5 * s
		s = 0.5 / s
		x = (r21 - r12) * s
		y = (r02 - r20) * s
		z = (r10 - r01) * s
	case r00 > r11 && r00 > r22:
		s := math.Sqrt(r00 - r11 - r22 + 1)
		x = 0.5 * s
		s = 0.5 / s
		y = (r01 + r10) * s
		z = (r02 + r20) * s
		w = (r21 - r12) * s
	case r11 > r22:
		s := math.Sqrt(r11 - r00 - r22 + 1)
		y = 0.5 * s
		s = 0.5 / s
		x = (r01 + r10) * s
		z = (r12 + r21) * s
		w = (r02 - r20) * s
	default:
		s := math.Sqrt(r22 - r00 - r11 + 1)
		z = 0.5 * s
		s = 0.5 / s
		x = (r02 + r20) * s
		y = (r12 + r21) * s
		w = (r10 - r01) * s
	}
	rot.Set(x, y, z, w)

	pos[0], pos[1], pos[2] = m[12], m[13], m[14]
}

// Decompose is DecomposePosRotSca returning values.
func (m Mat4) Decompose() (pos Vec3, rot Quat, scale Vec3) {
	m.DecomposePosRotSca(&pos, &rot, &scale)
	return pos, rot, scale
}
