package vmath

import (
	"math"
)

// Quat is a rotation quaternion (w + xi + yj + zk).
// Joint and anchor orientations arrive from the sensor already normalized;
// operations here assume unit quaternions.
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity is the no-rotation quaternion.
var QuatIdentity = Quat{W: 1}

// QuatFromAxisAngle builds a rotation of angle radians about axis.
// Axis does not need to be unit length.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	if axis.IsZero() {
		return QuatIdentity
	}
	half := angle * 0.5
	s := math.Sin(half)
	return Quat{
		W: math.Cos(half),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// QuatFromYaw rotates about world up; used for wall facing.
func QuatFromYaw(angle float64) Quat {
	return QuatFromAxisAngle(Up, angle)
}

// Mul composes rotations: (q.Mul(r)).Rotate(v) == q.Rotate(r.Rotate(v)).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conj returns the inverse rotation for a unit quaternion.
func (q Quat) Conj() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Rotate applies the rotation to v using the expanded sandwich product,
// avoiding two full quaternion multiplies.
func (q Quat) Rotate(v Vec3) Vec3 {
	// t = 2 * (q.xyz × v)
	qv := Vec3{q.X, q.Y, q.Z}
	t := qv.Cross(v).Scale(2)
	// v' = v + w*t + q.xyz × t
	return v.Add(t.Scale(q.W)).Add(qv.Cross(t))
}

// Basis directions of the rotated frame. The sensor convention is
// right-handed with -Z forward, matching the world axes in vec3.go.
func (q Quat) UpAxis() Vec3 { return q.Rotate(Up) }

func (q Quat) ForwardAxis() Vec3 { return q.Rotate(Forward) }

func (q Quat) RightAxis() Vec3 { return q.Rotate(Right) }

// Yaw extracts the rotation about world up, in radians.
func (q Quat) Yaw() float64 {
	f := q.ForwardAxis()
	return math.Atan2(-f.X, -f.Z)
}

// QuatFromBasis builds the rotation whose frame has the given world-space
// axes. The inputs must form a right-handed orthonormal basis with
// forward = right × up flipped (-Z convention); callers orthogonalize first.
func QuatFromBasis(right, up, forward Vec3) Quat {
	// Column-major rotation matrix; local +Z maps to -forward.
	m00, m01, m02 := right.X, up.X, -forward.X
	m10, m11, m12 := right.Y, up.Y, -forward.Y
	m20, m21, m22 := right.Z, up.Z, -forward.Z

	trace := m00 + m11 + m22
	var q Quat
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = Quat{W: s / 4, X: (m21 - m12) / s, Y: (m02 - m20) / s, Z: (m10 - m01) / s}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = Quat{W: (m21 - m12) / s, X: s / 4, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = Quat{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: s / 4, Z: (m12 + m21) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = Quat{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: s / 4}
	}
	return q
}

// LookRotation builds a rotation facing dir with up as the reference
// vertical. Falls back to identity for degenerate input.
func LookRotation(dir, up Vec3) Quat {
	f := dir.Normalize()
	if f.IsZero() {
		return QuatIdentity
	}
	r := up.Cross(f.Neg()).Normalize()
	if r.IsZero() {
		// dir parallel to up; pick any stable right axis
		r = Right
	}
	u := f.Neg().Cross(r)
	return QuatFromBasis(r, u, f)
}
