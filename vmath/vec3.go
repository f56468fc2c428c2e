package vmath

import (
	"math"
)

// Vec3 is a float64 3D vector in meters, right-handed, Y up.
// Sensor samples arrive as floats; all interaction math stays float to
// avoid conversion churn in per-frame paths.
type Vec3 struct {
	X, Y, Z float64
}

// Canonical world axes. Forward follows the sensor convention (-Z).
var (
	Up      = Vec3{0, 1, 0}
	Down    = Vec3{0, -1, 0}
	Forward = Vec3{0, 0, -1}
	Right   = Vec3{1, 0, 0}
)

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

func (a Vec3) Neg() Vec3 { return Vec3{-a.X, -a.Y, -a.Z} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns the right-handed cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) LenSq() float64 { return a.X*a.X + a.Y*a.Y + a.Z*a.Z }

func (a Vec3) Len() float64 { return math.Sqrt(a.LenSq()) }

func (a Vec3) Dist(b Vec3) float64 { return a.Sub(b).Len() }

func (a Vec3) DistSq(b Vec3) float64 { return a.Sub(b).LenSq() }

// Normalize returns the unit vector, zero-safe.
func (a Vec3) Normalize() Vec3 {
	mag := a.Len()
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{a.X * inv, a.Y * inv, a.Z * inv}
}

// IsZero reports an exactly-zero vector, the conventional "no data" value.
func (a Vec3) IsZero() bool { return a.X == 0 && a.Y == 0 && a.Z == 0 }

// Lerp interpolates a→b by t in [0,1]; t is not clamped.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Midpoint returns the point halfway between a and b.
func (a Vec3) Midpoint(b Vec3) Vec3 {
	return Vec3{(a.X + b.X) * 0.5, (a.Y + b.Y) * 0.5, (a.Z + b.Z) * 0.5}
}

// ClampLen limits vector magnitude while preserving direction.
func (a Vec3) ClampLen(maxLen float64) Vec3 {
	magSq := a.LenSq()
	if magSq <= maxLen*maxLen {
		return a
	}
	return a.Normalize().Scale(maxLen)
}

// Horizontal drops the Y component, for ground-plane projections.
func (a Vec3) Horizontal() Vec3 { return Vec3{a.X, 0, a.Z} }
