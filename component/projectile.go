package component

import (
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// ProjectileRecord is one in-flight launched element. Created on launch,
// destroyed on impact, range expiry, or external cancel.
type ProjectileRecord struct {
	ID        core.Entity
	Direction vmath.Vec3 // unit, fixed at launch
	Origin    vmath.Vec3
	Speed     float64
	Empowered bool

	LaunchedAt time.Time

	Position vmath.Vec3
	// PrevPosition is last tick's committed position, the swept-ray start
	// that keeps fast projectiles from tunnelling through thin geometry.
	PrevPosition vmath.Vec3
}

// Travelled returns straight-line distance covered by now.
func (p *ProjectileRecord) Travelled(now time.Time) float64 {
	return p.Speed * now.Sub(p.LaunchedAt).Seconds()
}
