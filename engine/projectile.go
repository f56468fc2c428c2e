package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/petgprojects/ElementalWarrior-sub000/component"
	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/event"
	"github.com/petgprojects/ElementalWarrior-sub000/mesh"
	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
)

// stepProjectiles advances every live projectile by elapsed flight time
// and sweeps the travelled segment against the mesh cache. Each
// projectile terminates exactly once: impact or range expiry.
func (e *Engine) stepProjectiles(now time.Time) {
	if len(e.projectiles) == 0 {
		return
	}
	for id, p := range e.projectiles {
		if e.stepProjectile(p, now) {
			delete(e.projectiles, id)
		}
	}
	e.statProjectiles.Store(int64(len(e.projectiles)))
}

// stepProjectile returns true when the projectile terminated this step.
func (e *Engine) stepProjectile(p *component.ProjectileRecord, now time.Time) bool {
	dist := p.Travelled(now)
	maxRange := e.tun.Projectile.MaxRange

	if dist >= maxRange {
		// The final clamped segment still gets its sweep: geometry just
		// inside the range limit beats the expiry.
		end := p.Origin.Add(p.Direction.Scale(maxRange))
		if hit, ok := e.cache.RaycastSegment(p.Position, end); ok {
			e.impactProjectile(p, hit, now)
			return true
		}
		e.emit(event.EventProjectileExpired, now, &event.ProjectileExpiredPayload{
			Entity:    p.ID,
			Position:  end,
			Travelled: maxRange,
		})
		e.log.Debug("projectile expired", zap.Uint64("entity", uint64(p.ID)))
		return true
	}

	next := p.Origin.Add(p.Direction.Scale(dist))
	if hit, ok := e.cache.RaycastSegment(p.Position, next); ok {
		e.impactProjectile(p, hit, now)
		return true
	}
	p.PrevPosition = p.Position
	p.Position = next
	return false
}

func (e *Engine) impactProjectile(p *component.ProjectileRecord, hit mesh.Hit, now time.Time) {
	magnitude := parameter.ImpactEffectMagnitude
	if p.Empowered {
		magnitude *= parameter.ImpactEmpoweredMultiplier
	}
	e.emit(event.EventProjectileImpact, now, &event.ProjectileImpactPayload{
		Entity:    p.ID,
		Mesh:      hit.Mesh,
		Position:  hit.Position,
		Normal:    hit.Normal,
		Magnitude: magnitude,
		Empowered: p.Empowered,
	})
	e.log.Debug("projectile impact",
		zap.Uint64("entity", uint64(p.ID)),
		zap.Float64("magnitude", magnitude))
}

// CancelProjectile silently drops a live projectile, for host-driven
// despawns outside the normal impact/expiry flow. Reports whether the
// entity was live.
func (e *Engine) CancelProjectile(id core.Entity) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.projectiles[id]; !ok {
		return false
	}
	delete(e.projectiles, id)
	e.statProjectiles.Store(int64(len(e.projectiles)))
	return true
}
