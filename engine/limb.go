package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/petgprojects/ElementalWarrior-sub000/component"
	"github.com/petgprojects/ElementalWarrior-sub000/event"
	"github.com/petgprojects/ElementalWarrior-sub000/gesture"
	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// updateLimb runs one limb's full per-frame pipeline: tracking overlay,
// classification, held-element machine, then the stream machine.
func (e *Engine) updateLimb(l *component.LimbState, h *sensor.Hand, head *sensor.Head, now time.Time) {
	d := &e.debug[l.Chirality]
	*d = LimbDebug{Chirality: l.Chirality}

	if !h.Tracked {
		if !l.TrackingLost {
			e.beginTrackingLoss(l, now)
		}
		return
	}
	if l.TrackingLost {
		e.recoverTracking(l, now)
	}

	l.History.Push(h.JointPosition(sensor.JointWrist), now)

	vote := e.cls.Fist(h)
	palmUp := e.cls.OpenPalmUp(h)
	forward := e.cls.ForwardPalm(h, head.Forward())

	d.Tracked = true
	d.Vote = vote
	d.PalmUp = palmUp
	d.ForwardPalm = forward
	d.PalmDown = e.cls.PalmDown(h, e.poseActive)
	d.Velocity = l.History.Velocity()

	if vote.Closed && !l.FistClosed {
		l.FistClosedAt = now
	}
	l.FistClosed = vote.Closed
	l.ForwardPalm = forward

	// The merge-donor latch opens again once the summon gesture releases.
	if l.SuppressSummon && !palmUp {
		l.SuppressSummon = false
	}

	// Launch outranks the despawn transition the same fist would trigger.
	e.tryLaunch(l, h, head, vote, now)

	switch l.Phase {
	case component.LimbIdle:
		if palmUp && !l.SuppressSummon && !now.Before(l.NextSummonAt) && l.Stream == nil {
			e.summonElement(l, h, now)
		}
	case component.LimbSummoning, component.LimbHolding:
		if !palmUp && !l.Animating {
			e.beginPendingDespawn(l, now)
		}
	case component.LimbPendingDespawn:
		if palmUp {
			e.cancelPendingDespawn(l)
		}
	}

	e.updateHeldElement(l, h, now)
	e.updateStream(l, h, forward, now)

	l.PalmUp = palmUp
}

func (e *Engine) beginTrackingLoss(l *component.LimbState, now time.Time) {
	l.TrackingLost = true
	e.emit(event.EventTrackingLost, now, &event.TrackingPayload{Limb: l.Chirality})
	limb := l
	e.armTimer(&l.TrackingTimer, now.Add(e.tun.Limb.TrackingLossGrace.Std()), func() {
		e.onTrackingGraceExpired(limb, e.clock.Now())
	})
	e.log.Debug("limb tracking lost", zap.String("limb", l.Chirality.String()))
}

func (e *Engine) recoverTracking(l *component.LimbState, now time.Time) {
	l.TrackingLost = false
	l.TrackingTimer.Cancel()
	l.TrackingTimer = nil
	// Stale samples across the gap would read as a velocity spike.
	l.History.Reset()
	e.emit(event.EventTrackingRecovered, now, &event.TrackingPayload{Limb: l.Chirality})
	e.log.Debug("limb tracking recovered", zap.String("limb", l.Chirality.String()))
}

// onTrackingGraceExpired is the hard-loss path: held object and stream
// are force-terminated with no despawn animation and the limb resets.
func (e *Engine) onTrackingGraceExpired(l *component.LimbState, now time.Time) {
	if !l.TrackingLost {
		return
	}
	if e.merging && (l.Chirality == e.mergeDonor || l.Chirality == e.mergeReceiver) {
		e.abortMerge(l.Chirality, now)
	}
	if l.Held != nil {
		e.emit(event.EventElementDespawned, now, &event.ElementPayload{
			Limb:      l.Chirality,
			Entity:    l.Held.ID,
			Position:  l.Held.Position,
			Empowered: l.Held.Empowered,
		})
	}
	if l.Stream != nil {
		if l.Stream.Combined {
			e.breakCombined(now)
		}
		e.emit(event.EventStreamStopped, now, streamPayload(l))
	}
	l.Reset()
	l.TrackingLost = true
	e.log.Debug("limb hard tracking loss", zap.String("limb", l.Chirality.String()))
}

func (e *Engine) summonElement(l *component.LimbState, h *sensor.Hand, now time.Time) {
	id := e.ids.Reserve()
	l.Held = &component.HeldObject{ID: id, Position: e.cls.PalmPosition(h)}
	l.Phase = component.LimbSummoning
	l.Animating = true
	l.NextSummonAt = now.Add(e.tun.Limb.SummonCooldown.Std())
	limb := l
	e.armTimer(&l.AnimTimer, now.Add(parameter.SummonScaleInDuration), func() {
		e.onSummonComplete(limb)
	})
	e.emit(event.EventElementSummoned, now, &event.ElementPayload{
		Limb:     l.Chirality,
		Entity:   id,
		Position: l.Held.Position,
	})
	e.log.Debug("element summoned",
		zap.String("limb", l.Chirality.String()),
		zap.Uint64("entity", uint64(id)))
}

func (e *Engine) onSummonComplete(l *component.LimbState) {
	if l.Phase != component.LimbSummoning {
		return
	}
	l.Phase = component.LimbHolding
	l.Animating = false
}

func (e *Engine) beginPendingDespawn(l *component.LimbState, now time.Time) {
	l.Phase = component.LimbPendingDespawn
	l.AnimTimer.Cancel()
	l.Animating = false
	limb := l
	e.armTimer(&l.DespawnTimer, now.Add(e.tun.Limb.DespawnGrace.Std()), func() {
		e.onDespawnGraceExpired(limb, e.clock.Now())
	})
}

func (e *Engine) cancelPendingDespawn(l *component.LimbState) {
	l.DespawnTimer.Cancel()
	l.DespawnTimer = nil
	l.Phase = component.LimbHolding
}

func (e *Engine) onDespawnGraceExpired(l *component.LimbState, now time.Time) {
	if l.Phase != component.LimbPendingDespawn || l.Held == nil {
		return
	}
	e.emit(event.EventElementDespawned, now, &event.ElementPayload{
		Limb:      l.Chirality,
		Entity:    l.Held.ID,
		Position:  l.Held.Position,
		Scale:     l.Held.Scale,
		Empowered: l.Held.Empowered,
	})
	l.Held = nil
	l.Phase = component.LimbIdle
	l.Animating = false
}

// tryLaunch fires a punch against this limb's own element or the other
// limb's. Returns true when an element detached into flight.
func (e *Engine) tryLaunch(l *component.LimbState, h *sensor.Hand, head *sensor.Head, vote gesture.FistVote, now time.Time) bool {
	if !vote.Closed || l.Animating {
		return false
	}
	vel := l.History.Velocity()
	if vel.Len() < e.tun.Limb.PunchVelocityMin {
		return false
	}
	fist := e.cls.PunchPosition(h)
	radius := e.tun.Limb.PunchProximity

	if launchable(l) && fist.Dist(l.Held.Position) <= radius {
		e.launchElement(l, head, vel, false, now)
		return true
	}
	other := e.limbs[l.Chirality.Opposite()]
	if launchable(other) && fist.Dist(other.Held.Position) <= radius {
		e.launchElement(other, head, vel, true, now)
		return true
	}
	return false
}

// launchable gates the punch target: a bound element in a live phase
// with no animation claiming it.
func launchable(l *component.LimbState) bool {
	if l.Held == nil || l.Animating {
		return false
	}
	return l.Phase == component.LimbHolding || l.Phase == component.LimbPendingDespawn
}

// launchElement detaches holder's element into projectile flight.
func (e *Engine) launchElement(holder *component.LimbState, head *sensor.Head, vel vmath.Vec3, cross bool, now time.Time) {
	obj := holder.Held
	dir := launchDirection(head, vel)

	p := &component.ProjectileRecord{
		ID:           obj.ID,
		Direction:    dir,
		Origin:       obj.Position,
		Speed:        e.tun.Limb.LaunchSpeed,
		Empowered:    obj.Empowered,
		LaunchedAt:   now,
		Position:     obj.Position,
		PrevPosition: obj.Position,
	}
	e.projectiles[obj.ID] = p
	e.statProjectiles.Store(int64(len(e.projectiles)))

	e.emit(event.EventElementLaunched, now, &event.ElementLaunchedPayload{
		Limb:      holder.Chirality,
		Entity:    obj.ID,
		Origin:    obj.Position,
		Direction: dir,
		Speed:     p.Speed,
		Empowered: p.Empowered,
		CrossLimb: cross,
	})

	holder.DespawnTimer.Cancel()
	holder.DespawnTimer = nil
	holder.AnimTimer.Cancel()
	holder.AnimTimer = nil
	holder.Held = nil
	holder.Phase = component.LimbIdle
	if cross {
		// Keep the punched limb from instantly re-summoning a duplicate.
		holder.NextSummonAt = now.Add(parameter.CrossPunchResummonCooldown)
	}
	e.log.Debug("element launched",
		zap.String("limb", holder.Chirality.String()),
		zap.Uint64("entity", uint64(obj.ID)),
		zap.Bool("cross", cross))
}

// launchDirection prefers head gaze, falls back to punch velocity, then
// the sensor-forward default.
func launchDirection(head *sensor.Head, vel vmath.Vec3) vmath.Vec3 {
	if head.Tracked {
		f := head.Forward()
		if f.Len() > parameter.LaunchGazeMinLen {
			return f.Normalize()
		}
	}
	if vel.Len() > parameter.LaunchVelocityMinLen {
		return vel.Normalize()
	}
	return vmath.Forward
}

// updateHeldElement moves the bound element with the palm and reports it.
// In the grace window the element floats where the gesture ended.
func (e *Engine) updateHeldElement(l *component.LimbState, h *sensor.Hand, now time.Time) {
	if l.Held == nil {
		return
	}
	if e.merging && (l.Chirality == e.mergeDonor || l.Chirality == e.mergeReceiver) {
		// The merge beat owns both elements until its timer completes.
		return
	}
	switch l.Phase {
	case component.LimbSummoning:
		l.Held.Position = e.cls.PalmPosition(h)
		frac := 1.0
		if l.AnimTimer.Pending() {
			remaining := l.AnimTimer.Deadline().Sub(now)
			frac = vmath.Clamp01(1 - remaining.Seconds()/parameter.SummonScaleInDuration.Seconds())
		}
		l.Held.Scale = frac * heldTargetScale(l)
	case component.LimbHolding:
		l.Held.Position = e.cls.PalmPosition(h)
		l.Held.Scale = heldTargetScale(l)
	case component.LimbPendingDespawn:
		// floats in place, still launchable
	default:
		return
	}
	e.emit(event.EventElementUpdated, now, &event.ElementPayload{
		Limb:      l.Chirality,
		Entity:    l.Held.ID,
		Position:  l.Held.Position,
		Scale:     l.Held.Scale,
		Empowered: l.Held.Empowered,
	})
}

func heldTargetScale(l *component.LimbState) float64 {
	if l.Held != nil && l.Held.Empowered {
		return parameter.EmpoweredScale
	}
	return 1.0
}
