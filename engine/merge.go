package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/petgprojects/ElementalWarrior-sub000/component"
	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/event"
	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
)

// checkElementMerge watches the two held elements and folds them into
// one empowered element when they come within merge range. The slower
// limb keeps its element; the faster limb donated the motion and loses
// its own.
func (e *Engine) checkElementMerge(now time.Time) {
	if e.merging {
		return
	}
	left := e.limbs[core.ChiralityLeft]
	right := e.limbs[core.ChiralityRight]
	if !mergeEligible(left) || !mergeEligible(right) {
		return
	}
	if left.Held.Position.Dist(right.Held.Position) >= e.tun.Limb.MergeDistance {
		return
	}

	receiver := right
	donor := left
	if left.History.Velocity().Len() < right.History.Velocity().Len() {
		receiver = left
		donor = right
	}

	e.merging = true
	e.mergeDonor = donor.Chirality
	e.mergeReceiver = receiver.Chirality
	donor.Animating = true
	receiver.Animating = true

	e.emit(event.EventElementMerged, now, &event.ElementMergedPayload{
		Donor:    donor.Held.ID,
		Receiver: receiver.Held.ID,
		Entity:   receiver.Held.ID,
		Position: receiver.Held.Position,
	})

	e.armTimer(&e.mergeTimer, now.Add(parameter.MergeAnimationDuration), func() {
		e.onMergeComplete(e.clock.Now())
	})
	e.log.Debug("element merge started",
		zap.String("donor", donor.Chirality.String()),
		zap.String("receiver", receiver.Chirality.String()))
}

func mergeEligible(l *component.LimbState) bool {
	return l.Phase == component.LimbHolding &&
		!l.Animating &&
		l.Held != nil &&
		!l.Held.Empowered
}

// onMergeComplete lands the merge: the donor limb empties and is
// latched against re-summoning until its palm drops, the receiver's
// element turns empowered.
func (e *Engine) onMergeComplete(now time.Time) {
	if !e.merging {
		return
	}
	e.merging = false
	e.mergeTimer = nil

	donor := e.limbs[e.mergeDonor]
	receiver := e.limbs[e.mergeReceiver]

	donor.Held = nil
	donor.Phase = component.LimbIdle
	donor.Animating = false
	donor.SuppressSummon = true

	receiver.Animating = false
	if receiver.Held != nil {
		receiver.Held.Empowered = true
		receiver.Held.Scale = parameter.EmpoweredScale
		e.emit(event.EventElementUpdated, now, &event.ElementPayload{
			Limb:      receiver.Chirality,
			Entity:    receiver.Held.ID,
			Position:  receiver.Held.Position,
			Scale:     receiver.Held.Scale,
			Empowered: true,
		})
	}
}

// abortMerge unwinds a merge whose participant hard-lost tracking. The
// surviving half resolves immediately: a surviving receiver empowers,
// a surviving donor despawns its element outright.
func (e *Engine) abortMerge(lost core.Chirality, now time.Time) {
	e.mergeTimer.Cancel()
	e.mergeTimer = nil
	e.merging = false

	if lost == e.mergeDonor {
		receiver := e.limbs[e.mergeReceiver]
		receiver.Animating = false
		if receiver.Held != nil {
			receiver.Held.Empowered = true
			receiver.Held.Scale = parameter.EmpoweredScale
			e.emit(event.EventElementUpdated, now, &event.ElementPayload{
				Limb:      receiver.Chirality,
				Entity:    receiver.Held.ID,
				Position:  receiver.Held.Position,
				Scale:     receiver.Held.Scale,
				Empowered: true,
			})
		}
		return
	}

	donor := e.limbs[e.mergeDonor]
	donor.Animating = false
	if donor.Held != nil {
		e.emit(event.EventElementDespawned, now, &event.ElementPayload{
			Limb:     donor.Chirality,
			Entity:   donor.Held.ID,
			Position: donor.Held.Position,
			Scale:    donor.Held.Scale,
		})
	}
	donor.Held = nil
	donor.Phase = component.LimbIdle
	donor.SuppressSummon = true
}
