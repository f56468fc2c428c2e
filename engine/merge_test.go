package engine

import (
	"testing"
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/component"
	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/event"
	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

func bothPalmsUp(lw, rw vmath.Vec3) *sensor.Frame {
	return frameOf(
		sensor.PalmUpHand(core.ChiralityLeft, lw),
		sensor.PalmUpHand(core.ChiralityRight, rw),
		testHead(),
	)
}

// holdTwoElements drives both limbs to holding with separated objects.
func holdTwoElements(e *Engine, clk *MockClock, lw, rw vmath.Vec3) {
	e.OnFrame(bothPalmsUp(lw, rw))
	clk.Advance(400 * time.Millisecond)
	e.OnFrame(bothPalmsUp(lw, rw))
	e.Events().Consume()
}

func TestMergeEmpowersReceiverOnce(t *testing.T) {
	e, clk := newTestEngine(t)
	l := e.limbs[core.ChiralityLeft]
	r := e.limbs[core.ChiralityRight]
	lw0 := vmath.Vec3{X: -0.3, Y: 1.2, Z: -0.4}
	rw0 := vmath.Vec3{X: 0.3, Y: 1.2, Z: -0.4}
	holdTwoElements(e, clk, lw0, rw0)
	leftID := l.Held.ID
	rightID := r.Held.ID

	// Hands sweep together; the left moved farther so the right (slower)
	// limb receives.
	lw1 := vmath.Vec3{X: -0.04, Y: 1.2, Z: -0.4}
	rw1 := vmath.Vec3{X: 0.06, Y: 1.2, Z: -0.4}
	clk.Advance(100 * time.Millisecond)
	e.OnFrame(bothPalmsUp(lw1, rw1))
	events := e.Events().Consume()
	merges := ofType(events, event.EventElementMerged)
	if len(merges) != 1 {
		t.Fatalf("Expected 1 merge event, got %d", len(merges))
	}
	mp := merges[0].Payload.(*event.ElementMergedPayload)
	if mp.Donor != leftID || mp.Receiver != rightID {
		t.Errorf("Expected donor %v receiver %v, got donor %v receiver %v",
			leftID, rightID, mp.Donor, mp.Receiver)
	}
	if !e.merging {
		t.Fatal("Expected merge animation in progress")
	}

	// A second overlapping frame must not merge again, and positions hold
	// still for the animation.
	frozen := r.Held.Position
	clk.Advance(100 * time.Millisecond)
	e.OnFrame(bothPalmsUp(lw1, rw1))
	events = e.Events().Consume()
	if n := countType(events, event.EventElementMerged); n != 0 {
		t.Errorf("Expected merge to fire once, got %d more", n)
	}
	if r.Held.Position != frozen {
		t.Errorf("Expected receiver frozen during merge animation, got %v", r.Held.Position)
	}

	// Animation completes: donor emptied and latched, receiver empowered.
	clk.Advance(parameter.MergeAnimationDuration)
	e.OnFrame(bothPalmsUp(lw1, rw1))
	events = e.Events().Consume()
	if l.Held != nil {
		t.Error("Expected donor limb emptied after merge")
	}
	if !l.SuppressSummon {
		t.Error("Expected donor re-summon latched while its palm stays up")
	}
	if r.Held == nil || !r.Held.Empowered {
		t.Fatal("Expected receiver element empowered")
	}
	if r.Held.Scale != parameter.EmpoweredScale {
		t.Errorf("Expected empowered scale %v, got %v", parameter.EmpoweredScale, r.Held.Scale)
	}
	if n := countType(events, event.EventElementSummoned); n != 0 {
		t.Errorf("Expected no donor re-summon while palm stays up, got %d", n)
	}

	// Palm drops and returns: the donor limb may summon again.
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(frameOf(
		sensor.NeutralHand(core.ChiralityLeft, lw1),
		sensor.PalmUpHand(core.ChiralityRight, rw1),
		testHead(),
	))
	e.Events().Consume()
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(bothPalmsUp(lw1.Add(vmath.Vec3{X: -0.4}), rw1))
	if n := countType(e.Events().Consume(), event.EventElementSummoned); n != 1 {
		t.Errorf("Expected donor re-summon after palm cycled, got %d", n)
	}
}

func TestEmpoweredElementsDoNotMergeAgain(t *testing.T) {
	e, clk := newTestEngine(t)
	r := e.limbs[core.ChiralityRight]
	lw := vmath.Vec3{X: -0.3, Y: 1.2, Z: -0.4}
	rw := vmath.Vec3{X: 0.3, Y: 1.2, Z: -0.4}
	holdTwoElements(e, clk, lw, rw)
	r.Held.Empowered = true

	clk.Advance(100 * time.Millisecond)
	e.OnFrame(bothPalmsUp(vmath.Vec3{X: -0.04, Y: 1.2, Z: -0.4}, vmath.Vec3{X: 0.06, Y: 1.2, Z: -0.4}))
	if n := countType(e.Events().Consume(), event.EventElementMerged); n != 0 {
		t.Errorf("Expected empowered element to refuse merging, got %d", n)
	}
}

func TestMergeAbortOnReceiverHardLoss(t *testing.T) {
	e, clk := newTestEngine(t)
	l := e.limbs[core.ChiralityLeft]
	r := e.limbs[core.ChiralityRight]
	holdTwoElements(e, clk,
		vmath.Vec3{X: -0.3, Y: 1.2, Z: -0.4},
		vmath.Vec3{X: 0.3, Y: 1.2, Z: -0.4})

	lw1 := vmath.Vec3{X: -0.04, Y: 1.2, Z: -0.4}
	rw1 := vmath.Vec3{X: 0.06, Y: 1.2, Z: -0.4}
	clk.Advance(100 * time.Millisecond)
	e.OnFrame(bothPalmsUp(lw1, rw1))
	e.Events().Consume()
	if e.mergeReceiver != core.ChiralityRight {
		t.Fatalf("Expected right limb as receiver, got %v", e.mergeReceiver)
	}

	// Receiver goes dark past the grace before the merge lands: both
	// elements despawn, nothing empowers.
	lostFrame := func() *sensor.Frame {
		return frameOf(
			sensor.PalmUpHand(core.ChiralityLeft, lw1),
			sensor.UntrackedHand(core.ChiralityRight),
			testHead(),
		)
	}
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(lostFrame())
	clk.Advance(450 * time.Millisecond)
	e.OnFrame(lostFrame())
	events := e.Events().Consume()

	if e.merging {
		t.Error("Expected merge aborted after receiver hard loss")
	}
	if n := countType(events, event.EventElementDespawned); n != 2 {
		t.Errorf("Expected both elements despawned, got %d", n)
	}
	if l.Held != nil || r.Held != nil {
		t.Error("Expected both limbs emptied")
	}
	if n := countType(events, event.EventElementUpdated); n != 0 {
		t.Errorf("Expected no empowerment update on receiver loss, got %d", n)
	}
}

func TestMergeAbortOnDonorHardLossEmpowersReceiver(t *testing.T) {
	e, clk := newTestEngine(t)
	r := e.limbs[core.ChiralityRight]
	holdTwoElements(e, clk,
		vmath.Vec3{X: -0.3, Y: 1.2, Z: -0.4},
		vmath.Vec3{X: 0.3, Y: 1.2, Z: -0.4})

	lw1 := vmath.Vec3{X: -0.04, Y: 1.2, Z: -0.4}
	rw1 := vmath.Vec3{X: 0.06, Y: 1.2, Z: -0.4}
	clk.Advance(100 * time.Millisecond)
	e.OnFrame(bothPalmsUp(lw1, rw1))
	e.Events().Consume()
	if e.mergeDonor != core.ChiralityLeft {
		t.Fatalf("Expected left limb as donor, got %v", e.mergeDonor)
	}

	lostFrame := func() *sensor.Frame {
		return frameOf(
			sensor.UntrackedHand(core.ChiralityLeft),
			sensor.PalmUpHand(core.ChiralityRight, rw1),
			testHead(),
		)
	}
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(lostFrame())
	clk.Advance(450 * time.Millisecond)
	e.OnFrame(lostFrame())
	e.Events().Consume()

	if e.merging {
		t.Error("Expected merge aborted after donor hard loss")
	}
	if r.Held == nil || !r.Held.Empowered {
		t.Error("Expected surviving receiver empowered immediately")
	}
	if phase := r.Phase; phase != component.LimbHolding {
		t.Errorf("Expected receiver still holding, got %v", phase)
	}
}
