package engine

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/event"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

func rightStopFrame(rw vmath.Vec3) *sensor.Frame {
	return frameOf(
		sensor.NeutralHand(core.ChiralityLeft, leftRest),
		sensor.StopHand(core.ChiralityRight, rw, vmath.Forward),
		testHead(),
	)
}

func TestStreamStartFadeResume(t *testing.T) {
	e, clk := newTestEngine(t)
	r := e.limbs[core.ChiralityRight]
	rw := vmath.Vec3{X: 0.25, Y: 1.2, Z: -0.4}

	e.OnFrame(rightStopFrame(rw))
	events := e.Events().Consume()
	starts := ofType(events, event.EventStreamStarted)
	if len(starts) != 1 {
		t.Fatalf("Expected 1 stream start, got %d", len(starts))
	}
	sp := starts[0].Payload.(*event.StreamPayload)
	firstID := sp.Entity
	if sp.Length != e.tun.Stream.DefaultLength {
		t.Errorf("Expected default length %v with no geometry, got %v", e.tun.Stream.DefaultLength, sp.Length)
	}

	// Gesture drops: fade begins, record retained.
	clk.Advance(100 * time.Millisecond)
	e.OnFrame(rightNeutralFrame())
	events = e.Events().Consume()
	if n := countType(events, event.EventStreamStopped); n != 1 {
		t.Fatalf("Expected 1 stream stop, got %d", n)
	}
	if r.Stream == nil || !r.Stream.Fading {
		t.Fatal("Expected fading stream record retained")
	}

	// Gesture resumes inside the fade: same entity, no second start.
	clk.Advance(200 * time.Millisecond)
	e.OnFrame(rightStopFrame(rw))
	events = e.Events().Consume()
	if n := countType(events, event.EventStreamStarted); n != 0 {
		t.Errorf("Expected resume without a new start, got %d", n)
	}
	updates := ofType(events, event.EventStreamUpdated)
	if len(updates) == 0 {
		t.Fatal("Expected stream update on resume")
	}
	if got := updates[0].Payload.(*event.StreamPayload).Entity; got != firstID {
		t.Errorf("Expected resumed stream to keep entity %v, got %v", firstID, got)
	}

	// Full fade-out: the record dies, the next ignition is a new entity.
	clk.Advance(50 * time.Millisecond)
	e.OnFrame(rightNeutralFrame())
	clk.Advance(500 * time.Millisecond)
	e.OnFrame(rightNeutralFrame())
	if r.Stream != nil {
		t.Fatal("Expected stream record cleared after the fade")
	}
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(rightStopFrame(rw))
	starts = ofType(e.Events().Consume(), event.EventStreamStarted)
	if len(starts) != 1 {
		t.Fatalf("Expected fresh stream start, got %d", len(starts))
	}
	if got := starts[0].Payload.(*event.StreamPayload).Entity; got == firstID {
		t.Error("Expected a new entity id after a completed fade")
	}
}

func TestStreamRaycastLengthAndScorch(t *testing.T) {
	e, clk := newTestEngine(t)
	e.OnMeshUpdate(quadUpdate(uuid.New(), vmath.Vec3{Y: 1.2, Z: -3}))
	rw := vmath.Vec3{X: 0.25, Y: 1.2, Z: -0.4}

	e.OnFrame(rightStopFrame(rw))
	events := e.Events().Consume()
	sp := ofType(events, event.EventStreamStarted)[0].Payload.(*event.StreamPayload)
	if sp.Length >= e.tun.Stream.DefaultLength {
		t.Errorf("Expected clipped length against the quad, got %v", sp.Length)
	}
	if math.Abs(sp.Origin.Z-sp.Length-(-3)) > 0.05 {
		t.Errorf("Expected stream to end near z=-3, got origin %v length %v", sp.Origin, sp.Length)
	}
	if n := countType(events, event.EventStreamScorch); n != 1 {
		t.Fatalf("Expected an immediate scorch on contact, got %d", n)
	}
	scorch := ofType(events, event.EventStreamScorch)[0].Payload.(*event.ScorchPayload)
	if math.Abs(scorch.Position.Z-(-3)) > 1e-6 {
		t.Errorf("Expected scorch pinned to the surface, got %v", scorch.Position)
	}

	// Inside the scorch interval: no new mark.
	clk.Advance(100 * time.Millisecond)
	e.OnFrame(rightStopFrame(rw))
	if n := countType(e.Events().Consume(), event.EventStreamScorch); n != 0 {
		t.Errorf("Expected scorch cadence to hold, got %d marks", n)
	}

	// Past the interval: the next contact frame marks again.
	clk.Advance(200 * time.Millisecond)
	e.OnFrame(rightStopFrame(rw))
	if n := countType(e.Events().Consume(), event.EventStreamScorch); n != 1 {
		t.Errorf("Expected a second scorch after the interval, got %d", n)
	}
}

func TestStreamBlockedWhileHolding(t *testing.T) {
	e, clk := newTestEngine(t)
	r := e.limbs[core.ChiralityRight]

	e.OnFrame(rightPalmUpFrame())
	clk.Advance(400 * time.Millisecond)
	e.OnFrame(rightPalmUpFrame())
	e.Events().Consume()

	// Forward palm while holding: the element wins, no stream.
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(rightStopFrame(rightRest))
	events := e.Events().Consume()
	if n := countType(events, event.EventStreamStarted); n != 0 {
		t.Errorf("Expected no stream while an element is bound, got %d", n)
	}
	if r.Stream != nil {
		t.Error("Expected no stream record while holding")
	}
	if r.Held == nil {
		t.Error("Expected the held element to survive the stop pose")
	}
}

func TestStreamsCombineAndSplit(t *testing.T) {
	e, clk := newTestEngine(t)
	head := testHead()
	pair := func(x float64) *sensor.Frame {
		return frameOf(
			sensor.StopHand(core.ChiralityLeft, vmath.Vec3{X: -x, Y: 1.2, Z: -0.4}, vmath.Forward),
			sensor.StopHand(core.ChiralityRight, vmath.Vec3{X: x, Y: 1.2, Z: -0.4}, vmath.Forward),
			head,
		)
	}

	// Far apart: two independent streams.
	e.OnFrame(pair(0.25))
	events := e.Events().Consume()
	if n := countType(events, event.EventStreamStarted); n != 2 {
		t.Fatalf("Expected 2 stream starts, got %d", n)
	}
	if n := countType(events, event.EventStreamsMerged); n != 0 {
		t.Fatalf("Expected no combine at 0.5m separation, got %d", n)
	}

	// Inside the combine radius.
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(pair(0.1))
	events = e.Events().Consume()
	merges := ofType(events, event.EventStreamsMerged)
	if len(merges) != 1 {
		t.Fatalf("Expected 1 combine, got %d", len(merges))
	}
	combinedID := merges[0].Payload.(*event.StreamMergePayload).Entity
	if combinedID == e.limbs[0].Stream.ID || combinedID == e.limbs[1].Stream.ID {
		t.Error("Expected the combined stream to carry its own entity")
	}

	// Between the thresholds: hysteresis holds the combined state.
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(pair(0.15))
	events = e.Events().Consume()
	if n := countType(events, event.EventStreamsSplit); n != 0 {
		t.Errorf("Expected no split at 0.3m separation, got %d", n)
	}
	if e.combinedStream == 0 {
		t.Error("Expected combined state retained inside the hysteresis band")
	}

	// Past the split distance.
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(pair(0.225))
	events = e.Events().Consume()
	splits := ofType(events, event.EventStreamsSplit)
	if len(splits) != 1 {
		t.Fatalf("Expected 1 split, got %d", len(splits))
	}
	if got := splits[0].Payload.(*event.StreamMergePayload).Entity; got != combinedID {
		t.Errorf("Expected split of combined entity %v, got %v", combinedID, got)
	}
	if e.combinedStream != 0 {
		t.Error("Expected combined state cleared after split")
	}
}

func TestCombinedSplitsWhenOneStreamStops(t *testing.T) {
	e, clk := newTestEngine(t)
	head := testHead()
	pair := func(x float64) *sensor.Frame {
		return frameOf(
			sensor.StopHand(core.ChiralityLeft, vmath.Vec3{X: -x, Y: 1.2, Z: -0.4}, vmath.Forward),
			sensor.StopHand(core.ChiralityRight, vmath.Vec3{X: x, Y: 1.2, Z: -0.4}, vmath.Forward),
			head,
		)
	}
	e.OnFrame(pair(0.1))
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(pair(0.1))
	e.Events().Consume()
	if e.combinedStream == 0 {
		t.Fatal("Expected combined streams")
	}

	// Left gesture drops: the combined overlay splits before the fade.
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(frameOf(
		sensor.NeutralHand(core.ChiralityLeft, vmath.Vec3{X: -0.1, Y: 1.2, Z: -0.4}),
		sensor.StopHand(core.ChiralityRight, vmath.Vec3{X: 0.1, Y: 1.2, Z: -0.4}, vmath.Forward),
		head,
	))
	events := e.Events().Consume()
	if n := countType(events, event.EventStreamsSplit); n != 1 {
		t.Errorf("Expected split when one stream stops, got %d", n)
	}
	if n := countType(events, event.EventStreamStopped); n != 1 {
		t.Errorf("Expected the dropped stream to stop, got %d", n)
	}
	if e.combinedStream != 0 {
		t.Error("Expected combined state cleared")
	}
}
