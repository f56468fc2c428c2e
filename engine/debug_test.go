package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

func TestDebugSnapshot(t *testing.T) {
	e, clk := newTestEngine(t)
	e.OnMeshUpdate(quadUpdate(uuid.New(), vmath.Vec3{Y: 1.2, Z: -6}))

	e.OnFrame(rightPalmUpFrame())
	clk.Advance(400 * time.Millisecond)
	e.OnFrame(rightPalmUpFrame())

	d := e.Debug()
	right := d.Limbs[core.ChiralityRight]
	if !right.Tracked {
		t.Error("Expected right limb tracked")
	}
	if right.Gesture != "palmUp" {
		t.Errorf("Expected palmUp gesture, got %q", right.Gesture)
	}
	if right.Phase != "holding" {
		t.Errorf("Expected holding phase, got %q", right.Phase)
	}
	if !right.Holding {
		t.Error("Expected holding flag")
	}
	left := d.Limbs[core.ChiralityLeft]
	if left.Gesture != "none" {
		t.Errorf("Expected neutral left gesture, got %q", left.Gesture)
	}
	if d.MeshEntries != 1 || d.MeshTriangles != 2 {
		t.Errorf("Expected 1 mesh entry with 2 triangles, got %d/%d", d.MeshEntries, d.MeshTriangles)
	}
	if d.Walls != 0 || d.SessionActive || d.SelectedWall != 0 {
		t.Error("Expected no wall state")
	}

	// Stream on the left shows up limb-locally.
	clk.Advance(16 * time.Millisecond)
	e.OnFrame(frameOf(
		sensor.StopHand(core.ChiralityLeft, leftRest, vmath.Forward),
		sensor.PalmUpHand(core.ChiralityRight, rightRest),
		testHead(),
	))
	d = e.Debug()
	if !d.Limbs[core.ChiralityLeft].Streaming {
		t.Error("Expected left limb streaming")
	}
	if d.Limbs[core.ChiralityLeft].Gesture != "forwardPalm" {
		t.Errorf("Expected forwardPalm gesture, got %q", d.Limbs[core.ChiralityLeft].Gesture)
	}
	if got := e.statGesture[core.ChiralityLeft].Load(); got != "forwardPalm" {
		t.Errorf("Expected status gesture mirror, got %q", got)
	}
}
