package engine

import (
	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/gesture"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// LimbDebug is one limb's per-frame introspection snapshot for overlays
// and the status feed.
type LimbDebug struct {
	Chirality   core.Chirality
	Tracked     bool
	Phase       string
	Gesture     string
	Vote        gesture.FistVote
	PalmUp      bool
	ForwardPalm bool
	PalmDown    bool
	Velocity    vmath.Vec3
	Holding     bool
	Streaming   bool
	Empowered   bool
}

// DebugState is a copy of the engine's externally interesting state,
// safe to render without holding the engine lock.
type DebugState struct {
	Limbs          [2]LimbDebug
	Projectiles    int
	Walls          int
	WallsConfirmed int
	SessionActive  bool
	SelectedWall   core.Entity
	MeshEntries    int
	MeshTriangles  int
	CombinedStream bool
}

// Debug snapshots the engine state for frontends.
func (e *Engine) Debug() DebugState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DebugState{
		Limbs:          e.debug,
		Projectiles:    len(e.projectiles),
		Walls:          len(e.walls),
		WallsConfirmed: e.confirmedCount(),
		SessionActive:  e.session != nil,
		SelectedWall:   e.selectedWall,
		MeshEntries:    e.cache.Len(),
		MeshTriangles:  e.cache.TriangleTotal(),
		CombinedStream: e.combinedStream != 0,
	}
}

// updateDebug finishes the per-frame snapshots after every machine has
// settled, and mirrors the headline gesture into the status registry.
func (e *Engine) updateDebug() {
	for _, l := range e.limbs {
		d := &e.debug[l.Chirality]
		d.Phase = l.Phase.String()
		d.Holding = l.Showing()
		d.Streaming = l.Streaming()
		d.Empowered = l.Held != nil && l.Held.Empowered
		d.Gesture = gestureLabel(d)
		e.statGesture[l.Chirality].Store(d.Gesture)
	}
}

// gestureLabel picks the one headline gesture for a limb snapshot.
func gestureLabel(d *LimbDebug) string {
	switch {
	case !d.Tracked:
		return "untracked"
	case d.Vote.Closed:
		return "fist"
	case d.PalmUp:
		return "palmUp"
	case d.ForwardPalm:
		return "forwardPalm"
	case d.PalmDown:
		return "palmDown"
	default:
		return "none"
	}
}
