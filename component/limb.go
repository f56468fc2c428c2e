package component

import (
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/gesture"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// LimbPhase represents the held-element lifecycle state
type LimbPhase uint8

const (
	LimbIdle           LimbPhase = iota
	LimbSummoning                // scale-in animation running
	LimbHolding                  // element tracks the palm
	LimbPendingDespawn           // gesture lost, grace window running
)

func (p LimbPhase) String() string {
	switch p {
	case LimbIdle:
		return "idle"
	case LimbSummoning:
		return "summoning"
	case LimbHolding:
		return "holding"
	case LimbPendingDespawn:
		return "pendingDespawn"
	default:
		return "unknown"
	}
}

// HeldObject is the element currently bound to a limb
type HeldObject struct {
	ID        core.Entity
	Position  vmath.Vec3
	Scale     float64
	Empowered bool // merge product, scales launch impact
}

// LimbState holds one hand's full interaction state (pure data, mutated
// only under the engine lock). One instance per chirality for the session
// lifetime; Reset returns it to defaults without reallocating.
type LimbState struct {
	Chirality core.Chirality
	Phase     LimbPhase

	Held   *HeldObject // nil when no element bound
	Stream *Stream     // nil when no stream; exclusive with Held

	Animating    bool // scale-in or merge animation in progress
	TrackingLost bool
	// SuppressSummon blocks re-summon after this limb donated its element
	// into a merge, until the palm gesture is released once.
	SuppressSummon bool

	NextSummonAt  time.Time
	LastRaycastAt time.Time
	LastScorchAt  time.Time

	// Last frame's classifications, for edge detection
	PalmUp       bool
	FistClosed   bool
	ForwardPalm  bool
	FistClosedAt time.Time // rising edge of FistClosed

	History *gesture.SampleHistory

	// Cancellable transition handles; arming a slot cancels the prior one
	AnimTimer     *core.Timer // summon scale-in / merge completion
	DespawnTimer  *core.Timer // pending-despawn grace expiry
	TrackingTimer *core.Timer // tracking-loss grace expiry
}

func NewLimbState(c core.Chirality) *LimbState {
	return &LimbState{
		Chirality: c,
		History:   gesture.NewSampleHistory(),
	}
}

// Showing reports whether an element is bound in any lifecycle phase.
func (l *LimbState) Showing() bool {
	return l.Held != nil
}

// Streaming reports an active, non-fading stream.
func (l *LimbState) Streaming() bool {
	return l.Stream != nil && !l.Stream.Fading
}

// CancelTimers cancels every pending transition handle.
func (l *LimbState) CancelTimers() {
	l.AnimTimer.Cancel()
	l.DespawnTimer.Cancel()
	l.TrackingTimer.Cancel()
	if l.Stream != nil {
		l.Stream.FadeTimer.Cancel()
	}
}

// Reset returns the limb to defaults, cancelling pending transitions.
// Chirality survives; everything else is cleared, including cooldowns.
func (l *LimbState) Reset() {
	l.CancelTimers()
	l.Phase = LimbIdle
	l.Held = nil
	l.Stream = nil
	l.Animating = false
	l.TrackingLost = false
	l.SuppressSummon = false
	l.NextSummonAt = time.Time{}
	l.LastRaycastAt = time.Time{}
	l.LastScorchAt = time.Time{}
	l.PalmUp = false
	l.FistClosed = false
	l.ForwardPalm = false
	l.FistClosedAt = time.Time{}
	l.History.Reset()
	l.AnimTimer = nil
	l.DespawnTimer = nil
	l.TrackingTimer = nil
}
