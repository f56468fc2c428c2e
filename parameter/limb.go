package parameter

import "time"

// Summon
const (
	// SummonCooldown is the minimum interval between summons on one limb
	SummonCooldown = 500 * time.Millisecond

	// SummonScaleInDuration is the held-object grow animation length
	SummonScaleInDuration = 350 * time.Millisecond

	// CrossPunchResummonCooldown is the donor-limb cooldown after its object was cross-punched away
	CrossPunchResummonCooldown = 1200 * time.Millisecond
)

// Despawn grace
const (
	// DespawnGraceWindow is how long a held object lingers after its gesture ends
	DespawnGraceWindow = 1500 * time.Millisecond

	// ExtinguishFadeDuration is the shrink-out animation length on grace expiry
	ExtinguishFadeDuration = 300 * time.Millisecond
)

// Punch / launch
const (
	// PunchVelocityMin is the minimum fist speed for a launch (meters/sec)
	PunchVelocityMin = 1.2

	// PunchProximityRadius is the maximum fist-to-object distance for a punch (meters)
	PunchProximityRadius = 0.3

	// LaunchSpeed is the projectile speed handed to the flight loop (meters/sec)
	LaunchSpeed = 8.0
)

// Merge
const (
	// MergeCombineDistance is the maximum held-object separation for an object merge (meters)
	MergeCombineDistance = 0.15

	// MergeAnimationDuration is the donor shrink / receiver grow length
	MergeAnimationDuration = 400 * time.Millisecond

	// EmpoweredScale is the receiver's held-object scale after a merge
	EmpoweredScale = 1.6
)

// Tracking loss
const (
	// TrackingLossGrace is how long a limb may report untracked before forced cleanup
	TrackingLossGrace = 400 * time.Millisecond
)
