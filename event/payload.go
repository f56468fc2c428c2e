package event

import (
	"github.com/google/uuid"

	"github.com/petgprojects/ElementalWarrior-sub000/component"
	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// ElementPayload describes a held element's current state.
type ElementPayload struct {
	Limb      core.Chirality
	Entity    core.Entity
	Position  vmath.Vec3
	Scale     float64
	Empowered bool
}

// ElementLaunchedPayload carries the hand-off into projectile flight.
type ElementLaunchedPayload struct {
	Limb      core.Chirality
	Entity    core.Entity
	Origin    vmath.Vec3
	Direction vmath.Vec3
	Speed     float64
	Empowered bool
	// CrossLimb marks a punch against the other limb's element.
	CrossLimb bool
}

// ElementMergedPayload describes a completed two-element merge.
type ElementMergedPayload struct {
	Donor    core.Chirality
	Receiver core.Chirality
	Entity   core.Entity
	Position vmath.Vec3
}

// StreamPayload describes a palm stream's pose for one frame.
type StreamPayload struct {
	Limb      core.Chirality
	Entity    core.Entity
	Origin    vmath.Vec3
	Direction vmath.Vec3
	Length    float64
	Combined  bool
}

// StreamMergePayload describes streams entering or leaving combined form.
type StreamMergePayload struct {
	Entity   core.Entity
	Position vmath.Vec3
}

// ScorchPayload marks geometry charred by a sustained stream.
type ScorchPayload struct {
	Entity   core.Entity
	Mesh     uuid.UUID
	Position vmath.Vec3
	Normal   vmath.Vec3
}

// ProjectileImpactPayload carries a terminal collision.
type ProjectileImpactPayload struct {
	Entity    core.Entity
	Mesh      uuid.UUID
	Position  vmath.Vec3
	Normal    vmath.Vec3
	Magnitude float64
	Empowered bool
}

// ProjectileExpiredPayload carries an out-of-range termination.
type ProjectileExpiredPayload struct {
	Entity    core.Entity
	Position  vmath.Vec3
	Travelled float64
}

// WallPayload describes a wall record's full pose and status.
type WallPayload struct {
	Entity         core.Entity
	Position       vmath.Vec3
	Yaw            float64
	Width          float64
	HeightFraction float64
	Status         component.WallStatus
}

// WallRejectedPayload reports a refused confirm at the cap.
type WallRejectedPayload struct {
	Entity    core.Entity
	Confirmed int
	Cap       int
}

// TrackingPayload identifies the limb whose tracking state changed.
type TrackingPayload struct {
	Limb core.Chirality
}
