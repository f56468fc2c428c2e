package component

import (
	"time"

	"github.com/google/uuid"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// Stream is a continuous palm emission. Owned by one limb; the paired
// combined form is tracked at the engine level so each limb keeps its own
// record through combine and split.
type Stream struct {
	ID        core.Entity
	Origin    vmath.Vec3
	Direction vmath.Vec3 // unit
	Length    float64    // raycast hit distance, or the default reach

	// Combined marks this stream as half of the merged pair.
	Combined bool

	// Fading marks the fade-out after gesture release; the record is
	// removed when FadeTimer fires. Re-asserting the gesture cancels it.
	Fading    bool
	FadeTimer *core.Timer

	// Last raycast outcome, reused between rate-limited casts
	Hitting bool
	HitMesh uuid.UUID

	StartedAt time.Time
}
