package sensor

import (
	"time"

	"github.com/google/uuid"

	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// MeshEventKind classifies an environment-mesh stream entry.
type MeshEventKind uint8

const (
	MeshAdded MeshEventKind = iota
	MeshUpdated
	// MeshRemoved means the sensor stopped reporting the anchor. The cache
	// deliberately ignores it for eviction; geometry outlives live tracking.
	MeshRemoved
)

func (k MeshEventKind) String() string {
	switch k {
	case MeshAdded:
		return "added"
	case MeshUpdated:
		return "updated"
	case MeshRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// MeshUpdate is one incremental environment-geometry message: an anchor id,
// its rigid world transform, and triangle buffers in anchor-local space.
// Indices reference Vertices in triples.
type MeshUpdate struct {
	Kind      MeshEventKind
	ID        uuid.UUID
	Transform vmath.Transform
	Vertices  []vmath.Vec3
	Indices   []uint32
	Time      time.Time
}
