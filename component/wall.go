package component

import (
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// WallStatus is the tri-state wall color/status enum
type WallStatus uint8

const (
	WallEditing WallStatus = iota
	WallConfirmed
	WallSelected
)

func (s WallStatus) String() string {
	switch s {
	case WallEditing:
		return "editing"
	case WallConfirmed:
		return "confirmed"
	case WallSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// WallRecord is one placed wall construct. Created on gesture-triggered
// placement, mutated during editing, removed by explicit despawn.
type WallRecord struct {
	ID       core.Entity
	Status   WallStatus
	Position vmath.Vec3 // base-center anchor
	Yaw      float64    // rotation about world up, radians
	Width    float64
	// HeightFraction maps hand elevation into [0, 1] of the maximum wall
	// height; at or below the ember fraction the wall is despawnable.
	HeightFraction float64

	CreatedAt  time.Time
	ModifiedAt time.Time
}

// Height returns the world-space wall height.
func (w *WallRecord) Height() float64 {
	return w.HeightFraction * parameter.WallHeightMax
}

// WallSession is the single active bimanual editing session. At most one
// exists; it tracks which record is being sculpted and the hand baseline
// captured when sculpting begins.
type WallSession struct {
	Wall core.Entity
	// New marks an in-progress record that a pose break discards; a
	// re-edited confirmed record survives the break unmodified.
	New bool

	// Prior snapshots a confirmed record's geometry at re-edit entry so a
	// pose break can restore it. Nil for new records.
	Prior *WallRecord

	// PoseSeen latches once the placement pose has been held during this
	// session. Re-entry from selection starts with fists, so sculpting and
	// the pose-break exit wait for the first posed frame.
	PoseSeen bool

	// Last bimanual hand positions, for incremental translation
	LastLeft  vmath.Vec3
	LastRight vmath.Vec3

	// BaseYaw is the record's rotation when sculpting began; HandAxisYaw
	// is the hand-pair axis yaw captured at the same moment. Current
	// rotation is BaseYaw plus the clamped axis delta.
	BaseYaw     float64
	HandAxisYaw float64
}
