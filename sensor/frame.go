package sensor

import (
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// Hand is one chirality's skeleton for a single tracking update. Joint data
// is valid only for the frame it arrived in; consumers extract scalars and
// must not retain the struct.
type Hand struct {
	Chirality core.Chirality
	// Tracked is the sensor's own limb-level confidence flag. False means
	// the skeleton below is estimation only.
	Tracked bool
	Joints  [JointCount]Joint
}

// Joint returns the named joint's world transform and whether the sensor
// tracked it this frame. The second return is false for untracked joints
// even though an estimated pose is still returned.
func (h *Hand) Joint(name JointName) (vmath.Transform, bool) {
	j := h.Joints[name]
	return j.Pose, j.Tracked
}

// JointPosition is a convenience accessor for the world position of a joint
// regardless of tracking confidence.
func (h *Hand) JointPosition(name JointName) vmath.Vec3 {
	return h.Joints[name].Pose.Position
}

// Head carries the device/head world transform for one frame. Forward is
// the gaze direction derived from the rotation.
type Head struct {
	Tracked bool
	Pose    vmath.Transform
}

// Forward returns the gaze direction, or the world default when untracked.
func (h *Head) Forward() vmath.Vec3 {
	if !h.Tracked {
		return vmath.Forward
	}
	return h.Pose.ForwardAxis()
}

// GazeOrigin returns the eye position used for gaze rays.
func (h *Head) GazeOrigin() vmath.Vec3 {
	return h.Pose.Position
}

// Frame is one complete tracking update: both hands, the head, and the
// capture timestamp. Hands may individually report untracked.
type Frame struct {
	Time  time.Time
	Hands [2]Hand
	Head  Head
}

// Hand returns the frame's skeleton for one chirality.
func (f *Frame) Hand(c core.Chirality) *Hand {
	return &f.Hands[c]
}
