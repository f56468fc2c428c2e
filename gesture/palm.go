package gesture

import (
	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// Classifier converts one frame's skeleton into detection booleans.
// Stateless and deterministic: identical joints produce identical answers.
type Classifier struct {
	cfg Config
}

func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

func (c *Classifier) Config() Config {
	return c.cfg
}

// PalmNormal derives the palm-facing direction from the wrist's local up
// axis, sign-corrected because the sensor mirrors the wrist frame between
// chiralities. Second return is false when the wrist is not tracked, which
// disables every orientation-dependent detection for the frame.
func (c *Classifier) PalmNormal(h *sensor.Hand) (vmath.Vec3, bool) {
	wrist, tracked := h.Joint(sensor.JointWrist)
	if !h.Tracked || !tracked {
		return vmath.Vec3{}, false
	}
	n := wrist.UpAxis()
	if h.Chirality == core.ChiralityRight {
		n = n.Neg()
	}
	return n, true
}

// OpenPalmUp reports the summon pose: palm to the sky with the index and
// middle fingers extended. Missing orientation reads as not shown.
func (c *Classifier) OpenPalmUp(h *sensor.Hand) bool {
	normal, ok := c.PalmNormal(h)
	if !ok {
		return false
	}
	if normal.Dot(vmath.Up) <= c.cfg.PalmUpDot {
		return false
	}
	return c.fingerExtended(h, sensor.JointIndexTip, sensor.JointIndexKnuckle) &&
		c.fingerExtended(h, sensor.JointMiddleTip, sensor.JointMiddleKnuckle)
}

func (c *Classifier) fingerExtended(h *sensor.Hand, tip, knuckle sensor.JointName) bool {
	return h.JointPosition(tip).Dist(h.JointPosition(knuckle)) > c.cfg.FingerExtensionMin
}

// ForwardPalm reports the "stop" pose: palm pushed toward where the head
// is looking, not pitched at the sky or floor.
func (c *Classifier) ForwardPalm(h *sensor.Hand, headForward vmath.Vec3) bool {
	normal, ok := c.PalmNormal(h)
	if !ok {
		return false
	}
	if normal.Dot(headForward.Normalize()) <= c.cfg.PalmForwardDot {
		return false
	}
	up := normal.Dot(vmath.Up)
	if up < 0 {
		up = -up
	}
	return up < c.cfg.PalmForwardUpReject
}
