package gesture

import (
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// Bimanual "extended arms, palms down" placement pose. Detection runs two
// threshold sets: a strict one for entry and a relaxed one while the pose
// is already active, so small wobbles do not drop an editing session.

// PalmDown reports a floor-facing palm. active selects the sustain
// threshold.
func (c *Classifier) PalmDown(h *sensor.Hand, active bool) bool {
	normal, ok := c.PalmNormal(h)
	if !ok {
		return false
	}
	threshold := c.cfg.PalmDownDot
	if active {
		threshold = c.cfg.PalmDownSustainDot
	}
	return normal.Dot(vmath.Down) > threshold
}

// ArmExtended reports the wrist pushed forward of the chest along the
// horizontal gaze direction. active selects the sustain threshold.
func (c *Classifier) ArmExtended(h *sensor.Hand, head *sensor.Head, active bool) bool {
	if !h.Tracked || !head.Tracked {
		return false
	}
	forward := head.Forward().Horizontal().Normalize()
	if forward.IsZero() {
		return false
	}
	chest := head.GazeOrigin().Add(vmath.Down.Scale(c.cfg.ChestDrop))
	projection := h.JointPosition(sensor.JointWrist).Sub(chest).Dot(forward)

	threshold := c.cfg.ArmExtendedMin
	if active {
		threshold = c.cfg.ArmExtendedSustain
	}
	return projection > threshold
}

// armHalf is one hand's contribution to the bimanual pose.
func (c *Classifier) armHalf(h *sensor.Hand, head *sensor.Head, active bool) bool {
	if !c.PalmDown(h, active) {
		return false
	}
	if c.Fist(h).RelaxedClosed {
		return false
	}
	return c.ArmExtended(h, head, active)
}

// ExtendedPalmsDown evaluates the full placement pose across both hands.
// Callers pass their current pose state as active to get the hysteresis.
func (c *Classifier) ExtendedPalmsDown(left, right *sensor.Hand, head *sensor.Head, active bool) bool {
	return c.armHalf(left, head, active) && c.armHalf(right, head, active)
}
