package gesture

import (
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// knuckleCentroid averages the four finger knuckles.
func knuckleCentroid(h *sensor.Hand) vmath.Vec3 {
	var sum vmath.Vec3
	for _, j := range sensor.KnuckleJoints {
		sum = sum.Add(h.JointPosition(j))
	}
	return sum.Scale(1.0 / float64(len(sensor.KnuckleJoints)))
}

// PalmPosition approximates the palm center, halfway between the wrist
// and the knuckle line. Untracked limbs read as the zero vector; callers
// gate on the tracked flag.
func (c *Classifier) PalmPosition(h *sensor.Hand) vmath.Vec3 {
	if !h.Tracked {
		return vmath.Vec3{}
	}
	return h.JointPosition(sensor.JointWrist).Lerp(knuckleCentroid(h), 0.5)
}

// PunchPosition is the leading face of a fist, the knuckle centroid.
func (c *Classifier) PunchPosition(h *sensor.Hand) vmath.Vec3 {
	if !h.Tracked {
		return vmath.Vec3{}
	}
	return knuckleCentroid(h)
}
