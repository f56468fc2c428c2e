package gesture

import (
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// FistVote is the outcome of the four-signal closed-fist test. Raw measures
// are retained for the debug surface; no single signal is trusted alone
// because estimated joints keep reporting plausible positions during
// occlusion.
type FistVote struct {
	// PalmAlignment is wrist-to-middle-tip direction · hand forward axis.
	// Curled fingers fold off-axis, dropping the value.
	PalmAlignment float64
	AlignPass     bool

	// ThumbCentroidDist is thumb tip to curled-fingertip centroid.
	ThumbCentroidDist float64
	ThumbPass         bool

	// CurlRatio is mean fingertip-to-wrist over mean knuckle-to-wrist.
	CurlRatio float64
	RatioPass bool

	// Spread is the maximum pairwise fingertip distance.
	Spread     float64
	SpreadPass bool

	Votes int
	// Closed is the full-vote verdict used for launch and wall actions.
	Closed bool
	// RelaxedClosed is a looser verdict over the finger-only signals,
	// used to veto fists inside the bimanual placement pose.
	RelaxedClosed bool
}

// Fist runs the closed-fist vote for one hand. An untracked limb returns
// the zero FistVote (no votes, not closed).
func (c *Classifier) Fist(h *sensor.Hand) FistVote {
	if !h.Tracked {
		return FistVote{}
	}
	var v FistVote

	wrist := h.JointPosition(sensor.JointWrist)
	wristRot, _ := h.Joint(sensor.JointWrist)
	thumb := h.JointPosition(sensor.JointThumbTip)

	var tips, knuckles [4]vmath.Vec3
	for i := range sensor.FingertipJoints {
		tips[i] = h.JointPosition(sensor.FingertipJoints[i])
		knuckles[i] = h.JointPosition(sensor.KnuckleJoints[i])
	}

	// (a) wrist-to-fingertip direction against the hand's forward axis
	toMiddle := tips[1].Sub(wrist).Normalize()
	v.PalmAlignment = toMiddle.Dot(wristRot.ForwardAxis())
	v.AlignPass = v.PalmAlignment < c.cfg.FistPalmAlignmentMax

	// (b) thumb tucked against the curled fingers, or pulled in past the
	// index knuckle
	centroid := tips[0].Add(tips[1]).Add(tips[2]).Add(tips[3]).Scale(0.25)
	v.ThumbCentroidDist = thumb.Dist(centroid)
	v.ThumbPass = v.ThumbCentroidDist < c.cfg.FistThumbProximityMax ||
		thumb.Dist(wrist) < knuckles[0].Dist(wrist)

	// (c) fingertips pulled back toward the wrist
	var tipSum, knuckleSum float64
	for i := range tips {
		tipSum += tips[i].Dist(wrist)
		knuckleSum += knuckles[i].Dist(wrist)
	}
	if knuckleSum > 0 {
		v.CurlRatio = tipSum / knuckleSum
		v.RatioPass = v.CurlRatio < c.cfg.FistCurlRatioMax
	}

	// (d) fingertips bunched together
	for i := 0; i < len(tips); i++ {
		for j := i + 1; j < len(tips); j++ {
			if d := tips[i].Dist(tips[j]); d > v.Spread {
				v.Spread = d
			}
		}
	}
	v.SpreadPass = v.Spread < c.cfg.FistFingertipSpreadMax

	for _, pass := range []bool{v.AlignPass, v.ThumbPass, v.RatioPass, v.SpreadPass} {
		if pass {
			v.Votes++
		}
	}
	v.Closed = v.Votes >= c.cfg.FistVotesRequired

	relaxed := 0
	for _, pass := range []bool{v.AlignPass, v.RatioPass, v.SpreadPass} {
		if pass {
			relaxed++
		}
	}
	v.RelaxedClosed = relaxed >= c.cfg.FistRelaxedVotesRequired

	return v
}
