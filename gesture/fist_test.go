package gesture

import (
	"testing"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

func TestFistAllSignals(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	h := sensor.FistHand(core.ChiralityRight, vmath.Vec3{X: 0.2, Y: 1.2, Z: -0.3})

	v := c.Fist(&h)
	if v.Votes != 4 {
		t.Errorf("Expected 4 votes for tight fist, got %d (align=%v thumb=%v ratio=%v spread=%v)",
			v.Votes, v.AlignPass, v.ThumbPass, v.RatioPass, v.SpreadPass)
	}
	if !v.Closed {
		t.Error("Expected tight fist to classify as closed")
	}
}

func TestFistOpenHandNoVotes(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	h := sensor.PalmUpHand(core.ChiralityLeft, vmath.Vec3{Y: 1.2})

	v := c.Fist(&h)
	if v.Votes != 0 {
		t.Errorf("Expected 0 votes for open extended hand, got %d (align=%.3f thumbDist=%.3f ratio=%.3f spread=%.3f)",
			v.Votes, v.PalmAlignment, v.ThumbCentroidDist, v.CurlRatio, v.Spread)
	}
	if v.Closed {
		t.Error("Expected open hand not to classify as closed")
	}
}

// spreadFingertips pushes the curled fingertips apart laterally until the
// spread signal fails while the other three keep passing.
func spreadFingertips(h *sensor.Hand) {
	rot := h.Joints[sensor.JointWrist].Pose.Rotation
	right := rot.RightAxis()
	lateral := [4]float64{0.055, 0.018, -0.018, -0.055}
	// Strip the posed lateral offset, then apply the wide one
	posed := [4]float64{0.02, 0.007, -0.007, -0.02}
	for i, name := range sensor.FingertipJoints {
		base := h.Joints[name].Pose.Position
		h.Joints[name].Pose.Position = base.Add(right.Scale(lateral[i] - posed[i]))
	}
}

func TestFistThreeOfFourBoundary(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	wrist := vmath.Vec3{X: 0.2, Y: 1.2, Z: -0.3}
	h := sensor.FistHand(core.ChiralityRight, wrist)
	spreadFingertips(&h)

	v := c.Fist(&h)
	if v.SpreadPass {
		t.Fatalf("Expected spread signal to fail after widening, spread=%.3f", v.Spread)
	}
	if v.Votes != 3 {
		t.Fatalf("Expected exactly 3 votes, got %d (align=%v thumb=%v ratio=%v spread=%v)",
			v.Votes, v.AlignPass, v.ThumbPass, v.RatioPass, v.SpreadPass)
	}
	// Boundary: exactly 3 of 4 still classifies as fist
	if !v.Closed {
		t.Error("Expected 3/4 votes to classify as closed")
	}
}

func TestFistTwoOfFourRejected(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	wrist := vmath.Vec3{X: 0.2, Y: 1.2, Z: -0.3}
	h := sensor.FistHand(core.ChiralityRight, wrist)
	spreadFingertips(&h)

	// Also pull the thumb away from the curled fingers and the wrist
	rot := h.Joints[sensor.JointWrist].Pose.Rotation
	h.Joints[sensor.JointThumbTip].Pose.Position = wrist.
		Add(rot.RightAxis().Scale(0.09)).
		Add(rot.ForwardAxis().Scale(0.09))

	v := c.Fist(&h)
	if v.Votes != 2 {
		t.Fatalf("Expected exactly 2 votes, got %d (align=%v thumb=%v ratio=%v spread=%v)",
			v.Votes, v.AlignPass, v.ThumbPass, v.RatioPass, v.SpreadPass)
	}
	if v.Closed {
		t.Error("Expected 2/4 votes not to classify as closed")
	}
}

func TestFistUntrackedLimb(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	h := sensor.UntrackedHand(core.ChiralityLeft)

	v := c.Fist(&h)
	if v.Votes != 0 || v.Closed {
		t.Errorf("Expected untracked limb to score nothing, got %d votes closed=%v", v.Votes, v.Closed)
	}
}

func TestRelaxedHandNotClosed(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	h := sensor.NeutralHand(core.ChiralityRight, vmath.Vec3{Y: 1.1})

	v := c.Fist(&h)
	if v.Closed {
		t.Errorf("Expected relaxed half-curl not to classify as closed, got %d votes", v.Votes)
	}
}
