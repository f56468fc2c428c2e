package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

func TestOpenPalmUpDetected(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	for _, ch := range core.Chiralities {
		h := sensor.PalmUpHand(ch, vmath.Vec3{X: 0.1, Y: 1.1, Z: -0.4})
		if !c.OpenPalmUp(&h) {
			t.Errorf("Expected %s open palm-up to be detected", ch)
		}
	}
}

func TestOpenPalmUpBelowDotThreshold(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	// Palm tilted so its normal · world-up is 0.3, under the 0.4 threshold,
	// fingers fully extended
	dot := 0.3
	normal := vmath.Up.Scale(dot).Add(vmath.Forward.Scale(math.Sqrt(1 - dot*dot)))
	h := sensor.PoseHand(core.ChiralityRight, sensor.ShapeOpenExtended,
		vmath.Vec3{Y: 1.1}, vmath.Forward, normal)

	if c.OpenPalmUp(&h) {
		t.Error("Expected tilted palm (dot 0.3) not to be detected even with fingers extended")
	}
}

func TestOpenPalmUpRelaxedFingersRejected(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	// Palm fully up but fingers half-curled below the extension minimum
	h := sensor.PoseHand(core.ChiralityLeft, sensor.ShapeRelaxed,
		vmath.Vec3{Y: 1.1}, vmath.Forward, vmath.Up)

	if c.OpenPalmUp(&h) {
		t.Error("Expected palm-up with curled fingers not to be detected")
	}
}

func TestOpenPalmUpUntrackedWrist(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	h := sensor.PalmUpHand(core.ChiralityLeft, vmath.Vec3{Y: 1.1})
	h.Joints[sensor.JointWrist].Tracked = false

	if c.OpenPalmUp(&h) {
		t.Error("Expected untracked wrist to read as no detection")
	}
}

func TestForwardPalm(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	headForward := vmath.Forward

	h := sensor.StopHand(core.ChiralityRight, vmath.Vec3{X: 0.15, Y: 1.3, Z: -0.4}, headForward)
	if !c.ForwardPalm(&h, headForward) {
		t.Error("Expected stop pose to be detected")
	}

	// Palm tilted 45° skyward clears the forward dot but trips up-reject
	tilted := vmath.Forward.Add(vmath.Up).Normalize()
	up := sensor.PoseHand(core.ChiralityRight, sensor.ShapeOpenExtended,
		vmath.Vec3{Y: 1.3}, vmath.Up, tilted)
	if c.ForwardPalm(&up, headForward) {
		t.Error("Expected sky-tilted palm to be rejected by the up-reject threshold")
	}

	// Palm facing back at the user opposes head forward
	back := sensor.PoseHand(core.ChiralityRight, sensor.ShapeOpenExtended,
		vmath.Vec3{Y: 1.3}, vmath.Up, headForward.Neg())
	if c.ForwardPalm(&back, headForward) {
		t.Error("Expected palm facing the user to be rejected")
	}
}

func TestExtendedPalmsDownEntryAndSustain(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	head := sensor.PoseHead(vmath.Vec3{Y: 1.6}, vmath.Forward)

	// Hands forward of the chest, palms to the floor
	left := sensor.PalmDownHand(core.ChiralityLeft, vmath.Vec3{X: -0.2, Y: 1.2, Z: -0.5}, vmath.Forward)
	right := sensor.PalmDownHand(core.ChiralityRight, vmath.Vec3{X: 0.2, Y: 1.2, Z: -0.5}, vmath.Forward)

	if !c.ExtendedPalmsDown(&left, &right, &head, false) {
		t.Fatal("Expected bimanual pose to pass the entry thresholds")
	}

	// Tilt both palms so the down-dot lands between sustain (0.35) and
	// entry (0.55): holds the pose only when already active
	tilt := 65.0 * math.Pi / 180
	normal := vmath.Down.Scale(math.Cos(tilt)).Add(vmath.Forward.Scale(math.Sin(tilt)))
	leftTilt := sensor.PoseHand(core.ChiralityLeft, sensor.ShapeOpenExtended,
		vmath.Vec3{X: -0.2, Y: 1.2, Z: -0.5}, vmath.Forward, normal)
	rightTilt := sensor.PoseHand(core.ChiralityRight, sensor.ShapeOpenExtended,
		vmath.Vec3{X: 0.2, Y: 1.2, Z: -0.5}, vmath.Forward, normal)

	if c.ExtendedPalmsDown(&leftTilt, &rightTilt, &head, false) {
		t.Error("Expected tilted palms to fail the entry threshold")
	}
	if !c.ExtendedPalmsDown(&leftTilt, &rightTilt, &head, true) {
		t.Error("Expected tilted palms to hold the pose under the sustain threshold")
	}
}

func TestExtendedPalmsDownVetoedByFists(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	head := sensor.PoseHead(vmath.Vec3{Y: 1.6}, vmath.Forward)

	// Fists with palms down fail the not-fist requirement
	left := sensor.PoseHand(core.ChiralityLeft, sensor.ShapeFist,
		vmath.Vec3{X: -0.2, Y: 1.2, Z: -0.5}, vmath.Forward, vmath.Down)
	right := sensor.PoseHand(core.ChiralityRight, sensor.ShapeFist,
		vmath.Vec3{X: 0.2, Y: 1.2, Z: -0.5}, vmath.Forward, vmath.Down)

	if c.ExtendedPalmsDown(&left, &right, &head, false) {
		t.Error("Expected fisted hands to veto the placement pose")
	}
}

func TestArmExtendedProjection(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	head := sensor.PoseHead(vmath.Vec3{Y: 1.6}, vmath.Forward)

	near := sensor.PalmDownHand(core.ChiralityRight, vmath.Vec3{X: 0.2, Y: 1.2, Z: -0.1}, vmath.Forward)
	if c.ArmExtended(&near, &head, false) {
		t.Error("Expected hand near the chest to fail the extension check")
	}

	far := sensor.PalmDownHand(core.ChiralityRight, vmath.Vec3{X: 0.2, Y: 1.2, Z: -0.5}, vmath.Forward)
	if !c.ArmExtended(&far, &head, false) {
		t.Error("Expected extended arm to pass the extension check")
	}
}

func TestVelocityFromHistory(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h := NewSampleHistory()

	// Single sample reads zero
	h.Push(vmath.Vec3{X: 1}, base)
	if v := h.Velocity(); !v.IsZero() {
		t.Errorf("Expected zero velocity from one sample, got %v", v)
	}

	// Sub-millisecond span reads zero
	h.Push(vmath.Vec3{X: 2}, base.Add(500*time.Microsecond))
	if v := h.Velocity(); !v.IsZero() {
		t.Errorf("Expected zero velocity under 1ms span, got %v", v)
	}

	// 1m displacement over 100ms reads 10 m/s
	h.Push(vmath.Vec3{X: 2}, base.Add(100*time.Millisecond))
	v := h.Velocity()
	if math.Abs(v.X-10) > 1e-9 || v.Y != 0 || v.Z != 0 {
		t.Errorf("Expected velocity (10,0,0), got %v", v)
	}
}

func TestVelocityWindowEviction(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h := NewSampleHistory()

	h.Push(vmath.Vec3{}, base)
	h.Push(vmath.Vec3{X: 1}, base.Add(100*time.Millisecond))
	// Push far past the retention window; older samples must drop
	h.Push(vmath.Vec3{X: 1}, base.Add(2*time.Second))

	if h.Len() != 1 {
		t.Errorf("Expected stale samples evicted, got %d retained", h.Len())
	}
	if v := h.Velocity(); !v.IsZero() {
		t.Errorf("Expected zero velocity after eviction to one sample, got %v", v)
	}
}
