package sensor

import (
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// Synthetic skeleton generation. Tests and demo harnesses drive the engine
// with posed hands instead of a live sensor; offsets below are wrist-local
// meters for an adult hand.

// HandShape selects the finger configuration of a generated skeleton.
type HandShape uint8

const (
	// ShapeOpenExtended is a flat hand, fingers straight and splayed.
	ShapeOpenExtended HandShape = iota
	// ShapeFist is a tight curl scoring all four closed-fist signals.
	ShapeFist
	// ShapeRelaxed is a loose half-curl that should classify as nothing.
	ShapeRelaxed
)

// Wrist-local finger layout. Forward is toward the fingers, lateral spread
// along the local right axis, curl displacement toward the palm side.
var (
	knuckleForward = 0.09
	knuckleLateral = [4]float64{0.035, 0.012, -0.012, -0.036}

	extendedForward = 0.175
	extendedLateral = [4]float64{0.047, 0.016, -0.016, -0.048}

	fistForward = 0.045
	fistCurl    = 0.05
	fistLateral = [4]float64{0.02, 0.007, -0.007, -0.02}

	relaxedForward = 0.115
	relaxedCurl    = 0.03
	relaxedLateral = [4]float64{0.035, 0.012, -0.012, -0.036}
)

// chiralitySign matches the sensor convention where the wrist's local up
// axis points out of the palm for the left hand and out of the back of the
// hand for the right.
func chiralitySign(c core.Chirality) float64 {
	if c == core.ChiralityLeft {
		return 1
	}
	return -1
}

// wristOrientation builds the wrist rotation whose fingers point along
// fingerDir and whose palm faces palmNormal, honoring the chirality sign.
func wristOrientation(c core.Chirality, fingerDir, palmNormal vmath.Vec3) vmath.Quat {
	s := chiralitySign(c)
	u := palmNormal.Scale(s).Normalize()
	if u.IsZero() {
		u = vmath.Up
	}
	f := fingerDir.Sub(u.Scale(fingerDir.Dot(u))).Normalize()
	if f.IsZero() {
		f = vmath.Forward
	}
	r := u.Cross(f.Neg())
	return vmath.QuatFromBasis(r, u, f)
}

// PoseHand generates a full skeleton for one hand: wrist at wristPos,
// fingers toward fingerDir, palm facing palmNormal, all joints tracked.
func PoseHand(c core.Chirality, shape HandShape, wristPos, fingerDir, palmNormal vmath.Vec3) Hand {
	rot := wristOrientation(c, fingerDir, palmNormal)
	wrist := vmath.Transform{Position: wristPos, Rotation: rot}
	// Palm side in wrist-local coordinates
	palmLocal := vmath.Up.Scale(chiralitySign(c))

	var tipForward, tipCurl float64
	var tipLateral [4]float64
	var thumbLocal vmath.Vec3
	switch shape {
	case ShapeFist:
		tipForward, tipCurl, tipLateral = fistForward, fistCurl, fistLateral
		thumbLocal = vmath.Forward.Scale(fistForward).
			Add(palmLocal.Scale(0.03)).
			Add(vmath.Right.Scale(0.025))
	case ShapeRelaxed:
		tipForward, tipCurl, tipLateral = relaxedForward, relaxedCurl, relaxedLateral
		thumbLocal = vmath.Forward.Scale(0.09).Add(vmath.Right.Scale(0.06))
	default:
		tipForward, tipCurl, tipLateral = extendedForward, 0, extendedLateral
		thumbLocal = vmath.Forward.Scale(0.09).Add(vmath.Right.Scale(0.05))
	}

	h := Hand{Chirality: c, Tracked: true}
	set := func(name JointName, local vmath.Vec3) {
		h.Joints[name] = Joint{
			Tracked: true,
			Pose:    vmath.Transform{Position: wrist.Apply(local), Rotation: rot},
		}
	}

	set(JointWrist, vmath.Vec3{})
	set(JointThumbTip, thumbLocal)
	for i := range FingertipJoints {
		knuckle := vmath.Forward.Scale(knuckleForward).Add(vmath.Right.Scale(knuckleLateral[i]))
		tip := vmath.Forward.Scale(tipForward).
			Add(palmLocal.Scale(tipCurl)).
			Add(vmath.Right.Scale(tipLateral[i]))
		set(KnuckleJoints[i], knuckle)
		set(FingertipJoints[i], tip)
	}
	return h
}

// PalmUpHand is the canonical summon pose: open hand, palm to the sky.
func PalmUpHand(c core.Chirality, wristPos vmath.Vec3) Hand {
	return PoseHand(c, ShapeOpenExtended, wristPos, vmath.Forward, vmath.Up)
}

// FistHand is the canonical closed fist, palm toward the body.
func FistHand(c core.Chirality, wristPos vmath.Vec3) Hand {
	return PoseHand(c, ShapeFist, wristPos, vmath.Forward, vmath.Vec3{Z: 1})
}

// StopHand is the forward-facing palm: fingers up, palm along headForward.
func StopHand(c core.Chirality, wristPos, headForward vmath.Vec3) Hand {
	return PoseHand(c, ShapeOpenExtended, wristPos, vmath.Up, headForward.Horizontal())
}

// PalmDownHand is one half of the bimanual placement pose: extended hand,
// palm to the floor, fingers along forward.
func PalmDownHand(c core.Chirality, wristPos, forward vmath.Vec3) Hand {
	return PoseHand(c, ShapeOpenExtended, wristPos, forward.Horizontal(), vmath.Down)
}

// NeutralHand is a relaxed half-curl that triggers no classifier.
func NeutralHand(c core.Chirality, wristPos vmath.Vec3) Hand {
	return PoseHand(c, ShapeRelaxed, wristPos, vmath.Forward, vmath.Vec3{Z: 1})
}

// UntrackedHand reports limb-level tracking loss for a chirality.
func UntrackedHand(c core.Chirality) Hand {
	return Hand{Chirality: c, Tracked: false}
}

// PoseHead places the head at pos gazing along forward.
func PoseHead(pos, forward vmath.Vec3) Head {
	return Head{
		Tracked: true,
		Pose:    vmath.Transform{Position: pos, Rotation: vmath.LookRotation(forward, vmath.Up)},
	}
}

// Keyframe is one step of a scripted capture sequence.
type Keyframe struct {
	At    time.Duration
	Left  Hand
	Right Hand
	Head  Head
}

// Sequence replays keyframed hand/head data as frames, interpolating wrist
// trajectories linearly between keys. Shapes snap to the earlier key.
type Sequence struct {
	Start time.Time
	Keys  []Keyframe
}

// FrameAt samples the sequence at an elapsed offset from Start.
func (s *Sequence) FrameAt(elapsed time.Duration) Frame {
	if len(s.Keys) == 0 {
		return Frame{Time: s.Start.Add(elapsed)}
	}
	i := 0
	for i < len(s.Keys)-1 && s.Keys[i+1].At <= elapsed {
		i++
	}
	k := s.Keys[i]
	f := Frame{Time: s.Start.Add(elapsed), Head: k.Head}
	f.Hands[core.ChiralityLeft] = k.Left
	f.Hands[core.ChiralityRight] = k.Right

	if i < len(s.Keys)-1 {
		next := s.Keys[i+1]
		span := next.At - k.At
		if span > 0 {
			t := float64(elapsed-k.At) / float64(span)
			f.Hands[core.ChiralityLeft] = lerpHand(k.Left, next.Left, t)
			f.Hands[core.ChiralityRight] = lerpHand(k.Right, next.Right, t)
			f.Head.Pose.Position = k.Head.Pose.Position.Lerp(next.Head.Pose.Position, t)
		}
	}
	return f
}

// lerpHand slides a's joints toward b's by t without reshaping fingers;
// good enough for velocity scripting where only positions matter.
func lerpHand(a, b Hand, t float64) Hand {
	if !a.Tracked || !b.Tracked {
		return a
	}
	out := a
	for i := range out.Joints {
		out.Joints[i].Pose.Position = a.Joints[i].Pose.Position.Lerp(b.Joints[i].Pose.Position, t)
	}
	return out
}
