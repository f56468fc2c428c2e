// Package demo ships scripted capture clips: keyframed hand/head motion
// plus the environment geometry a headset would have scanned. The console
// and the feed replay them through the engine in real time.
package demo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// TimedMesh is one environment anchor revealed at a clip offset.
type TimedMesh struct {
	At     time.Duration
	Update sensor.MeshUpdate
}

// Clip is a scripted capture: keyframed hands plus scanned geometry.
type Clip struct {
	Name   string
	Length time.Duration
	Keys   []sensor.Keyframe
	Meshes []TimedMesh
}

// Names lists the available clips in selection order.
var Names = []string{"full", "summon", "throw", "merge", "stream", "wall"}

var (
	headPos   = vmath.Vec3{0, 1.6, 0}
	leftRest  = vmath.Vec3{-0.25, 1.0, -0.3}
	rightRest = vmath.Vec3{0.25, 1.2, -0.4}
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func frontHead() sensor.Head {
	return sensor.PoseHead(headPos, vmath.Forward)
}

// quadWall builds a vertical quad centered at center spanning halfW by
// halfH, facing the user.
func quadWall(center vmath.Vec3, halfW, halfH float64) sensor.MeshUpdate {
	return sensor.MeshUpdate{
		Kind:      sensor.MeshAdded,
		ID:        uuid.New(),
		Transform: vmath.Transform{Position: center, Rotation: vmath.QuatIdentity},
		Vertices: []vmath.Vec3{
			{-halfW, -halfH, 0},
			{halfW, -halfH, 0},
			{halfW, halfH, 0},
			{-halfW, halfH, 0},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func neutralKey(at time.Duration) sensor.Keyframe {
	return sensor.Keyframe{
		At:    at,
		Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
		Right: sensor.NeutralHand(core.ChiralityRight, rightRest),
		Head:  frontHead(),
	}
}

// summonClip raises one element, holds it, then lets it gutter out
// through the despawn grace.
func summonClip() Clip {
	return Clip{
		Name:   "summon",
		Length: ms(4000),
		Keys: []sensor.Keyframe{
			neutralKey(0),
			{
				At:    ms(300),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.PalmUpHand(core.ChiralityRight, rightRest),
				Head:  frontHead(),
			},
			{
				At:    ms(2000),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.NeutralHand(core.ChiralityRight, rightRest),
				Head:  frontHead(),
			},
			neutralKey(ms(4000)),
		},
	}
}

// throwClip summons, punches the element forward, and lets the shot hit a
// scanned wall four meters out. The punch covers 0.4m in under 100ms so
// the windowed wrist velocity clears the launch threshold.
func throwClip() Clip {
	punchEnd := rightRest.Add(vmath.Vec3{0, 0, -0.4})
	return Clip{
		Name:   "throw",
		Length: ms(4000),
		Meshes: []TimedMesh{
			{At: 0, Update: quadWall(vmath.Vec3{0.25, 1.2, -4}, 1.5, 1.5)},
		},
		Keys: []sensor.Keyframe{
			neutralKey(0),
			{
				At:    ms(200),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.PalmUpHand(core.ChiralityRight, rightRest),
				Head:  frontHead(),
			},
			{
				At:    ms(1200),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.FistHand(core.ChiralityRight, rightRest),
				Head:  frontHead(),
			},
			{
				At:    ms(1296),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.FistHand(core.ChiralityRight, punchEnd),
				Head:  frontHead(),
			},
			{
				At:    ms(1600),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.NeutralHand(core.ChiralityRight, rightRest),
				Head:  frontHead(),
			},
			neutralKey(ms(4000)),
		},
	}
}

// mergeClip summons on both hands and brings them together until the
// elements combine into one empowered charge.
func mergeClip() Clip {
	leftUp := vmath.Vec3{-0.35, 1.2, -0.4}
	rightUp := vmath.Vec3{0.35, 1.2, -0.4}
	leftIn := vmath.Vec3{-0.06, 1.2, -0.4}
	rightIn := vmath.Vec3{0.06, 1.2, -0.4}
	return Clip{
		Name:   "merge",
		Length: ms(5200),
		Keys: []sensor.Keyframe{
			neutralKey(0),
			{
				At:    ms(300),
				Left:  sensor.PalmUpHand(core.ChiralityLeft, leftUp),
				Right: sensor.PalmUpHand(core.ChiralityRight, rightUp),
				Head:  frontHead(),
			},
			{
				At:    ms(1500),
				Left:  sensor.PalmUpHand(core.ChiralityLeft, leftUp),
				Right: sensor.PalmUpHand(core.ChiralityRight, rightUp),
				Head:  frontHead(),
			},
			{
				At:    ms(2200),
				Left:  sensor.PalmUpHand(core.ChiralityLeft, leftIn),
				Right: sensor.PalmUpHand(core.ChiralityRight, rightIn),
				Head:  frontHead(),
			},
			{
				At:    ms(3400),
				Left:  sensor.PalmUpHand(core.ChiralityLeft, leftIn),
				Right: sensor.PalmUpHand(core.ChiralityRight, rightIn),
				Head:  frontHead(),
			},
			neutralKey(ms(3600)),
			neutralKey(ms(5200)),
		},
	}
}

// streamClip ignites a palm stream and sweeps it across a scanned wall,
// leaving scorch marks as it crosses.
func streamClip() Clip {
	sweepEnd := vmath.Vec3{-0.25, 1.4, -0.4}
	return Clip{
		Name:   "stream",
		Length: ms(4500),
		Meshes: []TimedMesh{
			{At: 0, Update: quadWall(vmath.Vec3{0, 1.2, -3}, 1.5, 1.0)},
		},
		Keys: []sensor.Keyframe{
			neutralKey(0),
			{
				At:    ms(300),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.StopHand(core.ChiralityRight, rightRest, vmath.Forward),
				Head:  frontHead(),
			},
			{
				At:    ms(800),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.StopHand(core.ChiralityRight, rightRest, vmath.Forward),
				Head:  frontHead(),
			},
			{
				At:    ms(2800),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.StopHand(core.ChiralityRight, sweepEnd, vmath.Forward),
				Head:  frontHead(),
			},
			{
				At:    ms(3000),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.NeutralHand(core.ChiralityRight, rightRest),
				Head:  frontHead(),
			},
			neutralKey(ms(4500)),
		},
	}
}

// wallClip raises a wall, stretches it, locks it with a double fist, then
// selects and releases it by gaze.
func wallClip() Clip {
	poseL := vmath.Vec3{-0.2, 1.2, -0.6}
	poseR := vmath.Vec3{0.2, 1.2, -0.6}
	wideL := vmath.Vec3{-0.6, 1.45, -0.6}
	wideR := vmath.Vec3{0.6, 1.45, -0.6}

	// Confirmed anchor sits 1.5m past the wrist midpoint; aim the dwell
	// gaze at the wall's mid-height.
	gazeAt := vmath.Vec3{0, 0.77 - headPos.Y, -2.1}

	palms := func(at time.Duration, l, r vmath.Vec3) sensor.Keyframe {
		return sensor.Keyframe{
			At:    at,
			Left:  sensor.PalmDownHand(core.ChiralityLeft, l, vmath.Forward),
			Right: sensor.PalmDownHand(core.ChiralityRight, r, vmath.Forward),
			Head:  frontHead(),
		}
	}
	fists := func(at time.Duration, l, r vmath.Vec3) sensor.Keyframe {
		return sensor.Keyframe{
			At:    at,
			Left:  sensor.FistHand(core.ChiralityLeft, l),
			Right: sensor.FistHand(core.ChiralityRight, r),
			Head:  frontHead(),
		}
	}

	return Clip{
		Name:   "wall",
		Length: ms(6000),
		Keys: []sensor.Keyframe{
			neutralKey(0),
			palms(ms(300), poseL, poseR),
			palms(ms(1200), poseL, poseR),
			palms(ms(2400), wideL, wideR),
			fists(ms(2600), wideL, wideR),
			neutralKey(ms(2900)),
			{
				At:    ms(3200),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.NeutralHand(core.ChiralityRight, rightRest),
				Head:  sensor.PoseHead(headPos, gazeAt),
			},
			{
				At:    ms(4400),
				Left:  sensor.NeutralHand(core.ChiralityLeft, leftRest),
				Right: sensor.NeutralHand(core.ChiralityRight, rightRest),
				Head:  sensor.PoseHead(headPos, gazeAt),
			},
			neutralKey(ms(4600)),
			neutralKey(ms(6000)),
		},
	}
}

// fullClip chains every clip with a breather between each.
func fullClip() Clip {
	parts := []Clip{summonClip(), throwClip(), mergeClip(), streamClip(), wallClip()}
	out := Clip{Name: "full"}
	var offset time.Duration
	for _, p := range parts {
		for _, k := range p.Keys {
			k.At += offset
			out.Keys = append(out.Keys, k)
		}
		for _, m := range p.Meshes {
			m.At += offset
			out.Meshes = append(out.Meshes, m)
		}
		offset += p.Length + ms(500)
	}
	out.Length = offset
	return out
}

// Build returns the named clip.
func Build(name string) (Clip, error) {
	switch name {
	case "full":
		return fullClip(), nil
	case "summon":
		return summonClip(), nil
	case "throw":
		return throwClip(), nil
	case "merge":
		return mergeClip(), nil
	case "stream":
		return streamClip(), nil
	case "wall":
		return wallClip(), nil
	default:
		return Clip{}, fmt.Errorf("unknown clip %q", name)
	}
}
