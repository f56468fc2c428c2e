package gesture

import (
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// PositionSample is one timestamped wrist position.
type PositionSample struct {
	Position vmath.Vec3
	Time     time.Time
}

// SampleHistory keeps a short, ordered window of position samples for one
// limb and derives instantaneous velocity from it. Owned by that limb's
// state; not safe for concurrent use.
type SampleHistory struct {
	window  time.Duration
	samples []PositionSample
}

func NewSampleHistory() *SampleHistory {
	return &SampleHistory{window: parameter.VelocitySampleWindow}
}

// Push appends a sample and evicts everything older than the window.
func (s *SampleHistory) Push(p vmath.Vec3, t time.Time) {
	s.samples = append(s.samples, PositionSample{Position: p, Time: t})
	cutoff := t.Add(-s.window)
	drop := 0
	for drop < len(s.samples) && s.samples[drop].Time.Before(cutoff) {
		drop++
	}
	if drop > 0 {
		s.samples = append(s.samples[:0], s.samples[drop:]...)
	}
}

// Velocity is the average displacement across the retained window.
// Fewer than two samples, or a span under a millisecond, reads as zero
// rather than amplifying sensor jitter into a huge spike.
func (s *SampleHistory) Velocity() vmath.Vec3 {
	if len(s.samples) < parameter.VelocityMinSamples {
		return vmath.Vec3{}
	}
	first := s.samples[0]
	last := s.samples[len(s.samples)-1]
	elapsed := last.Time.Sub(first.Time)
	if elapsed < parameter.VelocityMinElapsed {
		return vmath.Vec3{}
	}
	return last.Position.Sub(first.Position).Scale(1 / elapsed.Seconds())
}

// Len reports the retained sample count.
func (s *SampleHistory) Len() int {
	return len(s.samples)
}

// Reset drops all samples, used on tracking loss.
func (s *SampleHistory) Reset() {
	s.samples = s.samples[:0]
}
