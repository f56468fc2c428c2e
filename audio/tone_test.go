package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestRenderCuesFiniteAndBounded(t *testing.T) {
	sr := beep.SampleRate(44100)
	for c := Cue(0); c < cueCount; c++ {
		buf := render(buildCue(sr, c))
		if len(buf) == 0 {
			t.Errorf("Expected cue %v to render samples, got none", c)
		}
		if len(buf) > int(sr) {
			t.Errorf("Expected cue %v under one second, got %d samples", c, len(buf))
		}
		for i, v := range buf {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("Expected finite samples for cue %v, got %v at %d", c, v, i)
			}
			if math.Abs(v) > 2.5 {
				t.Fatalf("Expected cue %v within mix headroom, got %v at %d", c, v, i)
			}
		}
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	sr := beep.SampleRate(44100)
	for c := Cue(0); c < cueCount; c++ {
		buf := render(buildCue(sr, c))
		if len(buf) == 0 {
			continue
		}
		if math.Abs(buf[0]) > 1e-9 {
			t.Errorf("Expected cue %v attack to start at zero, got %v", c, buf[0])
		}
	}
}

func TestSweepGlidesPhase(t *testing.T) {
	sr := beep.SampleRate(44100)
	s := newSweep(sr, WaveSine, 200, 800, 500*time.Millisecond)
	buf := render(s)
	if len(buf) != sr.N(500*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", sr.N(500*time.Millisecond), len(buf))
	}

	// Zero crossings per window rise as the sweep climbs.
	crossings := func(seg []float64) int {
		n := 0
		for i := 1; i < len(seg); i++ {
			if (seg[i-1] < 0) != (seg[i] < 0) {
				n++
			}
		}
		return n
	}
	window := len(buf) / 5
	early := crossings(buf[:window])
	late := crossings(buf[len(buf)-window:])
	if late <= early {
		t.Errorf("Expected sweep frequency to rise, got %d then %d crossings", early, late)
	}
}

func TestCueCachePreloadsOnce(t *testing.T) {
	cc := newCueCache(44100)
	first := cc.get(CueImpact)
	if len(first) == 0 {
		t.Fatalf("Expected rendered buffer, got empty")
	}
	second := cc.get(CueImpact)
	if &first[0] != &second[0] {
		t.Errorf("Expected cached buffer to be reused")
	}
	if cc.get(Cue(-1)) != nil || cc.get(cueCount) != nil {
		t.Errorf("Expected nil for out of range cues")
	}
}
