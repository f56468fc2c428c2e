package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the oscillator waveform.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator is a finite streamer producing one waveform. When freqEnd
// differs from freq the pitch glides linearly over the duration.
type oscillator struct {
	sr        beep.SampleRate
	wave      WaveType
	freq      float64
	freqEnd   float64
	phase     float64
	total     int
	remaining int
}

func newTone(sr beep.SampleRate, wave WaveType, freq float64, d time.Duration) *oscillator {
	n := sr.N(d)
	return &oscillator{sr: sr, wave: wave, freq: freq, freqEnd: freq, total: n, remaining: n}
}

func newSweep(sr beep.SampleRate, wave WaveType, from, to float64, d time.Duration) *oscillator {
	n := sr.N(d)
	return &oscillator{sr: sr, wave: wave, freq: from, freqEnd: to, total: n, remaining: n}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.remaining <= 0 {
		return 0, false
	}
	for i := range samples {
		if o.remaining <= 0 {
			break
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if math.Sin(2*math.Pi*o.phase) >= 0 {
				v = 1
			} else {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - math.Floor(o.phase+0.5))
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		progress := 1 - float64(o.remaining)/float64(o.total)
		freq := o.freq + (o.freqEnd-o.freq)*progress
		o.phase += freq / float64(o.sr)
		if o.phase >= 1 {
			o.phase -= 1
		}
		o.remaining--
		n++
	}
	return n, true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a streamer with linear attack and release ramps so cues
// start and end without clicks.
type envelope struct {
	s       beep.Streamer
	attack  int
	release int
	total   int
	pos     int
}

func newEnvelope(sr beep.SampleRate, s beep.Streamer, total, attack, release time.Duration) *envelope {
	return &envelope{
		s:       s,
		attack:  sr.N(attack),
		release: sr.N(release),
		total:   sr.N(total),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if e.release > 0 && e.pos >= e.total-e.release {
			rel := float64(e.total-e.pos) / float64(e.release)
			if rel < gain {
				gain = rel
			}
		}
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// layer scales a streamer for mixing inside a cue. Volume is linear; the
// beep effect wants a log2 exponent.
func layer(s beep.Streamer, vol float64) beep.Streamer {
	if vol >= 0.999 && vol <= 1.001 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// buildCue constructs the streamer for one cue. Durations stay short so
// the mixer never queues more than a fraction of a second per event.
func buildCue(sr beep.SampleRate, c Cue) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	switch c {
	case CueSummon:
		return beep.Seq(
			newEnvelope(sr, newTone(sr, WaveSine, 523.25, ms(70)), ms(70), ms(8), ms(25)),
			newEnvelope(sr, newTone(sr, WaveSine, 783.99, ms(110)), ms(110), ms(8), ms(50)),
		)
	case CueDespawn:
		return newEnvelope(sr, newSweep(sr, WaveSine, 600, 320, ms(150)), ms(150), ms(5), ms(70))
	case CueLaunch:
		return beep.Mix(
			layer(newEnvelope(sr, newSweep(sr, WaveSaw, 180, 90, ms(220)), ms(220), ms(8), ms(90)), 0.8),
			layer(newEnvelope(sr, newTone(sr, WaveNoise, 0, ms(180)), ms(180), ms(12), ms(110)), 0.45),
		)
	case CueImpact:
		return beep.Mix(
			newEnvelope(sr, newSweep(sr, WaveSine, 95, 52, ms(170)), ms(170), ms(2), ms(100)),
			layer(newEnvelope(sr, newTone(sr, WaveNoise, 0, ms(70)), ms(70), ms(1), ms(45)), 0.6),
		)
	case CueMerge:
		return beep.Seq(
			newEnvelope(sr, newSweep(sr, WaveSine, 440, 660, ms(120)), ms(120), ms(10), ms(30)),
			newEnvelope(sr, newSweep(sr, WaveSine, 660, 880, ms(140)), ms(140), ms(5), ms(70)),
		)
	case CueStreamIgnite:
		return layer(newEnvelope(sr, newTone(sr, WaveNoise, 0, ms(240)), ms(240), ms(40), ms(140)), 0.5)
	case CueWallConfirm:
		return beep.Mix(
			newEnvelope(sr, newTone(sr, WaveSine, 523.25, ms(220)), ms(220), ms(8), ms(130)),
			layer(newEnvelope(sr, newTone(sr, WaveSine, 659.25, ms(220)), ms(220), ms(8), ms(130)), 0.7),
			layer(newEnvelope(sr, newTone(sr, WaveSine, 783.99, ms(220)), ms(220), ms(8), ms(130)), 0.5),
		)
	case CueWallReject:
		return beep.Seq(
			newEnvelope(sr, newTone(sr, WaveSquare, 220, ms(90)), ms(90), ms(4), ms(25)),
			newEnvelope(sr, newTone(sr, WaveSquare, 196, ms(140)), ms(140), ms(4), ms(60)),
		)
	case CueSelect:
		return newEnvelope(sr, newTone(sr, WaveSine, 1046.5, ms(50)), ms(50), ms(3), ms(22))
	default:
		return beep.Silence(0)
	}
}
