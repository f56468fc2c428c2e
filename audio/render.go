package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// render drains a finite streamer into a mono sample buffer. Cues write
// identical left and right channels so a single channel suffices.
func render(s beep.Streamer) []float64 {
	out := make([]float64, 0, 16384)
	var chunk [512][2]float64
	for {
		n, ok := s.Stream(chunk[:])
		for i := 0; i < n; i++ {
			out = append(out, chunk[i][0])
		}
		if !ok {
			return out
		}
	}
}

// cueCache holds every cue pre-rendered so playback never synthesizes
// under the mixer tick.
type cueCache struct {
	mu   sync.Mutex
	sr   beep.SampleRate
	bufs [cueCount][]float64
}

func newCueCache(sr beep.SampleRate) *cueCache {
	return &cueCache{sr: sr}
}

func (cc *cueCache) get(c Cue) []float64 {
	if c < 0 || c >= cueCount {
		return nil
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.bufs[c] == nil {
		cc.bufs[c] = render(buildCue(cc.sr, c))
	}
	return cc.bufs[c]
}

func (cc *cueCache) preload() {
	for c := Cue(0); c < cueCount; c++ {
		cc.get(c)
	}
}
