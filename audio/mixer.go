package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
)

// ErrPipeClosed reports that the backend process stopped accepting frames.
var ErrPipeClosed = errors.New("audio pipe closed")

const (
	mixInterval   = 25 * time.Millisecond
	bytesPerFrame = 4 // stereo int16
)

// voice is one playing cue instance.
type voice struct {
	buf  []float64
	gain float64
	pos  int
}

// mixer sums queued voices into fixed frames and writes them to the
// backend pipe. Active voices belong to the loop goroutine; the queue
// channel is the only cross-goroutine handoff.
type mixer struct {
	output io.Writer
	cache  *cueCache
	rate   int

	queue    chan voice
	stopChan chan struct{}
	stopped  atomic.Bool

	active []voice

	statsMu sync.Mutex
	played  uint64
	dropped uint64

	errChan chan error
}

func newMixer(out io.Writer, rate int, cache *cueCache) *mixer {
	return &mixer{
		output:   out,
		cache:    cache,
		rate:     rate,
		queue:    make(chan voice, 32),
		stopChan: make(chan struct{}),
		active:   make([]voice, 0, 8),
		errChan:  make(chan error, 1),
	}
}

func (m *mixer) start() {
	core.Go(m.loop)
}

func (m *mixer) stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
}

// play queues a pre-rendered cue at the given gain, dropping it when the
// queue is saturated so callers never block on audio.
func (m *mixer) play(c Cue, gain float64) {
	if m.stopped.Load() {
		return
	}
	buf := m.cache.get(c)
	if len(buf) == 0 {
		return
	}
	select {
	case m.queue <- voice{buf: buf, gain: gain}:
	default:
		m.statsMu.Lock()
		m.dropped++
		m.statsMu.Unlock()
	}
}

// errors returns the channel carrying the first pipe failure.
func (m *mixer) errors() <-chan error {
	return m.errChan
}

func (m *mixer) loop() {
	ticker := time.NewTicker(mixInterval)
	defer ticker.Stop()

	samples := m.rate * int(mixInterval/time.Millisecond) / 1000
	mixBuf := make([]float64, samples)
	outBytes := make([]byte, samples*bytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case v := <-m.queue:
			m.admit(v)
			m.drainQueue(4)

		case <-ticker.C:
			if len(m.active) == 0 {
				// Silence keeps the pipe alive between cues.
				for i := range outBytes {
					outBytes[i] = 0
				}
			} else {
				for i := range mixBuf {
					mixBuf[i] = 0
				}
				m.active = m.mixActive(mixBuf, samples)
				floatToBytes(mixBuf, outBytes)
			}

			if _, err := m.output.Write(outBytes); err != nil {
				select {
				case m.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				return
			}
		}
	}
}

func (m *mixer) admit(v voice) {
	m.active = append(m.active, v)
	m.statsMu.Lock()
	m.played++
	m.statsMu.Unlock()
}

// drainQueue admits up to n additional queued voices.
func (m *mixer) drainQueue(n int) {
	for i := 0; i < n; i++ {
		select {
		case v := <-m.queue:
			m.admit(v)
		default:
			return
		}
	}
}

// mixActive mixes all active voices into buf and returns the survivors.
func (m *mixer) mixActive(buf []float64, samples int) []voice {
	remaining := m.active[:0]
	for i := range m.active {
		v := &m.active[i]
		for j := 0; j < samples && v.pos < len(v.buf); j++ {
			buf[j] += v.buf[v.pos] * v.gain
			v.pos++
		}
		if v.pos < len(v.buf) {
			remaining = append(remaining, *v)
		}
	}
	return remaining
}

// floatToBytes converts mixed mono floats to interleaved stereo int16 LE.
// A soft knee above 0.8 tames stacked cues before the hard clip.
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}

		if v > 1.0 {
			v = 1.0
		} else if v < -1.0 {
			v = -1.0
		}

		i16 := int16(v * 32767)
		idx := i * bytesPerFrame
		binary.LittleEndian.PutUint16(out[idx:], uint16(i16))   // L
		binary.LittleEndian.PutUint16(out[idx+2:], uint16(i16)) // R
	}
}

// stats returns played and dropped counts.
func (m *mixer) stats() (played, dropped uint64) {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.played, m.dropped
}
