package audio

import (
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"go.uber.org/zap"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
)

// Sink plays interaction cues through whatever local audio backend is
// found on PATH. Every failure path degrades to silence: Play reports
// rejection but never errors, so interaction code can fire cues blindly.
type Sink struct {
	cfg   *Config
	log   *zap.Logger
	cache *cueCache
	mix   *mixer

	disabled atomic.Bool
	muted    atomic.Bool

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	backend string

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewSink builds a sink. The sink stays disabled until Start succeeds.
func NewSink(cfg *Config, log *zap.Logger) *Sink {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sink{
		cfg:      cfg,
		log:      log,
		cache:    newCueCache(beep.SampleRate(cfg.SampleRate)),
		stopChan: make(chan struct{}),
	}
	s.disabled.Store(true)
	return s
}

// Start detects a backend, launches its process and the mix loop. On any
// failure the sink logs once and stays disabled.
func (s *Sink) Start() {
	if !s.cfg.Enabled {
		s.log.Info("audio disabled by config")
		return
	}

	cmd, name, ok := detectBackend(s.cfg.SampleRate)
	if !ok {
		s.log.Info("no audio backend found, cues disabled")
		return
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		s.log.Warn("audio pipe setup failed, cues disabled", zap.Error(err))
		return
	}
	if err := cmd.Start(); err != nil {
		s.log.Warn("audio backend failed to start, cues disabled",
			zap.String("backend", name), zap.Error(err))
		return
	}

	s.cmd = cmd
	s.stdin = stdin
	s.backend = name

	s.cache.preload()
	s.mix = newMixer(stdin, s.cfg.SampleRate, s.cache)
	s.mix.start()
	core.Go(s.watch)
	s.disabled.Store(false)

	s.log.Info("audio backend started", zap.String("backend", name))
}

// watch disables the sink on the first pipe failure.
func (s *Sink) watch() {
	select {
	case err := <-s.mix.errors():
		s.log.Warn("audio backend lost, cues disabled", zap.Error(err))
		s.disabled.Store(true)
	case <-s.stopChan:
	}
}

// Play queues a cue for playback. Reports whether it was accepted.
func (s *Sink) Play(c Cue) bool {
	if s.disabled.Load() || s.muted.Load() {
		return false
	}
	gain := s.cfg.MasterVolume
	if v, ok := s.cfg.CueVolumes[c]; ok {
		gain *= v
	}
	s.mix.play(c, gain)
	return true
}

// ToggleMute flips the mute flag and returns the new state.
func (s *Sink) ToggleMute() bool {
	muted := !s.muted.Load()
	s.muted.Store(muted)
	return muted
}

func (s *Sink) Muted() bool { return s.muted.Load() }

// Enabled reports whether a backend is live.
func (s *Sink) Enabled() bool { return !s.disabled.Load() }

// Backend names the running backend, empty when disabled.
func (s *Sink) Backend() string { return s.backend }

// Stats returns played and dropped cue counts.
func (s *Sink) Stats() (played, dropped uint64) {
	if s.mix == nil {
		return 0, 0
	}
	return s.mix.stats()
}

// Stop halts the mix loop and tears down the backend process. Safe to
// call multiple times and before Start.
func (s *Sink) Stop() {
	s.stopOnce.Do(func() {
		s.disabled.Store(true)
		close(s.stopChan)
		if s.mix != nil {
			s.mix.stop()
		}
		if s.stdin != nil {
			s.stdin.Close()
		}
		if s.cmd != nil {
			done := make(chan struct{})
			core.Go(func() {
				s.cmd.Wait()
				close(done)
			})
			select {
			case <-done:
			case <-time.After(500 * time.Millisecond):
				s.cmd.Process.Kill()
				<-done
			}
		}
	})
}
