package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
)

// FlightScheduler drives Engine.Tick on a fixed cadence so projectile
// flight keeps advancing between (or without) sensor frames.
type FlightScheduler struct {
	engine       *Engine
	tickInterval time.Duration

	mu           sync.Mutex
	nextDeadline time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	ticks    atomic.Int64
}

func newFlightScheduler(e *Engine, tickInterval time.Duration) *FlightScheduler {
	return &FlightScheduler{
		engine:       e,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start launches the tick loop. A second call is a no-op.
func (fs *FlightScheduler) Start() {
	if fs.running.CompareAndSwap(false, true) {
		fs.wg.Add(1)
		core.Go(fs.loop)
	}
}

// Stop halts the loop and waits for it to exit. Idempotent.
func (fs *FlightScheduler) Stop() {
	fs.stopOnce.Do(func() {
		if fs.running.CompareAndSwap(true, false) {
			close(fs.stopChan)
			fs.wg.Wait()
		}
	})
}

// TickCount returns the number of completed scheduler ticks.
func (fs *FlightScheduler) TickCount() int64 {
	return fs.ticks.Load()
}

func (fs *FlightScheduler) loop() {
	defer fs.wg.Done()

	fs.mu.Lock()
	fs.nextDeadline = fs.engine.clock.Now().Add(fs.tickInterval)
	fs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-fs.stopChan:
			return
		default:
		}

		now := fs.engine.clock.Now()
		fs.mu.Lock()
		deadline := fs.nextDeadline
		fs.mu.Unlock()

		var sleep time.Duration
		if !now.Before(deadline) {
			fs.engine.Tick()
			fs.ticks.Add(1)

			fs.mu.Lock()
			fs.nextDeadline = fs.nextDeadline.Add(fs.tickInterval)
			// Skip forward rather than burst-tick after a long stall.
			if now.Sub(fs.nextDeadline) > fs.tickInterval*2 {
				fs.nextDeadline = now.Add(fs.tickInterval)
			}
			deadline = fs.nextDeadline
			fs.mu.Unlock()

			sleep = deadline.Sub(fs.engine.clock.Now())
			if sleep < 0 {
				sleep = 0
			}
		} else {
			sleep = deadline.Sub(now)
		}

		if sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-timer.C:
			case <-fs.stopChan:
				return
			}
		}
	}
}
