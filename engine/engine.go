package engine

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petgprojects/ElementalWarrior-sub000/component"
	"github.com/petgprojects/ElementalWarrior-sub000/config"
	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/event"
	"github.com/petgprojects/ElementalWarrior-sub000/gesture"
	"github.com/petgprojects/ElementalWarrior-sub000/mesh"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/status"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// Options configures a new Engine. Zero-value fields fall back to
// production defaults.
type Options struct {
	Logger *zap.Logger      // nil: no-op logger
	Clock  Clock            // nil: wall time
	Tuning *config.Tuning   // nil: compiled defaults
	Status *status.Registry // nil: private registry
}

// Engine is the interaction core. Sensor callbacks feed OnFrame and
// OnMeshUpdate; the flight scheduler feeds Tick; all three serialize on
// one mutex so every state machine sees a consistent world. Consumers
// drain Events from a single goroutine.
type Engine struct {
	mu    sync.Mutex
	clock Clock
	log   *zap.Logger
	cls   *gesture.Classifier
	tun   config.Tuning

	ids   core.IDSource
	queue *event.Queue
	cache *mesh.Cache
	reg   *status.Registry

	limbs [2]*component.LimbState

	projectiles map[core.Entity]*component.ProjectileRecord

	// Wall placement machine
	walls          map[core.Entity]*component.WallRecord
	session        *component.WallSession
	poseActive     bool
	poseStart      time.Time
	lastFistAction time.Time
	poseBreakTimer *core.Timer
	emberTimer     *core.Timer

	// Gaze-dwell selection
	gazeCandidate core.Entity
	gazeStart     time.Time
	selectedWall  core.Entity

	// Stream pair state; 0 while the streams are separate
	combinedStream core.Entity

	// Element merge animation in progress
	merging       bool
	mergeDonor    core.Chirality
	mergeReceiver core.Chirality
	mergeTimer    *core.Timer

	// Armed timer handles, scanned for due deadlines on every advance
	timers []*core.Timer

	debug [2]LimbDebug

	sched *FlightScheduler

	statFrames         *atomic.Int64
	statTicks          *atomic.Int64
	statEvents         *atomic.Int64
	statProjectiles    *atomic.Int64
	statWalls          *atomic.Int64
	statWallsConfirmed *atomic.Int64
	statMeshEntries    *atomic.Int64
	statMeshTriangles  *atomic.Int64
	statStreamCombined *atomic.Bool
	statGesture        [2]*status.AtomicString
}

// New builds an engine. The tuning is validated up front; per-frame paths
// never return errors.
func New(opts Options) (*Engine, error) {
	tun := config.Default()
	if opts.Tuning != nil {
		tun = *opts.Tuning
		if err := tun.Validate(); err != nil {
			return nil, fmt.Errorf("engine tuning: %w", err)
		}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	clk := opts.Clock
	if clk == nil {
		clk = SystemClock()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	e := &Engine{
		clock:       clk,
		log:         log,
		cls:         gesture.NewClassifier(tun.GestureConfig()),
		tun:         tun,
		queue:       event.NewQueue(),
		cache:       mesh.NewCache(log.Named("mesh")),
		reg:         reg,
		projectiles: make(map[core.Entity]*component.ProjectileRecord),
		walls:       make(map[core.Entity]*component.WallRecord),
	}
	e.limbs[core.ChiralityLeft] = component.NewLimbState(core.ChiralityLeft)
	e.limbs[core.ChiralityRight] = component.NewLimbState(core.ChiralityRight)

	e.statFrames = reg.Ints.Get("engine.frames")
	e.statTicks = reg.Ints.Get("engine.ticks")
	e.statEvents = reg.Ints.Get("engine.events")
	e.statProjectiles = reg.Ints.Get("projectile.live")
	e.statWalls = reg.Ints.Get("wall.count")
	e.statWallsConfirmed = reg.Ints.Get("wall.confirmed")
	e.statMeshEntries = reg.Ints.Get("mesh.entries")
	e.statMeshTriangles = reg.Ints.Get("mesh.triangles")
	e.statStreamCombined = reg.Bools.Get("stream.combined")
	e.statGesture[core.ChiralityLeft] = reg.Strings.Get("limb.left.gesture")
	e.statGesture[core.ChiralityRight] = reg.Strings.Get("limb.right.gesture")

	tick := time.Second / time.Duration(tun.Projectile.TickRate)
	e.sched = newFlightScheduler(e, tick)

	e.log.Info("interaction engine ready",
		zap.Duration("tick", tick),
		zap.Int("wallCap", tun.Wall.ConfirmedCap))
	return e, nil
}

// Start launches the projectile flight scheduler.
func (e *Engine) Start() {
	e.sched.Start()
}

// Stop halts the flight scheduler. Idempotent.
func (e *Engine) Stop() {
	e.sched.Stop()
}

// Events returns the outbound event queue. Single consumer.
func (e *Engine) Events() *event.Queue {
	return e.queue
}

// Status returns the live metrics registry.
func (e *Engine) Status() *status.Registry {
	return e.reg
}

// OnFrame consumes one sensor frame: per-limb classification and state
// machines first, then the cross-limb checks that need both limbs settled.
func (e *Engine) OnFrame(f *sensor.Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	e.fireDueTimers(now)

	e.updateLimb(e.limbs[core.ChiralityLeft], f.Hand(core.ChiralityLeft), &f.Head, now)
	e.updateLimb(e.limbs[core.ChiralityRight], f.Hand(core.ChiralityRight), &f.Head, now)

	e.checkElementMerge(now)
	e.updateStreamPair(now)
	e.updateWalls(f, now)
	e.updateDebug()

	e.statFrames.Add(1)
}

// OnMeshUpdate ingests one environment-mesh delta. Malformed buffers are
// dropped inside the cache with the prior entry retained.
func (e *Engine) OnMeshUpdate(u sensor.MeshUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.cache.Ingest(u)
	e.statMeshEntries.Store(int64(e.cache.Len()))
	e.statMeshTriangles.Store(int64(e.cache.TriangleTotal()))
}

// Tick advances due timers and steps every live projectile. The flight
// scheduler calls this at the configured rate; tests call it directly.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()
	e.fireDueTimers(now)
	e.stepProjectiles(now)
	e.statTicks.Add(1)
}

// MeshClear drops all cached geometry, the user-facing clear-scan action.
func (e *Engine) MeshClear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.Clear()
	e.statMeshEntries.Store(0)
	e.statMeshTriangles.Store(0)
}

// MeshEvict removes a single cached anchor.
func (e *Engine) MeshEvict(id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	ok := e.cache.Evict(id)
	e.statMeshEntries.Store(int64(e.cache.Len()))
	e.statMeshTriangles.Store(int64(e.cache.TriangleTotal()))
	return ok
}

// SetMeshVisualization toggles the read-only triangle snapshot.
func (e *Engine) SetMeshVisualization(on bool) {
	e.cache.SetVisualization(on)
}

// MeshSnapshot returns the world-space triangle copy, nil when the
// visualization toggle is off.
func (e *Engine) MeshSnapshot() []vmath.Triangle {
	return e.cache.Snapshot()
}

// emit pushes one event with the engine timestamp.
func (e *Engine) emit(t event.EventType, now time.Time, payload any) {
	e.queue.Push(event.Event{Type: t, Time: now, Payload: payload})
	e.statEvents.Add(1)
}

// armTimer schedules fn and stores the handle in slot, cancelling any
// prior handle there. Timer callbacks run under the engine lock and must
// not take it again.
func (e *Engine) armTimer(slot **core.Timer, deadline time.Time, fn func()) {
	(*slot).Cancel()
	t := core.NewTimer(deadline, fn)
	*slot = t
	e.timers = append(e.timers, t)
}

// fireDueTimers runs every due pending timer in deadline order, then
// drops dead handles. Callbacks may arm new timers; those join the list
// for the next advance.
func (e *Engine) fireDueTimers(now time.Time) {
	if len(e.timers) == 0 {
		return
	}
	var due []*core.Timer
	for _, t := range e.timers {
		if t.Pending() && !now.Before(t.Deadline()) {
			due = append(due, t)
		}
	}
	if len(due) > 1 {
		sort.SliceStable(due, func(i, j int) bool {
			return due[i].Deadline().Before(due[j].Deadline())
		})
	}
	for _, t := range due {
		t.Fire(now)
	}
	kept := e.timers[:0]
	for _, t := range e.timers {
		if t.Pending() {
			kept = append(kept, t)
		}
	}
	e.timers = kept
}
