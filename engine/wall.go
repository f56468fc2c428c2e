package engine

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/petgprojects/ElementalWarrior-sub000/component"
	"github.com/petgprojects/ElementalWarrior-sub000/config"
	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/event"
	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// updateWalls runs the bimanual wall pipeline: pose hysteresis, the
// simultaneous-fist edge, then session sculpting or gaze selection.
func (e *Engine) updateWalls(f *sensor.Frame, now time.Time) {
	left := f.Hand(core.ChiralityLeft)
	right := f.Hand(core.ChiralityRight)
	head := &f.Head

	pose := left.Tracked && right.Tracked &&
		e.cls.ExtendedPalmsDown(left, right, head, e.poseActive)
	if pose && !e.poseActive {
		e.poseStart = now
	}
	e.poseActive = pose

	// The fist edge is checked ahead of pose handling: curling from flat
	// palms into fists drops the pose a few frames before the fists
	// register, so confirm and despawn land inside the break grace.
	fist := e.simultaneousFist()

	if e.session == nil {
		if fist && e.selectedWall != 0 {
			e.startReEditSession(now)
			return
		}
		if pose && now.Sub(e.poseStart) >= e.tun.Wall.PoseSustain.Std() {
			e.createWall(left, right, head, now)
			return
		}
		e.updateGaze(head, now)
		return
	}

	s := e.session
	if fist {
		w := e.walls[s.Wall]
		if w != nil && w.HeightFraction <= e.tun.Wall.EmberHeightFraction {
			e.despawnWall(w, now)
			e.clearSession()
			return
		}
		e.confirmWall(now)
		return
	}

	if pose {
		if !s.PoseSeen {
			e.captureSessionBaseline(left, right)
		}
		e.poseBreakTimer.Cancel()
		e.poseBreakTimer = nil
		e.applyWallEdit(left, right, now)
		return
	}

	// Pose lapsed. The grace runs from the first lapsed frame; re-entry
	// via fists has no pose to break until one has been seen.
	if s.PoseSeen && e.poseBreakTimer == nil {
		e.armTimer(&e.poseBreakTimer, now.Add(parameter.WallPoseBreakGrace), func() {
			e.endWallSession(e.clock.Now())
		})
	}
}

// simultaneousFist reports a consumed both-fists edge: both limbs closed
// within the sync window, and at least one closure is newer than the
// last consumed action.
func (e *Engine) simultaneousFist() bool {
	l := e.limbs[core.ChiralityLeft]
	r := e.limbs[core.ChiralityRight]
	if l.TrackingLost || r.TrackingLost || !l.FistClosed || !r.FistClosed {
		return false
	}
	dt := l.FistClosedAt.Sub(r.FistClosedAt)
	if dt < 0 {
		dt = -dt
	}
	if dt > e.tun.Wall.FistSyncWindow.Std() {
		return false
	}
	latest := l.FistClosedAt
	if r.FistClosedAt.After(latest) {
		latest = r.FistClosedAt
	}
	if !latest.After(e.lastFistAction) {
		return false
	}
	e.lastFistAction = latest
	return true
}

func (e *Engine) createWall(left, right *sensor.Hand, head *sensor.Head, now time.Time) {
	lw := left.JointPosition(sensor.JointWrist)
	rw := right.JointPosition(sensor.JointWrist)
	mid := lw.Midpoint(rw)

	fwd := vmath.Forward
	if head.Tracked {
		if h := head.Forward().Horizontal(); h.Len() > parameter.LaunchGazeMinLen {
			fwd = h.Normalize()
		}
	}
	anchor := vmath.Vec3{X: mid.X, Z: mid.Z}.Add(fwd.Scale(parameter.WallSpawnDistance))

	yaw, ok := handAxisYaw(lw, rw)
	if !ok {
		yaw = 0
	}
	w := &component.WallRecord{
		ID:             e.ids.Reserve(),
		Status:         component.WallEditing,
		Position:       anchor,
		Yaw:            yaw,
		Width:          wallWidth(lw, rw, &e.tun.Wall),
		HeightFraction: wallHeightFraction(lw, rw),
		CreatedAt:      now,
		ModifiedAt:     now,
	}
	e.walls[w.ID] = w
	e.session = &component.WallSession{
		Wall:        w.ID,
		New:         true,
		PoseSeen:    true,
		LastLeft:    lw,
		LastRight:   rw,
		BaseYaw:     w.Yaw,
		HandAxisYaw: yaw,
	}
	e.statWalls.Store(int64(len(e.walls)))
	e.emit(event.EventWallCreated, now, wallPayload(w))
	e.log.Debug("wall created",
		zap.Uint64("entity", uint64(w.ID)),
		zap.Float64("width", w.Width),
		zap.Float64("height_fraction", w.HeightFraction))
}

// captureSessionBaseline arms sculpting on a re-edit session's first
// posed frame.
func (e *Engine) captureSessionBaseline(left, right *sensor.Hand) {
	s := e.session
	lw := left.JointPosition(sensor.JointWrist)
	rw := right.JointPosition(sensor.JointWrist)
	s.PoseSeen = true
	s.LastLeft = lw
	s.LastRight = rw
	if w := e.walls[s.Wall]; w != nil {
		s.BaseYaw = w.Yaw
	}
	if yaw, ok := handAxisYaw(lw, rw); ok {
		s.HandAxisYaw = yaw
	} else {
		s.HandAxisYaw = s.BaseYaw
	}
}

// applyWallEdit sculpts the session wall from the current hand pair:
// width from separation, height from elevation, yaw from the clamped
// axis delta, position from the midpoint drift. Elevation never moves
// the anchor off the ground.
func (e *Engine) applyWallEdit(left, right *sensor.Hand, now time.Time) {
	s := e.session
	w := e.walls[s.Wall]
	if w == nil {
		e.clearSession()
		return
	}
	lw := left.JointPosition(sensor.JointWrist)
	rw := right.JointPosition(sensor.JointWrist)

	w.Width = wallWidth(lw, rw, &e.tun.Wall)
	w.HeightFraction = wallHeightFraction(lw, rw)

	if yaw, ok := handAxisYaw(lw, rw); ok {
		delta := vmath.NormalizeAngle(yaw - s.HandAxisYaw)
		delta = vmath.Clamp(delta, -parameter.WallRotationLimit, parameter.WallRotationLimit)
		w.Yaw = vmath.NormalizeAngle(s.BaseYaw + delta)
	}

	shift := lw.Midpoint(rw).Sub(s.LastLeft.Midpoint(s.LastRight))
	w.Position.X += shift.X
	w.Position.Z += shift.Z

	s.LastLeft = lw
	s.LastRight = rw
	w.ModifiedAt = now

	e.updateEmberPulse(w, now)
	e.emit(event.EventWallUpdated, now, wallPayload(w))
}

// updateEmberPulse keeps the ember-glow pulse running while the session
// wall sits at despawnable height and stops it the moment it rises.
func (e *Engine) updateEmberPulse(w *component.WallRecord, now time.Time) {
	if w.HeightFraction > e.tun.Wall.EmberHeightFraction {
		e.emberTimer.Cancel()
		e.emberTimer = nil
		return
	}
	if e.emberTimer.Pending() {
		return
	}
	e.armEmberPulse(w.ID, now)
}

func (e *Engine) armEmberPulse(id core.Entity, now time.Time) {
	e.armTimer(&e.emberTimer, now.Add(parameter.WallEmberPulseInterval), func() {
		if e.session == nil || e.session.Wall != id {
			e.emberTimer = nil
			return
		}
		w := e.walls[id]
		if w == nil || w.HeightFraction > e.tun.Wall.EmberHeightFraction {
			e.emberTimer = nil
			return
		}
		at := e.clock.Now()
		e.emit(event.EventWallEmberPulse, at, wallPayload(w))
		e.armEmberPulse(id, at)
	})
}

func (e *Engine) confirmWall(now time.Time) {
	s := e.session
	w := e.walls[s.Wall]
	if w == nil {
		e.clearSession()
		return
	}
	if s.New {
		confirmed := e.confirmedCount()
		if confirmed >= e.tun.Wall.ConfirmedCap {
			e.emit(event.EventWallRejected, now, &event.WallRejectedPayload{
				Entity:    w.ID,
				Confirmed: confirmed,
				Cap:       e.tun.Wall.ConfirmedCap,
			})
			e.log.Debug("wall confirm rejected at cap",
				zap.Uint64("entity", uint64(w.ID)),
				zap.Int("confirmed", confirmed))
			return
		}
	}
	w.Status = component.WallConfirmed
	w.ModifiedAt = now
	e.emit(event.EventWallConfirmed, now, wallPayload(w))
	e.clearSession()
	e.statWallsConfirmed.Store(int64(e.confirmedCount()))
	e.log.Debug("wall confirmed", zap.Uint64("entity", uint64(w.ID)))
}

// startReEditSession reopens a gaze-selected wall for sculpting. The
// pre-edit geometry is snapshotted so a pose break restores it.
func (e *Engine) startReEditSession(now time.Time) {
	w := e.walls[e.selectedWall]
	if w == nil {
		e.selectedWall = 0
		return
	}
	prior := *w
	w.Status = component.WallEditing
	w.ModifiedAt = now
	e.session = &component.WallSession{
		Wall:        w.ID,
		Prior:       &prior,
		BaseYaw:     w.Yaw,
		HandAxisYaw: w.Yaw,
	}
	e.selectedWall = 0
	e.gazeCandidate = 0
	e.statWallsConfirmed.Store(int64(e.confirmedCount()))
	e.emit(event.EventWallUpdated, now, wallPayload(w))
	e.log.Debug("wall re-edit started", zap.Uint64("entity", uint64(w.ID)))
}

// endWallSession is the pose-break exit: a still-new wall evaporates, a
// re-edited wall snaps back to its snapshot and stays confirmed.
func (e *Engine) endWallSession(now time.Time) {
	s := e.session
	if s == nil {
		return
	}
	if w := e.walls[s.Wall]; w != nil {
		if s.New {
			e.despawnWall(w, now)
		} else if s.Prior != nil {
			w.Position = s.Prior.Position
			w.Yaw = s.Prior.Yaw
			w.Width = s.Prior.Width
			w.HeightFraction = s.Prior.HeightFraction
			w.Status = component.WallConfirmed
			w.ModifiedAt = now
			e.emit(event.EventWallUpdated, now, wallPayload(w))
			e.statWallsConfirmed.Store(int64(e.confirmedCount()))
		}
	}
	e.clearSession()
	e.log.Debug("wall session ended by pose break")
}

func (e *Engine) despawnWall(w *component.WallRecord, now time.Time) {
	delete(e.walls, w.ID)
	if e.selectedWall == w.ID {
		e.selectedWall = 0
	}
	if e.gazeCandidate == w.ID {
		e.gazeCandidate = 0
	}
	e.statWalls.Store(int64(len(e.walls)))
	e.statWallsConfirmed.Store(int64(e.confirmedCount()))
	e.emit(event.EventWallDespawned, now, wallPayload(w))
	e.log.Debug("wall despawned", zap.Uint64("entity", uint64(w.ID)))
}

func (e *Engine) clearSession() {
	e.session = nil
	e.poseBreakTimer.Cancel()
	e.poseBreakTimer = nil
	e.emberTimer.Cancel()
	e.emberTimer = nil
}

// updateGaze runs dwell selection over confirmed walls. Any gap in the
// dwell resets it in full.
func (e *Engine) updateGaze(head *sensor.Head, now time.Time) {
	if !head.Tracked {
		e.gazeCandidate = 0
		e.deselectWall(now)
		return
	}
	dir := head.Forward()
	if dir.Len() < parameter.LaunchGazeMinLen {
		return
	}
	dir = dir.Normalize()
	origin := head.GazeOrigin()

	best := core.Entity(0)
	bestT := math.MaxFloat64
	for id, w := range e.walls {
		if w.Status != component.WallConfirmed && w.Status != component.WallSelected {
			continue
		}
		target := w.Position.Add(vmath.Up.Scale(w.Height() / 2))
		to := target.Sub(origin)
		t := to.Dot(dir)
		if t <= 0 || t > parameter.WallGazeRayLength {
			continue
		}
		if to.Sub(dir.Scale(t)).Len() > e.tun.Wall.GazeSelectionRadius {
			continue
		}
		if t < bestT {
			bestT = t
			best = id
		}
	}

	if best == 0 {
		e.gazeCandidate = 0
		e.deselectWall(now)
		return
	}
	if best != e.gazeCandidate {
		e.gazeCandidate = best
		e.gazeStart = now
		if e.selectedWall != 0 && e.selectedWall != best {
			e.deselectWall(now)
		}
		return
	}
	if e.selectedWall == best {
		return
	}
	if now.Sub(e.gazeStart) >= e.tun.Wall.GazeDwell.Std() {
		e.selectWall(best, now)
	}
}

func (e *Engine) selectWall(id core.Entity, now time.Time) {
	w := e.walls[id]
	if w == nil {
		return
	}
	w.Status = component.WallSelected
	e.selectedWall = id
	e.emit(event.EventWallSelected, now, wallPayload(w))
	e.log.Debug("wall selected", zap.Uint64("entity", uint64(id)))
}

func (e *Engine) deselectWall(now time.Time) {
	if e.selectedWall == 0 {
		return
	}
	w := e.walls[e.selectedWall]
	e.selectedWall = 0
	if w == nil {
		return
	}
	if w.Status == component.WallSelected {
		w.Status = component.WallConfirmed
	}
	e.emit(event.EventWallDeselected, now, wallPayload(w))
}

func (e *Engine) confirmedCount() int {
	n := 0
	for _, w := range e.walls {
		if w.Status == component.WallConfirmed || w.Status == component.WallSelected {
			n++
		}
	}
	return n
}

// handAxisYaw maps the left-to-right hand axis onto a ground-plane yaw.
// Degenerate when the hands stack vertically.
func handAxisYaw(lw, rw vmath.Vec3) (float64, bool) {
	axis := rw.Sub(lw).Horizontal()
	if axis.Len() < parameter.LaunchGazeMinLen {
		return 0, false
	}
	return math.Atan2(-axis.Z, axis.X), true
}

func wallWidth(lw, rw vmath.Vec3, t *config.WallTuning) float64 {
	sep := rw.Sub(lw).Horizontal().Len()
	return vmath.Clamp(sep, t.WidthMin, t.WidthMax)
}

// wallHeightFraction maps mean wrist elevation from chest height to eye
// height onto [0, 1].
func wallHeightFraction(lw, rw vmath.Vec3) float64 {
	avg := (lw.Y + rw.Y) / 2
	span := parameter.WallElevationEye - parameter.WallElevationChest
	return vmath.Clamp01((avg - parameter.WallElevationChest) / span)
}

func wallPayload(w *component.WallRecord) *event.WallPayload {
	return &event.WallPayload{
		Entity:         w.ID,
		Position:       w.Position,
		Yaw:            w.Yaw,
		Width:          w.Width,
		HeightFraction: w.HeightFraction,
		Status:         w.Status,
	}
}
