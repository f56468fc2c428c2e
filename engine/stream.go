package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/petgprojects/ElementalWarrior-sub000/component"
	"github.com/petgprojects/ElementalWarrior-sub000/event"
	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// updateStream runs one limb's continuous-stream machine. A stream and
// a held element are mutually exclusive on the same limb, so the
// machine only engages while nothing is bound.
func (e *Engine) updateStream(l *component.LimbState, h *sensor.Hand, forward bool, now time.Time) {
	if l.Held != nil {
		if l.Stream != nil && !l.Stream.Fading {
			// An element bound mid-stream ends the stream cleanly.
			e.beginStreamFade(l, now)
		}
		return
	}

	if forward {
		if l.Stream == nil {
			e.startStream(l, h, now)
			return
		}
		if l.Stream.Fading {
			// Gesture resumed inside the fade window: same entity carries on.
			l.Stream.FadeTimer.Cancel()
			l.Stream.FadeTimer = nil
			l.Stream.Fading = false
		}
		e.driveStream(l, h, now)
		return
	}

	if l.Stream != nil && !l.Stream.Fading {
		e.beginStreamFade(l, now)
	}
}

func (e *Engine) startStream(l *component.LimbState, h *sensor.Hand, now time.Time) {
	normal, ok := e.cls.PalmNormal(h)
	if !ok {
		return
	}
	l.Stream = &component.Stream{
		ID:        e.ids.Reserve(),
		Origin:    e.cls.PalmPosition(h),
		Direction: normal,
		Length:    e.tun.Stream.DefaultLength,
		StartedAt: now,
	}
	l.LastRaycastAt = time.Time{}
	l.LastScorchAt = time.Time{}
	e.castStream(l, now)
	e.emit(event.EventStreamStarted, now, streamPayload(l))
	e.log.Debug("stream started",
		zap.String("limb", l.Chirality.String()),
		zap.Uint64("entity", uint64(l.Stream.ID)))
}

func (e *Engine) driveStream(l *component.LimbState, h *sensor.Hand, now time.Time) {
	s := l.Stream
	s.Origin = e.cls.PalmPosition(h)
	if normal, ok := e.cls.PalmNormal(h); ok {
		s.Direction = normal
	}
	e.castStream(l, now)
	e.scorch(l, now)
	e.emit(event.EventStreamUpdated, now, streamPayload(l))
}

// castStream refreshes the stream length against the environment on the
// raycast cadence. Between casts the last length holds.
func (e *Engine) castStream(l *component.LimbState, now time.Time) {
	s := l.Stream
	if !l.LastRaycastAt.IsZero() && now.Sub(l.LastRaycastAt) < e.tun.Stream.RaycastInterval.Std() {
		return
	}
	l.LastRaycastAt = now

	hit, ok := e.cache.Raycast(s.Origin, s.Direction, e.tun.Stream.MaxLength)
	if ok {
		s.Length = hit.Distance
		s.Hitting = true
		s.HitMesh = hit.Mesh
		return
	}
	s.Length = e.tun.Stream.DefaultLength
	s.Hitting = false
}

// scorch emits surface marks at the stream's contact point on its own
// slower cadence. A fresh cast pins the mark to the surface even when
// the hand drifted since the last length refresh.
func (e *Engine) scorch(l *component.LimbState, now time.Time) {
	s := l.Stream
	if !s.Hitting {
		return
	}
	if !l.LastScorchAt.IsZero() && now.Sub(l.LastScorchAt) < e.tun.Stream.ScorchInterval.Std() {
		return
	}
	hit, ok := e.cache.Raycast(s.Origin, s.Direction, e.tun.Stream.MaxLength)
	if !ok {
		return
	}
	l.LastScorchAt = now
	e.emit(event.EventStreamScorch, now, &event.ScorchPayload{
		Entity:   s.ID,
		Mesh:     hit.Mesh,
		Position: hit.Position,
		Normal:   hit.Normal,
	})
}

func (e *Engine) beginStreamFade(l *component.LimbState, now time.Time) {
	s := l.Stream
	if s.Combined {
		e.breakCombined(now)
	}
	s.Fading = true
	e.emit(event.EventStreamStopped, now, streamPayload(l))
	limb := l
	e.armTimer(&s.FadeTimer, now.Add(parameter.StreamFadeDuration), func() {
		limb.Stream = nil
	})
	e.log.Debug("stream fading",
		zap.String("limb", l.Chirality.String()),
		zap.Uint64("entity", uint64(s.ID)))
}

// updateStreamPair applies the combine / split hysteresis between the
// two limbs' simultaneous streams.
func (e *Engine) updateStreamPair(now time.Time) {
	left := e.limbs[0].Stream
	right := e.limbs[1].Stream
	active := left != nil && !left.Fading && right != nil && !right.Fading
	if !active {
		if e.combinedStream != 0 {
			e.breakCombined(now)
		}
		return
	}

	d := left.Origin.Dist(right.Origin)
	if e.combinedStream == 0 {
		if d < e.tun.Stream.CombineDistance {
			e.combinedStream = e.ids.Reserve()
			left.Combined = true
			right.Combined = true
			e.statStreamCombined.Store(true)
			e.emit(event.EventStreamsMerged, now, &event.StreamMergePayload{
				Entity:   e.combinedStream,
				Position: left.Origin.Midpoint(right.Origin),
			})
			e.log.Debug("streams combined", zap.Uint64("entity", uint64(e.combinedStream)))
		}
		return
	}
	if d > e.tun.Stream.SplitDistance {
		e.breakCombined(now)
	}
}

// breakCombined dissolves the combined-stream overlay; the two limb
// streams keep running independently.
func (e *Engine) breakCombined(now time.Time) {
	if e.combinedStream == 0 {
		return
	}
	var pos vmath.Vec3
	ls, rs := e.limbs[0].Stream, e.limbs[1].Stream
	switch {
	case ls != nil && rs != nil:
		pos = ls.Origin.Midpoint(rs.Origin)
	case ls != nil:
		pos = ls.Origin
	case rs != nil:
		pos = rs.Origin
	}
	e.emit(event.EventStreamsSplit, now, &event.StreamMergePayload{
		Entity:   e.combinedStream,
		Position: pos,
	})
	e.combinedStream = 0
	e.statStreamCombined.Store(false)
	for _, l := range e.limbs {
		if l.Stream != nil {
			l.Stream.Combined = false
		}
	}
}

func streamPayload(l *component.LimbState) *event.StreamPayload {
	s := l.Stream
	return &event.StreamPayload{
		Limb:      l.Chirality,
		Entity:    s.ID,
		Origin:    s.Origin,
		Direction: s.Direction,
		Length:    s.Length,
		Combined:  s.Combined,
	}
}
