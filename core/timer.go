package core

import (
	"sync/atomic"
	"time"
)

const (
	timerPending uint32 = iota
	timerFired
	timerCancelled
)

// Timer is a one-shot scheduled callback driven by whoever advances the
// clock. A single CAS arbitrates firing against cancellation, so Cancel
// on an already-fired or already-cancelled timer is a no-op, never an
// error.
type Timer struct {
	deadline time.Time
	fn       func()
	state    atomic.Uint32
}

func NewTimer(deadline time.Time, fn func()) *Timer {
	return &Timer{deadline: deadline, fn: fn}
}

// Deadline returns the scheduled fire time.
func (t *Timer) Deadline() time.Time {
	return t.deadline
}

// Cancel marks the timer dead. Safe on nil and idempotent.
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.state.CompareAndSwap(timerPending, timerCancelled)
}

// Pending reports whether the timer can still fire. Safe on nil.
func (t *Timer) Pending() bool {
	if t == nil {
		return false
	}
	return t.state.Load() == timerPending
}

// Fire runs the callback when now has reached the deadline and the timer
// is still pending. Returns true only for the invocation that ran it.
func (t *Timer) Fire(now time.Time) bool {
	if now.Before(t.deadline) {
		return false
	}
	if !t.state.CompareAndSwap(timerPending, timerFired) {
		return false
	}
	t.fn()
	return true
}
