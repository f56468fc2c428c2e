package core

import (
	"testing"
	"time"
)

func TestTimerFiresAtDeadline(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fired := 0
	tm := NewTimer(base.Add(100*time.Millisecond), func() { fired++ })

	if tm.Fire(base) {
		t.Error("Expected no fire before deadline")
	}
	if tm.Fire(base.Add(99 * time.Millisecond)) {
		t.Error("Expected no fire 1ms before deadline")
	}
	if !tm.Fire(base.Add(100 * time.Millisecond)) {
		t.Error("Expected fire exactly at deadline")
	}
	if fired != 1 {
		t.Errorf("Expected callback once, got %d", fired)
	}
	if tm.Fire(base.Add(200 * time.Millisecond)) {
		t.Error("Expected no second fire")
	}
	if fired != 1 {
		t.Errorf("Expected callback still once, got %d", fired)
	}
}

func TestTimerCancelPreventsFire(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	fired := false
	tm := NewTimer(base, func() { fired = true })

	tm.Cancel()
	if tm.Fire(base.Add(time.Second)) {
		t.Error("Expected cancelled timer not to fire")
	}
	if fired {
		t.Error("Expected callback not to run after cancel")
	}
	if tm.Pending() {
		t.Error("Expected cancelled timer not pending")
	}
}

func TestTimerCancelIdempotent(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := NewTimer(base, func() {})

	tm.Cancel()
	tm.Cancel()
	tm.Cancel()
	if tm.Pending() {
		t.Error("Expected timer not pending after repeated cancel")
	}

	fired := NewTimer(base, func() {})
	if !fired.Fire(base) {
		t.Fatal("Expected fire at deadline")
	}
	fired.Cancel()
	if fired.Pending() {
		t.Error("Expected fired timer not pending after cancel")
	}
}

func TestTimerNilSafe(t *testing.T) {
	var tm *Timer
	tm.Cancel()
	if tm.Pending() {
		t.Error("Expected nil timer not pending")
	}
}
