package status

import (
	"sync"
	"testing"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("warrior.frames")
	b := r.Ints.Get("warrior.frames")
	if a != b {
		t.Error("Expected repeated Get to return the same pointer")
	}
	a.Add(3)
	if b.Load() != 3 {
		t.Errorf("Expected shared metric value 3, got %d", b.Load())
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("projectiles.live").Store(2)
	r.Floats.Get("raycast.distance").Set(3.5)
	r.Strings.Get("limb.left.gesture").Store("palmUp")
	r.Bools.Get("wall.session").Store(true)

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("Expected 4 metrics in snapshot, got %d", len(snap))
	}
	if snap["projectiles.live"] != int64(2) {
		t.Errorf("Expected projectiles.live=2, got %v", snap["projectiles.live"])
	}
	if snap["raycast.distance"] != 3.5 {
		t.Errorf("Expected raycast.distance=3.5, got %v", snap["raycast.distance"])
	}
	if snap["limb.left.gesture"] != "palmUp" {
		t.Errorf("Expected gesture label palmUp, got %v", snap["limb.left.gesture"])
	}
	if snap["wall.session"] != true {
		t.Errorf("Expected wall.session=true, got %v", snap["wall.session"])
	}
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if f.Get() != 4000 {
		t.Errorf("Expected 4000 after concurrent adds, got %v", f.Get())
	}
}

func TestAtomicStringTruncation(t *testing.T) {
	var s AtomicString
	long := "a-label-well-beyond-the-cap-for-atomic-slots"
	s.Store(long)
	if got := s.Load(); len(got) != MaxStringLen || got != long[:MaxStringLen] {
		t.Errorf("Expected truncation to %d chars, got %q", MaxStringLen, got)
	}
}
