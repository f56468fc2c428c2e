package event

import (
	"sync"
	"testing"
	"time"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	q.Push(Event{Type: EventElementSummoned, Time: now})
	q.Push(Event{Type: EventElementUpdated, Time: now})
	q.Push(Event{Type: EventElementLaunched, Time: now})

	events := q.Consume()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	want := []EventType{EventElementSummoned, EventElementUpdated, EventElementLaunched}
	for i, e := range events {
		if e.Type != want[i] {
			t.Errorf("Expected event %d to be %s, got %s", i, want[i], e.Type)
		}
	}

	if again := q.Consume(); again != nil {
		t.Errorf("Expected empty queue after drain, got %d events", len(again))
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	total := parameter.EventQueueCapacity + 50
	for i := 0; i < total; i++ {
		q.Push(Event{Type: EventStreamUpdated, Payload: i})
	}

	events := q.Consume()
	if len(events) > parameter.EventQueueCapacity {
		t.Fatalf("Expected at most %d events, got %d", parameter.EventQueueCapacity, len(events))
	}
	// The newest event must have survived the overwrite
	last := events[len(events)-1]
	if last.Payload.(int) != total-1 {
		t.Errorf("Expected newest payload %d, got %v", total-1, last.Payload)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Event{Type: EventProjectileImpact})
			}
		}()
	}
	wg.Wait()

	total := 0
	for {
		batch := q.Consume()
		if batch == nil {
			break
		}
		total += len(batch)
	}
	if total != producers*perProducer {
		t.Errorf("Expected %d events from concurrent producers, got %d", producers*perProducer, total)
	}
}

func TestDispatcherRouting(t *testing.T) {
	d := NewDispatcher()

	var launches, all int
	var gotLimb core.Chirality
	d.On(EventElementLaunched, func(e Event) {
		launches++
		gotLimb = e.Payload.(*ElementLaunchedPayload).Limb
	})
	d.OnAll(func(e Event) { all++ })

	d.Dispatch([]Event{
		{Type: EventElementSummoned},
		{Type: EventElementLaunched, Payload: &ElementLaunchedPayload{Limb: core.ChiralityRight}},
		{Type: EventWallCreated},
	})

	if launches != 1 {
		t.Errorf("Expected 1 launch handler call, got %d", launches)
	}
	if gotLimb != core.ChiralityRight {
		t.Errorf("Expected right limb payload, got %s", gotLimb)
	}
	if all != 3 {
		t.Errorf("Expected catch-all to see 3 events, got %d", all)
	}
}
