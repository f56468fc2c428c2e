package event

import (
	"sync/atomic"

	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
)

// Queue is a lock-free MPSC ring buffer carrying events from the engine's
// update and flight goroutines to a single consumer.
// Thread-Safety:
//   - Push: lock-free CAS, multiple producers OK
//   - Consume: single consumer only
//   - Published flags prevent reading partial writes
//
// Overflow: oldest events are overwritten when full.
type Queue struct {
	events    [parameter.EventQueueCapacity]Event
	published [parameter.EventQueueCapacity]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an event using the CAS-then-publish pattern. O(1) amortized.
func (q *Queue) Push(e Event) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.EventQueueMask

			q.events[idx] = e
			q.published[idx].Store(true) // MUST be after the write

			// Advance head if overwriting unread events
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.EventQueueCapacity {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.EventQueueCapacity)
			}
			return
		}
	}
}

// Consume drains all pending events in FIFO order.
func (q *Queue) Consume() []Event {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.EventQueueCapacity {
			maxAvailable = parameter.EventQueueCapacity
			currentHead = currentTail - parameter.EventQueueCapacity
		}

		result := make([]Event, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.EventQueueMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.events[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns the approximate pending event count.
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.EventQueueCapacity {
		return parameter.EventQueueCapacity
	}
	return diff
}
