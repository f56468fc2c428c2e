package core

import "sync/atomic"

// Entity uniquely identifies a spawned element, projectile, wall, or
// scorch mark for the lifetime of a session. Zero is never a valid ID.
type Entity uint64

// IDSource hands out session-unique entity IDs. Safe for concurrent use.
type IDSource struct {
	next atomic.Uint64
}

// Reserve allocates the next entity ID, starting from 1.
func (s *IDSource) Reserve() Entity {
	return Entity(s.next.Add(1))
}

// Peek reports how many IDs have been handed out so far.
func (s *IDSource) Peek() uint64 {
	return s.next.Load()
}
