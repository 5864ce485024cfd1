// pkg/entity/entity.go
package entity

import "sync/atomic"

// ID is a unique identifier for an entity within one session
type ID uint64

// Handle is the opaque correlation handle the spawn feed assigns to an
// obstacle. The simulation never interprets it.
type Handle uint64

// IDSource hands out entity IDs for a single session. The zero value is ready
// to use and starts at 1.
type IDSource struct {
	last atomic.Uint64
}

// Next returns a fresh ID
func (s *IDSource) Next() ID {
	return ID(s.last.Add(1))
}
