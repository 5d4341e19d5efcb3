package presenter

import (
	"sync/atomic"
	"time"
)

// Sequence issues fetch cycle generations shared by every presenter of a store.
//
// It starts at the wall clock in milliseconds, so a page that outlives its session
// (idle sweep) or the process (restart) still sees generations grow. Milliseconds keep
// the value exact as a JavaScript number.
type Sequence struct {
	last atomic.Uint64
}

// NewSequence creates a sequence seeded from the current time.
func NewSequence() *Sequence {
	seq := &Sequence{}
	seq.last.Store(uint64(time.Now().UnixMilli()))

	return seq
}

// Next returns a generation greater than every one issued before.
func (s *Sequence) Next() uint64 {
	return s.last.Add(1)
}
