package id

import "sync/atomic"

// Sequence hands out strictly increasing order ids starting at 1.
// Ids are never reused; a Sequence is never reset.
type Sequence struct {
	last atomic.Int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

// NextID returns the id the next committed order gets. It does not advance
// the sequence.
func (s *Sequence) NextID() int64 {
	return s.last.Load() + 1
}

// Commit marks id as used. Ids at or below the last committed one are ignored.
func (s *Sequence) Commit(id int64) {
	for {
		cur := s.last.Load()
		if id <= cur || s.last.CompareAndSwap(cur, id) {
			return
		}
	}
}
