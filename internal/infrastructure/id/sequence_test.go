package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence_StartsAtOneWithoutGaps(t *testing.T) {
	s := NewSequence()

	for want := int64(1); want <= 5; want++ {
		got := s.NextID()
		assert.Equal(t, want, got)
		s.Commit(got)
	}
	assert.Equal(t, int64(6), s.NextID())
}

func TestSequence_UncommittedIDIsReissued(t *testing.T) {
	s := NewSequence()

	assert.Equal(t, int64(1), s.NextID())
	assert.Equal(t, int64(1), s.NextID())

	s.Commit(1)
	assert.Equal(t, int64(2), s.NextID())
}

func TestSequence_CommitNeverMovesBackwards(t *testing.T) {
	s := NewSequence()
	s.Commit(3)
	s.Commit(2)
	assert.Equal(t, int64(4), s.NextID())
}

func TestSequence_IndependentInstances(t *testing.T) {
	a, b := NewSequence(), NewSequence()
	a.Commit(a.NextID())
	a.Commit(a.NextID())
	assert.Equal(t, int64(1), b.NextID())
}
