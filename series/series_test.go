package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo/model"
)

func row(step int) model.ResultRow {
	return model.ResultRow{Step: step, Time: float64(step) * 60}
}

func TestLogAppendAndTraverse(t *testing.T) {
	s := NewLog()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Latest()
	assert.False(t, ok)

	for i := 1; i <= 5; i++ {
		s.Append(row(i))
	}
	require.Equal(t, 5, s.Len())

	last, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, 5, last.Step)

	var seen []int
	s.Traverse(func(i int, r model.ResultRow) {
		assert.Equal(t, i+1, r.Step)
		seen = append(seen, r.Step)
	})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)
}

func TestLogWindow(t *testing.T) {
	s := NewLog()
	for i := 1; i <= 5; i++ {
		s.Append(row(i))
	}
	w := s.Window(3)
	require.Len(t, w, 3)
	assert.Equal(t, 3, w[0].Step)
	assert.Equal(t, 5, w[2].Step)

	assert.Len(t, s.Window(99), 5)
}

func TestRingEvictsOldest(t *testing.T) {
	s := NewRing(3)
	for i := 1; i <= 5; i++ {
		s.Append(row(i))
	}
	require.Equal(t, 3, s.Len())
	assert.Equal(t, 3, s.At(0).Step)
	assert.Equal(t, 5, s.At(2).Step)

	last, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, 5, last.Step)
}

func TestRingWindowOrder(t *testing.T) {
	s := NewRing(4)
	for i := 1; i <= 9; i++ {
		s.Append(row(i))
	}
	w := s.Window(2)
	require.Len(t, w, 2)
	assert.Equal(t, 8, w[0].Step)
	assert.Equal(t, 9, w[1].Step)

	var steps []int
	s.Traverse(func(_ int, r model.ResultRow) { steps = append(steps, r.Step) })
	assert.Equal(t, []int{6, 7, 8, 9}, steps)
}

func TestRingMinimumCapacity(t *testing.T) {
	s := NewRing(0)
	s.Append(row(1))
	s.Append(row(2))
	assert.Equal(t, 1, s.Len())
	last, _ := s.Latest()
	assert.Equal(t, 2, last.Step)
}
