package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo/model"
)

func TestLayoutCoversStateVector(t *testing.T) {
	l := nodeLayout
	seen := map[int]bool{cbIndex: true}
	mark := func(off int) {
		require.GreaterOrEqual(t, off, 0)
		require.Less(t, off, model.NumNodes)
		require.False(t, seen[off], "offset %d assigned twice", off)
		seen[off] = true
	}
	for seg := 0; seg < model.NumSegments; seg++ {
		mark(l.artery[seg])
		mark(l.vein[seg])
		mark(l.core[seg])
		mark(l.skin[seg])
	}
	for _, off := range l.sfvein {
		mark(off)
	}
	for _, off := range l.muscle {
		mark(off)
	}
	for _, off := range l.fat {
		mark(off)
	}
	assert.Len(t, seen, model.NumNodes)
}

func TestMuscleFatOnlyAtHeadAndPelvis(t *testing.T) {
	for seg := 0; seg < model.NumSegments; seg++ {
		want := seg == model.Head || seg == model.Pelvis
		assert.Equal(t, want, nodeLayout.muscleAt(seg) >= 0, model.SegmentNames[seg])
		assert.Equal(t, want, nodeLayout.fatAt(seg) >= 0, model.SegmentNames[seg])
	}
}

func TestSuperficialVeinOnLimbsOnly(t *testing.T) {
	var count int
	for seg := 0; seg < model.NumSegments; seg++ {
		if nodeLayout.sfveinAt(seg) >= 0 {
			count++
			assert.GreaterOrEqual(t, seg, int(model.LShoulder), model.SegmentNames[seg])
		}
	}
	assert.Equal(t, model.NumSuperficial, count)
}
