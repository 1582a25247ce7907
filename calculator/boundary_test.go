package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo/model"
)

func seventeen(v float64) []float64 {
	out := make([]float64, model.NumSegments)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestScalarBroadcastEqualsVector(t *testing.T) {
	a := newConditions()
	b := newConditions()

	require.NoError(t, a.setTa(25))
	require.NoError(t, b.setTa(seventeen(25)...))
	assert.Equal(t, a.ta, b.ta)

	require.NoError(t, a.setVa(0.4))
	require.NoError(t, b.setVa(seventeen(0.4)...))
	assert.Equal(t, a.va, b.va)
}

func TestBadLengthRejected(t *testing.T) {
	c := newConditions()
	err := c.setTa(20, 21, 22)
	require.ErrorIs(t, err, model.ErrInvalidBoundaryCondition)
}

func TestFieldsAreSticky(t *testing.T) {
	c := newConditions()
	require.NoError(t, c.setVa(0.7))
	require.NoError(t, c.setRH(60))
	require.NoError(t, c.setIcl(0.5))

	// later assignments to other fields leave Va untouched
	require.NoError(t, c.setTa(31))
	for i := range c.va {
		assert.Equal(t, 0.7, c.va[i])
		assert.Equal(t, 0.5, c.icl[i])
	}
	assert.Equal(t, 1.2, c.par, "PAR keeps its construction default")
	assert.Equal(t, model.Standing, c.posture)
}

func TestOperativeRequiresEqualAirAndRadiant(t *testing.T) {
	c := newConditions()
	require.NoError(t, c.setTa(28))
	require.NoError(t, c.setTr(30))
	err := c.setTo(25)
	require.ErrorIs(t, err, model.ErrInvalidBoundaryCondition)

	require.NoError(t, c.setTr(28))
	require.NoError(t, c.setTo(25))
	assert.Equal(t, 25.0, c.ta[model.Head])
	assert.Equal(t, 25.0, c.tr[model.Head])
}

func TestAirSetterLockedWhileOperativeEngaged(t *testing.T) {
	c := newConditions()
	require.NoError(t, c.setTo(22))

	require.ErrorIs(t, c.setTa(30), model.ErrInvalidBoundaryCondition)
	require.ErrorIs(t, c.setTr(30), model.ErrInvalidBoundaryCondition)

	// reassigning To is still fine
	require.NoError(t, c.setTo(20))

	// the paired setter reconciles both and releases the shortcut
	require.NoError(t, c.setTaTr([]float64{30}, []float64{35}))
	assert.Equal(t, 30.0, c.ta[model.Pelvis])
	assert.Equal(t, 35.0, c.tr[model.Pelvis])
	require.NoError(t, c.setTa(31), "individual setters work again")
}

func TestOutOfRangeNeverClamped(t *testing.T) {
	c := newConditions()
	before := c.va

	require.ErrorIs(t, c.setTa(80), model.ErrInvalidBoundaryCondition)
	require.ErrorIs(t, c.setVa(-0.1), model.ErrInvalidBoundaryCondition)
	require.ErrorIs(t, c.setRH(140), model.ErrInvalidBoundaryCondition)
	require.ErrorIs(t, c.setIcl(-1), model.ErrInvalidBoundaryCondition)
	require.ErrorIs(t, c.setPAR(0.5), model.ErrInvalidBoundaryCondition)

	assert.Equal(t, before, c.va, "failed set leaves state untouched")
}

func TestElementwiseRangeCheckNamesSegment(t *testing.T) {
	c := newConditions()
	bad := seventeen(20)
	bad[model.LFoot] = 99
	err := c.setTa(bad...)
	require.ErrorIs(t, err, model.ErrInvalidBoundaryCondition)
	assert.Contains(t, err.Error(), "LFoot")
}
