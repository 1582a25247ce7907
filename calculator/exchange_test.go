package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo/model"
)

func TestResistancesPositive(t *testing.T) {
	c := newConditions()
	require.NoError(t, c.setIcl(0.6))
	r := computeResistances(c)
	for i := 0; i < model.NumSegments; i++ {
		assert.Greater(t, r.rt[i], 0.0)
		assert.Greater(t, r.ret[i], 0.0)
	}
}

func TestAirSpeedLowersDryResistance(t *testing.T) {
	calm := newConditions()
	windy := newConditions()
	require.NoError(t, calm.setVa(0.1))
	require.NoError(t, windy.setVa(2.0))

	rc := computeResistances(calm)
	rw := computeResistances(windy)
	for i := 0; i < model.NumSegments; i++ {
		assert.Less(t, rw.rt[i], rc.rt[i], model.SegmentNames[i])
		assert.Less(t, rw.ret[i], rc.ret[i], model.SegmentNames[i])
	}
}

func TestClothingRaisesDryResistance(t *testing.T) {
	naked := newConditions()
	clothed := newConditions()
	require.NoError(t, clothed.setIcl(1.0))

	rn := computeResistances(naked)
	rc := computeResistances(clothed)
	for i := 0; i < model.NumSegments; i++ {
		assert.Greater(t, rc.rt[i], rn.rt[i])
	}
}

func TestPostureSelectsCoefficientTable(t *testing.T) {
	standing := newConditions()
	lying := newConditions()
	require.NoError(t, lying.setPosture(model.Lying))

	rs := computeResistances(standing)
	rl := computeResistances(lying)
	assert.NotEqual(t, rs.rt, rl.rt)
}

func TestOperativeTemperatureBetweenAirAndRadiant(t *testing.T) {
	c := newConditions()
	require.NoError(t, c.setTa(20))
	require.NoError(t, c.setTr(40))
	r := computeResistances(c)
	for i := 0; i < model.NumSegments; i++ {
		assert.Greater(t, r.to[i], 20.0)
		assert.Less(t, r.to[i], 40.0)
	}
}

func TestSaturationPressureReference(t *testing.T) {
	// ~2.34 kPa at 20 degC, ~5.62 kPa at 35 degC
	assert.InDelta(t, 2340, psat(20), 30)
	assert.InDelta(t, 5620, psat(35), 60)
}
