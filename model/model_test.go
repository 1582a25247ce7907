package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexVecScalarBroadcast(t *testing.T) {
	var req EnvReq
	require.NoError(t, json.Unmarshal([]byte(`{"ta": 25.5, "va": [0.1, 0.2]}`), &req))

	require.NotNil(t, req.Ta)
	assert.Equal(t, FlexVec{25.5}, *req.Ta)
	require.NotNil(t, req.Va)
	assert.Equal(t, FlexVec{0.1, 0.2}, *req.Va)
	assert.Nil(t, req.Tr, "absent fields stay nil for sticky semantics")
}

func TestFlexVecRejectsNonNumeric(t *testing.T) {
	var v FlexVec
	assert.Error(t, json.Unmarshal([]byte(`"warm"`), &v))
}

func TestParsePosture(t *testing.T) {
	for _, p := range []Posture{Standing, Sitting, Lying} {
		got, err := ParsePosture(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePosture("handstand")
	assert.Error(t, err)
}

func TestParseSex(t *testing.T) {
	for _, s := range []Sex{Male, Female} {
		got, err := ParseSex(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSex("")
	assert.Error(t, err)
}

func TestRecordMatchesHeader(t *testing.T) {
	h := Header()
	rec := ResultRow{}.Record()
	assert.Equal(t, len(h), len(rec))
	assert.Equal(t, 9+3*NumSegments, len(h))
	assert.Equal(t, "TskHead", h[9])
}

func TestSegmentConstants(t *testing.T) {
	assert.Equal(t, 17, NumSegments)
	assert.Equal(t, 85, NumNodes)
	assert.Len(t, SegmentNames, NumSegments)
	assert.Equal(t, "Head", SegmentNames[Head])
	assert.Equal(t, "RFoot", SegmentNames[RFoot])
}
