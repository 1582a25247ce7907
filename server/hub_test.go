package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo/body"
	"thermo/calculator"
	"thermo/model"
)

func TestBuildEngineZeroFieldsKeepDefaults(t *testing.T) {
	e, err := buildEngine(model.ProfileReq{})
	require.NoError(t, err)

	def, err := body.Resolve(body.DefaultProfile())
	require.NoError(t, err)
	assert.InDelta(t, def.BMR/def.BSATotal, e.BMR(), 1e-12)

	bigger, err := buildEngine(model.ProfileReq{Height: 1.90, Weight: 95})
	require.NoError(t, err)
	var sum, defSum float64
	for i, v := range bigger.BSA() {
		sum += v
		defSum += e.BSA()[i]
	}
	assert.Greater(t, sum, defSum)
}

func TestBuildEngineRejectsBadInput(t *testing.T) {
	_, err := buildEngine(model.ProfileReq{Sex: "yes"})
	assert.Error(t, err)

	_, err = buildEngine(model.ProfileReq{Fat: 95})
	assert.ErrorIs(t, err, model.ErrConfiguration)

	_, err = buildEngine(model.ProfileReq{BSAEquation: "nonsense"})
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func fv(vals ...float64) *model.FlexVec {
	v := model.FlexVec(vals)
	return &v
}

func str(s string) *string { return &s }

func ptr(v float64) *float64 { return &v }

func TestApplyEnvPairedTaTrReleasesOperative(t *testing.T) {
	e := calculator.NewDefaultEngine()
	require.NoError(t, e.SetTo(22))

	// Ta alone stays locked behind the shortcut
	err := applyEnv(e, model.EnvReq{Ta: fv(25)})
	assert.ErrorIs(t, err, model.ErrInvalidBoundaryCondition)

	// the pair goes through and releases it
	require.NoError(t, applyEnv(e, model.EnvReq{Ta: fv(25), Tr: fv(27)}))
	require.NoError(t, applyEnv(e, model.EnvReq{Ta: fv(26)}))
}

func TestApplyEnvValidatesPosture(t *testing.T) {
	e := calculator.NewDefaultEngine()
	assert.Error(t, applyEnv(e, model.EnvReq{Posture: str("prone")}))
	assert.NoError(t, applyEnv(e, model.EnvReq{Posture: str("lying")}))
}

func TestApplyEnvScalarAndVector(t *testing.T) {
	e := calculator.NewDefaultEngine()
	va := make([]float64, model.NumSegments)
	for i := range va {
		va[i] = 0.3
	}
	require.NoError(t, applyEnv(e, model.EnvReq{
		Va:  fv(va...),
		RH:  fv(55),
		PAR: ptr(1.8),
	}))
	// wrong element count is rejected, nothing else applied after it
	assert.ErrorIs(t, applyEnv(e, model.EnvReq{RH: fv(40, 50, 60)}),
		model.ErrInvalidBoundaryCondition)
}

func TestDispatchSimulateStreamsRowsThenDone(t *testing.T) {
	h := NewHub(nil)

	h.dispatch(model.Msg{Type: "env", Content: `{"ta": 30, "tr": 30}`})
	reply := awaitReply(t, h, "env_set")
	assert.Equal(t, "", reply.Content)

	h.dispatch(model.Msg{Type: "simulate", Content: `{"times": 3, "dtime": 60}`})
	done := awaitReply(t, h, "done")
	assert.NotEmpty(t, done.Content)
	assert.Equal(t, 3, h.recent.Len())
}

func TestDispatchRejectsConcurrentSimulate(t *testing.T) {
	h := NewHub(nil)
	h.dispatch(model.Msg{Type: "simulate", Content: `{"times": 200, "dtime": 60}`})
	h.dispatch(model.Msg{Type: "simulate", Content: `{"times": 1, "dtime": 60}`})

	reply := awaitReply(t, h, "error")
	assert.Contains(t, reply.Content, "already running")
	h.dispatch(model.Msg{Type: "stop"})
	awaitReply(t, h, "stopped")
}

func TestRepeatedStopFramesAreIdempotent(t *testing.T) {
	h := NewHub(nil)
	h.dispatch(model.Msg{Type: "simulate", Content: `{"times": 10000, "dtime": 60}`})

	// an impatient client double-clicking stop must not crash the dispatcher
	h.dispatch(model.Msg{Type: "stop"})
	h.dispatch(model.Msg{Type: "stop"})
	awaitReply(t, h, "stopped")

	// stop after the run has wound down is a no-op too
	waitIdle(t, h)
	h.dispatch(model.Msg{Type: "stop"})

	// a fresh run starts and stops cleanly afterwards
	h.dispatch(model.Msg{Type: "simulate", Content: `{"times": 10000, "dtime": 60}`})
	h.dispatch(model.Msg{Type: "stop"})
	awaitReply(t, h, "stopped")
}

func TestProfileRejectedWhileRunning(t *testing.T) {
	h := NewHub(nil)
	h.dispatch(model.Msg{Type: "simulate", Content: `{"times": 10000, "dtime": 60}`})
	before := h.e

	h.dispatch(model.Msg{Type: "profile", Content: `{"height": 1.9, "weight": 90}`})
	reply := awaitReply(t, h, "error")
	assert.Contains(t, reply.Content, "already running")
	assert.Same(t, before, h.e, "active engine must not be swapped mid-run")

	h.dispatch(model.Msg{Type: "stop"})
	awaitReply(t, h, "stopped")

	// once idle the same frame goes through
	waitIdle(t, h)
	h.dispatch(model.Msg{Type: "profile", Content: `{"height": 1.9, "weight": 90}`})
	awaitReply(t, h, "profile_set")
	assert.NotSame(t, before, h.e)
}

func TestDispatchUnknownType(t *testing.T) {
	h := NewHub(nil)
	h.dispatch(model.Msg{Type: "selfdestruct"})
	reply := awaitReply(t, h, "error")
	assert.Contains(t, reply.Content, "selfdestruct")
}

// waitIdle blocks until the run goroutine has fully wound down (the stopped
// reply is sent before its deferred state reset).
func waitIdle(t *testing.T, h *Hub) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.Lock()
		idle := !h.running
		h.mu.Unlock()
		if idle {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("run goroutine never went idle")
}

// awaitReply drains the outbound queue until a frame of the wanted type shows
// up. Row frames in between are tolerated.
func awaitReply(t *testing.T, h *Hub, kind string) model.Msg {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case m := <-h.out:
			if m.Type == kind {
				return m
			}
		case <-deadline:
			t.Fatalf("no %q frame within deadline", kind)
		}
	}
}
