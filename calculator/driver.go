package calculator

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"thermo/body"
	"thermo/model"
	"thermo/series"
)

// engine drives the per-step pipeline: resistances -> control signals ->
// blood flows -> integration -> result row. Single-threaded; the mutex only
// fences the streaming reader off the state while a step lands.
type engine struct {
	body *body.Body
	cond *conditions
	intg *integrator

	state *mat.VecDense // 85 nodes, mutated only by the integrator

	// latest derived quantities, for the getters
	res resistances
	sig signals
	co  float64 // [L/h]

	steps   int
	simTime float64 // cumulative simulated seconds

	log series.Store
	hub *CalcHub

	mu sync.Mutex
}

// NewEngine builds a model for the given body profile. The state starts from
// the thermoneutral baseline and is never reset except through SetBodyTemp.
func NewEngine(p body.Profile) (Engine, error) {
	b, err := body.Resolve(p)
	if err != nil {
		return nil, err
	}
	e := &engine{
		body: b,
		cond: newConditions(),
		intg: newIntegrator(b),
		log:  series.NewLog(),
		hub:  NewCalcHub(),
	}
	init := initialState()
	e.state = mat.NewVecDense(model.NumNodes, init[:])
	e.res = computeResistances(e.cond)
	e.sig = computeSignals(e.state.RawVector().Data, &e.res, &b.BSA, b.BMR)
	return e, nil
}

// NewDefaultEngine uses the documented default body build.
func NewDefaultEngine() Engine {
	e, err := NewEngine(body.DefaultProfile())
	if err != nil {
		// the default profile is always resolvable
		panic(err)
	}
	return e
}

func (e *engine) Simulate(times int, dtime float64) error {
	if times < 1 {
		return fmt.Errorf("%w: times=%d, want >= 1", model.ErrInvalidArgument, times)
	}
	if dtime <= 0 {
		return fmt.Errorf("%w: dtime=%v, want > 0", model.ErrInvalidArgument, dtime)
	}

	for n := 0; n < times; n++ {
		if err := e.stepOnce(dtime); err != nil {
			return err
		}
	}
	return nil
}

// stepOnce runs the pipeline for one step. Boundary conditions are resolved
// once at the head of the step, not interpolated.
func (e *engine) stepOnce(dtime float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := computeResistances(e.cond)
	st := e.state.RawVector().Data
	sig := computeSignals(st, &res, &e.body.BSA, e.body.BMR)
	f := computeFlows(&sig, e.body, e.cond.par, e.body.BMR)
	src := computeSources(e.body, e.cond.par, &sig, &res)

	if err := e.intg.step(st, e.body, &f, &sig, &res, &src, dtime, calCfg.MaxSubsteps); err != nil {
		return err
	}

	e.res = res
	e.sig = sig
	e.co = f.total
	e.steps++
	e.simTime += dtime

	row := e.buildRow(dtime, &sig, &f)
	e.log.Append(row)
	e.hub.PushRow(row)
	return nil
}

func (e *engine) buildRow(dtime float64, sig *signals, f *flows) model.ResultRow {
	l := nodeLayout
	st := e.state.RawVector().Data
	row := model.ResultRow{
		Step:    e.steps,
		Time:    e.simTime,
		Dtime:   dtime,
		Tcb:     st[cbIndex],
		Met:     e.body.BMR*e.cond.par + sig.shiv,
		Shiv:    sig.shiv,
		CO:      f.total / 60, // [L/h] -> [L/min]
		TskMean: e.areaMean(l.skin[:]),
		WetMean: e.areaMeanOf(sig.wet[:]),
	}
	for i := 0; i < model.NumSegments; i++ {
		row.Tsk[i] = st[l.skin[i]]
		row.Tcr[i] = st[l.core[i]]
		row.Wet[i] = sig.wet[i]
	}
	return row
}

// areaMean is the BSA-weighted mean over the nodes at the given offsets.
func (e *engine) areaMean(nodes []int) float64 {
	st := e.state.RawVector().Data
	var sum float64
	for i, n := range nodes {
		sum += e.body.BSA[i] * st[n]
	}
	return sum / e.body.BSATotal
}

func (e *engine) areaMeanOf(values []float64) float64 {
	var sum float64
	for i, v := range values {
		sum += e.body.BSA[i] * v
	}
	return sum / e.body.BSATotal
}

func (e *engine) Results() []model.ResultRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.Window(e.log.Len())
}

func (e *engine) GetCalcHub() *CalcHub {
	return e.hub
}

// Setters delegate to the sticky boundary-condition store.

func (e *engine) SetTa(values ...float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.setTa(values...)
}

func (e *engine) SetTr(values ...float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.setTr(values...)
}

func (e *engine) SetTaTr(ta, tr []float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.setTaTr(ta, tr)
}

func (e *engine) SetTo(values ...float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.setTo(values...)
}

func (e *engine) SetVa(values ...float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.setVa(values...)
}

func (e *engine) SetRH(values ...float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.setRH(values...)
}

func (e *engine) SetIcl(values ...float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.setIcl(values...)
}

func (e *engine) SetPAR(par float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.setPAR(par)
}

func (e *engine) SetPosture(p model.Posture) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.setPosture(p)
}

func (e *engine) SetBodyTemp(values []float64) error {
	if len(values) != model.NumNodes {
		return fmt.Errorf("%w: bodytemp wants %d values, got %d",
			model.ErrInvalidBoundaryCondition, model.NumNodes, len(values))
	}
	for i, v := range values {
		if v < tempFloor || v > tempCeil {
			return fmt.Errorf("%w: bodytemp[%d]=%v outside [%v, %v]",
				model.ErrInvalidBoundaryCondition, i, v, tempFloor, tempCeil)
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	copy(e.state.RawVector().Data, values)
	return nil
}
