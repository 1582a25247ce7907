package calculator

import "thermo/model"

// Getters return copies; mutating a returned slice never perturbs the engine.
//
// Derived quantities (Rt, Ret, operative temperature, wettedness) are
// recomputed once per step, so after a setter call they keep reporting the
// last completed step until the next Simulate.

func (e *engine) gather(nodes []int) []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.state.RawVector().Data
	out := make([]float64, len(nodes))
	for i, n := range nodes {
		out[i] = st[n]
	}
	return out
}

func (e *engine) condField(src *[model.NumSegments]float64) []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]float64, model.NumSegments)
	copy(out, src[:])
	return out
}

func (e *engine) Ta() []float64 { return e.condField(&e.cond.ta) }

func (e *engine) Tr() []float64 { return e.condField(&e.cond.tr) }

// To reports the operative temperature as resolved at the last completed
// step, plus whether the shortcut is engaged.
func (e *engine) To() ([]float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]float64, model.NumSegments)
	copy(out, e.res.to[:])
	return out, e.cond.toActive
}

func (e *engine) Va() []float64 { return e.condField(&e.cond.va) }

func (e *engine) RH() []float64 { return e.condField(&e.cond.rh) }

func (e *engine) Icl() []float64 { return e.condField(&e.cond.icl) }

func (e *engine) PAR() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.par
}

func (e *engine) Posture() model.Posture {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cond.posture
}

func (e *engine) BSA() []float64 {
	out := make([]float64, model.NumSegments)
	copy(out, e.body.BSA[:])
	return out
}

// Rt reports the dry resistances of the last completed step; a clothing or
// airflow change shows up after the next Simulate.
func (e *engine) Rt() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]float64, model.NumSegments)
	copy(out, e.res.rt[:])
	return out
}

func (e *engine) Ret() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]float64, model.NumSegments)
	copy(out, e.res.ret[:])
	return out
}

func (e *engine) Wet() []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]float64, model.NumSegments)
	copy(out, e.sig.wet[:])
	return out
}

func (e *engine) WetMean() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.areaMeanOf(e.sig.wet[:])
}

func (e *engine) TskMean() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.areaMean(nodeLayout.skin[:])
}

func (e *engine) Tsk() []float64 {
	return e.gather(nodeLayout.skin[:])
}

func (e *engine) Tcr() []float64 {
	return e.gather(nodeLayout.core[:])
}

func (e *engine) Tcb() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.RawVector().Data[cbIndex]
}

func (e *engine) Tar() []float64 {
	return e.gather(nodeLayout.artery[:])
}

func (e *engine) Tve() []float64 {
	return e.gather(nodeLayout.vein[:])
}

func (e *engine) Tsve() []float64 {
	return e.gather(nodeLayout.sfvein[:])
}

func (e *engine) Tms() []float64 {
	return e.gather(nodeLayout.muscle[:])
}

func (e *engine) Tfat() []float64 {
	return e.gather(nodeLayout.fat[:])
}

func (e *engine) BMR() float64 {
	return e.body.BMR / e.body.BSATotal
}
