package calculator

import "thermo/model"

// Engine is the public surface of the thermoregulation model.

type Engine interface {
	// Boundary-condition setters. Each accepts one value (broadcast) or 17
	// values in segment order, and keeps its value until reassigned.
	SetTa(values ...float64) error
	SetTr(values ...float64) error
	// SetTaTr reassigns both temperatures in one call, releasing the
	// operative-temperature shortcut.
	SetTaTr(ta, tr []float64) error
	// SetTo is the operative shortcut, valid only while Ta == Tr.
	SetTo(values ...float64) error
	SetVa(values ...float64) error
	SetRH(values ...float64) error
	SetIcl(values ...float64) error
	SetPAR(par float64) error
	SetPosture(p model.Posture) error
	// SetBodyTemp overrides the full 85-node state (explicit reset path).
	SetBodyTemp(values []float64) error

	// Simulate advances the model times steps of dtime seconds each,
	// appending one result row per step.
	Simulate(times int, dtime float64) error

	// Boundary-condition getters: current resolved per-segment values.
	Ta() []float64
	Tr() []float64
	// To reports the resolved operative temperature and whether the shortcut
	// is engaged (Ta and Tr locked together).
	To() ([]float64, bool)
	Va() []float64
	RH() []float64
	Icl() []float64
	PAR() float64
	Posture() model.Posture

	// Getters: read-only copies of the latest state and derived quantities.
	// Derived values are recomputed once per step and report the last
	// completed step.
	BSA() []float64
	Rt() []float64
	Ret() []float64
	Wet() []float64
	WetMean() float64
	TskMean() float64
	Tsk() []float64
	Tcr() []float64
	Tcb() float64
	Tar() []float64
	Tve() []float64
	Tsve() []float64
	Tms() []float64
	Tfat() []float64
	// BMR returns the basal rate per unit surface area [W/m2].
	BMR() float64

	// Results copies out the accumulated result log, oldest first.
	Results() []model.ResultRow

	// GetCalcHub exposes the per-step push channels.
	GetCalcHub() *CalcHub

	// BuildData assembles the streaming snapshot of the current state.
	BuildData() *SnapshotData
}
