package calculator

// Streaming snapshot assembly for front-end clients.

type SnapshotData struct {
	Step    int     `json:"step"`
	Time    float64 `json:"time"`
	TskMean float64 `json:"tsk_mean"`
	WetMean float64 `json:"wet_mean"`
	Tcb     float64 `json:"tcb"`
	BMR     float64 `json:"bmr"` // [W/m2]

	Tsk  []float64 `json:"tsk"`
	Tcr  []float64 `json:"tcr"`
	Tar  []float64 `json:"tar"`
	Tve  []float64 `json:"tve"`
	Tsve []float64 `json:"tsve"`
	Tms  []float64 `json:"tms"`
	Tfat []float64 `json:"tfat"`

	BSA []float64 `json:"bsa"`
	Rt  []float64 `json:"rt"`
	Ret []float64 `json:"ret"`
	Wet []float64 `json:"wet"`
}

// BuildData copies the current state and derived quantities into one frame.
func (e *engine) BuildData() *SnapshotData {
	e.mu.Lock()
	steps := e.steps
	simTime := e.simTime
	e.mu.Unlock()

	return &SnapshotData{
		Step:    steps,
		Time:    simTime,
		TskMean: e.TskMean(),
		WetMean: e.WetMean(),
		Tcb:     e.Tcb(),
		BMR:     e.BMR(),
		Tsk:     e.Tsk(),
		Tcr:     e.Tcr(),
		Tar:     e.Tar(),
		Tve:     e.Tve(),
		Tsve:    e.Tsve(),
		Tms:     e.Tms(),
		Tfat:    e.Tfat(),
		BSA:     e.BSA(),
		Rt:      e.Rt(),
		Ret:     e.Ret(),
		Wet:     e.Wet(),
	}
}
